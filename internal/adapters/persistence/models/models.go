package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User statuses
const (
	UserStatusActive    = "ACTIVE"
	UserStatusInactive  = "INACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// User represents the users table. One row per login, any role.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null;index" json:"role"`
	Email     string         `gorm:"uniqueIndex;size:100" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Status    string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	FullName  string    `json:"full_name,omitempty"`
	ProfileID uint      `json:"profile_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// Trainer represents the trainers table (role profile for TRAINER users)
type Trainer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName        string         `gorm:"size:100;not null" json:"full_name"`
	Specialization  string         `gorm:"size:100" json:"specialization"`
	ExperienceYears int            `gorm:"default:0" json:"experience_years"`
	Certification   string         `gorm:"size:200" json:"certification"`
	Status          string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Trainer) TableName() string {
	return "trainers"
}

// TrainerResponse DTO, AssignedClients is derived from active assignments
type TrainerResponse struct {
	ID              uint   `json:"id"`
	UserID          uint   `json:"user_id"`
	FullName        string `json:"full_name"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Certification   string `json:"certification"`
	Status          string `json:"status"`
	AssignedClients int64  `json:"assigned_clients"`
}

func (t *Trainer) ToResponse() *TrainerResponse {
	return &TrainerResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		FullName:        t.FullName,
		Specialization:  t.Specialization,
		ExperienceYears: t.ExperienceYears,
		Certification:   t.Certification,
		Status:          t.Status,
	}
}

// Member represents the members table (role profile for MEMBER users)
type Member struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string         `gorm:"size:100;not null" json:"full_name"`
	DateOfBirth      *time.Time     `gorm:"type:date" json:"date_of_birth"`
	Gender           string         `gorm:"size:10" json:"gender"`
	HeightCm         float64        `json:"height_cm"`
	WeightKg         float64        `json:"weight_kg"`
	EmergencyContact string         `gorm:"size:100" json:"emergency_contact"`
	MedicalNotes     string         `gorm:"type:text" json:"medical_notes"`
	Status           string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	Status   string `json:"status"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (m *Member) ToResponse() *MemberResponse {
	resp := &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		FullName: m.FullName,
		Gender:   m.Gender,
		Status:   m.Status,
	}
	if m.User != nil {
		resp.Username = m.User.Username
		resp.Email = m.User.Email
		resp.Phone = m.User.Phone
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// SessionState represents the session_states table, a durable key-value
// mirror of the process session (one row per field)
type SessionState struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     string    `gorm:"size:255" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionState) TableName() string {
	return "session_states"
}

// ============================================================
// Memberships & payments
// ============================================================

// MembershipPlan ประเภทสมาชิก (Master)
type MembershipPlan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	DurationMonths int            `gorm:"not null" json:"duration_months"`
	Fee            float64        `gorm:"type:decimal(10,2);not null" json:"fee"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MembershipPlan) TableName() string {
	return "membership_plans"
}

// Membership statuses
const (
	MembershipStatusActive    = "ACTIVE"
	MembershipStatusExpired   = "EXPIRED"
	MembershipStatusCancelled = "CANCELLED"
)

// Membership represents the memberships table
type Membership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	PlanID    uint      `gorm:"not null" json:"plan_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status    string    `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member         `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Plan   *MembershipPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Membership) TableName() string {
	return "memberships"
}

// Payment statuses
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Payment represents the payments table
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"index;not null" json:"member_id"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;not null" json:"payment_date"`
	Method      string    `gorm:"size:20" json:"method"`
	Status      string    `gorm:"size:20;default:'COMPLETED'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Trainer assignments
// ============================================================

// Assignment statuses
const (
	AssignmentStatusActive    = "ACTIVE"
	AssignmentStatusCompleted = "COMPLETED"
	AssignmentStatusCancelled = "CANCELLED"
)

// TrainerAssignment represents the trainer_assignments table.
// At most one ACTIVE row may exist per member; reassignment marks the
// prior row COMPLETED and inserts a new ACTIVE one in the same transaction.
type TrainerAssignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MemberID     uint      `gorm:"index;not null" json:"member_id"`
	TrainerID    uint      `gorm:"index;not null" json:"trainer_id"`
	AssignedDate time.Time `gorm:"type:date;not null" json:"assigned_date"`
	Status       string    `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member  *Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

func (TrainerAssignment) TableName() string {
	return "trainer_assignments"
}

// ============================================================
// Social graph
// ============================================================

// Friend request statuses. PENDING is the only non-terminal state.
const (
	FriendRequestPending  = "PENDING"
	FriendRequestAccepted = "ACCEPTED"
	FriendRequestDeclined = "DECLINED"
)

// FriendRequest represents the friend_requests table
type FriendRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FromMemberID uint      `gorm:"index;not null" json:"from_member_id"`
	ToMemberID   uint      `gorm:"index;not null" json:"to_member_id"`
	Status       string    `gorm:"size:20;default:'PENDING';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FromMember *Member `gorm:"foreignKey:FromMemberID" json:"from_member,omitempty"`
	ToMember   *Member `gorm:"foreignKey:ToMemberID" json:"to_member,omitempty"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (fr *FriendRequest) IsPending() bool {
	return fr.Status == FriendRequestPending
}

// FriendRequestResponse DTO
type FriendRequestResponse struct {
	ID           uint      `json:"id"`
	FromMemberID uint      `json:"from_member_id"`
	ToMemberID   uint      `json:"to_member_id"`
	FromName     string    `json:"from_name,omitempty"`
	ToName       string    `json:"to_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (fr *FriendRequest) ToResponse() *FriendRequestResponse {
	resp := &FriendRequestResponse{
		ID:           fr.ID,
		FromMemberID: fr.FromMemberID,
		ToMemberID:   fr.ToMemberID,
		Status:       fr.Status,
		CreatedAt:    fr.CreatedAt,
	}
	if fr.FromMember != nil {
		resp.FromName = fr.FromMember.FullName
	}
	if fr.ToMember != nil {
		resp.ToName = fr.ToMember.FullName
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&SessionState{},
		&Trainer{},
		&Member{},
		&MembershipPlan{},
		&Membership{},
		&Payment{},
		&TrainerAssignment{},
		&FriendRequest{},
	)
}
