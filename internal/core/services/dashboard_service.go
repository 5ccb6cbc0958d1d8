package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers    int64 `json:"total_users"`
	TotalAdmins   int64 `json:"total_admins"`
	TotalTrainers int64 `json:"total_trainers"`
	TotalMembers  int64 `json:"total_members"`

	// Membership Statistics
	ActiveMemberships  int64   `json:"active_memberships"`
	ExpiredMemberships int64   `json:"expired_memberships"`
	RevenueThisMonth   float64 `json:"revenue_this_month"`
	RevenueTotal       float64 `json:"revenue_total"`

	// Activity
	ActiveAssignments     int64 `json:"active_assignments"`
	PendingFriendRequests int64 `json:"pending_friend_requests"`
	NewMembersThisMonth   int64 `json:"new_members_this_month"`

	// Recent Activity
	RecentPayments []PaymentSummary `json:"recent_payments"`

	// Top Trainers
	TopTrainers []TrainerStats `json:"top_trainers"`
}

// PaymentSummary represents payment summary
type PaymentSummary struct {
	ID          uint      `json:"id"`
	MemberName  string    `json:"member_name"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	PaymentDate time.Time `json:"payment_date"`
}

// TrainerStats represents trainer statistics
type TrainerStats struct {
	TrainerID     uint   `json:"trainer_id"`
	FullName      string `json:"full_name"`
	ActiveClients int64  `json:"active_clients"`
	TotalClients  int64  `json:"total_clients"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "ADMIN").Count(&data.TotalAdmins)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "TRAINER").Count(&data.TotalTrainers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "MEMBER").Count(&data.TotalMembers)

	// Membership counts
	s.db.WithContext(ctx).Table("memberships").Where("status = ?", "ACTIVE").Count(&data.ActiveMemberships)
	s.db.WithContext(ctx).Table("memberships").Where("status = ?", "EXPIRED").Count(&data.ExpiredMemberships)

	// Revenue
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("payments").
		Where("status = ?", "COMPLETED").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.RevenueTotal)
	s.db.WithContext(ctx).Table("payments").
		Where("status = ? AND payment_date >= ?", "COMPLETED", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.RevenueThisMonth)

	// Activity
	s.db.WithContext(ctx).Table("trainer_assignments").Where("status = ?", "ACTIVE").Count(&data.ActiveAssignments)
	s.db.WithContext(ctx).Table("friend_requests").Where("status = ?", "PENDING").Count(&data.PendingFriendRequests)
	s.db.WithContext(ctx).Table("members").
		Where("created_at >= ? AND deleted_at IS NULL", startOfMonth).
		Count(&data.NewMembersThisMonth)

	// Recent payments
	var recentPayments []struct {
		ID          uint
		MemberName  string
		Amount      float64
		Method      string
		PaymentDate time.Time
	}
	s.db.WithContext(ctx).Table("payments").
		Select("payments.id, members.full_name as member_name, payments.amount, payments.method, payments.payment_date").
		Joins("LEFT JOIN members ON payments.member_id = members.id").
		Order("payments.payment_date DESC, payments.id DESC").
		Limit(10).
		Scan(&recentPayments)

	data.RecentPayments = make([]PaymentSummary, len(recentPayments))
	for i, p := range recentPayments {
		data.RecentPayments[i] = PaymentSummary{
			ID:          p.ID,
			MemberName:  p.MemberName,
			Amount:      p.Amount,
			Method:      p.Method,
			PaymentDate: p.PaymentDate,
		}
	}

	// Top trainers by active clients
	var topTrainers []struct {
		TrainerID     uint
		FullName      string
		ActiveClients int64
		TotalClients  int64
	}
	s.db.WithContext(ctx).Table("trainers").
		Select(`trainers.id as trainer_id, trainers.full_name,
			COUNT(CASE WHEN trainer_assignments.status = 'ACTIVE' THEN 1 END) as active_clients,
			COUNT(trainer_assignments.id) as total_clients`).
		Joins("LEFT JOIN trainer_assignments ON trainer_assignments.trainer_id = trainers.id").
		Where("trainers.deleted_at IS NULL").
		Group("trainers.id, trainers.full_name").
		Order("active_clients DESC").
		Limit(5).
		Scan(&topTrainers)

	data.TopTrainers = make([]TrainerStats, len(topTrainers))
	for i, t := range topTrainers {
		data.TopTrainers[i] = TrainerStats{
			TrainerID:     t.TrainerID,
			FullName:      t.FullName,
			ActiveClients: t.ActiveClients,
			TotalClients:  t.TotalClients,
		}
	}

	return data, nil
}

// ============================================================
// Trainer Dashboard
// ============================================================

// TrainerDashboardData represents trainer dashboard data
type TrainerDashboardData struct {
	ActiveClients    int64           `json:"active_clients"`
	CompletedClients int64           `json:"completed_clients"`
	Clients          []ClientSummary `json:"clients"`
}

// ClientSummary represents an assigned client
type ClientSummary struct {
	MemberID     uint      `json:"member_id"`
	FullName     string    `json:"full_name"`
	Gender       string    `json:"gender"`
	AssignedDate time.Time `json:"assigned_date"`
}

// GetTrainerDashboard returns dashboard data for one trainer
func (s *DashboardService) GetTrainerDashboard(ctx context.Context, trainerID uint) (*TrainerDashboardData, error) {
	data := &TrainerDashboardData{}

	s.db.WithContext(ctx).Table("trainer_assignments").
		Where("trainer_id = ? AND status = ?", trainerID, "ACTIVE").
		Count(&data.ActiveClients)
	s.db.WithContext(ctx).Table("trainer_assignments").
		Where("trainer_id = ? AND status = ?", trainerID, "COMPLETED").
		Count(&data.CompletedClients)

	var clients []struct {
		MemberID     uint
		FullName     string
		Gender       string
		AssignedDate time.Time
	}
	s.db.WithContext(ctx).Table("trainer_assignments").
		Select("members.id as member_id, members.full_name, members.gender, trainer_assignments.assigned_date").
		Joins("JOIN members ON trainer_assignments.member_id = members.id").
		Where("trainer_assignments.trainer_id = ? AND trainer_assignments.status = ?", trainerID, "ACTIVE").
		Order("members.full_name ASC").
		Scan(&clients)

	data.Clients = make([]ClientSummary, len(clients))
	for i, c := range clients {
		data.Clients[i] = ClientSummary{
			MemberID:     c.MemberID,
			FullName:     c.FullName,
			Gender:       c.Gender,
			AssignedDate: c.AssignedDate,
		}
	}

	return data, nil
}

// ============================================================
// Member Dashboard
// ============================================================

// MemberDashboardData represents member dashboard data
type MemberDashboardData struct {
	MembershipStatus  string     `json:"membership_status"`
	MembershipEndDate *time.Time `json:"membership_end_date"`
	TrainerName       string     `json:"trainer_name,omitempty"`
	FriendCount       int64      `json:"friend_count"`
	PendingRequests   int64      `json:"pending_requests"`
}

// GetMemberDashboard returns dashboard data for one member
func (s *DashboardService) GetMemberDashboard(ctx context.Context, memberID uint) (*MemberDashboardData, error) {
	data := &MemberDashboardData{MembershipStatus: "NONE"}

	var membership struct {
		Status  string
		EndDate time.Time
	}
	result := s.db.WithContext(ctx).Table("memberships").
		Select("status, end_date").
		Where("member_id = ?", memberID).
		Order("end_date DESC").
		Limit(1).
		Scan(&membership)
	if result.RowsAffected > 0 {
		data.MembershipStatus = membership.Status
		endDate := membership.EndDate
		data.MembershipEndDate = &endDate
	}

	s.db.WithContext(ctx).Table("trainer_assignments").
		Select("trainers.full_name").
		Joins("JOIN trainers ON trainer_assignments.trainer_id = trainers.id").
		Where("trainer_assignments.member_id = ? AND trainer_assignments.status = ?", memberID, "ACTIVE").
		Limit(1).
		Scan(&data.TrainerName)

	s.db.WithContext(ctx).Table("friend_requests").
		Where("(from_member_id = ? OR to_member_id = ?) AND status = ?", memberID, memberID, "ACCEPTED").
		Count(&data.FriendCount)
	s.db.WithContext(ctx).Table("friend_requests").
		Where("to_member_id = ? AND status = ?", memberID, "PENDING").
		Count(&data.PendingRequests)

	return data, nil
}
