package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/adapters/persistence/repositories"
	"fitconnect/internal/core/domain"
	"fitconnect/internal/pkg/pagination"
	"fitconnect/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles account provisioning and maintenance
type UserService struct {
	userRepo       repositories.UserRepository
	trainerRepo    repositories.TrainerRepository
	memberRepo     repositories.MemberRepository
	planRepo       repositories.MembershipPlanRepository
	membershipRepo repositories.MembershipRepository
	paymentRepo    repositories.PaymentRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	trainerRepo repositories.TrainerRepository,
	memberRepo repositories.MemberRepository,
	planRepo repositories.MembershipPlanRepository,
	membershipRepo repositories.MembershipRepository,
	paymentRepo repositories.PaymentRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		trainerRepo:    trainerRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
	}
}

// RegisterMemberInput represents member registration input
type RegisterMemberInput struct {
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Password         string `json:"password" validate:"required,min=8"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	FullName         string `json:"full_name" validate:"required"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`
	PlanCode         string `json:"plan_code" validate:"required"`
	PaymentMethod    string `json:"payment_method"`
}

// RegisterTrainerInput represents trainer registration input
type RegisterTrainerInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=8"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	FullName        string `json:"full_name" validate:"required"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Certification   string `json:"certification"`
}

// RegisterMember creates a member account with its profile, the initial
// membership priced from the chosen plan, and the matching payment record
func (s *UserService) RegisterMember(ctx context.Context, input *RegisterMemberInput) (*models.MemberResponse, error) {
	// 1. Validate password policy
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	// 2. Check username and email are free
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	// 3. Resolve the membership plan
	plan, err := s.planRepo.GetByCode(ctx, input.PlanCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// 4. Create the account
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: input.Username,
		Password: hashedPassword,
		Role:     domain.RoleMember.String(),
		Email:    input.Email,
		Phone:    input.Phone,
		Status:   models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Create the member profile
	member := &models.Member{
		UserID:           user.ID,
		FullName:         input.FullName,
		Gender:           input.Gender,
		EmergencyContact: input.EmergencyContact,
		Status:           models.UserStatusActive,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	// 6. Open the initial membership priced from the plan
	now := time.Now()
	membership := &models.Membership{
		MemberID:  member.ID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, plan.DurationMonths, 0),
		Amount:    plan.Fee,
		Status:    models.MembershipStatusActive,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	// 7. Record the payment
	method := input.PaymentMethod
	if method == "" {
		method = "CASH"
	}
	payment := &models.Payment{
		MemberID:    member.ID,
		Amount:      plan.Fee,
		PaymentDate: now,
		Method:      method,
		Status:      models.PaymentStatusCompleted,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ Member registered: %s (plan: %s)", user.Username, plan.Code)

	member.User = user
	return member.ToResponse(), nil
}

// RegisterTrainer creates a trainer account with its profile
func (s *UserService) RegisterTrainer(ctx context.Context, input *RegisterTrainerInput) (*models.TrainerResponse, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: input.Username,
		Password: hashedPassword,
		Role:     domain.RoleTrainer.String(),
		Email:    input.Email,
		Phone:    input.Phone,
		Status:   models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	trainer := &models.Trainer{
		UserID:          user.ID,
		FullName:        input.FullName,
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		Certification:   input.Certification,
		Status:          models.UserStatusActive,
	}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, err
	}

	log.Printf("✅ Trainer registered: %s", user.Username)

	return trainer.ToResponse(), nil
}

// GetUser returns a single user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// ListUsers lists users, optionally filtered by role, with pagination
func (s *UserService) ListUsers(ctx context.Context, role string, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	if role != "" {
		if _, err := domain.ParseRole(role); err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	users, total, err := s.userRepo.List(ctx, role, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	return responses, pagination.NewMeta(params, total), nil
}

// ChangePassword verifies the old password and replaces it
func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}
	if !password.ValidatePassword(newPassword) {
		return domain.ErrInvalidInput
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user ID: %d", userID)
	return nil
}

// SetUserStatus activates or suspends an account
func (s *UserService) SetUserStatus(ctx context.Context, userID uint, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusInactive && status != models.UserStatusSuspended {
		return domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ User %d status set to %s", userID, status)
	return nil
}

// ListPlans lists the active membership plans
func (s *UserService) ListPlans(ctx context.Context) ([]*models.MembershipPlan, error) {
	return s.planRepo.List(ctx)
}
