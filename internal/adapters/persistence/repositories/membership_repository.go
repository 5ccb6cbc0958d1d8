package repositories

import (
	"context"
	"time"

	"fitconnect/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// membershipPlanRepository implements MembershipPlanRepository interface
type membershipPlanRepository struct {
	db *gorm.DB
}

// NewMembershipPlanRepository creates a new membership plan repository
func NewMembershipPlanRepository(db *gorm.DB) MembershipPlanRepository {
	return &membershipPlanRepository{db: db}
}

// GetByCode gets a membership plan by code
func (r *membershipPlanRepository) GetByCode(ctx context.Context, code string) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).Where("code = ? AND is_active = ?", code, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List lists active membership plans
func (r *membershipPlanRepository) List(ctx context.Context) ([]*models.MembershipPlan, error) {
	var plans []*models.MembershipPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("duration_months ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// membershipRepository implements MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create creates a new membership
func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// HasActiveOn checks whether a member holds an ACTIVE membership covering
// the given date
func (r *membershipRepository) HasActiveOn(ctx context.Context, memberID uint, on time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Membership{}).
		Where("member_id = ? AND status = ? AND end_date >= ?",
			memberID, models.MembershipStatusActive, on.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

// ExpireOverdue marks ACTIVE memberships whose end_date has passed as EXPIRED
// and returns how many rows changed
func (r *membershipRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Membership{}).
		Where("status = ? AND end_date < ?", models.MembershipStatusActive, now.Format("2006-01-02")).
		Update("status", models.MembershipStatusExpired)
	return result.RowsAffected, result.Error
}

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
