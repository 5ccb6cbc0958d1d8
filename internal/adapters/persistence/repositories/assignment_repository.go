package repositories

import (
	"context"
	"errors"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// assignmentRepository implements AssignmentRepository interface
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// ActiveByMember returns the member's ACTIVE assignment, or nil when none exists
func (r *assignmentRepository) ActiveByMember(ctx context.Context, memberID uint) (*models.TrainerAssignment, error) {
	var assignment models.TrainerAssignment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, models.AssignmentStatusActive).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// Assign replaces the member's ACTIVE assignment with a new one.
// The active-row read takes a row lock so two concurrent reassignments for the
// same member serialize instead of both inserting; the supersede and the insert
// commit together or not at all.
func (r *assignmentRepository) Assign(ctx context.Context, trainerID, memberID uint, assignedDate time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.TrainerAssignment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("member_id = ? AND status = ?", memberID, models.AssignmentStatusActive).
			First(&current).Error

		switch {
		case err == nil:
			if current.TrainerID == trainerID {
				return domain.ErrAlreadyAssigned
			}
			if err := tx.Model(&models.TrainerAssignment{}).
				Where("member_id = ? AND status = ?", memberID, models.AssignmentStatusActive).
				Update("status", models.AssignmentStatusCompleted).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first assignment for this member
		default:
			return err
		}

		assignment := &models.TrainerAssignment{
			MemberID:     memberID,
			TrainerID:    trainerID,
			AssignedDate: assignedDate,
			Status:       models.AssignmentStatusActive,
		}
		return tx.Create(assignment).Error
	})
}

// CountActiveByTrainer counts ACTIVE assignments for a trainer
func (r *assignmentRepository) CountActiveByTrainer(ctx context.Context, trainerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TrainerAssignment{}).
		Where("trainer_id = ? AND status = ?", trainerID, models.AssignmentStatusActive).
		Count(&count).Error
	return count, err
}

// ListActiveByTrainer lists a trainer's ACTIVE assignments with member profiles,
// most recently assigned first
func (r *assignmentRepository) ListActiveByTrainer(ctx context.Context, trainerID uint) ([]*models.TrainerAssignment, error) {
	var assignments []*models.TrainerAssignment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Member.User").
		Where("trainer_id = ? AND status = ?", trainerID, models.AssignmentStatusActive).
		Order("assigned_date DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
