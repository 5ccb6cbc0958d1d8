package repositories

import (
	"context"

	"fitconnect/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// trainerRepository implements TrainerRepository interface
type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository creates a new trainer repository
func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

// Create creates a new trainer profile
func (r *trainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

// GetByID gets a trainer by profile ID
func (r *trainerRepository) GetByID(ctx context.Context, id uint) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

// GetByUserID gets a trainer by its users-table ID. Trainer profile ids and
// user ids are distinct sequences; this is the only supported mapping.
func (r *trainerRepository) GetByUserID(ctx context.Context, userID uint) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

// ListActive lists ACTIVE trainers ordered by full name
func (r *trainerRepository) ListActive(ctx context.Context) ([]*models.Trainer, error) {
	var trainers []*models.Trainer
	err := r.db.WithContext(ctx).
		Where("status = ?", "ACTIVE").
		Order("full_name ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}
