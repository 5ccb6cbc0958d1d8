package repositories

import (
	"context"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/session"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionStateRepository implements session.Store over the session_states
// key-value table
type sessionStateRepository struct {
	db *gorm.DB
}

// NewSessionStateRepository creates a new session state repository
func NewSessionStateRepository(db *gorm.DB) session.Store {
	return &sessionStateRepository{db: db}
}

// Save replaces the stored snapshot with the given one atomically
func (r *sessionStateRepository) Save(ctx context.Context, state map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SessionState{}).Error; err != nil {
			return err
		}
		rows := make([]models.SessionState, 0, len(state))
		for key, value := range state {
			rows = append(rows, models.SessionState{Key: key, Value: value})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

// Load returns the stored snapshot, empty when no session was saved
func (r *sessionStateRepository) Load(ctx context.Context) (map[string]string, error) {
	var rows []models.SessionState
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	state := make(map[string]string, len(rows))
	for _, row := range rows {
		state[row.Key] = row.Value
	}
	return state, nil
}

// Wipe removes every stored key
func (r *sessionStateRepository) Wipe(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SessionState{}).Error
}
