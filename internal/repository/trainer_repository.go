package repository

import (
	"context"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"gorm.io/gorm"
)

// TrainerRepository stores trainer records
type TrainerRepository struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// NewTrainerRepository creates a trainer repository on db
func NewTrainerRepository(db *gorm.DB, metrics *prometheus.Metrics) *TrainerRepository {
	return &TrainerRepository{db: db, metrics: metrics}
}

// Create inserts a new trainer; the id is assigned by the model hook
func (r *TrainerRepository) Create(ctx context.Context, trainer *model.Trainer) error {
	defer r.metrics.TrackDBOperation("trainer_insert")(time.Now())
	return translate("create trainer", r.db.WithContext(ctx).Create(trainer).Error)
}

// FindByID returns the trainer with the given id or ErrNotFound
func (r *TrainerRepository) FindByID(ctx context.Context, id string) (*model.Trainer, error) {
	defer r.metrics.TrackDBOperation("trainer_select")(time.Now())

	var trainer model.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, "id = ?", id).Error; err != nil {
		return nil, translate("find trainer", err)
	}
	return &trainer, nil
}

// List returns all trainers in storage order
func (r *TrainerRepository) List(ctx context.Context) ([]model.Trainer, error) {
	defer r.metrics.TrackDBOperation("trainer_list")(time.Now())

	trainers := []model.Trainer{}
	if err := r.db.WithContext(ctx).Find(&trainers).Error; err != nil {
		return nil, translate("list trainers", err)
	}
	return trainers, nil
}

// Update merges patch into the stored trainer and refreshes updatedAt
func (r *TrainerRepository) Update(ctx context.Context, id string, patch TrainerPatch) (*model.Trainer, error) {
	defer r.metrics.TrackDBOperation("trainer_update")(time.Now())

	var trainer model.Trainer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trainer, "id = ?", id).Error; err != nil {
			return err
		}

		patch.Apply(&trainer)
		trainer.UpdatedAt = time.Now()

		result := tx.Model(&trainer).Select("*").Updates(&trainer)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translate("update trainer", err)
	}
	return &trainer, nil
}

// Delete removes the trainer with the given id
func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.TrackDBOperation("trainer_delete")(time.Now())

	result := r.db.WithContext(ctx).Delete(&model.Trainer{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete trainer", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
