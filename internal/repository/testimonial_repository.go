package repository

import (
	"context"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"gorm.io/gorm"
)

// TestimonialRepository stores testimonial records
type TestimonialRepository struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// NewTestimonialRepository creates a testimonial repository on db
func NewTestimonialRepository(db *gorm.DB, metrics *prometheus.Metrics) *TestimonialRepository {
	return &TestimonialRepository{db: db, metrics: metrics}
}

// Create inserts a new testimonial
func (r *TestimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	defer r.metrics.TrackDBOperation("testimonial_insert")(time.Now())
	return translate("create testimonial", r.db.WithContext(ctx).Create(testimonial).Error)
}

// FindByID returns the testimonial with the given id or ErrNotFound
func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*model.Testimonial, error) {
	defer r.metrics.TrackDBOperation("testimonial_select")(time.Now())

	var testimonial model.Testimonial
	if err := r.db.WithContext(ctx).First(&testimonial, "id = ?", id).Error; err != nil {
		return nil, translate("find testimonial", err)
	}
	return &testimonial, nil
}

// List returns all testimonials, newest first
func (r *TestimonialRepository) List(ctx context.Context) ([]model.Testimonial, error) {
	defer r.metrics.TrackDBOperation("testimonial_list")(time.Now())

	testimonials := []model.Testimonial{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&testimonials).Error; err != nil {
		return nil, translate("list testimonials", err)
	}
	return testimonials, nil
}

// Update merges patch into the stored testimonial and refreshes updatedAt
func (r *TestimonialRepository) Update(ctx context.Context, id string, patch TestimonialPatch) (*model.Testimonial, error) {
	defer r.metrics.TrackDBOperation("testimonial_update")(time.Now())

	var testimonial model.Testimonial
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&testimonial, "id = ?", id).Error; err != nil {
			return err
		}

		patch.Apply(&testimonial)
		testimonial.UpdatedAt = time.Now()

		result := tx.Model(&testimonial).Select("*").Updates(&testimonial)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translate("update testimonial", err)
	}
	return &testimonial, nil
}

// Delete removes the testimonial with the given id
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	defer r.metrics.TrackDBOperation("testimonial_delete")(time.Now())

	result := r.db.WithContext(ctx).Delete(&model.Testimonial{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete testimonial", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
