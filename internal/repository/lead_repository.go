package repository

import (
	"context"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeadRepository stores leads captured by the WhatsApp webhook
type LeadRepository struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// NewLeadRepository creates a lead repository on db
func NewLeadRepository(db *gorm.DB, metrics *prometheus.Metrics) *LeadRepository {
	return &LeadRepository{db: db, metrics: metrics}
}

// Upsert stores lead, or when a lead with the same phone hash already
// exists refreshes its name, last message and updatedAt. On success lead
// holds the stored row, including the id of an existing lead.
func (r *LeadRepository) Upsert(ctx context.Context, lead *model.Lead) error {
	defer r.metrics.TrackDBOperation("lead_upsert")(time.Now())

	now := time.Now()
	if lead.UpdatedAt.IsZero() {
		lead.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "last_message", "updated_at"}),
	}).Create(lead).Error
	if err != nil {
		return translate("upsert lead", err)
	}

	var stored model.Lead
	if err := r.db.WithContext(ctx).First(&stored, "phone_number_hash = ?", lead.PhoneNumberHash).Error; err != nil {
		return translate("reload lead", err)
	}
	*lead = stored
	return nil
}

// FindByPhoneHash returns the lead for a phone number hash or ErrNotFound
func (r *LeadRepository) FindByPhoneHash(ctx context.Context, hash string) (*model.Lead, error) {
	defer r.metrics.TrackDBOperation("lead_select")(time.Now())

	var lead model.Lead
	if err := r.db.WithContext(ctx).First(&lead, "phone_number_hash = ?", hash).Error; err != nil {
		return nil, translate("find lead", err)
	}
	return &lead, nil
}
