package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Testimonial is a client video testimonial shown in the site carousel
type Testimonial struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Designation string    `json:"designation" gorm:"type:varchar(255);not null"`
	VideoURL    string    `json:"videoUrl" gorm:"type:text;not null"`
	MediaID     string    `json:"mediaId" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate hook will be called before creating a new Testimonial record
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

// BeforeSave rejects records that break the schema
func (t *Testimonial) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// Validate checks that every required field is present
func (t *Testimonial) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(t.Name) == "" {
		verr.Add("name", "Testimonial name is required.")
	}
	if strings.TrimSpace(t.Designation) == "" {
		verr.Add("designation", "Testimonial designation is required.")
	}
	if t.VideoURL == "" {
		verr.Add("videoUrl", "Testimonial video URL is required.")
	}
	if t.MediaID == "" {
		verr.Add("mediaId", "Media id is required for video management.")
	}
	return verr.OrNil()
}
