package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Trainer is a coach shown on the public trainer showcase
type Trainer struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FullName        string     `json:"fullName" gorm:"type:varchar(255);not null"`
	ProfilePicture  string     `json:"profilePicture,omitempty" gorm:"type:text"`
	MediaID         string     `json:"mediaId,omitempty" gorm:"type:varchar(255)"`
	Location        string     `json:"location,omitempty" gorm:"type:varchar(255)"`
	Experience      string     `json:"experience,omitempty" gorm:"type:varchar(255)"`
	Specializations StringList `json:"specializations"`
	Qualifications  StringList `json:"qualifications"`
	Philosophy      string     `json:"philosophy,omitempty" gorm:"type:text"`
	CorePrinciples  StringList `json:"corePrinciples"`
	Services        StringList `json:"services"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BeforeCreate hook will be called before creating a new Trainer record
func (t *Trainer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

// BeforeSave rejects records that break the schema
func (t *Trainer) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// Validate checks required fields and the picture/media pairing
func (t *Trainer) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(t.FullName) == "" {
		verr.Add("fullName", "Trainer full name is required.")
	}
	if (t.MediaID == "") != (t.ProfilePicture == "") {
		verr.Add("profilePicture", "Profile picture URL and media id must be set together.")
	}
	return verr.OrNil()
}

// HasMedia reports whether the trainer owns a media asset
func (t *Trainer) HasMedia() bool {
	return t.MediaID != ""
}
