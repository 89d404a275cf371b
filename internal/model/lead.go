package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultLeadSource is recorded when a lead does not name its channel
const DefaultLeadSource = "WhatsApp"

// Lead is a prospect captured from an inbound WhatsApp message.
// PhoneNumberHash is the dedup key; the raw number is never stored.
type Lead struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	PhoneNumberHash   string    `json:"phoneNumberHash" gorm:"type:varchar(64);uniqueIndex;not null"`
	PhoneNumberMasked string    `json:"phoneNumberMasked" gorm:"type:varchar(32);not null"`
	LastMessage       string    `json:"lastMessage,omitempty" gorm:"type:text"`
	Source            string    `json:"source" gorm:"type:varchar(64);default:WhatsApp"`
	ReceivedAt        time.Time `json:"receivedAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BeforeCreate hook will be called before creating a new Lead record
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = newID()
	}
	if l.Source == "" {
		l.Source = DefaultLeadSource
	}
	if l.ReceivedAt.IsZero() {
		l.ReceivedAt = time.Now()
	}
	return nil
}

// BeforeSave rejects records that break the schema
func (l *Lead) BeforeSave(tx *gorm.DB) error {
	return l.Validate()
}

// Validate checks that every required field is present
func (l *Lead) Validate() error {
	verr := &ValidationError{}
	if l.Name == "" {
		verr.Add("name", "Lead name is required.")
	}
	if l.PhoneNumberHash == "" {
		verr.Add("phoneNumberHash", "Phone number hash is required.")
	}
	if l.PhoneNumberMasked == "" {
		verr.Add("phoneNumberMasked", "Masked phone number is required.")
	}
	return verr.OrNil()
}
