package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PrescriptionDraft     = "draft"
	PrescriptionPublished = "published"
)

// Prescription is a meal-plan document for one patient. The meal tree lives
// in a single JSONB column and is always replaced wholesale on save.
type Prescription struct {
	gorm.Model
	PatientID    uint `gorm:"index;not null"`
	AuthorID     uint `gorm:"index;not null"` // FK → users.id (nutritionist)
	Title        string
	GeneralNotes string         `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedAt  *time.Time     `gorm:"index"`
	ExpiresAt    *time.Time
	Meals        datatypes.JSON `gorm:"type:jsonb"`
}
