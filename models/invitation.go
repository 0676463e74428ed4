package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

// Invitation is a single-use registration token minted by a nutritionist.
type Invitation struct {
	gorm.Model
	Token          string `gorm:"uniqueIndex;not null"`
	NutritionistID uint   `gorm:"index;not null"`
	PatientID      *uint  `gorm:"index"` // pre-created patient record, if any
	Email          string `gorm:"not null"`
	Status         string `gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
}
