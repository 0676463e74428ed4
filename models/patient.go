package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient is a practice-managed record. UserID stays nil until the person
// completes self-registration through an invitation.
type Patient struct {
	gorm.Model
	OwnerID uint  `gorm:"index;not null"` // FK → users.id (nutritionist)
	UserID  *uint `gorm:"index"`          // FK → users.id (linked account, nullable)

	Name      string `gorm:"not null"`
	Email     string `gorm:"index"`
	BirthDate time.Time
	Sex       string `gorm:"type:varchar(20)"`

	// Anamnesis
	HeightCm      float64
	WeightKg      float64
	Goal          string // e.g. "emagrecimento", "hipertrofia"
	ActivityLevel string // sedentary|light|moderate|intense
	Intolerances  string // comma-sep
	Notes         string `gorm:"type:text"`
}
