package models

import (
	"gorm.io/gorm"
)

const (
	RoleNutritionist = "nutritionist"
	RolePatient      = "patient"
	RoleAdmin        = "admin"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string
	Role     string `gorm:"type:varchar(20);not null;default:'patient';index"`
}
