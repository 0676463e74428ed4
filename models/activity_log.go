package models

import (
	"gorm.io/gorm"
)

// ActivityLog keeps one row per user action; the patient report reads the
// newest row per user for the "last access / last activity" columns.
type ActivityLog struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Action string `gorm:"type:varchar(50);not null"` // e.g. "login", "diary_entry"
}
