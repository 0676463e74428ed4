package models

import (
	"time"

	"gorm.io/gorm"
)

// DiaryEntry records the photo and mood a patient logged for one meal of a
// published prescription on one day. At most one entry exists per
// (prescription, meal, date); saves upsert.
type DiaryEntry struct {
	gorm.Model
	PrescriptionID uint      `gorm:"not null;uniqueIndex:idx_diary_key"`
	MealID         string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_diary_key"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_diary_key"` // truncated to local midnight

	PhotoURL    string
	PhotoLabels string // comma-sep, from image labeling (best effort)
	MoodBefore  string `gorm:"type:varchar(30)"`
	MoodAfter   string `gorm:"type:varchar(30)"`
}
