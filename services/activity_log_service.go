package services

import (
	"log"
	"time"

	"backend/config"
	"backend/models"
)

// RecordActivity appends one activity row for the user. Best effort: the
// calling flow never fails because logging did.
func RecordActivity(userID uint, action string) {
	if userID == 0 {
		return
	}
	entry := models.ActivityLog{UserID: userID, Action: action}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Printf("activity log write failed: %v", err)
	}
}

// LatestActivity returns the newest action and its timestamp for a user, or
// ok=false when the user never did anything.
func LatestActivity(userID uint) (action string, at time.Time, ok bool) {
	var entry models.ActivityLog
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return "", time.Time{}, false
	}
	return entry.Action, entry.CreatedAt, true
}
