package services

import (
	"fmt"
	"log"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

type DiaryInput struct {
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
	PhotoBase64 string `json:"photo_base64"`
	MoodBefore  string `json:"mood_before"`
	MoodAfter   string `json:"mood_after"`
}

// UpsertDiaryEntry saves the patient's photo/mood record for one meal of a
// published prescription on one day. At most one entry exists per
// (prescription, meal, date); a second save for the same key updates it.
func UpsertDiaryEntry(actor *models.User, prescriptionID uint, mealID string, input DiaryInput) (*models.DiaryEntry, error) {
	rx := NewPrescriptionService()
	p, err := rx.Get(actor, prescriptionID)
	if err != nil {
		return nil, err
	}
	if !mealExists(p, mealID) {
		return nil, fmt.Errorf("%w: meal %s not in prescription", ErrNotFound, mealID)
	}

	day := dayStartLocal(time.Now())
	if input.Date != "" {
		d, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		day = dayStartLocal(d)
	}

	entry := models.DiaryEntry{
		PrescriptionID: p.ID,
		MealID:         mealID,
		Date:           day,
		MoodBefore:     input.MoodBefore,
		MoodAfter:      input.MoodAfter,
	}

	if input.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(input.PhotoBase64,
			fmt.Sprintf("diary-photos/%d/%s", p.ID, mealID))
		if err != nil {
			return nil, fmt.Errorf("photo upload: %w", err)
		}
		entry.PhotoURL = url

		// Labeling is best effort; the entry saves without labels on failure.
		if raw, _, err := utils.DecodeBase64Image(input.PhotoBase64); err == nil {
			if labels, err := utils.DetectFoodLabels(raw, 10); err != nil {
				log.Printf("diary photo labeling failed: %v", err)
			} else {
				entry.PhotoLabels = labels
			}
		}
	}

	// Upsert by (prescription_id, meal_id, date). Only the fields present in
	// this save overwrite; a mood-only save keeps an earlier photo.
	assign := map[string]interface{}{}
	if entry.PhotoURL != "" {
		assign["photo_url"] = entry.PhotoURL
		assign["photo_labels"] = entry.PhotoLabels
	}
	if entry.MoodBefore != "" {
		assign["mood_before"] = entry.MoodBefore
	}
	if entry.MoodAfter != "" {
		assign["mood_after"] = entry.MoodAfter
	}
	err = config.DB.
		Where("prescription_id = ? AND meal_id = ? AND date = ?", p.ID, mealID, day).
		Assign(assign).
		FirstOrCreate(&entry).Error
	if err != nil {
		return nil, err
	}

	RecordActivity(actor.ID, "diary_entry")
	return &entry, nil
}

// ListDiaryEntries returns the entries of a prescription, optionally
// limited to [from, to].
func ListDiaryEntries(actor *models.User, prescriptionID uint, from, to *time.Time) ([]models.DiaryEntry, error) {
	rx := NewPrescriptionService()
	p, err := rx.Get(actor, prescriptionID)
	if err != nil {
		return nil, err
	}

	var entries []models.DiaryEntry
	q := config.DB.
		Where("prescription_id = ?", p.ID).
		Order("date DESC")
	if from != nil && to != nil {
		q = q.Where("date >= ? AND date < ?", *from, *to)
	}
	err = q.Find(&entries).Error
	return entries, err
}

func mealExists(p *models.Prescription, mealID string) bool {
	meals, err := models.DecodeMeals(p.Meals)
	if err != nil {
		return false
	}
	for _, m := range meals {
		if m.ID == mealID {
			return true
		}
	}
	return false
}
