package services

import (
	"fmt"
	"time"

	"backend/config"
	"backend/models"
)

type PrescriptionService struct{}

func NewPrescriptionService() *PrescriptionService {
	return &PrescriptionService{}
}

// PrescriptionInput is the whole-document save payload. The client editor
// holds the authoritative in-memory copy and submits it wholesale; partial
// meal trees are never merged.
type PrescriptionInput struct {
	Title        string            `json:"title"`
	GeneralNotes string            `json:"generalNotes"`
	Meals        []models.MealData `json:"meals"`
}

func (s *PrescriptionService) Create(actor *models.User, patientID uint, title string) (*models.Prescription, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: only nutritionists author prescriptions", ErrForbidden)
	}
	p, err := PatientForActor(actor, patientID)
	if err != nil {
		return nil, err
	}

	meals, err := models.EncodeMeals(nil)
	if err != nil {
		return nil, err
	}
	rx := models.Prescription{
		PatientID: p.ID,
		AuthorID:  actor.ID,
		Title:     title,
		Status:    models.PrescriptionDraft,
		Meals:     meals,
	}
	if err := config.DB.Create(&rx).Error; err != nil {
		return nil, err
	}
	return &rx, nil
}

func (s *PrescriptionService) Get(actor *models.User, id uint) (*models.Prescription, error) {
	var rx models.Prescription
	if err := config.DB.First(&rx, id).Error; err != nil {
		return nil, fmt.Errorf("%w: prescription", ErrNotFound)
	}
	if _, err := PatientForActor(actor, rx.PatientID); err != nil {
		return nil, err
	}
	// Drafts are the nutritionist's working copies; patients only ever see
	// published plans.
	if actor.Role == models.RolePatient && rx.Status != models.PrescriptionPublished {
		return nil, fmt.Errorf("%w: prescription", ErrNotFound)
	}
	return &rx, nil
}

func (s *PrescriptionService) ListByPatient(actor *models.User, patientID uint) ([]models.Prescription, error) {
	if _, err := PatientForActor(actor, patientID); err != nil {
		return nil, err
	}
	var list []models.Prescription
	q := config.DB.
		Where("patient_id = ?", patientID).
		Order("created_at DESC")
	if actor.Role == models.RolePatient {
		q = q.Where("status = ?", models.PrescriptionPublished)
	}
	err := q.Find(&list).Error
	return list, err
}

// Update replaces title, general notes and the full meal tree atomically.
func (s *PrescriptionService) Update(actor *models.User, id uint, input PrescriptionInput) (*models.Prescription, error) {
	rx, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}

	meals, err := models.EncodeMeals(input.Meals)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed meals document", ErrValidation)
	}
	rx.Title = input.Title
	rx.GeneralNotes = input.GeneralNotes
	rx.Meals = meals

	if err := config.DB.Save(rx).Error; err != nil {
		return nil, err
	}
	return rx, nil
}

// Publish moves a draft to published, stamping PublishedAt and the optional
// expiry. Publishing twice is a conflict, not a restamp.
func (s *PrescriptionService) Publish(actor *models.User, id uint, expiresAt *time.Time) (*models.Prescription, error) {
	rx, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}
	if rx.Status == models.PrescriptionPublished {
		return nil, fmt.Errorf("%w: already published", ErrConflict)
	}

	now := time.Now()
	rx.Status = models.PrescriptionPublished
	rx.PublishedAt = &now
	rx.ExpiresAt = expiresAt

	if err := config.DB.Save(rx).Error; err != nil {
		return nil, err
	}
	return rx, nil
}

// Duplicate deep-copies a prescription into a fresh draft. Every meal and
// item ID is regenerated so the copy and the source can be edited side by
// side without sharing identities.
func (s *PrescriptionService) Duplicate(actor *models.User, id uint, newTitle string) (*models.Prescription, error) {
	rx, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}

	meals, err := models.DecodeMeals(rx.Meals)
	if err != nil {
		return nil, err
	}
	encoded, err := models.EncodeMeals(models.CloneMeals(meals, true))
	if err != nil {
		return nil, err
	}

	dup := models.Prescription{
		PatientID:    rx.PatientID,
		AuthorID:     actor.ID,
		Title:        newTitle,
		GeneralNotes: rx.GeneralNotes,
		Status:       models.PrescriptionDraft,
		Meals:        encoded,
	}
	if err := config.DB.Create(&dup).Error; err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *PrescriptionService) GetLatestPublished(actor *models.User, patientID uint) (*models.Prescription, error) {
	if _, err := PatientForActor(actor, patientID); err != nil {
		return nil, err
	}
	var rx models.Prescription
	err := config.DB.
		Where("patient_id = ? AND status = ?", patientID, models.PrescriptionPublished).
		Order("published_at DESC").
		First(&rx).Error
	if err != nil {
		return nil, fmt.Errorf("%w: no published prescription", ErrNotFound)
	}
	return &rx, nil
}

// Delete removes a draft. Published prescriptions are protected.
func (s *PrescriptionService) Delete(actor *models.User, id uint) error {
	rx, err := s.editable(actor, id)
	if err != nil {
		return err
	}
	if rx.Status == models.PrescriptionPublished {
		return fmt.Errorf("%w: published prescriptions cannot be deleted", ErrForbidden)
	}

	if err := config.DB.Where("prescription_id = ?", rx.ID).Delete(&models.DiaryEntry{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(rx).Error
}

// editable loads a prescription for a mutating operation: nutritionist or
// admin only, scoped to the owning practice.
func (s *PrescriptionService) editable(actor *models.User, id uint) (*models.Prescription, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: read-only access", ErrForbidden)
	}
	var rx models.Prescription
	if err := config.DB.First(&rx, id).Error; err != nil {
		return nil, fmt.Errorf("%w: prescription", ErrNotFound)
	}
	if _, err := PatientForActor(actor, rx.PatientID); err != nil {
		return nil, err
	}
	return &rx, nil
}
