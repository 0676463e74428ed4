package services

import (
	"fmt"
	"strings"
	"time"

	"backend/config"
	"backend/models"
)

type PatientInput struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email"`
	BirthDate     string  `json:"birth_date"` // YYYY-MM-DD
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
	Intolerances  string  `json:"intolerances"`
	Notes         string  `json:"notes"`
}

// AnamnesisInput is the follow-up questionnaire a patient may submit for
// their own record.
type AnamnesisInput struct {
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
	Intolerances  string  `json:"intolerances"`
	Notes         string  `json:"notes"`
}

// PatientForActor loads a patient and enforces who may touch it: the owning
// nutritionist, the linked patient account, or an admin.
func PatientForActor(actor *models.User, patientID uint) (*models.Patient, error) {
	var p models.Patient
	if err := config.DB.First(&p, patientID).Error; err != nil {
		return nil, fmt.Errorf("%w: patient", ErrNotFound)
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleNutritionist:
		if p.OwnerID != actor.ID {
			return nil, fmt.Errorf("%w: patient belongs to another practice", ErrForbidden)
		}
	case models.RolePatient:
		if p.UserID == nil || *p.UserID != actor.ID {
			return nil, fmt.Errorf("%w: not your record", ErrForbidden)
		}
	default:
		return nil, ErrForbidden
	}
	return &p, nil
}

func CreatePatient(owner *models.User, input PatientInput) (*models.Patient, error) {
	p := models.Patient{
		OwnerID:       owner.ID,
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.TrimSpace(input.Email),
		Sex:           input.Sex,
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		Goal:          input.Goal,
		ActivityLevel: input.ActivityLevel,
		Intolerances:  input.Intolerances,
		Notes:         input.Notes,
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrValidation)
		}
		p.BirthDate = bd
	}

	if err := config.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func ListPatients(owner *models.User) ([]models.Patient, error) {
	var patients []models.Patient
	q := config.DB.Order("name ASC")
	if owner.Role != models.RoleAdmin {
		q = q.Where("owner_id = ?", owner.ID)
	}
	err := q.Find(&patients).Error
	return patients, err
}

func UpdatePatient(actor *models.User, patientID uint, input PatientInput) (*models.Patient, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: patients update via anamnesis only", ErrForbidden)
	}
	p, err := PatientForActor(actor, patientID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		p.Name = strings.TrimSpace(input.Name)
	}
	if input.Email != "" {
		p.Email = strings.TrimSpace(input.Email)
	}
	if input.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrValidation)
		}
		p.BirthDate = bd
	}
	if input.Sex != "" {
		p.Sex = input.Sex
	}
	if input.HeightCm > 0 {
		p.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		p.WeightKg = input.WeightKg
	}
	if input.Goal != "" {
		p.Goal = input.Goal
	}
	if input.ActivityLevel != "" {
		p.ActivityLevel = input.ActivityLevel
	}
	if input.Intolerances != "" {
		p.Intolerances = input.Intolerances
	}
	if input.Notes != "" {
		p.Notes = input.Notes
	}

	if err := config.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// SubmitAnamnesis lets the patient (or their nutritionist) refresh the
// intake questionnaire fields of the record.
func SubmitAnamnesis(actor *models.User, patientID uint, input AnamnesisInput) (*models.Patient, error) {
	p, err := PatientForActor(actor, patientID)
	if err != nil {
		return nil, err
	}

	if input.HeightCm > 0 {
		p.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		p.WeightKg = input.WeightKg
	}
	if input.Goal != "" {
		p.Goal = input.Goal
	}
	if input.ActivityLevel != "" {
		p.ActivityLevel = input.ActivityLevel
	}
	if input.Intolerances != "" {
		p.Intolerances = input.Intolerances
	}
	if input.Notes != "" {
		p.Notes = input.Notes
	}

	if err := config.DB.Save(p).Error; err != nil {
		return nil, err
	}
	RecordActivity(actor.ID, "anamnesis")
	return p, nil
}

// DeletePatient removes a patient record, but only when nothing references
// it. The error lists every blocking dependency so the UI can explain why.
func DeletePatient(actor *models.User, patientID uint) error {
	if actor.Role == models.RolePatient {
		return fmt.Errorf("%w: patients cannot delete records", ErrForbidden)
	}
	p, err := PatientForActor(actor, patientID)
	if err != nil {
		return err
	}

	var blockers []string
	var n int64
	config.DB.Model(&models.Prescription{}).Where("patient_id = ?", p.ID).Count(&n)
	if n > 0 {
		blockers = append(blockers, fmt.Sprintf("%d prescription(s)", n))
	}
	config.DB.Model(&models.Subscription{}).Where("patient_id = ?", p.ID).Count(&n)
	if n > 0 {
		blockers = append(blockers, fmt.Sprintf("%d subscription(s)", n))
	}
	config.DB.Model(&models.Invitation{}).
		Where("patient_id = ? AND status = ?", p.ID, models.InvitationPending).
		Count(&n)
	if n > 0 {
		blockers = append(blockers, fmt.Sprintf("%d pending invitation(s)", n))
	}
	if len(blockers) > 0 {
		return fmt.Errorf("%w: %s", ErrDependency, strings.Join(blockers, ", "))
	}

	return config.DB.Delete(p).Error
}
