package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/google/uuid"
)

const invitationTTL = 14 * 24 * time.Hour

// CreateInvitation mints a single-use registration token for a prospective
// patient and mails it. When patientID is set the accepted registration
// links to that pre-created record instead of creating a new one.
func CreateInvitation(actor *models.User, email string, patientID *uint) (*models.Invitation, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: only nutritionists invite patients", ErrForbidden)
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if patientID != nil {
		if _, err := PatientForActor(actor, *patientID); err != nil {
			return nil, err
		}
	}

	inv := models.Invitation{
		Token:          uuid.NewString(),
		NutritionistID: actor.ID,
		PatientID:      patientID,
		Email:          email,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := config.DB.Create(&inv).Error; err != nil {
		return nil, err
	}

	// Mail is best effort; the nutritionist can still share the link by hand.
	if err := utils.SendInvitationEmail(email, actor.Name, inv.Token); err != nil {
		log.Printf("invitation mail to %s failed: %v", email, err)
	}
	return &inv, nil
}

type AcceptInvitationInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AcceptInvitation consumes a pending token: it creates the patient's user
// account, links (or creates) the patient record and marks the invitation
// accepted. A token is valid for exactly one successful registration.
func AcceptInvitation(token string, input AcceptInvitationInput) (*models.User, *models.Patient, error) {
	var inv models.Invitation
	if err := config.DB.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: invitation", ErrNotFound)
	}
	if inv.Status != models.InvitationPending {
		return nil, nil, fmt.Errorf("%w: invitation already used", ErrConflict)
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, nil, fmt.Errorf("%w: invitation expired", ErrForbidden)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}
	user := models.User{
		Email:    inv.Email,
		Password: hashed,
		Name:     input.Name,
		Role:     models.RolePatient,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		var existing models.User
		if config.DB.Where("email = ?", inv.Email).First(&existing).Error == nil {
			return nil, nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, nil, err
	}

	var patient models.Patient
	if inv.PatientID != nil {
		if err := config.DB.First(&patient, *inv.PatientID).Error; err != nil {
			return nil, nil, fmt.Errorf("%w: invited patient record", ErrNotFound)
		}
	} else {
		patient = models.Patient{
			OwnerID: inv.NutritionistID,
			Name:    input.Name,
			Email:   inv.Email,
		}
		if err := config.DB.Create(&patient).Error; err != nil {
			return nil, nil, err
		}
	}
	patient.UserID = &user.ID
	if err := config.DB.Save(&patient).Error; err != nil {
		return nil, nil, err
	}

	now := time.Now()
	inv.Status = models.InvitationAccepted
	inv.AcceptedAt = &now
	if err := config.DB.Save(&inv).Error; err != nil {
		return nil, nil, err
	}

	return &user, &patient, nil
}

func ListInvitations(actor *models.User) ([]models.Invitation, error) {
	if actor.Role == models.RolePatient {
		return nil, ErrForbidden
	}
	var list []models.Invitation
	q := config.DB.Order("created_at DESC")
	if actor.Role != models.RoleAdmin {
		q = q.Where("nutritionist_id = ?", actor.ID)
	}
	err := q.Find(&list).Error
	return list, err
}
