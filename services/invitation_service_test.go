package services

import (
	"errors"
	"testing"
	"time"

	"backend/config"
	"backend/models"
)

func TestInvitationIsSingleUse(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")

	inv, err := CreateInvitation(nutri, "Novo@Example.com", nil)
	if err != nil {
		t.Fatalf("CreateInvitation: %v", err)
	}
	if inv.Status != models.InvitationPending {
		t.Fatalf("Status = %q, want pending", inv.Status)
	}
	if inv.Email != "novo@example.com" {
		t.Errorf("email should be normalized, got %q", inv.Email)
	}

	user, patient, err := AcceptInvitation(inv.Token, AcceptInvitationInput{Name: "João", Password: "senhasegura"})
	if err != nil {
		t.Fatalf("AcceptInvitation: %v", err)
	}
	if user.Role != models.RolePatient {
		t.Errorf("Role = %q, want patient", user.Role)
	}
	if patient.UserID == nil || *patient.UserID != user.ID {
		t.Error("patient record must link to the new account")
	}
	if patient.OwnerID != nutri.ID {
		t.Errorf("OwnerID = %d, want inviting nutritionist %d", patient.OwnerID, nutri.ID)
	}

	// Exactly one successful registration per token.
	if _, _, err := AcceptInvitation(inv.Token, AcceptInvitationInput{Name: "Outro", Password: "senhasegura"}); !errors.Is(err, ErrConflict) {
		t.Errorf("second accept = %v, want ErrConflict", err)
	}
}

func TestAcceptInvitationLinksPreCreatedPatient(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")
	pre := seedPatient(t, nutri, "maria")

	inv, err := CreateInvitation(nutri, pre.Email, &pre.ID)
	if err != nil {
		t.Fatalf("CreateInvitation: %v", err)
	}

	_, patient, err := AcceptInvitation(inv.Token, AcceptInvitationInput{Name: "Maria", Password: "senhasegura"})
	if err != nil {
		t.Fatalf("AcceptInvitation: %v", err)
	}
	if patient.ID != pre.ID {
		t.Errorf("accepted patient = %d, want pre-created record %d", patient.ID, pre.ID)
	}
}

func TestAcceptExpiredInvitation(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")

	inv, err := CreateInvitation(nutri, "x@example.com", nil)
	if err != nil {
		t.Fatalf("CreateInvitation: %v", err)
	}
	if err := config.DB.Model(&models.Invitation{}).
		Where("id = ?", inv.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire invitation: %v", err)
	}

	if _, _, err := AcceptInvitation(inv.Token, AcceptInvitationInput{Name: "x", Password: "senhasegura"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expired accept = %v, want ErrForbidden", err)
	}
}

func TestAcceptUnknownToken(t *testing.T) {
	setupTestDB(t)
	if _, _, err := AcceptInvitation("nope", AcceptInvitationInput{Name: "x", Password: "senhasegura"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token = %v, want ErrNotFound", err)
	}
}
