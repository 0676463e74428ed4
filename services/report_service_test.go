package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"backend/config"
	"backend/models"

	"github.com/xuri/excelize/v2"
)

// The stream writer's cells are only readable after a full round-trip
// through the file format.
func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	r, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	return r
}

func TestPatientReportRows(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")
	patient := seedPatient(t, nutri, "joao")
	account := seedPatientUser(t, patient)
	seedPatient(t, nutri, "zilda") // no subscription, no account link

	if _, err := RequestSubscription(nutri, patient.ID, models.PlanFree); err != nil {
		t.Fatalf("RequestSubscription: %v", err)
	}
	RecordActivity(account.ID, "login")
	// Push the login into the past so the diary entry is unambiguously newer.
	config.DB.Model(&models.ActivityLog{}).
		Where("user_id = ? AND action = ?", account.ID, "login").
		Update("created_at", time.Now().Add(-time.Hour))
	RecordActivity(account.ID, "diary_entry")

	f, err := BuildPatientReport(nutri)
	if err != nil {
		t.Fatalf("BuildPatientReport: %v", err)
	}
	r := reopen(t, f)

	for i, want := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		got, err := r.GetCellValue("Sheet1", cell)
		if err != nil {
			t.Fatalf("GetCellValue %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}

	// Patients sort by name, so joao is row 2 and zilda row 3.
	name, _ := r.GetCellValue("Sheet1", "B2")
	if name != "joao" {
		t.Errorf("B2 = %q, want joao", name)
	}
	plan, _ := r.GetCellValue("Sheet1", "D2")
	if plan != models.PlanFree {
		t.Errorf("D2 = %q, want %q", plan, models.PlanFree)
	}
	lastActivity, _ := r.GetCellValue("Sheet1", "H2")
	if !strings.Contains(lastActivity, "diary_entry") {
		t.Errorf("H2 = %q, want the latest action", lastActivity)
	}
	lastAccess, _ := r.GetCellValue("Sheet1", "G2")
	if lastAccess == "-" || lastAccess == "" {
		t.Errorf("G2 = %q, want a login timestamp", lastAccess)
	}

	// The unlinked patient shows placeholders.
	for _, cell := range []string{"D3", "E3", "F3", "G3", "H3"} {
		got, _ := r.GetCellValue("Sheet1", cell)
		if got != "-" {
			t.Errorf("%s = %q, want -", cell, got)
		}
	}
}

func TestPatientReportScopedToOwner(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")
	other := seedNutritionist(t, "bia@clinic.com")
	seedPatient(t, nutri, "joao")

	f, err := BuildPatientReport(other)
	if err != nil {
		t.Fatalf("BuildPatientReport: %v", err)
	}
	r := reopen(t, f)
	got, _ := r.GetCellValue("Sheet1", "B2")
	if got != "" {
		t.Errorf("foreign report has row %q, want none", got)
	}
}

func TestPatientReportForbiddenForPatients(t *testing.T) {
	setupTestDB(t)
	nutri := seedNutritionist(t, "ana@clinic.com")
	patient := seedPatient(t, nutri, "joao")
	account := seedPatientUser(t, patient)

	if _, err := BuildPatientReport(account); !errors.Is(err, ErrForbidden) {
		t.Errorf("patient report = %v, want ErrForbidden", err)
	}
}

func TestReportFilenameCarriesDate(t *testing.T) {
	name := ReportFilename()
	if !strings.HasPrefix(name, "pacientes-") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("filename = %q", name)
	}
}
