package services

import (
	"fmt"
	"time"

	"backend/config"
	"backend/models"

	"github.com/xuri/excelize/v2"
)

// Report columns, in sheet order.
var reportHeader = []string{
	"ID do Paciente",
	"Nome do Paciente",
	"Email",
	"Plano",
	"Status do Plano",
	"Vencimento",
	"Último Acesso",
	"Última Atividade",
}

// BuildPatientReport assembles one row per owned patient with their latest
// subscription and latest activity ("latest wins"). The caller streams the
// workbook straight to the HTTP response.
func BuildPatientReport(actor *models.User) (*excelize.File, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: reports are for nutritionists", ErrForbidden)
	}

	patients, err := ListPatients(actor)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(1, len(reportHeader), 22); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	header := make([]interface{}, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = excelize.Cell{StyleID: boldStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i, p := range patients {
		plan, status, due := latestSubscription(p.ID)
		lastAccess, lastActivity := latestUserActivity(p.UserID)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			p.ID, p.Name, p.Email,
			plan, status, due,
			lastAccess, lastActivity,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}
	return f, nil
}

func latestSubscription(patientID uint) (plan, status, due string) {
	var sub models.Subscription
	err := config.DB.
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return "-", "-", "-"
	}
	due = "-"
	if sub.ExpiresAt != nil {
		due = sub.ExpiresAt.Format("02/01/2006")
	}
	return sub.PlanType, sub.Status, due
}

func latestUserActivity(userID *uint) (lastAccess, lastActivity string) {
	lastAccess, lastActivity = "-", "-"
	if userID == nil {
		return
	}

	var login models.ActivityLog
	err := config.DB.
		Where("user_id = ? AND action = ?", *userID, "login").
		Order("created_at DESC").
		First(&login).Error
	if err == nil {
		lastAccess = login.CreatedAt.Format("02/01/2006 15:04")
	}

	if action, at, ok := LatestActivity(*userID); ok {
		lastActivity = fmt.Sprintf("%s (%s)", action, at.Format("02/01/2006 15:04"))
	}
	return
}

// ReportFilename stamps the export date into the download name.
func ReportFilename() string {
	return fmt.Sprintf("pacientes-%s.xlsx", time.Now().Format("2006-01-02"))
}
