package services

import (
	"bytes"
	"fmt"

	"backend/models"
	"backend/utils"

	"github.com/go-pdf/fpdf"
)

const (
	pdfPageHeight   = 297.0 // A4 portrait, mm
	pdfBottomMargin = 20.0
	pdfLineHeight   = 6.0
)

// BuildPrescriptionPDF lays out a prescription as a paginated A4 document.
// Page breaks are forced at meal boundaries, so a meal section is never
// sliced mid-item. Returns the file bytes and the download filename
// (prescricao-<slugified-title>.pdf).
func BuildPrescriptionPDF(rx *models.Prescription, patient *models.Patient) ([]byte, string, error) {
	meals, err := models.DecodeMeals(rx.Meals)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // pt-BR accents via cp1252
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(rx.Title), "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, pdfLineHeight, tr("Paciente: "+patient.Name), "", 1, "L", false, 0, "")
	if rx.PublishedAt != nil {
		line := "Publicado em: " + rx.PublishedAt.Format("02/01/2006")
		if rx.ExpiresAt != nil {
			line += "   Válido até: " + rx.ExpiresAt.Format("02/01/2006")
		}
		pdf.CellFormat(0, pdfLineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, meal := range meals {
		ensureRoomFor(pdf, mealBlockHeight(meal))

		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(0, 8, tr(meal.Name), "", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		for _, item := range meal.Items {
			line := item.Description
			if item.Amount != "" {
				line += " - " + item.Amount
			}
			pdf.CellFormat(0, pdfLineHeight, tr("• "+line), "", 1, "L", false, 0, "")
			if len(item.Substitutes) > 0 {
				pdf.SetFont("Helvetica", "I", 9)
				subs := "Substituições: "
				for i, s := range item.Substitutes {
					if i > 0 {
						subs += ", "
					}
					subs += s
				}
				pdf.MultiCell(0, 5, tr("   "+subs), "", "L", false)
				pdf.SetFont("Helvetica", "", 11)
			}
		}
		if meal.Notes != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr("Obs.: "+meal.Notes), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.Ln(4)
	}

	if rx.GeneralNotes != "" {
		ensureRoomFor(pdf, 8+3*pdfLineHeight)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr("Observações gerais"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, pdfLineHeight, tr(rx.GeneralNotes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("prescricao-%s.pdf", utils.Slugify(rx.Title))
	return buf.Bytes(), filename, nil
}

// mealBlockHeight is a conservative estimate used only to decide whether the
// whole section still fits on the current page.
func mealBlockHeight(meal models.MealData) float64 {
	h := 8.0 // meal header
	for _, item := range meal.Items {
		h += pdfLineHeight
		if len(item.Substitutes) > 0 {
			h += 5
		}
	}
	if meal.Notes != "" {
		h += 5
	}
	return h
}

func ensureRoomFor(pdf *fpdf.Fpdf, blockHeight float64) {
	if pdf.GetY()+blockHeight > pdfPageHeight-pdfBottomMargin {
		pdf.AddPage()
	}
}
