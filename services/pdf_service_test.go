package services

import (
	"bytes"
	"testing"
	"time"

	"backend/models"
)

func pdfFixture(t *testing.T, title string, mealCount int) (*models.Prescription, *models.Patient) {
	t.Helper()
	meals := make([]models.MealData, 0, mealCount)
	for i := 0; i < mealCount; i++ {
		meals = append(meals, models.MealData{
			ID:    models.NewMealID(),
			Name:  "Refeição",
			Notes: "Mastigar devagar",
			Items: []models.MealItemData{
				{
					ID:          models.NewMealID(),
					Description: "Arroz integral",
					Amount:      "4 colheres",
					Substitutes: []string{"Quinoa", "Batata doce"},
				},
				{ID: models.NewMealID(), Description: "Feijão", Amount: "1 concha"},
			},
		})
	}
	encoded, err := models.EncodeMeals(meals)
	if err != nil {
		t.Fatalf("EncodeMeals: %v", err)
	}
	now := time.Now()
	rx := &models.Prescription{
		Title:        title,
		GeneralNotes: "Evitar ultraprocessados",
		Status:       models.PrescriptionPublished,
		PublishedAt:  &now,
		Meals:        encoded,
	}
	return rx, &models.Patient{Name: "João da Silva"}
}

func TestBuildPrescriptionPDF(t *testing.T) {
	rx, patient := pdfFixture(t, "Plano de Verão", 3)

	data, filename, err := BuildPrescriptionPDF(rx, patient)
	if err != nil {
		t.Fatalf("BuildPrescriptionPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF: %q", data[:8])
	}
	if filename != "prescricao-plano-de-verao.pdf" {
		t.Errorf("filename = %q", filename)
	}
}

// A long plan must paginate without erroring; fpdf reports layout problems
// through Output.
func TestBuildPrescriptionPDFManyMeals(t *testing.T) {
	rx, patient := pdfFixture(t, "Plano extenso", 25)

	data, _, err := BuildPrescriptionPDF(rx, patient)
	if err != nil {
		t.Fatalf("BuildPrescriptionPDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestBuildPrescriptionPDFEmptyDocument(t *testing.T) {
	rx, patient := pdfFixture(t, "Rascunho", 0)
	rx.GeneralNotes = ""
	rx.PublishedAt = nil

	if _, _, err := BuildPrescriptionPDF(rx, patient); err != nil {
		t.Fatalf("empty prescription must still render: %v", err)
	}
}
