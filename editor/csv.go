package editor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"backend/models"
)

// CSV import format: header row plus
// Refeicao,ItemPrincipal,Quantidade,Substitutos,ObservacoesRefeicao
// with substitutes pipe-delimited. Rows are grouped into meals by the
// Refeicao column, in first-seen order. Any row with fewer than five
// columns aborts the whole import.
const csvColumns = 5

// ImportCSV parses the text and replaces the entire meal tree of the
// document. All meal and item IDs are freshly generated.
func (d *Document) ImportCSV(text string) error {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // column count checked per row below
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("csv is empty")
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < csvColumns {
		return fmt.Errorf("csv header: expected %d columns, got %d", csvColumns, len(header))
	}

	var meals []models.MealData
	byName := map[string]int{} // meal name to index into meals
	rowNum := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return fmt.Errorf("csv row %d: %w", rowNum, err)
		}
		if len(rec) < csvColumns {
			return fmt.Errorf("csv row %d: expected %d columns, got %d", rowNum, csvColumns, len(rec))
		}

		mealName := strings.TrimSpace(rec[0])
		idx, ok := byName[mealName]
		if !ok {
			meals = append(meals, models.MealData{
				ID:    models.NewMealID(),
				Name:  mealName,
				Items: []models.MealItemData{},
			})
			idx = len(meals) - 1
			byName[mealName] = idx
		}

		// First non-empty observation wins as the meal note.
		if notes := strings.TrimSpace(rec[4]); notes != "" && meals[idx].Notes == "" {
			meals[idx].Notes = notes
		}

		meals[idx].Items = append(meals[idx].Items, models.MealItemData{
			ID:          models.NewMealID(),
			Description: strings.TrimSpace(rec[1]),
			Amount:      strings.TrimSpace(rec[2]),
			Substitutes: splitSubstitutes(rec[3]),
		})
	}

	if meals == nil {
		meals = []models.MealData{}
	}
	d.Meals = meals
	return nil
}

// splitSubstitutes keeps the pipe order as written in the file; sorting only
// kicks in once the list is edited.
func splitSubstitutes(field string) []string {
	var out []string
	for _, s := range strings.Split(field, "|") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
