package editor

import (
	"encoding/json"
	"fmt"

	"backend/models"
)

// ExportJSON serializes {title, generalNotes, meals} as a downloadable
// artifact. The output round-trips through ImportJSON with identical IDs,
// order and content.
func (d *Document) ExportJSON() ([]byte, error) {
	if d.Meals == nil {
		d.Meals = []models.MealData{}
	}
	return json.MarshalIndent(d, "", "  ")
}

// ImportJSON restores a document previously produced by ExportJSON. It only
// accepts the matching JSON shape, not the CSV format.
func ImportJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse document json: %w", err)
	}
	if d.Meals == nil {
		d.Meals = []models.MealData{}
	}
	for i := range d.Meals {
		if d.Meals[i].Items == nil {
			d.Meals[i].Items = []models.MealItemData{}
		}
	}
	return &d, nil
}
