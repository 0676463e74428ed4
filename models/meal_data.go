package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MealData is one named, ordered group of items inside a prescription
// document. Order is insertion order and is rendered as-is. IDs are
// client-generated and unique within the document so single meals/items can
// be targeted without re-keying the tree.
type MealData struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Notes string         `json:"notes,omitempty"`
	Items []MealItemData `json:"items"`
}

type MealItemData struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      string   `json:"amount"`
	Substitutes []string `json:"substitutes,omitempty"`
}

func NewMealID() string { return uuid.NewString() }

func DecodeMeals(raw datatypes.JSON) ([]MealData, error) {
	if len(raw) == 0 {
		return []MealData{}, nil
	}
	var meals []MealData
	if err := json.Unmarshal(raw, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func EncodeMeals(meals []MealData) (datatypes.JSON, error) {
	if meals == nil {
		meals = []MealData{}
	}
	raw, err := json.Marshal(meals)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// CloneMeals returns a structurally independent copy of the tree. When
// freshIDs is true every meal and item gets a new ID, so the copy can be
// edited side by side with the original without aliasing identities.
func CloneMeals(meals []MealData, freshIDs bool) []MealData {
	out := make([]MealData, len(meals))
	for i, m := range meals {
		cm := m
		if freshIDs {
			cm.ID = NewMealID()
		}
		cm.Items = make([]MealItemData, len(m.Items))
		for j, it := range m.Items {
			ci := it
			if freshIDs {
				ci.ID = NewMealID()
			}
			if it.Substitutes != nil {
				ci.Substitutes = append([]string(nil), it.Substitutes...)
			}
			cm.Items[j] = ci
		}
		out[i] = cm
	}
	return out
}
