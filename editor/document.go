package editor

import (
	"errors"
	"fmt"

	"backend/models"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrItemNotFound = errors.New("item not found")
)

// Document is the full prescription body a client holds while editing. Every
// operation mutates it in memory only; a separate save submits the whole
// document to the server, which replaces the stored copy wholesale.
type Document struct {
	Title        string            `json:"title"`
	GeneralNotes string            `json:"generalNotes"`
	Meals        []models.MealData `json:"meals"`
}

func NewDocument(title string) *Document {
	return &Document{Title: title, Meals: []models.MealData{}}
}

// FromPrescription loads the stored document of a prescription for editing.
func FromPrescription(p *models.Prescription) (*Document, error) {
	meals, err := models.DecodeMeals(p.Meals)
	if err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	return &Document{Title: p.Title, GeneralNotes: p.GeneralNotes, Meals: meals}, nil
}

type MealPatch struct {
	Name  *string
	Notes *string
}

type ItemPatch struct {
	Description *string
	Amount      *string
}

// AddMeal appends an empty meal with a fresh ID and returns it.
func (d *Document) AddMeal() *models.MealData {
	d.Meals = append(d.Meals, models.MealData{
		ID:    models.NewMealID(),
		Items: []models.MealItemData{},
	})
	return &d.Meals[len(d.Meals)-1]
}

func (d *Document) UpdateMeal(mealID string, patch MealPatch) error {
	m := d.findMeal(mealID)
	if m == nil {
		return ErrMealNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Notes != nil {
		m.Notes = *patch.Notes
	}
	return nil
}

func (d *Document) DeleteMeal(mealID string) error {
	for i := range d.Meals {
		if d.Meals[i].ID == mealID {
			d.Meals = append(d.Meals[:i], d.Meals[i+1:]...)
			return nil
		}
	}
	return ErrMealNotFound
}

// MoveMeal splices the meal at from out and re-inserts it at to. Order is
// the only ordering signal the document carries.
func (d *Document) MoveMeal(from, to int) error {
	return spliceMove(len(d.Meals), from, to, func(i, j int) {
		m := d.Meals[i]
		d.Meals = append(d.Meals[:i], d.Meals[i+1:]...)
		rest := append([]models.MealData{m}, d.Meals[j:]...)
		d.Meals = append(d.Meals[:j], rest...)
	})
}

// AddItem appends an empty item to the given meal and returns it.
func (d *Document) AddItem(mealID string) (*models.MealItemData, error) {
	m := d.findMeal(mealID)
	if m == nil {
		return nil, ErrMealNotFound
	}
	m.Items = append(m.Items, models.MealItemData{ID: models.NewMealID()})
	return &m.Items[len(m.Items)-1], nil
}

func (d *Document) UpdateItem(mealID, itemID string, patch ItemPatch) error {
	it, err := d.findItem(mealID, itemID)
	if err != nil {
		return err
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Amount != nil {
		it.Amount = *patch.Amount
	}
	return nil
}

func (d *Document) DeleteItem(mealID, itemID string) error {
	m := d.findMeal(mealID)
	if m == nil {
		return ErrMealNotFound
	}
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (d *Document) MoveItem(mealID string, from, to int) error {
	m := d.findMeal(mealID)
	if m == nil {
		return ErrMealNotFound
	}
	return spliceMove(len(m.Items), from, to, func(i, j int) {
		it := m.Items[i]
		m.Items = append(m.Items[:i], m.Items[i+1:]...)
		rest := append([]models.MealItemData{it}, m.Items[j:]...)
		m.Items = append(m.Items[:j], rest...)
	})
}

func (d *Document) findMeal(mealID string) *models.MealData {
	for i := range d.Meals {
		if d.Meals[i].ID == mealID {
			return &d.Meals[i]
		}
	}
	return nil
}

func (d *Document) findItem(mealID, itemID string) (*models.MealItemData, error) {
	m := d.findMeal(mealID)
	if m == nil {
		return nil, ErrMealNotFound
	}
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			return &m.Items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func spliceMove(length, from, to int, move func(i, j int)) error {
	if from < 0 || from >= length || to < 0 || to >= length {
		return fmt.Errorf("move index out of range (len %d, from %d, to %d)", length, from, to)
	}
	if from != to {
		move(from, to)
	}
	return nil
}
