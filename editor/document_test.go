package editor

import (
	"errors"
	"testing"

	"backend/models"
)

func strPtr(s string) *string { return &s }

func buildDoc(t *testing.T) (*Document, *models.MealData) {
	t.Helper()
	d := NewDocument("Plano semanal")
	m := d.AddMeal()
	if err := d.UpdateMeal(m.ID, MealPatch{Name: strPtr("Café da manhã")}); err != nil {
		t.Fatalf("UpdateMeal: %v", err)
	}
	return d, m
}

func TestAddMealAssignsFreshIDs(t *testing.T) {
	d := NewDocument("t")
	a := d.AddMeal()
	b := d.AddMeal()

	if a.ID == "" || b.ID == "" {
		t.Fatal("meals must get generated IDs")
	}
	if a.ID == b.ID {
		t.Fatalf("meal IDs must be unique, both are %s", a.ID)
	}
	if len(d.Meals) != 2 {
		t.Fatalf("len(Meals) = %d, want 2", len(d.Meals))
	}
	if d.Meals[0].Items == nil {
		t.Error("new meal must start with an empty, non-nil item list")
	}
}

func TestUpdateMealPatchesOnlyGivenFields(t *testing.T) {
	d, m := buildDoc(t)

	if err := d.UpdateMeal(m.ID, MealPatch{Notes: strPtr("em jejum")}); err != nil {
		t.Fatalf("UpdateMeal: %v", err)
	}
	if d.Meals[0].Name != "Café da manhã" {
		t.Errorf("Name = %q, patch must not touch it", d.Meals[0].Name)
	}
	if d.Meals[0].Notes != "em jejum" {
		t.Errorf("Notes = %q, want %q", d.Meals[0].Notes, "em jejum")
	}

	if err := d.UpdateMeal("missing", MealPatch{}); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("UpdateMeal(missing) = %v, want ErrMealNotFound", err)
	}
}

func TestDeleteMeal(t *testing.T) {
	d, m := buildDoc(t)
	other := d.AddMeal()

	if err := d.DeleteMeal(m.ID); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
	if len(d.Meals) != 1 || d.Meals[0].ID != other.ID {
		t.Fatalf("wrong meal deleted, remaining: %+v", d.Meals)
	}
	if err := d.DeleteMeal(m.ID); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("second delete = %v, want ErrMealNotFound", err)
	}
}

func TestMoveMealSpliceSemantics(t *testing.T) {
	d := NewDocument("t")
	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, d.AddMeal().ID)
	}

	if err := d.MoveMeal(0, 2); err != nil {
		t.Fatalf("MoveMeal: %v", err)
	}
	got := []string{d.Meals[0].ID, d.Meals[1].ID, d.Meals[2].ID, d.Meals[3].ID}
	want := []string{ids[1], ids[2], ids[0], ids[3]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveMeal(0,2) order[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if err := d.MoveMeal(0, 9); err == nil {
		t.Error("MoveMeal with out-of-range target must fail")
	}
}

func TestItemOperations(t *testing.T) {
	d, m := buildDoc(t)

	it, err := d.AddItem(m.ID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if it.ID == "" {
		t.Fatal("item must get a generated ID")
	}
	if err := d.UpdateItem(m.ID, it.ID, ItemPatch{
		Description: strPtr("Pão integral"),
		Amount:      strPtr("2 fatias"),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if d.Meals[0].Items[0].Description != "Pão integral" {
		t.Errorf("Description = %q", d.Meals[0].Items[0].Description)
	}

	second, _ := d.AddItem(m.ID)
	if err := d.MoveItem(m.ID, 1, 0); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if d.Meals[0].Items[0].ID != second.ID {
		t.Error("MoveItem(1,0) must put the second item first")
	}

	if err := d.DeleteItem(m.ID, it.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(d.Meals[0].Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(d.Meals[0].Items))
	}
	if err := d.DeleteItem(m.ID, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("DeleteItem(missing) = %v, want ErrItemNotFound", err)
	}
}
