package editor

import (
	"reflect"
	"strings"
	"testing"

	"backend/models"
)

const sampleCSV = `Refeicao,ItemPrincipal,Quantidade,Substitutos,ObservacoesRefeicao
Café,Pão,1 fatia,Tapioca|Aveia,Leve
Café,Ovo,2 unidades,,
Almoço,Arroz,4 colheres,Batata doce|Macarrão integral,Sem sal extra
`

func TestImportCSVGroupsByMealName(t *testing.T) {
	d := NewDocument("t")
	if err := d.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	if len(d.Meals) != 2 {
		t.Fatalf("len(Meals) = %d, want 2", len(d.Meals))
	}

	cafe := d.Meals[0]
	if cafe.Name != "Café" || cafe.Notes != "Leve" {
		t.Errorf("first meal = %q / notes %q, want Café / Leve", cafe.Name, cafe.Notes)
	}
	if len(cafe.Items) != 2 {
		t.Fatalf("Café items = %d, want 2", len(cafe.Items))
	}
	pao := cafe.Items[0]
	if pao.Description != "Pão" || pao.Amount != "1 fatia" {
		t.Errorf("item = %q / %q", pao.Description, pao.Amount)
	}
	// Pipe order from the file is preserved as-is on import.
	if !reflect.DeepEqual(pao.Substitutes, []string{"Tapioca", "Aveia"}) {
		t.Errorf("substitutes = %v, want [Tapioca Aveia]", pao.Substitutes)
	}
	if cafe.Items[1].Substitutes != nil {
		t.Errorf("empty substitute column must stay nil, got %v", cafe.Items[1].Substitutes)
	}

	almoco := d.Meals[1]
	if almoco.Name != "Almoço" || len(almoco.Items) != 1 {
		t.Errorf("second meal = %q with %d items", almoco.Name, len(almoco.Items))
	}
}

func TestImportCSVAssignsIDsEverywhere(t *testing.T) {
	d := NewDocument("t")
	if err := d.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	seen := map[string]bool{}
	for _, m := range d.Meals {
		if m.ID == "" || seen[m.ID] {
			t.Fatalf("meal %q has missing/duplicate ID", m.Name)
		}
		seen[m.ID] = true
		for _, it := range m.Items {
			if it.ID == "" || seen[it.ID] {
				t.Fatalf("item %q has missing/duplicate ID", it.Description)
			}
			seen[it.ID] = true
		}
	}
}

// Importing the same CSV twice yields structurally equal trees with
// distinct IDs.
func TestImportCSVIdempotentStructure(t *testing.T) {
	a := NewDocument("t")
	b := NewDocument("t")
	if err := a.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := b.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("second import: %v", err)
	}

	if !reflect.DeepEqual(stripIDs(a.Meals), stripIDs(b.Meals)) {
		t.Fatal("two imports of the same CSV must be structurally equal")
	}
	for i := range a.Meals {
		if a.Meals[i].ID == b.Meals[i].ID {
			t.Fatal("two imports must not share meal IDs")
		}
	}
}

func TestImportCSVReplacesWholeDocument(t *testing.T) {
	d := NewDocument("t")
	d.AddMeal()
	d.AddMeal()

	if err := d.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(d.Meals) != 2 || d.Meals[0].Name != "Café" {
		t.Fatalf("import must replace prior meals, got %+v", d.Meals)
	}
}

func TestImportCSVMalformedRowAbortsWhole(t *testing.T) {
	d := NewDocument("t")
	d.AddMeal()
	before := len(d.Meals)

	bad := "Refeicao,ItemPrincipal,Quantidade,Substitutos,ObservacoesRefeicao\n" +
		"Café,Pão,1 fatia,Tapioca,Leve\n" +
		"Almoço,Arroz\n" // short row
	err := d.ImportCSV(bad)
	if err == nil {
		t.Fatal("short row must abort the import")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should point at the offending row: %v", err)
	}
	if len(d.Meals) != before {
		t.Error("failed import must leave the document untouched")
	}
}

func TestImportCSVEmptyInput(t *testing.T) {
	d := NewDocument("t")
	if err := d.ImportCSV(""); err == nil {
		t.Error("empty csv must fail")
	}
	// Header only: a valid, empty meal plan.
	if err := d.ImportCSV("Refeicao,ItemPrincipal,Quantidade,Substitutos,ObservacoesRefeicao\n"); err != nil {
		t.Fatalf("header-only csv: %v", err)
	}
	if len(d.Meals) != 0 {
		t.Errorf("header-only csv must produce zero meals, got %d", len(d.Meals))
	}
}

func stripIDs(meals []models.MealData) []models.MealData {
	out := models.CloneMeals(meals, false)
	for i := range out {
		out[i].ID = ""
		for j := range out[i].Items {
			out[i].Items[j].ID = ""
		}
	}
	return out
}
