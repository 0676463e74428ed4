package editor

import (
	"reflect"
	"testing"
)

// Export followed by import must reproduce the document exactly: same IDs,
// same order, same content.
func TestJSONExportRoundTrip(t *testing.T) {
	d := NewDocument("Plano de verão")
	d.GeneralNotes = "Beber 2L de água por dia"
	if err := d.ImportCSV(sampleCSV); err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	data, err := d.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if got.Title != d.Title || got.GeneralNotes != d.GeneralNotes {
		t.Errorf("header fields changed: %q / %q", got.Title, got.GeneralNotes)
	}
	if !reflect.DeepEqual(got.Meals, d.Meals) {
		t.Fatalf("meals did not round-trip\n got: %+v\nwant: %+v", got.Meals, d.Meals)
	}
}

func TestImportJSONRejectsGarbage(t *testing.T) {
	if _, err := ImportJSON([]byte("{not json")); err == nil {
		t.Error("malformed json must fail")
	}
}

func TestImportJSONNormalizesNilSlices(t *testing.T) {
	got, err := ImportJSON([]byte(`{"title":"x","generalNotes":"","meals":[{"id":"m1","name":"Café"}]}`))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Meals[0].Items == nil {
		t.Error("missing items must decode to an empty, non-nil list")
	}
}
