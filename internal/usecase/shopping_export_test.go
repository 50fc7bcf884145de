package usecase

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thermochef/backend/internal/domain"
)

func exportEntries() []domain.ShoppingEntry {
	return []domain.ShoppingEntry{
		{NormalizedName: "milk", Amount: 3, Unit: "cup", Category: "Dairy & Eggs", SourceRecipes: []string{"Pancakes", "Soup"}},
		{NormalizedName: "onion", Amount: 4, Unit: "piece", Category: "Produce", SourceRecipes: []string{"Salad"}},
		{NormalizedName: "tomato", Amount: 1200, Unit: "g", Category: "Produce", SourceRecipes: []string{"Salad", "Soup"}},
	}
}

func TestExportShoppingList_JSON(t *testing.T) {
	for _, format := range []string{"json", "", " JSON "} {
		t.Run(format, func(t *testing.T) {
			export, err := ExportShoppingList("Week 42", exportEntries(), format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if export.ContentType != "application/json" || export.Extension != ExportJSON {
				t.Errorf("ContentType = %q, Extension = %q", export.ContentType, export.Extension)
			}

			var decoded struct {
				Name    string                 `json:"name"`
				Entries []domain.ShoppingEntry `json:"entries"`
			}
			if err := json.Unmarshal(export.Body, &decoded); err != nil {
				t.Fatalf("body is not valid json: %v", err)
			}
			if decoded.Name != "Week 42" || len(decoded.Entries) != 3 {
				t.Errorf("decoded = %+v", decoded)
			}
		})
	}
}

func TestExportShoppingList_Text(t *testing.T) {
	export, err := ExportShoppingList("", exportEntries(), ExportText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(export.ContentType, "text/plain") {
		t.Errorf("ContentType = %q", export.ContentType)
	}

	expected := `Shopping List
=============

Dairy & Eggs:
-------------
[ ] milk (3 cup) - from Pancakes, Soup

Produce:
--------
[ ] onion (4 piece) - from Salad
[ ] tomato (1200 g) - from Salad, Soup

Total items: 3
`
	if got := string(export.Body); got != expected {
		t.Errorf("text export mismatch:\n%s\nwant:\n%s", got, expected)
	}
}

func TestExportShoppingList_CSV(t *testing.T) {
	export, err := ExportShoppingList("ignored", exportEntries(), ExportCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ContentType != "text/csv" {
		t.Errorf("ContentType = %q", export.ContentType)
	}

	records, err := csv.NewReader(strings.NewReader(string(export.Body))).ReadAll()
	if err != nil {
		t.Fatalf("body is not valid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3", len(records))
	}
	if strings.Join(records[0], ",") != "Category,Item,Amount,Unit,Recipes" {
		t.Errorf("header = %v", records[0])
	}
	if strings.Join(records[1], "|") != "Dairy & Eggs|milk|3|cup|Pancakes; Soup" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestExportShoppingList_UnsupportedFormat(t *testing.T) {
	_, err := ExportShoppingList("x", exportEntries(), "pdf")
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
