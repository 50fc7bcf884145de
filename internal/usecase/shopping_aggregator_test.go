package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/thermochef/backend/internal/domain"
)

func newTestShoppingAggregator() *ShoppingAggregator {
	tbl := newTestTables()
	return NewShoppingAggregator(NewCategorizer(tbl), NewUnitConverter(tbl, nil), nil)
}

func shoppingSources() []domain.ShoppingSource {
	return []domain.ShoppingSource{
		{
			RecipeName:            "Tomato Soup",
			RecipeServings:        8,
			RecipeDefaultServings: 4,
			Ingredients: []domain.Quantity{
				{Amount: 500, Unit: "g", Name: "Tomatoes"},
				{Amount: 1, Unit: "piece", Name: "onion"},
				{Amount: 1, Unit: "cup", Name: "milk"},
			},
		},
		{
			RecipeName:            "Salad",
			RecipeServings:        2,
			RecipeDefaultServings: 2,
			Ingredients: []domain.Quantity{
				{Amount: 200, Unit: "grams", Name: "tomato"},
				{Amount: 2, Unit: "items", Name: "onions"},
				{Amount: 2, Unit: "tbsp", Name: "olive oil"},
			},
		},
		{
			RecipeName:            "Pancakes",
			RecipeServings:        3,
			RecipeDefaultServings: 6,
			Ingredients: []domain.Quantity{
				{Amount: 2, Unit: "cups", Name: "milk"},
				{Amount: 1.5, Unit: "cups", Name: "flour"},
				{Amount: 2, Unit: "large", Name: "eggs"},
			},
		},
	}
}

func findEntry(entries []domain.ShoppingEntry, name, unit string) *domain.ShoppingEntry {
	for i := range entries {
		if entries[i].NormalizedName == name && entries[i].Unit == unit {
			return &entries[i]
		}
	}
	return nil
}

func TestShoppingAggregator_Aggregate(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	entries, err := aggregator.Aggregate(shoppingSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		unit     string
		amount   float64
		category string
		sources  []string
	}{
		// 500 g x 2 + 200 g x 1
		{"tomato", "g", 1200, "Produce", []string{"Salad", "Tomato Soup"}},
		// 1 piece x 2 + 2 items x 1
		{"onion", "piece", 4, "Produce", []string{"Salad", "Tomato Soup"}},
		// 1 cup x 2 + 2 cups x 0.5
		{"milk", "cup", 3, "Dairy & Eggs", []string{"Pancakes", "Tomato Soup"}},
		{"flour", "cup", 0.75, "Pantry", []string{"Pancakes"}},
		{"olive oil", "tbsp", 2, "Pantry", []string{"Salad"}},
		{"egg", "large", 1, "Dairy & Eggs", []string{"Pancakes"}},
	}

	if len(entries) != len(tests) {
		t.Errorf("got %d entries, want %d: %+v", len(entries), len(tests), entries)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := findEntry(entries, tt.name, tt.unit)
			if e == nil {
				t.Fatalf("no entry for %s (%s)", tt.name, tt.unit)
			}
			if e.Amount != tt.amount {
				t.Errorf("Amount = %v, want %v", e.Amount, tt.amount)
			}
			if e.Category != tt.category {
				t.Errorf("Category = %q, want %q", e.Category, tt.category)
			}
			if !reflect.DeepEqual(e.SourceRecipes, tt.sources) {
				t.Errorf("SourceRecipes = %v, want %v", e.SourceRecipes, tt.sources)
			}
		})
	}
}

func TestShoppingAggregator_Aggregate_IsSorted(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	entries, err := aggregator.Aggregate(shoppingSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Category > cur.Category || (prev.Category == cur.Category && prev.NormalizedName > cur.NormalizedName) {
			t.Errorf("entries out of order at %d: %s/%s before %s/%s",
				i, prev.Category, prev.NormalizedName, cur.Category, cur.NormalizedName)
		}
	}
}

func TestShoppingAggregator_Aggregate_IsOrderIndependent(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	sources := shoppingSources()
	expected, err := aggregator.Aggregate(sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	permutations := [][]int{{2, 1, 0}, {1, 0, 2}, {0, 2, 1}, {2, 0, 1}}
	for _, perm := range permutations {
		shuffled := make([]domain.ShoppingSource, len(sources))
		for i, idx := range perm {
			shuffled[i] = sources[idx]
		}

		got, err := aggregator.Aggregate(shuffled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("permutation %v changed the result:\n%+v\n%+v", perm, got, expected)
		}
	}
}

func TestShoppingAggregator_Aggregate_DifferentUnitsStaySeparate(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	entries, err := aggregator.Aggregate([]domain.ShoppingSource{{
		RecipeName:            "Bread",
		RecipeServings:        1,
		RecipeDefaultServings: 1,
		Ingredients: []domain.Quantity{
			{Amount: 500, Unit: "g", Name: "flour"},
			{Amount: 1, Unit: "cup", Name: "flour"},
		},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2 (one per unit)", len(entries))
	}
}

func TestShoppingAggregator_Aggregate_Errors(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	tests := []struct {
		name     string
		source   domain.ShoppingSource
		expected error
	}{
		{
			name:     "zero default servings",
			source:   domain.ShoppingSource{RecipeName: "x", RecipeServings: 2, RecipeDefaultServings: 0},
			expected: domain.ErrInvalidServings,
		},
		{
			name:     "zero planned servings",
			source:   domain.ShoppingSource{RecipeName: "x", RecipeServings: 0, RecipeDefaultServings: 2},
			expected: domain.ErrInvalidServings,
		},
		{
			name: "negative amount",
			source: domain.ShoppingSource{RecipeName: "x", RecipeServings: 1, RecipeDefaultServings: 1,
				Ingredients: []domain.Quantity{{Amount: -1, Unit: "g", Name: "salt"}}},
			expected: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := aggregator.Aggregate([]domain.ShoppingSource{tt.source})
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestShoppingAggregator_Aggregate_Empty(t *testing.T) {
	aggregator := newTestShoppingAggregator()

	entries, err := aggregator.Aggregate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty slice", entries)
	}
}
