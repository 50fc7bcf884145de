package usecase

import (
	"strings"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// Categorizer assigns shopping categories by ordered keyword sets
type Categorizer struct {
	sets     []domain.CategoryKeywords
	fallback string
}

// NewCategorizer creates a categorizer over the table's keyword sets
func NewCategorizer(t *tables.Tables) *Categorizer {
	sets := make([]domain.CategoryKeywords, 0, len(t.Categories))
	for _, set := range t.Categories {
		folded := make([]string, 0, len(set.Keywords))
		for _, kw := range set.Keywords {
			if kw = foldText(kw); kw != "" {
				folded = append(folded, kw)
			}
		}
		sets = append(sets, domain.CategoryKeywords{Category: set.Category, Keywords: folded})
	}

	fallback := t.FallbackCategory
	if fallback == "" {
		fallback = tables.DefaultCategory
	}

	return &Categorizer{sets: sets, fallback: fallback}
}

// Categorize returns the category of the first set with a keyword contained in name
func (c *Categorizer) Categorize(name string) string {
	folded := foldText(name)
	if folded == "" {
		return c.fallback
	}
	for _, set := range c.sets {
		for _, kw := range set.Keywords {
			if strings.Contains(folded, kw) {
				return set.Category
			}
		}
	}
	return c.fallback
}
