package usecase

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
)

// ShoppingAggregator merges ingredients across recipe instances into one list
type ShoppingAggregator struct {
	categorizer *Categorizer
	units       *UnitConverter
	logger      *zap.Logger
}

// NewShoppingAggregator creates a new shopping aggregator
func NewShoppingAggregator(categorizer *Categorizer, units *UnitConverter, logger *zap.Logger) *ShoppingAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingAggregator{categorizer: categorizer, units: units, logger: logger.Named("shopping")}
}

type pendingEntry struct {
	entry   domain.ShoppingEntry
	parts   []float64
	sources map[string]bool
}

// Aggregate scales each source by recipeServings/recipeDefaultServings and merges
// ingredients keyed by singular lowercase name and canonical unit.
// The result does not depend on source order.
func (a *ShoppingAggregator) Aggregate(sources []domain.ShoppingSource) ([]domain.ShoppingEntry, error) {
	pending := make(map[string]*pendingEntry)

	for _, src := range sources {
		if src.RecipeDefaultServings < 1 {
			return nil, fmt.Errorf("%w: recipe %q has default servings %d",
				domain.ErrInvalidServings, src.RecipeName, src.RecipeDefaultServings)
		}
		if src.RecipeServings < 1 {
			return nil, fmt.Errorf("%w: recipe %q planned for %d servings",
				domain.ErrInvalidServings, src.RecipeName, src.RecipeServings)
		}
		factor := float64(src.RecipeServings) / float64(src.RecipeDefaultServings)

		for _, ing := range src.Ingredients {
			if err := ing.Validate(); err != nil {
				return nil, fmt.Errorf("recipe %q: %w", src.RecipeName, err)
			}

			name := normalizeIngredientName(ing.Name)
			unit := a.units.CanonicalUnit(ing.Unit)
			entry := domain.ShoppingEntry{NormalizedName: name, Unit: unit}
			key := entry.Key()

			p, ok := pending[key]
			if !ok {
				entry.Category = a.categorizer.Categorize(name)
				p = &pendingEntry{entry: entry, sources: make(map[string]bool)}
				pending[key] = p
			}
			p.parts = append(p.parts, ing.Amount*factor)
			if src.RecipeName != "" {
				p.sources[src.RecipeName] = true
			}
		}
	}

	entries := make([]domain.ShoppingEntry, 0, len(pending))
	for _, p := range pending {
		// summing in sorted order keeps float results independent of input order
		sort.Float64s(p.parts)
		total := 0.0
		for _, v := range p.parts {
			total += v
		}

		e := p.entry
		e.Amount = round(total, 2)
		e.SourceRecipes = make([]string, 0, len(p.sources))
		for name := range p.sources {
			e.SourceRecipes = append(e.SourceRecipes, name)
		}
		sort.Strings(e.SourceRecipes)
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		if entries[i].NormalizedName != entries[j].NormalizedName {
			return entries[i].NormalizedName < entries[j].NormalizedName
		}
		return entries[i].Unit < entries[j].Unit
	})

	a.logger.Debug("shopping list aggregated", zap.Int("sources", len(sources)), zap.Int("entries", len(entries)))
	return entries, nil
}
