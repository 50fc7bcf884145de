package usecase

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// NutritionEstimator approximates nutrition facts from the per-100g table.
// Volume units count 1 ml as 1 g, which is only true for water-like liquids.
type NutritionEstimator struct {
	entries  []domain.NutritionFacts
	fallback domain.Nutrients
	units    *UnitConverter
	logger   *zap.Logger
}

// NewNutritionEstimator creates a new nutrition estimator
func NewNutritionEstimator(t *tables.Tables, units *UnitConverter, logger *zap.Logger) *NutritionEstimator {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make([]domain.NutritionFacts, 0, len(t.Nutrition))
	for _, e := range t.Nutrition {
		entries = append(entries, domain.NutritionFacts{Name: foldText(e.Name), Per100g: e.Per100g})
	}

	return &NutritionEstimator{
		entries:  entries,
		fallback: t.DefaultNutrition,
		units:    units,
		logger:   logger.Named("nutrition"),
	}
}

// Lookup finds per-100g facts: exact name, then first substring match in
// table order, then the default entry (reported with ok=false).
func (e *NutritionEstimator) Lookup(name string) (domain.NutritionFacts, bool) {
	key := foldText(name)
	if key == "" {
		return domain.NutritionFacts{Per100g: e.fallback}, false
	}

	for _, entry := range e.entries {
		if entry.Name == key {
			return entry, true
		}
	}

	for _, entry := range e.entries {
		if entry.Name == "" {
			continue
		}
		if strings.Contains(key, entry.Name) || strings.Contains(entry.Name, key) {
			return entry, true
		}
	}

	return domain.NutritionFacts{Per100g: e.fallback}, false
}

// Estimate returns the nutrients of the whole quantity
func (e *NutritionEstimator) Estimate(q domain.Quantity) domain.IngredientNutrition {
	normalized := e.units.Normalize(q)
	grams := normalized.AmountInBaseUnit
	if grams < 0 || math.IsNaN(grams) {
		grams = 0
	}

	facts, found := e.Lookup(q.Name)
	if !found {
		e.logger.Debug("no nutrition entry, using default", zap.String("ingredient", q.Name))
	}

	return domain.IngredientNutrition{
		Ingredient: q,
		Grams:      grams,
		MatchedKey: facts.Name,
		Nutrients:  facts.Per100g.Scale(grams / 100),
	}
}

// Aggregate sums ingredient estimates and divides by servings.
// Per-serving calories round to an integer, the rest to one decimal.
func (e *NutritionEstimator) Aggregate(ingredients []domain.Quantity, servings int) (*domain.NutritionSummary, error) {
	if servings < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidServings, servings)
	}

	summary := &domain.NutritionSummary{
		Servings:    servings,
		Ingredients: make([]domain.IngredientNutrition, 0, len(ingredients)),
	}

	for _, ing := range ingredients {
		estimate := e.Estimate(ing)
		summary.Total = summary.Total.Add(estimate.Nutrients)
		summary.Ingredients = append(summary.Ingredients, estimate)
	}

	per := summary.Total.Scale(1 / float64(servings))
	summary.PerServing = domain.Nutrients{
		Calories: math.Round(per.Calories),
		Protein:  round(per.Protein, 1),
		Carbs:    round(per.Carbs, 1),
		Fat:      round(per.Fat, 1),
		Fiber:    round(per.Fiber, 1),
	}

	return summary, nil
}
