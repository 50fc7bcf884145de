package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thermochef/backend/internal/domain"
)

// stepNumberPattern matches list prefixes like "1.", "2)", "Step 3:"
var stepNumberPattern = regexp.MustCompile(`(?i)^\s*(?:step\s*)?\d+\s*[.):]\s+`)

// RecipeParser builds structured recipes from scraped recipe text
type RecipeParser struct {
	quantities *QuantityParser
}

// NewRecipeParser creates a new recipe parser
func NewRecipeParser(quantities *QuantityParser) *RecipeParser {
	return &RecipeParser{quantities: quantities}
}

// Parse converts a raw recipe into validated RecipeData.
// Prep and cook times are stored in whole minutes.
func (p *RecipeParser) Parse(raw *domain.RawRecipe) (*domain.RecipeData, error) {
	if raw == nil || strings.TrimSpace(raw.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidRequest)
	}

	recipe := &domain.RecipeData{
		Title:        strings.TrimSpace(raw.Title),
		Description:  strings.TrimSpace(raw.Description),
		Ingredients:  make([]domain.Quantity, 0, len(raw.Ingredients)),
		Instructions: make([]string, 0, len(raw.Instructions)),
		Servings:     p.quantities.ParseServings(raw.Servings),
		PrepTime:     secondsToMinutes(p.quantities.ParseDuration(raw.PrepTime)),
		CookTime:     secondsToMinutes(p.quantities.ParseDuration(raw.CookTime)),
		SourceURL:    strings.TrimSpace(raw.SourceURL),
	}

	for _, line := range raw.Ingredients {
		if strings.TrimSpace(line) == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, p.quantities.ParseIngredientLine(line))
	}

	for _, line := range raw.Instructions {
		instruction := strings.TrimSpace(stepNumberPattern.ReplaceAllString(line, ""))
		if instruction == "" {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, instruction)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

func secondsToMinutes(seconds int) int {
	return (seconds + 30) / 60
}
