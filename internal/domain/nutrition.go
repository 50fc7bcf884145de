package domain

// Nutrients contains the five tracked macronutrients
type Nutrients struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"` // grams
	Carbs    float64 `json:"carbs" yaml:"carbs"`     // grams
	Fat      float64 `json:"fat" yaml:"fat"`         // grams
	Fiber    float64 `json:"fiber" yaml:"fiber"`     // grams
}

// Add returns the field-wise sum
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// Scale multiplies every field by f
func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * f,
		Protein:  n.Protein * f,
		Carbs:    n.Carbs * f,
		Fat:      n.Fat * f,
		Fiber:    n.Fiber * f,
	}
}

// NutritionFacts is one per-100g table entry
type NutritionFacts struct {
	Name    string    `json:"name" yaml:"name"`
	Per100g Nutrients `json:"per100g" yaml:"per_100g"`
}

// IngredientNutrition is the estimate for one ingredient
type IngredientNutrition struct {
	Ingredient Quantity  `json:"ingredient"`
	Grams      float64   `json:"grams"`
	MatchedKey string    `json:"matchedKey,omitempty"` // empty when the default entry was used
	Nutrients  Nutrients `json:"nutrients"`
}

// NutritionSummary aggregates a whole recipe
type NutritionSummary struct {
	Servings    int                   `json:"servings"`
	Total       Nutrients             `json:"total"`
	PerServing  Nutrients             `json:"perServing"`
	Ingredients []IngredientNutrition `json:"ingredients,omitempty"`
}
