package domain

// CategoryKeywords is one ordered keyword set of the categorizer
type CategoryKeywords struct {
	Category string   `json:"category" yaml:"category"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ShoppingSource is one recipe instance contributing to a shopping list
type ShoppingSource struct {
	RecipeName            string     `json:"recipeName"`
	RecipeServings        int        `json:"recipeServings"`
	RecipeDefaultServings int        `json:"recipeDefaultServings"`
	Ingredients           []Quantity `json:"ingredients"`
}

// ShoppingEntry is one merged line of a shopping list
type ShoppingEntry struct {
	NormalizedName string   `json:"normalizedName"`
	Amount         float64  `json:"amount"`
	Unit           string   `json:"unit"`
	Category       string   `json:"category"`
	SourceRecipes  []string `json:"sourceRecipes"`
}

// Key is the merge key of the entry
func (e ShoppingEntry) Key() string {
	return e.NormalizedName + "-" + e.Unit
}
