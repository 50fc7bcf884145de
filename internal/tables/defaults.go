package tables

import "github.com/thermochef/backend/internal/domain"

func defaultDevices() []domain.DeviceProfile {
	return []domain.DeviceProfile{
		{Model: domain.DeviceTM5, MaxTemperatureC: 120, MaxSpeed: 10, MaxDurationSeconds: 5940, BowlCapacityMl: 2200},
		{Model: domain.DeviceTM6, MaxTemperatureC: 160, MaxSpeed: 10, MaxDurationSeconds: 5940, BowlCapacityMl: 2200},
		{Model: domain.DeviceTM7, MaxTemperatureC: 160, MaxSpeed: 10, MaxDurationSeconds: 5940, BowlCapacityMl: 2200},
	}
}

func defaultUnits() []domain.UnitDefinition {
	return []domain.UnitDefinition{
		{Aliases: []string{"l", "liter", "liters", "litre", "litres"}, Base: domain.BaseMilliliter, Factor: 1000},
		{Aliases: []string{"ml", "milliliter", "milliliters", "millilitre", "millilitres"}, Base: domain.BaseMilliliter, Factor: 1},
		{Aliases: []string{"dl", "deciliter", "deciliters"}, Base: domain.BaseMilliliter, Factor: 100},
		{Aliases: []string{"cup", "cups"}, Base: domain.BaseMilliliter, Factor: 240},
		{Aliases: []string{"tbsp", "tbs", "tablespoon", "tablespoons"}, Base: domain.BaseMilliliter, Factor: 15},
		{Aliases: []string{"tsp", "teaspoon", "teaspoons"}, Base: domain.BaseMilliliter, Factor: 5},
		{Aliases: []string{"fl oz", "floz", "fluid ounce", "fluid ounces"}, Base: domain.BaseMilliliter, Factor: 29.5735},
		{Aliases: []string{"kg", "kilogram", "kilograms", "kilo", "kilos"}, Base: domain.BaseGram, Factor: 1000},
		{Aliases: []string{"g", "gram", "grams", "gr"}, Base: domain.BaseGram, Factor: 1},
		{Aliases: []string{"mg", "milligram", "milligrams"}, Base: domain.BaseGram, Factor: 0.001},
		{Aliases: []string{"lb", "lbs", "pound", "pounds"}, Base: domain.BaseGram, Factor: 453.592},
		{Aliases: []string{"oz", "ounce", "ounces"}, Base: domain.BaseGram, Factor: 28.3495},
	}
}

func defaultPieceUnits() []string {
	return []string{"piece", "pieces", "item", "items", "whole", "unit", "units"}
}

func defaultNutrition() []domain.NutritionFacts {
	return []domain.NutritionFacts{
		{Name: "chicken breast", Per100g: domain.Nutrients{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0}},
		{Name: "beef", Per100g: domain.Nutrients{Calories: 250, Protein: 26, Carbs: 0, Fat: 17, Fiber: 0}},
		{Name: "salmon", Per100g: domain.Nutrients{Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Fiber: 0}},
		{Name: "eggs", Per100g: domain.Nutrients{Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0}},
		{Name: "tomato", Per100g: domain.Nutrients{Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2, Fiber: 1.2}},
		{Name: "onion", Per100g: domain.Nutrients{Calories: 40, Protein: 1.1, Carbs: 9.3, Fat: 0.1, Fiber: 1.7}},
		{Name: "garlic", Per100g: domain.Nutrients{Calories: 149, Protein: 6.4, Carbs: 33, Fat: 0.5, Fiber: 2.1}},
		{Name: "potato", Per100g: domain.Nutrients{Calories: 77, Protein: 2, Carbs: 17, Fat: 0.1, Fiber: 2.2}},
		{Name: "carrot", Per100g: domain.Nutrients{Calories: 41, Protein: 0.9, Carbs: 10, Fat: 0.2, Fiber: 2.8}},
		{Name: "rice", Per100g: domain.Nutrients{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4}},
		{Name: "pasta", Per100g: domain.Nutrients{Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Fiber: 1.8}},
		{Name: "flour", Per100g: domain.Nutrients{Calories: 364, Protein: 10, Carbs: 76, Fat: 1, Fiber: 2.7}},
		{Name: "milk", Per100g: domain.Nutrients{Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1, Fiber: 0}},
		{Name: "cheese", Per100g: domain.Nutrients{Calories: 402, Protein: 25, Carbs: 1.3, Fat: 33, Fiber: 0}},
		{Name: "butter", Per100g: domain.Nutrients{Calories: 717, Protein: 0.9, Carbs: 0.1, Fat: 81, Fiber: 0}},
	}
}

func defaultNutritionFallback() domain.Nutrients {
	return domain.Nutrients{Calories: 50, Protein: 1, Carbs: 10, Fat: 0.5, Fiber: 1}
}

func defaultCategories() []domain.CategoryKeywords {
	return []domain.CategoryKeywords{
		{Category: "Meat & Seafood", Keywords: []string{"chicken", "beef", "fish", "salmon", "pork", "lamb", "shrimp", "turkey", "bacon"}},
		{Category: "Dairy & Eggs", Keywords: []string{"milk", "cheese", "butter", "egg", "yogurt", "cream"}},
		{Category: "Produce", Keywords: []string{"tomato", "onion", "garlic", "carrot", "potato", "lettuce", "spinach", "apple", "banana", "orange", "lemon", "herb"}},
		{Category: "Pantry", Keywords: []string{"flour", "sugar", "salt", "pepper", "oil", "vinegar", "rice", "pasta"}},
		{Category: "Frozen", Keywords: []string{"frozen"}},
		{Category: "Bakery", Keywords: []string{"bread", "bagel", "croissant"}},
	}
}

// The rule order is significant: the first rule with a matching keyword wins.
func defaultRules() []domain.ConversionRule {
	return []domain.ConversionRule{
		{Name: "saute", Keywords: []string{"saute", "fry"}, Template: domain.OperationTemplate{Temperature: domain.SteamMode(), Speed: 1, Reversed: true}},
		{Name: "simmer", Keywords: []string{"simmer"}, Template: domain.OperationTemplate{Temperature: domain.Celsius(90), Speed: 1}},
		{Name: "boil", Keywords: []string{"boil"}, Template: domain.OperationTemplate{Temperature: domain.Celsius(100), Speed: 2}},
		{Name: "steam", Keywords: []string{"steam"}, Template: domain.OperationTemplate{Temperature: domain.SteamMode(), Speed: 1, Attachment: "steamBasket"}},
		{Name: "mix", Keywords: []string{"mix", "combine"}, Template: domain.OperationTemplate{Speed: 3, MaxDurationSeconds: 30}},
		{Name: "stir", Keywords: []string{"stir"}, Template: domain.OperationTemplate{Speed: 1, Reversed: true}},
		{Name: "whip", Keywords: []string{"whip", "whisk"}, Template: domain.OperationTemplate{Speed: 4, Attachment: "whisk", MaxDurationSeconds: 180}},
		{Name: "knead", Keywords: []string{"knead"}, Template: domain.OperationTemplate{Speed: 4, MaxDurationSeconds: 240}},
		{Name: "chop", Keywords: []string{"chop", "dice"}, Template: domain.OperationTemplate{Speed: 5, MaxDurationSeconds: 10}},
		{Name: "mince", Keywords: []string{"mince"}, Template: domain.OperationTemplate{Speed: 7, MaxDurationSeconds: 15}},
		{Name: "puree", Keywords: []string{"puree", "blend"}, Template: domain.OperationTemplate{Speed: 10, MaxDurationSeconds: 60}},
		{Name: "grind", Keywords: []string{"grind"}, Template: domain.OperationTemplate{Speed: 10, MaxDurationSeconds: 30}},
		{Name: "melt", Keywords: []string{"melt"}, Template: domain.OperationTemplate{Temperature: domain.Celsius(50), Speed: 1}},
		{Name: "warm", Keywords: []string{"warm"}, Template: domain.OperationTemplate{Temperature: domain.Celsius(37), Speed: 1}},
		{Name: "emulsify", Keywords: []string{"emulsify"}, Template: domain.OperationTemplate{Speed: 5, MaxDurationSeconds: 30}},
		{Name: "ferment", Keywords: []string{"ferment", "proof"}, Template: domain.OperationTemplate{Temperature: domain.Celsius(37), Speed: 0.5, MaxDurationSeconds: 7200}},
	}
}
