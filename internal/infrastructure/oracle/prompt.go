package oracle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thermochef/backend/internal/domain"
)

const systemPrompt = "You are an expert Thermomix recipe converter. Convert recipes into precise " +
	"Thermomix steps with temperature, speed and time settings. Always ensure safety and optimal results. " +
	"Reply with a single JSON object and no markdown."

// BuildPrompt renders the user prompt for one recipe and device profile
func BuildPrompt(recipe *domain.RecipeData, profile domain.DeviceProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Convert this recipe for %s (max temp: %s°C, max speed: %d, max time per step: %d seconds, bowl capacity: %sml):\n\n",
		profile.Model,
		formatNumber(profile.MaxTemperatureC),
		profile.MaxSpeed,
		profile.MaxDurationSeconds,
		formatNumber(profile.BowlCapacityMl))

	fmt.Fprintf(&b, "Title: %s\n", recipe.Title)
	fmt.Fprintf(&b, "Servings: %d\n\n", recipe.Servings)

	b.WriteString("Ingredients:\n")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(&b, "- %s %s %s", formatNumber(ing.Amount), ing.Unit, ing.Name)
		if ing.Notes != "" {
			fmt.Fprintf(&b, " (%s)", ing.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nInstructions:\n")
	for i, instruction := range recipe.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
	}

	fmt.Fprintf(&b, `
Convert to Thermomix steps with this JSON format:
{
  "steps": [
    {
      "instruction": "Step description",
      "temperature": number or "%s" (omit when unheated),
      "speed": number (0-%d),
      "durationSeconds": number,
      "reversed": boolean (optional),
      "attachment": string (optional, e.g. "whisk", "steamBasket")
    }
  ]
}

Important rules:
- Maximum temperature is %s°C (or "%s")
- Whisk attachment: max speed 4
- Kneading: max 4 minutes at speed 4
- Always add liquids first, then dry ingredients
- Include prep steps (chopping, mixing) where needed
`, domain.SteamModeLabel, profile.MaxSpeed, formatNumber(profile.MaxTemperatureC), domain.SteamModeLabel)

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
