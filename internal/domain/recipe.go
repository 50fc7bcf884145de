package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SteamModeLabel is the wire form of the steam temperature sentinel
const SteamModeLabel = "SteamMode"

// steamAliases are accepted on input as the steam sentinel
var steamAliases = []string{"steammode", "steam", "varoma"}

// Temperature is either a Celsius value or the steam sentinel
type Temperature struct {
	Celsius float64
	Steam   bool
}

// Celsius returns a numeric temperature
func Celsius(c float64) *Temperature {
	return &Temperature{Celsius: c}
}

// SteamMode returns the steam sentinel
func SteamMode() *Temperature {
	return &Temperature{Steam: true}
}

// ParseTemperature accepts a number or one of the steam aliases
func ParseTemperature(s string) (*Temperature, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, alias := range steamAliases {
		if lower == alias {
			return SteamMode(), nil
		}
	}
	c, err := strconv.ParseFloat(strings.TrimSuffix(lower, "c"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid temperature %q", s)
	}
	return Celsius(c), nil
}

func (t Temperature) String() string {
	if t.Steam {
		return SteamModeLabel
	}
	return strconv.FormatFloat(t.Celsius, 'f', -1, 64)
}

// MarshalJSON writes the sentinel as a string and Celsius as a number
func (t Temperature) MarshalJSON() ([]byte, error) {
	if t.Steam {
		return json.Marshal(SteamModeLabel)
	}
	return json.Marshal(t.Celsius)
}

// UnmarshalJSON accepts a number, a numeric string or a steam alias
func (t *Temperature) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Temperature{Celsius: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("temperature must be a number or string: %w", err)
	}
	parsed, err := ParseTemperature(s)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// OperationStep is one device instruction
type OperationStep struct {
	Instruction     string       `json:"instruction"`
	Temperature     *Temperature `json:"temperature,omitempty"`
	Speed           float64      `json:"speed"`
	DurationSeconds int          `json:"durationSeconds"`
	Reversed        bool         `json:"reversed,omitempty"`
	Attachment      string       `json:"attachment,omitempty"`
}

// IsComplex reports whether the step counts against an "easy" rating
func (s OperationStep) IsComplex() bool {
	if s.Attachment != "" || s.Reversed || s.Speed > 7 {
		return true
	}
	return s.Temperature != nil && !s.Temperature.Steam && s.Temperature.Celsius > 100
}

// OperationTemplate is the device setting a conversion rule prescribes
type OperationTemplate struct {
	Temperature        *Temperature `json:"temperature,omitempty"`
	Speed              float64      `json:"speed"`
	Reversed           bool         `json:"reversed,omitempty"`
	Attachment         string       `json:"attachment,omitempty"`
	MaxDurationSeconds int          `json:"maxDurationSeconds,omitempty"`
}

// ConversionRule pairs cooking-method keywords with a template
type ConversionRule struct {
	Name     string            `json:"name"`
	Keywords []string          `json:"keywords"`
	Template OperationTemplate `json:"template"`
}

// Difficulty is the coarse effort rating of a converted recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ConversionSource tells which path produced the steps
type ConversionSource string

const (
	SourceOracle ConversionSource = "oracle"
	SourceRules  ConversionSource = "rules"
)

// RecipeData is the structured recipe handed to the converter
type RecipeData struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Ingredients  []Quantity `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prepTime,omitempty"` // minutes
	CookTime     int        `json:"cookTime,omitempty"` // minutes
	Servings     int        `json:"servings"`
	SourceURL    string     `json:"sourceUrl,omitempty"`
}

// Validate checks servings and every ingredient
func (r *RecipeData) Validate() error {
	if r == nil {
		return ErrInvalidRequest
	}
	if r.Servings < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidServings, r.Servings)
	}
	for i, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return fmt.Errorf("ingredient %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy
func (r RecipeData) Clone() RecipeData {
	out := r
	out.Ingredients = append([]Quantity(nil), r.Ingredients...)
	out.Instructions = append([]string(nil), r.Instructions...)
	return out
}

// RawRecipe is unparsed recipe text as scraped from a page
type RawRecipe struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     string   `json:"servings,omitempty"`
	PrepTime     string   `json:"prepTime,omitempty"`
	CookTime     string   `json:"cookTime,omitempty"`
	SourceURL    string   `json:"sourceUrl,omitempty"`
}

// ConvertedRecipe is a recipe with device steps attached
type ConvertedRecipe struct {
	ID string `json:"id,omitempty"`
	RecipeData
	Steps                 []OperationStep  `json:"steps"`
	DeviceModel           DeviceModel      `json:"deviceModel"`
	EstimatedTotalSeconds int              `json:"estimatedTotalSeconds"`
	Difficulty            Difficulty       `json:"difficulty"`
	Source                ConversionSource `json:"source"`
	FallbackReason        string           `json:"fallbackReason,omitempty"`
	CreatedAt             time.Time        `json:"createdAt,omitzero"`
}

// Clone returns a deep copy
func (c ConvertedRecipe) Clone() ConvertedRecipe {
	out := c
	out.RecipeData = c.RecipeData.Clone()
	out.Steps = make([]OperationStep, len(c.Steps))
	for i, s := range c.Steps {
		if s.Temperature != nil {
			t := *s.Temperature
			s.Temperature = &t
		}
		out.Steps[i] = s
	}
	return out
}
