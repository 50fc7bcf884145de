// Package tables holds the read-only lookup data behind the conversion core:
// device profiles, units, nutrition facts, category keywords and conversion
// rules. A Tables value is built once at start-up and shared by pointer.
package tables

import (
	"fmt"
	"os"
	"strings"

	"github.com/thermochef/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPieceGrams is the assumed weight of one piece-like unit
const DefaultPieceGrams = 100.0

// DefaultCategory is returned when no keyword set matches
const DefaultCategory = "Other"

// Tables is the full set of lookup data
type Tables struct {
	Devices          []domain.DeviceProfile
	Units            []domain.UnitDefinition
	PieceUnits       []string
	PieceGrams       float64
	Nutrition        []domain.NutritionFacts
	DefaultNutrition domain.Nutrients
	Categories       []domain.CategoryKeywords
	FallbackCategory string
	Rules            []domain.ConversionRule
}

// Default returns the built-in tables
func Default() *Tables {
	return &Tables{
		Devices:          defaultDevices(),
		Units:            defaultUnits(),
		PieceUnits:       defaultPieceUnits(),
		PieceGrams:       DefaultPieceGrams,
		Nutrition:        defaultNutrition(),
		DefaultNutrition: defaultNutritionFallback(),
		Categories:       defaultCategories(),
		FallbackCategory: DefaultCategory,
		Rules:            defaultRules(),
	}
}

// Load reads a YAML file and overlays every section it defines on the defaults.
// An empty path returns the defaults.
func Load(path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	if err := f.apply(t); err != nil {
		return nil, fmt.Errorf("invalid tables file %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables file %s: %w", path, err)
	}

	return t, nil
}

// Validate checks the structural constraints the algorithms rely on
func (t *Tables) Validate() error {
	if len(t.Devices) == 0 {
		return fmt.Errorf("at least one device profile is required")
	}
	seen := make(map[domain.DeviceModel]bool)
	for _, d := range t.Devices {
		if d.Model == "" {
			return fmt.Errorf("device profile without model")
		}
		if seen[d.Model] {
			return fmt.Errorf("duplicate device model %s", d.Model)
		}
		seen[d.Model] = true
		if d.MaxTemperatureC <= 0 || d.MaxSpeed <= 0 || d.MaxDurationSeconds <= 0 {
			return fmt.Errorf("device %s: limits must be positive", d.Model)
		}
	}

	for _, u := range t.Units {
		if len(u.Aliases) == 0 {
			return fmt.Errorf("unit definition without aliases")
		}
		if u.Factor <= 0 {
			return fmt.Errorf("unit %s: factor must be positive", u.Aliases[0])
		}
		if u.Base != domain.BaseGram && u.Base != domain.BaseMilliliter {
			return fmt.Errorf("unit %s: base must be g or ml, got %q", u.Aliases[0], u.Base)
		}
	}

	if t.PieceGrams <= 0 {
		return fmt.Errorf("piece grams must be positive")
	}

	for _, r := range t.Rules {
		if len(r.Keywords) == 0 {
			return fmt.Errorf("rule %s has no keywords", r.Name)
		}
		if r.Template.Speed < 0 || r.Template.MaxDurationSeconds < 0 {
			return fmt.Errorf("rule %s: speed and max duration must not be negative", r.Name)
		}
	}

	return nil
}

// ProfileFor returns the device profile for a model
func (t *Tables) ProfileFor(model domain.DeviceModel) (domain.DeviceProfile, error) {
	for _, d := range t.Devices {
		if strings.EqualFold(string(d.Model), string(model)) {
			return d, nil
		}
	}
	return domain.DeviceProfile{}, fmt.Errorf("%w: %q", domain.ErrUnknownDeviceModel, model)
}

// Models lists the supported device models in table order
func (t *Tables) Models() []domain.DeviceModel {
	models := make([]domain.DeviceModel, 0, len(t.Devices))
	for _, d := range t.Devices {
		models = append(models, d.Model)
	}
	return models
}
