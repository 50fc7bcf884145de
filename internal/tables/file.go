package tables

import (
	"fmt"

	"github.com/thermochef/backend/internal/domain"
)

// file is the on-disk YAML layout. Nil sections keep the defaults.
type file struct {
	Devices          []domain.DeviceProfile    `yaml:"devices"`
	Units            []domain.UnitDefinition   `yaml:"units"`
	PieceUnits       []string                  `yaml:"piece_units"`
	PieceGrams       float64                   `yaml:"piece_grams"`
	Nutrition        []domain.NutritionFacts   `yaml:"nutrition"`
	DefaultNutrition *domain.Nutrients         `yaml:"default_nutrition"`
	Categories       []domain.CategoryKeywords `yaml:"categories"`
	FallbackCategory string                    `yaml:"fallback_category"`
	Rules            []ruleEntry               `yaml:"rules"`
}

type ruleEntry struct {
	Name               string      `yaml:"name"`
	Keywords           []string    `yaml:"keywords"`
	Temperature        interface{} `yaml:"temperature"`
	Speed              float64     `yaml:"speed"`
	Reversed           bool        `yaml:"reversed"`
	Attachment         string      `yaml:"attachment"`
	MaxDurationSeconds int         `yaml:"max_duration_seconds"`
}

func (f *file) apply(t *Tables) error {
	if f.Devices != nil {
		t.Devices = f.Devices
	}
	if f.Units != nil {
		t.Units = f.Units
	}
	if f.PieceUnits != nil {
		t.PieceUnits = f.PieceUnits
	}
	if f.PieceGrams != 0 {
		t.PieceGrams = f.PieceGrams
	}
	if f.Nutrition != nil {
		t.Nutrition = f.Nutrition
	}
	if f.DefaultNutrition != nil {
		t.DefaultNutrition = *f.DefaultNutrition
	}
	if f.Categories != nil {
		t.Categories = f.Categories
	}
	if f.FallbackCategory != "" {
		t.FallbackCategory = f.FallbackCategory
	}
	if f.Rules != nil {
		rules := make([]domain.ConversionRule, 0, len(f.Rules))
		for _, r := range f.Rules {
			rule, err := r.toRule()
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		t.Rules = rules
	}
	return nil
}

func (r ruleEntry) toRule() (domain.ConversionRule, error) {
	temp, err := decodeTemperature(r.Temperature)
	if err != nil {
		return domain.ConversionRule{}, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return domain.ConversionRule{
		Name:     r.Name,
		Keywords: r.Keywords,
		Template: domain.OperationTemplate{
			Temperature:        temp,
			Speed:              r.Speed,
			Reversed:           r.Reversed,
			Attachment:         r.Attachment,
			MaxDurationSeconds: r.MaxDurationSeconds,
		},
	}, nil
}

func decodeTemperature(v interface{}) (*domain.Temperature, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int:
		return domain.Celsius(float64(t)), nil
	case float64:
		return domain.Celsius(t), nil
	case string:
		return domain.ParseTemperature(t)
	default:
		return nil, fmt.Errorf("unsupported temperature value %v", v)
	}
}
