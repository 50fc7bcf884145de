package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// pieceCanonicalUnit is the shared label of all piece-like units
const pieceCanonicalUnit = "piece"

// UnitConverter normalizes (amount, unit) pairs into grams or milliliters
type UnitConverter struct {
	units      map[string]domain.UnitDefinition
	canonical  map[string]string
	pieces     map[string]bool
	pieceGrams float64
	logger     *zap.Logger
}

// NewUnitConverter indexes the unit table by alias
func NewUnitConverter(t *tables.Tables, logger *zap.Logger) *UnitConverter {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &UnitConverter{
		units:      make(map[string]domain.UnitDefinition),
		canonical:  make(map[string]string),
		pieces:     make(map[string]bool),
		pieceGrams: t.PieceGrams,
		logger:     logger.Named("units"),
	}

	for _, def := range t.Units {
		primary := cleanUnit(def.Aliases[0])
		for _, alias := range def.Aliases {
			key := cleanUnit(alias)
			if _, dup := c.units[key]; dup {
				continue
			}
			c.units[key] = def
			c.canonical[key] = primary
		}
	}
	for _, p := range t.PieceUnits {
		c.pieces[cleanUnit(p)] = true
	}

	return c
}

// ToBaseUnit converts amount in unit into its base unit.
// Unknown units pass through unchanged as grams; this approximation is reported
// through the returned recognition and a debug log line, never as an error.
func (c *UnitConverter) ToBaseUnit(amount float64, unit string) (float64, domain.BaseUnit, domain.UnitRecognition) {
	key := cleanUnit(unit)

	if def, ok := c.units[key]; ok {
		return amount * def.Factor, def.Base, domain.UnitFromTable
	}

	if c.pieces[key] {
		return amount * c.pieceGrams, domain.BaseGram, domain.UnitPieceLike
	}

	c.logger.Debug("unrecognized unit, passing amount through", zap.String("unit", unit), zap.Float64("amount", amount))
	return amount, domain.BaseGram, domain.UnitPassthrough
}

// Normalize attaches base-unit values to a quantity
func (c *UnitConverter) Normalize(q domain.Quantity) domain.NormalizedQuantity {
	value, base, recognition := c.ToBaseUnit(q.Amount, q.Unit)
	return domain.NormalizedQuantity{
		Quantity:         q,
		AmountInBaseUnit: value,
		BaseUnit:         base,
		Recognition:      recognition,
	}
}

// CanonicalUnit maps an alias onto the first alias of its table entry,
// so "cups" and "Cup" both become "cup". Unknown units are only cleaned.
func (c *UnitConverter) CanonicalUnit(unit string) string {
	key := cleanUnit(unit)
	if canonical, ok := c.canonical[key]; ok {
		return canonical
	}
	if c.pieces[key] {
		return pieceCanonicalUnit
	}
	return key
}

// cleanUnit lowercases, trims and drops a trailing period ("Tbsp." -> "tbsp")
func cleanUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	unit = strings.TrimSuffix(unit, ".")
	return multipleSpacesRegex.ReplaceAllString(unit, " ")
}
