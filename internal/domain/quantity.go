package domain

import (
	"fmt"
	"strings"
)

// BaseUnit is the canonical unit amounts are normalized into
type BaseUnit string

const (
	BaseGram       BaseUnit = "g"
	BaseMilliliter BaseUnit = "ml"
)

// UnitRecognition records how a unit was resolved during normalization
type UnitRecognition string

const (
	UnitFromTable   UnitRecognition = "table"
	UnitPieceLike   UnitRecognition = "piece"
	UnitPassthrough UnitRecognition = "passthrough"
)

// Quantity is a single parsed ingredient line
type Quantity struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit" yaml:"unit"`
	Name   string  `json:"name" yaml:"name"`
	Notes  string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewQuantity builds a validated Quantity
func NewQuantity(amount float64, unit, name, notes string) (Quantity, error) {
	q := Quantity{
		Amount: amount,
		Unit:   strings.TrimSpace(unit),
		Name:   strings.TrimSpace(name),
		Notes:  strings.TrimSpace(notes),
	}
	if err := q.Validate(); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// Validate checks amount >= 0 and non-empty unit and name
func (q Quantity) Validate() error {
	if q.Amount < 0 {
		return fmt.Errorf("%w: negative amount %v for %q", ErrInvalidQuantity, q.Amount, q.Name)
	}
	if q.Unit == "" {
		return fmt.Errorf("%w: empty unit for %q", ErrInvalidQuantity, q.Name)
	}
	if q.Name == "" {
		return fmt.Errorf("%w: empty ingredient name", ErrInvalidQuantity)
	}
	return nil
}

// NormalizedQuantity is a Quantity expressed in its base unit
type NormalizedQuantity struct {
	Quantity
	AmountInBaseUnit float64         `json:"amountInBaseUnit"`
	BaseUnit         BaseUnit        `json:"baseUnit"`
	Recognition      UnitRecognition `json:"recognition"`
}

// UnitDefinition maps a set of unit aliases onto a base unit multiplier
type UnitDefinition struct {
	Aliases []string `json:"aliases" yaml:"aliases"`
	Base    BaseUnit `json:"base" yaml:"base"`
	Factor  float64  `json:"factor" yaml:"factor"`
}
