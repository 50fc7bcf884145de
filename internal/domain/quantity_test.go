package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	q, err := NewQuantity(2, " cups ", " flour ", "")
	require.NoError(t, err)
	assert.Equal(t, Quantity{Amount: 2, Unit: "cups", Name: "flour"}, q)

	q, err = NewQuantity(0, "g", "salt", "optional")
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Amount)

	tests := []struct {
		name   string
		amount float64
		unit   string
		ing    string
	}{
		{"negative amount", -1, "g", "salt"},
		{"empty unit", 1, "  ", "salt"},
		{"empty name", 1, "g", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuantity(tt.amount, tt.unit, tt.ing, "")
			assert.True(t, errors.Is(err, ErrInvalidQuantity), "got %v", err)
		})
	}
}

func TestShoppingEntry_Key(t *testing.T) {
	e := ShoppingEntry{NormalizedName: "tomato", Unit: "g"}
	assert.Equal(t, "tomato-g", e.Key())
}

func TestOracleError(t *testing.T) {
	err := error(&OracleError{Provider: "gemini", Attempts: 2, Err: ErrOracleEmpty})

	assert.True(t, errors.Is(err, ErrOracleEmpty))
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "2 attempt")

	var oracleErr *OracleError
	require.True(t, errors.As(err, &oracleErr))
	assert.Equal(t, 2, oracleErr.Attempts)
}
