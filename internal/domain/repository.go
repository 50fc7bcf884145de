package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ConversionOracle is an optional external converter of recipe instructions.
// Implementations return an error rather than a partial result.
type ConversionOracle interface {
	Name() string
	ConvertInstructions(ctx context.Context, recipe *RecipeData, profile DeviceProfile) ([]OperationStep, error)
}

// ConversionRepository persists finished conversions
type ConversionRepository interface {
	Save(ctx context.Context, recipe *ConvertedRecipe) error
	GetByID(ctx context.Context, id string) (*ConvertedRecipe, error)
}
