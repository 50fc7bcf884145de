package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDeviceModel is returned when a conversion targets a model missing from the device table
	ErrUnknownDeviceModel = errors.New("unknown device model")

	// ErrInvalidServings is returned when a servings count below 1 reaches scaling or nutrition aggregation
	ErrInvalidServings = errors.New("servings must be at least 1")

	// ErrInvalidQuantity is returned when an ingredient quantity fails validation
	ErrInvalidQuantity = errors.New("invalid ingredient quantity")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnsupportedFormat is returned when a shopping list export format is not known
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrOracleUnavailable is returned when no conversion oracle is configured
	ErrOracleUnavailable = errors.New("conversion oracle unavailable")

	// ErrOracleEmpty is returned when the oracle answers without any usable step
	ErrOracleEmpty = errors.New("conversion oracle returned no steps")

	// ErrOracleFailure is returned when the oracle request fails
	ErrOracleFailure = errors.New("conversion oracle request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrStoreNotConfigured is returned by history lookups when no conversion store is wired
	ErrStoreNotConfigured = errors.New("conversion store not configured")

	// ErrConversionNotFound is returned when a stored conversion does not exist
	ErrConversionNotFound = errors.New("conversion not found")
)

// OracleError describes why the oracle path of a conversion was abandoned.
type OracleError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s failed after %d attempt(s): %v", e.Provider, e.Attempts, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
