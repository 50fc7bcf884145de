// Package oracle holds the LLM-backed conversion oracles. Each client turns a
// recipe and device profile into candidate steps; validation, clamping and the
// rule-engine fallback stay with the caller.
package oracle

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thermochef/backend/internal/domain"
)

// Supported providers
const (
	ProviderNone       = "none"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Config selects and configures a provider
type Config struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Oracle is a conversion oracle that holds resources
type Oracle interface {
	domain.ConversionOracle
	io.Closer
}

// New builds the configured oracle. ProviderNone returns (nil, nil) and the
// converter then runs on rules alone.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Oracle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderNone, "":
		return nil, nil
	case ProviderOpenRouter:
		client, err := NewOpenRouterClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
}

// newLimiter spaces requests evenly; rpm <= 0 disables limiting
func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// wait blocks on the limiter; a cancelled context means the attempt is lost
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", domain.ErrOracleFailure, err)
	}
	return nil
}
