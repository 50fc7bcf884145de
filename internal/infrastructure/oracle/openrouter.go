package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thermochef/backend/internal/domain"
)

// OpenRouter defaults
const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-4o-mini"
	samplingTemperature      = 0.3
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenRouterClient asks an OpenAI-compatible chat completions endpoint for steps
type OpenRouterClient struct {
	client  *resty.Client
	model   string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewOpenRouterClient creates a client for the OpenRouter API
func NewOpenRouterClient(cfg Config, logger *zap.Logger) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenRouterModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "ThermoChef")
	if cfg.Timeout > 0 {
		// per-attempt deadlines come from the caller's context; this only bounds stuck sockets
		client.SetTimeout(cfg.Timeout + 5*time.Second)
	}

	return &OpenRouterClient{
		client:  client,
		model:   model,
		limiter: newLimiter(cfg.RequestsPerMinute),
		logger:  logger.Named("openrouter"),
	}, nil
}

// Name identifies the provider
func (c *OpenRouterClient) Name() string {
	return ProviderOpenRouter
}

// ConvertInstructions sends one chat completion and decodes the steps in the answer
func (c *OpenRouterClient) ConvertInstructions(
	ctx context.Context,
	recipe *domain.RecipeData,
	profile domain.DeviceProfile,
) ([]domain.OperationStep, error) {
	if err := wait(ctx, c.limiter); err != nil {
		return nil, err
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(recipe, profile)},
		},
		Temperature:    samplingTemperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleFailure, err)
	}

	c.logger.Debug("chat completion finished",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)),
		zap.String("model", c.model))

	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, fmt.Errorf("%w: openrouter rejected credentials (status %d)", domain.ErrOracleUnavailable, status)
	case status != http.StatusOK:
		return nil, fmt.Errorf("%w: openrouter status %d: %s", domain.ErrOracleFailure, status, truncate(resp.String(), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse openrouter response: %v", domain.ErrOracleFailure, err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOracleFailure, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, domain.ErrOracleEmpty
	}

	return DecodeSteps(result.Choices[0].Message.Content)
}

// Close is a no-op; resty keeps no resources that need releasing
func (c *OpenRouterClient) Close() error {
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
