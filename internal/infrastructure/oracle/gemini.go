package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/thermochef/backend/internal/domain"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient asks a Gemini model for steps
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewGeminiClient creates a client for the Gemini API
func NewGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = DefaultGeminiModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(samplingTemperature)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	return &GeminiClient{
		client:  client,
		model:   model,
		limiter: newLimiter(cfg.RequestsPerMinute),
		logger:  logger.Named("gemini"),
	}, nil
}

// Name identifies the provider
func (c *GeminiClient) Name() string {
	return ProviderGemini
}

// ConvertInstructions generates content and decodes the steps in the answer
func (c *GeminiClient) ConvertInstructions(
	ctx context.Context,
	recipe *domain.RecipeData,
	profile domain.DeviceProfile,
) ([]domain.OperationStep, error) {
	if err := wait(ctx, c.limiter); err != nil {
		return nil, err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(recipe, profile)))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: gemini: %v", domain.ErrOracleFailure, err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("gemini answered", zap.Int("chars", len(text)))

	return DecodeSteps(text)
}

// Close releases the underlying connection
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// candidateText joins the text parts of the first candidate
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.ErrOracleEmpty
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", domain.ErrOracleEmpty
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: gemini answer has no text parts", domain.ErrOracleFailure)
	}
	return b.String(), nil
}
