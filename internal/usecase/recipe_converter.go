package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// Converter limits
const (
	whiskAttachment    = "whisk"
	maxWhiskSpeed      = 4.0
	defaultOracleLimit = 20 * time.Second
)

// whiskAliases are attachment names the oracle may use for the whisk
var whiskAliases = map[string]bool{"whisk": true, "butterfly": true}

// Difficulty thresholds
const (
	easyMaxSteps         = 5
	easyMaxIngredients   = 8
	mediumMaxSteps       = 10
	mediumMaxIngredients = 15
)

// RecipeConverterConfig holds configuration for the recipe converter
type RecipeConverterConfig struct {
	OracleTimeout    time.Duration
	OracleMaxRetries int // clamped to 0..1
}

// RecipeConverter turns recipes into device-specific step lists
type RecipeConverter struct {
	tables        *tables.Tables
	engine        *RuleEngine
	oracle        domain.ConversionOracle
	oracleTimeout time.Duration
	maxRetries    int
	logger        *zap.Logger
}

// NewRecipeConverter creates a converter; oracle may be nil
func NewRecipeConverter(
	t *tables.Tables,
	engine *RuleEngine,
	oracle domain.ConversionOracle,
	config RecipeConverterConfig,
	logger *zap.Logger,
) *RecipeConverter {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := config.OracleTimeout
	if timeout <= 0 {
		timeout = defaultOracleLimit
	}

	retries := config.OracleMaxRetries
	if retries < 0 {
		retries = 0
	}
	if retries > 1 {
		retries = 1
	}

	return &RecipeConverter{
		tables:        t,
		engine:        engine,
		oracle:        oracle,
		oracleTimeout: timeout,
		maxRetries:    retries,
		logger:        logger.Named("converter"),
	}
}

// Convert produces a ConvertedRecipe for the given model.
// Unknown models and invalid recipes are errors; oracle problems are not.
func (c *RecipeConverter) Convert(ctx context.Context, recipe *domain.RecipeData, model domain.DeviceModel) (*domain.ConvertedRecipe, error) {
	profile, err := c.tables.ProfileFor(model)
	if err != nil {
		return nil, err
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	steps, source, reason := c.acquireSteps(ctx, recipe, profile)

	for i := range steps {
		if c.Clamp(&steps[i], profile) {
			c.logger.Debug("step clamped to device limits",
				zap.Int("step", i), zap.String("model", string(profile.Model)))
		}
	}

	total := 0
	for _, s := range steps {
		total += s.DurationSeconds
	}

	return &domain.ConvertedRecipe{
		RecipeData:            recipe.Clone(),
		Steps:                 steps,
		DeviceModel:           profile.Model,
		EstimatedTotalSeconds: total,
		Difficulty:            Difficulty(steps, len(recipe.Ingredients)),
		Source:                source,
		FallbackReason:        reason,
	}, nil
}

// acquireSteps tries the oracle, then falls back to the rule engine for the whole recipe
func (c *RecipeConverter) acquireSteps(
	ctx context.Context,
	recipe *domain.RecipeData,
	profile domain.DeviceProfile,
) ([]domain.OperationStep, domain.ConversionSource, string) {
	if len(recipe.Instructions) == 0 {
		return []domain.OperationStep{}, domain.SourceRules, ""
	}
	if c.oracle == nil {
		return c.engine.Convert(recipe.Instructions), domain.SourceRules, ""
	}

	steps, err := c.callOracle(ctx, recipe, profile)
	if err == nil {
		return steps, domain.SourceOracle, ""
	}

	c.logger.Warn("oracle conversion failed, falling back to rules",
		zap.String("title", recipe.Title),
		zap.String("model", string(profile.Model)),
		zap.Error(err))
	return c.engine.Convert(recipe.Instructions), domain.SourceRules, err.Error()
}

// callOracle makes at most 1+maxRetries bounded attempts
func (c *RecipeConverter) callOracle(
	ctx context.Context,
	recipe *domain.RecipeData,
	profile domain.DeviceProfile,
) ([]domain.OperationStep, error) {
	var lastErr error
	attempts := 0

	for attempts <= c.maxRetries {
		if ctx.Err() != nil {
			if lastErr == nil {
				lastErr = ctx.Err()
			}
			break
		}
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, c.oracleTimeout)
		steps, err := c.oracle.ConvertInstructions(attemptCtx, recipe, profile)
		cancel()

		if err == nil && len(steps) == 0 {
			err = domain.ErrOracleEmpty
		}
		if err == nil {
			err = validateOracleSteps(steps)
		}
		if err == nil {
			return steps, nil
		}

		lastErr = err
		c.logger.Debug("oracle attempt failed", zap.Int("attempt", attempts), zap.Error(err))
		if errors.Is(err, domain.ErrOracleUnavailable) {
			break
		}
	}

	return nil, &domain.OracleError{Provider: c.oracle.Name(), Attempts: attempts, Err: lastErr}
}

func validateOracleSteps(steps []domain.OperationStep) error {
	for i, s := range steps {
		if strings.TrimSpace(s.Instruction) == "" {
			return fmt.Errorf("%w: step %d has no instruction", domain.ErrOracleFailure, i)
		}
	}
	return nil
}

// Clamp forces a step inside the device limits and reports whether anything changed.
// The steam sentinel is never clamped.
func (c *RecipeConverter) Clamp(step *domain.OperationStep, profile domain.DeviceProfile) bool {
	changed := false

	if t := step.Temperature; t != nil && !t.Steam {
		if t.Celsius > profile.MaxTemperatureC {
			t.Celsius = profile.MaxTemperatureC
			changed = true
		}
		if t.Celsius < 0 {
			t.Celsius = 0
			changed = true
		}
	}

	maxSpeed := float64(profile.MaxSpeed)
	if step.Speed > maxSpeed {
		step.Speed = maxSpeed
		changed = true
	}
	if step.Speed < 0 {
		step.Speed = 0
		changed = true
	}

	if step.DurationSeconds > profile.MaxDurationSeconds {
		step.DurationSeconds = profile.MaxDurationSeconds
		changed = true
	}
	if step.DurationSeconds < 0 {
		step.DurationSeconds = 0
		changed = true
	}

	if whiskAliases[strings.ToLower(strings.TrimSpace(step.Attachment))] {
		if step.Attachment != whiskAttachment {
			step.Attachment = whiskAttachment
			changed = true
		}
		if step.Speed > maxWhiskSpeed {
			step.Speed = maxWhiskSpeed
			changed = true
		}
	}

	return changed
}

// Difficulty rates a step list: easy for short, simple recipes, medium up to
// ten steps and fifteen ingredients, hard beyond that.
func Difficulty(steps []domain.OperationStep, ingredientCount int) domain.Difficulty {
	hasComplex := false
	for _, s := range steps {
		if s.IsComplex() {
			hasComplex = true
			break
		}
	}

	switch {
	case len(steps) <= easyMaxSteps && ingredientCount <= easyMaxIngredients && !hasComplex:
		return domain.DifficultyEasy
	case len(steps) <= mediumMaxSteps && ingredientCount <= mediumMaxIngredients:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}

// Scale returns a copy with ingredient amounts multiplied by servings/original,
// rounded to two decimals. Steps are copied unchanged.
func (c *RecipeConverter) Scale(recipe *domain.ConvertedRecipe, servings int) (*domain.ConvertedRecipe, error) {
	if recipe == nil {
		return nil, domain.ErrInvalidRequest
	}
	if servings < 1 {
		return nil, fmt.Errorf("%w: requested %d", domain.ErrInvalidServings, servings)
	}
	if recipe.Servings < 1 {
		return nil, fmt.Errorf("%w: recipe has %d", domain.ErrInvalidServings, recipe.Servings)
	}

	factor := float64(servings) / float64(recipe.Servings)
	scaled := recipe.Clone()
	scaled.ID = ""
	scaled.CreatedAt = time.Time{}
	scaled.Servings = servings
	for i := range scaled.Ingredients {
		scaled.Ingredients[i].Amount = round(scaled.Ingredients[i].Amount*factor, 2)
	}

	return &scaled, nil
}
