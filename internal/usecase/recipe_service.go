package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// ProcessedRecipe is a conversion together with its ingredient enrichment
type ProcessedRecipe struct {
	Conversion *domain.ConvertedRecipe `json:"conversion"`
	Nutrition  *domain.NutritionSummary `json:"nutrition"`
	Categories map[string]string        `json:"categories"`
}

// RecipeService wires the conversion core together for the delivery layer
type RecipeService struct {
	tables      *tables.Tables
	parser      *RecipeParser
	converter   *RecipeConverter
	nutrition   *NutritionEstimator
	categorizer *Categorizer
	shopping    *ShoppingAggregator
	store       domain.ConversionRepository
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// RecipeServiceConfig holds configuration for the recipe service
type RecipeServiceConfig struct {
	OracleTimeout    time.Duration
	OracleMaxRetries int
}

// NewRecipeService builds every core component from one set of tables.
// oracle and store may be nil.
func NewRecipeService(
	t *tables.Tables,
	oracle domain.ConversionOracle,
	store domain.ConversionRepository,
	config RecipeServiceConfig,
	logger *zap.Logger,
) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}

	quantities := NewQuantityParser(logger)
	units := NewUnitConverter(t, logger)
	categorizer := NewCategorizer(t)
	engine := NewRuleEngine(t, quantities, logger)

	return &RecipeService{
		tables:      t,
		parser:      NewRecipeParser(quantities),
		converter:   NewRecipeConverter(t, engine, oracle, RecipeConverterConfig(config), logger),
		nutrition:   NewNutritionEstimator(t, units, logger),
		categorizer: categorizer,
		shopping:    NewShoppingAggregator(categorizer, units, logger),
		store:       store,
		logger:      logger.Named("recipes"),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// Devices lists the supported device profiles
func (s *RecipeService) Devices() []domain.DeviceProfile {
	return append([]domain.DeviceProfile(nil), s.tables.Devices...)
}

// ParseRecipe structures scraped recipe text
func (s *RecipeService) ParseRecipe(raw *domain.RawRecipe) (*domain.RecipeData, error) {
	return s.parser.Parse(raw)
}

// Process converts a recipe and, in parallel, estimates nutrition and categorizes
// its ingredients. The conversion is stamped and persisted when a store is wired.
func (s *RecipeService) Process(ctx context.Context, recipe *domain.RecipeData, model domain.DeviceModel) (*ProcessedRecipe, error) {
	if _, err := s.tables.ProfileFor(model); err != nil {
		return nil, err
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	result := &ProcessedRecipe{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		converted, err := s.converter.Convert(gctx, recipe, model)
		if err != nil {
			return err
		}
		result.Conversion = converted
		return nil
	})

	g.Go(func() error {
		summary, err := s.nutrition.Aggregate(recipe.Ingredients, recipe.Servings)
		if err != nil {
			return err
		}
		categories := make(map[string]string, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			categories[ing.Name] = s.categorizer.Categorize(ing.Name)
		}
		result.Nutrition = summary
		result.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Conversion.ID = s.newID()
	result.Conversion.CreatedAt = s.now().UTC()

	if s.store != nil {
		if err := s.store.Save(ctx, result.Conversion); err != nil {
			s.logger.Error("failed to store conversion", zap.String("id", result.Conversion.ID), zap.Error(err))
			result.Conversion.ID = ""
		}
	}

	s.logger.Info("recipe converted",
		zap.String("title", recipe.Title),
		zap.String("model", string(model)),
		zap.String("source", string(result.Conversion.Source)),
		zap.Int("steps", len(result.Conversion.Steps)))

	return result, nil
}

// ScaleRecipe returns a rescaled copy of a converted recipe
func (s *RecipeService) ScaleRecipe(recipe *domain.ConvertedRecipe, servings int) (*domain.ConvertedRecipe, error) {
	return s.converter.Scale(recipe, servings)
}

// EstimateNutrition aggregates nutrition over the given ingredients
func (s *RecipeService) EstimateNutrition(ingredients []domain.Quantity, servings int) (*domain.NutritionSummary, error) {
	for i, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", i, err)
		}
	}
	return s.nutrition.Aggregate(ingredients, servings)
}

// BuildShoppingList merges ingredients across recipe instances
func (s *RecipeService) BuildShoppingList(sources []domain.ShoppingSource) ([]domain.ShoppingEntry, error) {
	return s.shopping.Aggregate(sources)
}

// GetConversion loads a stored conversion
func (s *RecipeService) GetConversion(ctx context.Context, id string) (*domain.ConvertedRecipe, error) {
	if s.store == nil {
		return nil, domain.ErrStoreNotConfigured
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed id", domain.ErrConversionNotFound)
	}
	return s.store.GetByID(ctx, id)
}
