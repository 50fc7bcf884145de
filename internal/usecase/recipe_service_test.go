package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thermochef/backend/internal/domain"
)

const testConversionID = "8b1f3c5a-2d4e-4f60-9a7b-0c1d2e3f4a5b"

func newTestRecipeService(oracle domain.ConversionOracle, store domain.ConversionRepository) *RecipeService {
	service := NewRecipeService(newTestTables(), oracle, store, RecipeServiceConfig{}, nil)
	service.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	service.newID = func() string { return testConversionID }
	return service
}

func TestRecipeService_Process(t *testing.T) {
	store := NewMockConversionRepository()
	service := newTestRecipeService(nil, store)

	result, err := service.Process(context.Background(), sampleRecipe(), domain.DeviceTM6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Conversion.ID != testConversionID {
		t.Errorf("ID = %q, want %q", result.Conversion.ID, testConversionID)
	}
	if !result.Conversion.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", result.Conversion.CreatedAt)
	}
	if len(result.Conversion.Steps) != 3 {
		t.Errorf("got %d steps, want 3", len(result.Conversion.Steps))
	}
	if result.Nutrition == nil || result.Nutrition.Servings != 4 {
		t.Errorf("Nutrition = %+v", result.Nutrition)
	}
	if result.Categories["tomatoes"] != "Produce" || result.Categories["butter"] != "Dairy & Eggs" {
		t.Errorf("Categories = %v", result.Categories)
	}

	stored, err := service.GetConversion(context.Background(), testConversionID)
	if err != nil {
		t.Fatalf("stored conversion not found: %v", err)
	}
	if stored.Title != "Tomato Soup" || len(stored.Steps) != 3 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestRecipeService_Process_StoreFailure(t *testing.T) {
	store := NewMockConversionRepository()
	store.saveErr = errors.New("connection refused")
	service := newTestRecipeService(nil, store)

	result, err := service.Process(context.Background(), sampleRecipe(), domain.DeviceTM6)
	if err != nil {
		t.Fatalf("store failure should not fail the conversion: %v", err)
	}
	if result.Conversion.ID != "" {
		t.Errorf("ID = %q, want empty after failed save", result.Conversion.ID)
	}
}

func TestRecipeService_Process_WithOracle(t *testing.T) {
	oracle := NewMockOracle(mockOracleResult{steps: []domain.OperationStep{
		{Instruction: "Blend everything", Speed: 10, DurationSeconds: 90},
	}})
	service := newTestRecipeService(oracle, nil)

	result, err := service.Process(context.Background(), sampleRecipe(), domain.DeviceTM7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Conversion.Source != domain.SourceOracle || len(result.Conversion.Steps) != 1 {
		t.Errorf("conversion = %+v", result.Conversion)
	}
	if result.Conversion.ID != testConversionID {
		t.Errorf("ID = %q, want it assigned without a store", result.Conversion.ID)
	}
}

func TestRecipeService_Process_Errors(t *testing.T) {
	service := newTestRecipeService(nil, nil)

	tests := []struct {
		name     string
		recipe   func() *domain.RecipeData
		model    domain.DeviceModel
		expected error
	}{
		{"unknown model", sampleRecipe, "TM3", domain.ErrUnknownDeviceModel},
		{"invalid servings", func() *domain.RecipeData {
			r := sampleRecipe()
			r.Servings = 0
			return r
		}, domain.DeviceTM6, domain.ErrInvalidServings},
		{"nil recipe", func() *domain.RecipeData { return nil }, domain.DeviceTM6, domain.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Process(context.Background(), tt.recipe(), tt.model)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestRecipeService_GetConversion(t *testing.T) {
	t.Run("no store", func(t *testing.T) {
		service := newTestRecipeService(nil, nil)
		if _, err := service.GetConversion(context.Background(), testConversionID); !errors.Is(err, domain.ErrStoreNotConfigured) {
			t.Errorf("expected ErrStoreNotConfigured, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		service := newTestRecipeService(nil, NewMockConversionRepository())
		if _, err := service.GetConversion(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrConversionNotFound) {
			t.Errorf("expected ErrConversionNotFound, got %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		service := newTestRecipeService(nil, NewMockConversionRepository())
		if _, err := service.GetConversion(context.Background(), testConversionID); !errors.Is(err, domain.ErrConversionNotFound) {
			t.Errorf("expected ErrConversionNotFound, got %v", err)
		}
	})
}

func TestRecipeService_EstimateNutrition(t *testing.T) {
	service := newTestRecipeService(nil, nil)

	summary, err := service.EstimateNutrition([]domain.Quantity{{Amount: 200, Unit: "g", Name: "chicken breast"}}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.PerServing.Calories != 165 {
		t.Errorf("PerServing.Calories = %v, want 165", summary.PerServing.Calories)
	}

	_, err = service.EstimateNutrition([]domain.Quantity{{Amount: 1, Unit: "", Name: "salt"}}, 2)
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestRecipeService_Devices(t *testing.T) {
	service := newTestRecipeService(nil, nil)

	devices := service.Devices()
	if len(devices) != 3 {
		t.Fatalf("got %d devices, want 3", len(devices))
	}

	devices[0].MaxSpeed = 99
	if service.Devices()[0].MaxSpeed == 99 {
		t.Error("Devices exposes the shared table")
	}
}

func TestRecipeService_ScaleRecipe(t *testing.T) {
	service := newTestRecipeService(nil, nil)

	result, err := service.Process(context.Background(), sampleRecipe(), domain.DeviceTM6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scaled, err := service.ScaleRecipe(result.Conversion, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scaled.Servings != 2 || scaled.Ingredients[0].Amount != 250 {
		t.Errorf("scaled = %+v", scaled.RecipeData)
	}
}
