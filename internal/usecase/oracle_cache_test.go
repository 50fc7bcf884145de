package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thermochef/backend/internal/domain"
)

func TestCachingOracle_ConvertInstructions(t *testing.T) {
	profile, _ := newTestTables().ProfileFor(domain.DeviceTM6)
	steps := []domain.OperationStep{
		{Instruction: "Steam the broccoli", Temperature: domain.SteamMode(), Speed: 1, DurationSeconds: 600},
		{Instruction: "Melt butter", Temperature: domain.Celsius(50), Speed: 1, DurationSeconds: 120},
	}

	t.Run("miss then hit", func(t *testing.T) {
		cache := NewMockCacheRepository()
		next := NewMockOracle(mockOracleResult{steps: steps})
		oracle := NewCachingOracle(next, cache, 0, nil)

		first, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if next.Calls() != 1 {
			t.Errorf("wrapped oracle called %d times, want 1", next.Calls())
		}
		if cache.setCalled != 1 {
			t.Errorf("cache Set called %d times, want 1", cache.setCalled)
		}
		if len(first) != 2 || len(second) != 2 {
			t.Fatalf("got %d and %d steps, want 2", len(first), len(second))
		}
		if !second[0].Temperature.Steam || second[1].Temperature.Celsius != 50 {
			t.Errorf("cached steps lost their temperatures: %+v", second)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		cache := NewMockCacheRepository()
		next := NewMockOracle(mockOracleResult{err: domain.ErrOracleFailure})
		oracle := NewCachingOracle(next, cache, 0, nil)

		_, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile)
		if !errors.Is(err, domain.ErrOracleFailure) {
			t.Errorf("expected ErrOracleFailure, got %v", err)
		}
		if cache.setCalled != 0 {
			t.Errorf("cache Set called %d times, want 0", cache.setCalled)
		}
	})

	t.Run("empty answers are not cached", func(t *testing.T) {
		cache := NewMockCacheRepository()
		next := NewMockOracle(mockOracleResult{steps: []domain.OperationStep{}})
		oracle := NewCachingOracle(next, cache, 0, nil)

		if _, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.setCalled != 0 {
			t.Errorf("cache Set called %d times, want 0", cache.setCalled)
		}
	})

	t.Run("cache failures are ignored", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = domain.ErrCacheUnavailable
		cache.setError = domain.ErrCacheUnavailable
		next := NewMockOracle(mockOracleResult{steps: steps})
		oracle := NewCachingOracle(next, cache, 0, nil)

		got, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d steps, want 2", len(got))
		}
	})

	t.Run("corrupt entries are treated as misses", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data[oracleCacheKey("mock", sampleRecipe(), profile)] = []byte("not json")
		next := NewMockOracle(mockOracleResult{steps: steps})
		oracle := NewCachingOracle(next, cache, 0, nil)

		if _, err := oracle.ConvertInstructions(context.Background(), sampleRecipe(), profile); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Calls() != 1 {
			t.Errorf("wrapped oracle called %d times, want 1", next.Calls())
		}
	})
}

func TestOracleCacheKey(t *testing.T) {
	tm5, _ := newTestTables().ProfileFor(domain.DeviceTM5)
	tm6, _ := newTestTables().ProfileFor(domain.DeviceTM6)

	base := oracleCacheKey("gemini", sampleRecipe(), tm6)
	if !strings.HasPrefix(base, "oracle:gemini:tm6:") {
		t.Errorf("key = %q, want oracle:gemini:tm6: prefix", base)
	}

	reworded := sampleRecipe()
	reworded.Instructions[0] = "  DICE the onion "
	if got := oracleCacheKey("gemini", reworded, tm6); got != base {
		t.Errorf("case and spacing changed the key: %q != %q", got, base)
	}

	renamed := sampleRecipe()
	renamed.Title = "Another title"
	if got := oracleCacheKey("gemini", renamed, tm6); got != base {
		t.Error("title should not affect the key")
	}

	if oracleCacheKey("gemini", sampleRecipe(), tm5) == base {
		t.Error("device profile should affect the key")
	}
	if oracleCacheKey("openrouter", sampleRecipe(), tm6) == base {
		t.Error("provider should affect the key")
	}

	changed := sampleRecipe()
	changed.Instructions = append(changed.Instructions, "Serve")
	if oracleCacheKey("gemini", changed, tm6) == base {
		t.Error("instructions should affect the key")
	}

	tripled := sampleRecipe()
	tripled.Servings *= 3
	for i := range tripled.Ingredients {
		tripled.Ingredients[i].Amount *= 3
	}
	if oracleCacheKey("gemini", tripled, tm6) == base {
		t.Error("servings and amounts should affect the key")
	}

	moreServings := sampleRecipe()
	moreServings.Servings = 8
	if oracleCacheKey("gemini", moreServings, tm6) == base {
		t.Error("servings should affect the key")
	}

	swapped := sampleRecipe()
	swapped.Ingredients[1].Name = "shallot"
	if oracleCacheKey("gemini", swapped, tm6) == base {
		t.Error("ingredient names should affect the key")
	}

	noted := sampleRecipe()
	noted.Ingredients[0].Notes = "peeled"
	if oracleCacheKey("gemini", noted, tm6) == base {
		t.Error("ingredient notes should affect the key")
	}
}
