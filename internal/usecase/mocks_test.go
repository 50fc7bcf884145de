package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalled int
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockOracle is a mock implementation of domain.ConversionOracle.
// Each call pops the next entry from results; the last entry repeats.
type MockOracle struct {
	mu      sync.Mutex
	results []mockOracleResult
	calls   int
	block   bool
}

type mockOracleResult struct {
	steps []domain.OperationStep
	err   error
}

func NewMockOracle(results ...mockOracleResult) *MockOracle {
	return &MockOracle{results: results}
}

func (m *MockOracle) Name() string {
	return "mock"
}

func (m *MockOracle) ConvertInstructions(ctx context.Context, recipe *domain.RecipeData, profile domain.DeviceProfile) ([]domain.OperationStep, error) {
	m.mu.Lock()
	m.calls++
	idx := m.calls - 1
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if idx < 0 {
		return nil, nil
	}

	r := m.results[idx]
	if r.steps == nil {
		return nil, r.err
	}
	// hand out a copy so callers cannot mutate the fixture
	out := domain.ConvertedRecipe{Steps: r.steps}.Clone().Steps
	return out, r.err
}

func (m *MockOracle) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockConversionRepository is a mock implementation of domain.ConversionRepository
type MockConversionRepository struct {
	mu      sync.Mutex
	saved   map[string]domain.ConvertedRecipe
	saveErr error
}

func NewMockConversionRepository() *MockConversionRepository {
	return &MockConversionRepository{saved: make(map[string]domain.ConvertedRecipe)}
}

func (m *MockConversionRepository) Save(ctx context.Context, recipe *domain.ConvertedRecipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[recipe.ID] = recipe.Clone()
	return nil
}

func (m *MockConversionRepository) GetByID(ctx context.Context, id string) (*domain.ConvertedRecipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.saved[id]
	if !ok {
		return nil, domain.ErrConversionNotFound
	}
	out := r.Clone()
	return &out, nil
}

// Test fixtures

func newTestTables() *tables.Tables {
	return tables.Default()
}

func newTestConverter(oracle domain.ConversionOracle, config RecipeConverterConfig) *RecipeConverter {
	t := newTestTables()
	engine := NewRuleEngine(t, NewQuantityParser(nil), nil)
	return NewRecipeConverter(t, engine, oracle, config, nil)
}

func sampleRecipe() *domain.RecipeData {
	return &domain.RecipeData{
		Title: "Tomato Soup",
		Ingredients: []domain.Quantity{
			{Amount: 500, Unit: "g", Name: "tomatoes"},
			{Amount: 1, Unit: "piece", Name: "onion"},
			{Amount: 2, Unit: "tbsp", Name: "butter"},
		},
		Instructions: []string{
			"Dice the onion",
			"Simmer for 20 minutes",
			"Puree until smooth",
		},
		Servings: 4,
	}
}

func floatEquals(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
