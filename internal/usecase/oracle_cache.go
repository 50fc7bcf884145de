package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
)

// defaultOracleCacheTTL is used when no TTL is configured
const defaultOracleCacheTTL = 720 * time.Hour

// CachingOracle memoizes oracle answers per recipe instructions and device profile.
// Cache failures never fail a conversion.
type CachingOracle struct {
	next   domain.ConversionOracle
	cache  domain.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachingOracle wraps next with cache
func NewCachingOracle(next domain.ConversionOracle, cache domain.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachingOracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl == 0 {
		ttl = defaultOracleCacheTTL
	}
	return &CachingOracle{next: next, cache: cache, ttl: ttl, logger: logger.Named("oracle-cache")}
}

// Name returns the wrapped oracle's name
func (o *CachingOracle) Name() string {
	return o.next.Name()
}

// ConvertInstructions checks the cache, then asks the wrapped oracle and stores non-empty answers
func (o *CachingOracle) ConvertInstructions(
	ctx context.Context,
	recipe *domain.RecipeData,
	profile domain.DeviceProfile,
) ([]domain.OperationStep, error) {
	key := oracleCacheKey(o.next.Name(), recipe, profile)

	if steps, err := o.getFromCache(ctx, key); err == nil {
		o.logger.Debug("oracle cache hit", zap.String("key", key))
		return steps, nil
	}

	steps, err := o.next.ConvertInstructions(ctx, recipe, profile)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return steps, nil
	}

	if err := o.setInCache(ctx, key, steps); err != nil {
		o.logger.Warn("failed to cache oracle answer", zap.String("key", key), zap.Error(err))
	}

	return steps, nil
}

// oracleCacheKey builds "oracle:{provider}:{model}:{hash}" from everything the answer depends on
func oracleCacheKey(provider string, recipe *domain.RecipeData, profile domain.DeviceProfile) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v|%d|%d|%v\n", profile.MaxTemperatureC, profile.MaxSpeed, profile.MaxDurationSeconds, profile.BowlCapacityMl)
	fmt.Fprintf(h, "servings=%d\n", recipe.Servings)
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(h, "%v|%s|%s|%s\n", ing.Amount, foldText(ing.Unit), foldText(ing.Name), foldText(ing.Notes))
	}
	for _, instruction := range recipe.Instructions {
		h.Write([]byte(foldText(instruction)))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("oracle:%s:%s:%s",
		strings.ToLower(provider),
		strings.ToLower(string(profile.Model)),
		hex.EncodeToString(h.Sum(nil))[:32])
}

func (o *CachingOracle) getFromCache(ctx context.Context, key string) ([]domain.OperationStep, error) {
	data, err := o.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var steps []domain.OperationStep
	if err := json.Unmarshal(data, &steps); err != nil || len(steps) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return steps, nil
}

func (o *CachingOracle) setInCache(ctx context.Context, key string, steps []domain.OperationStep) error {
	data, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	return o.cache.Set(ctx, key, data, o.ttl)
}
