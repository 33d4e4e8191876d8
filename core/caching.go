package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cachedPasses looks up passes through the cache store when one is configured.
func cachedPasses(ctx context.Context, cfg *contract.Config, provider contract.PassProvider, mgr contract.CacheManager, now time.Time) (schema.TimeRange, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetCacheStore()
	}
	if store == nil {
		// Fallback to direct lookup
		return provider.Passes(ctx, cfg.Latitude, cfg.Longitude, cfg.PassCount)
	}

	key := generateCacheKey(cfg, now)

	if result, ok := checkCacheHit(store, key, now); ok {
		return result, nil
	}

	return computeAndStore(ctx, cfg, provider, store, key, now)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string, now time.Time) (schema.TimeRange, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}

	if version != currentCacheVersion {
		return nil, false
	}
	if now.Sub(time.Unix(ts, 0)) > contract.CacheGranularity {
		return nil, false // Stale
	}

	var result schema.TimeRange
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	if err := result.Validate(); err != nil {
		return nil, false
	}
	return result, true
}

// computeAndStore performs the lookup and stores the result in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, provider contract.PassProvider, store contract.CacheStore, key string, now time.Time) (schema.TimeRange, error) {
	result, err := provider.Passes(ctx, cfg.Latitude, cfg.Longitude, cfg.PassCount)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, now.Unix()); err != nil {
			contract.LogWarn("Failed to cache pass lookup", err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key based on lookup parameters.
// Lookups within the same cache window share a key.
func generateCacheKey(cfg *contract.Config, now time.Time) string {
	key := fmt.Sprintf("%s:%g:%g:%d:%d",
		cfg.PassesURL,
		cfg.Latitude,
		cfg.Longitude,
		cfg.PassCount,
		cfg.GetCacheWindow(now).Unix(),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
