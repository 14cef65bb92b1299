package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds one snapshot of both indices for fast repeated lookups.
type Cache struct {
	// Desired is the indexed map of authored records by key.
	Desired map[string]Record

	// Actual is the indexed map of stored rows by key.
	Actual map[string]Record

	// Built is the timestamp when this snapshot was taken.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired reports whether this snapshot is too old to serve.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true // caching disabled
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds snapshots keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache takes a fresh snapshot of both sides, loading them
// concurrently. It does not store the snapshot; use GetOrBuildCache for
// that.
func BuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	var (
		desired    map[string]Record
		actual     map[string]Record
		desiredErr error
		actualErr  error
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		desired, desiredErr = spec.Adapter.LoadDesired(ctx)
	}()
	go func() {
		defer wg.Done()
		actual, actualErr = spec.Adapter.LoadActual(ctx)
	}()
	wg.Wait()

	if desiredErr != nil {
		return nil, desiredErr
	}
	if actualErr != nil {
		return nil, actualErr
	}

	return &Cache{
		Desired: desired,
		Actual:  actual,
		Built:   time.Now(),
		TTL:     spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the stored snapshot for the spec, or builds a
// new one when it is missing or expired. Singleflight collapses
// concurrent rebuilds of the same kind into one.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after winning the flight; a peer may have rebuilt.
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Cache), nil
}

// InvalidateCache drops the stored snapshot for the spec, forcing the
// next call to rebuild. Mutating calls use it so later reads see their
// writes.
func InvalidateCache(spec *Spec) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, spec.CacheKey())
	globalCacheStore.mu.Unlock()
}
