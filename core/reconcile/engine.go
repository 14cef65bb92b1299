package reconcile

import (
	"context"
	"sort"
)

// ReconcileAll compares every record of the spec's kind. It builds both
// indices, computes the union of keys, and returns a result for each key
// indicating presence and mismatches, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec) ([]Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec.Adapter)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})

	return results, nil
}

// ReconcileOne compares a single record by key. It reuses the cached
// snapshot when one is fresh; with caching disabled it still builds both
// indices, since the authored documents cannot be read partially.
func ReconcileOne(ctx context.Context, spec *Spec, key string) (*Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	result := buildResult(key, cache.Desired, cache.Actual, spec.Adapter)
	return &result, nil
}

// resultsFromCache builds one result per key in the union of both indices.
func resultsFromCache(cache *Cache, adapter Adapter) []Result {
	union := make(map[string]struct{}, len(cache.Desired))
	for key := range cache.Desired {
		union[key] = struct{}{}
	}
	for key := range cache.Actual {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache.Desired, cache.Actual, adapter))
	}
	return results
}

// buildResult creates the Result for a single key.
func buildResult(key string, desired, actual map[string]Record, adapter Adapter) Result {
	want, inDocument := desired[key]
	got, inStore := actual[key]

	result := Result{
		Key:        key,
		InDocument: inDocument,
		InStore:    inStore,
		Mismatch:   []string{},
	}

	if inDocument && inStore {
		result.Mismatch = adapter.Compare(want, got)
	}

	return result
}
