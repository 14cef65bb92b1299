package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockAdapter is a simple test adapter. Records are plain strings and
// mismatches are keyed by the desired record's value.
type mockAdapter struct {
	desired     map[string]Record
	actual      map[string]Record
	mismatches  map[string][]string
	desiredFunc func(context.Context) (map[string]Record, error)
	actualFunc  func(context.Context) (map[string]Record, error)
}

func (m *mockAdapter) Kind() string {
	return "mock"
}

func (m *mockAdapter) LoadDesired(ctx context.Context) (map[string]Record, error) {
	if m.desiredFunc != nil {
		return m.desiredFunc(ctx)
	}
	return m.desired, nil
}

func (m *mockAdapter) LoadActual(ctx context.Context) (map[string]Record, error) {
	if m.actualFunc != nil {
		return m.actualFunc(ctx)
	}
	return m.actual, nil
}

func (m *mockAdapter) Compare(desired, actual Record) []string {
	if mismatches, ok := m.mismatches[desired.(string)]; ok {
		return mismatches
	}
	return []string{}
}

// TestBuildCache_ErrorHandling tests that BuildCache surfaces errors from
// either side's load.
func TestBuildCache_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		desiredErr error
		actualErr  error
		expectErr  string
	}{
		{
			name:       "document load error",
			desiredErr: fmt.Errorf("rooms document unreadable"),
			expectErr:  "rooms document unreadable",
		},
		{
			name:      "store scan error",
			actualErr: fmt.Errorf("table offline"),
			expectErr: "table offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockAdapter{
				desiredFunc: func(ctx context.Context) (map[string]Record, error) {
					if tt.desiredErr != nil {
						return nil, tt.desiredErr
					}
					return map[string]Record{}, nil
				},
				actualFunc: func(ctx context.Context) (map[string]Record, error) {
					if tt.actualErr != nil {
						return nil, tt.actualErr
					}
					return map[string]Record{}, nil
				},
			}

			spec := &Spec{
				Adapter:  adapter,
				CacheTTL: 0,
			}

			_, err := BuildCache(context.Background(), spec)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

// TestReconcileAll_UnionKeys tests that results cover the union of both
// sides, sorted by key.
func TestReconcileAll_UnionKeys(t *testing.T) {
	adapter := &mockAdapter{
		desired: map[string]Record{
			"1": "doc-1",
			"2": "doc-2",
		},
		actual: map[string]Record{
			"2": "store-2",
			"3": "store-3",
		},
		mismatches: map[string][]string{},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 0, // Disable caching for test
	}

	results, err := ReconcileAll(context.Background(), spec)
	assert.NoError(t, err)
	assert.Len(t, results, 3)

	keys := make([]string, 0, len(results))
	for _, r := range results {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"1", "2", "3"}, keys)
}

// TestReconcileAll_PresenceFlags tests that presence flags are set correctly.
func TestReconcileAll_PresenceFlags(t *testing.T) {
	adapter := &mockAdapter{
		desired: map[string]Record{
			"doc-only": "doc-only",
			"both":     "both",
		},
		actual: map[string]Record{
			"both":       "both",
			"store-only": "store-only",
		},
		mismatches: map[string][]string{},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 0,
	}

	results, err := ReconcileAll(context.Background(), spec)
	assert.NoError(t, err)

	resultMap := make(map[string]Result)
	for _, r := range results {
		resultMap[r.Key] = r
	}

	assert.True(t, resultMap["doc-only"].InDocument)
	assert.False(t, resultMap["doc-only"].InStore)
	assert.False(t, resultMap["doc-only"].Complete())

	assert.True(t, resultMap["both"].InDocument)
	assert.True(t, resultMap["both"].InStore)
	assert.True(t, resultMap["both"].Complete())

	assert.False(t, resultMap["store-only"].InDocument)
	assert.True(t, resultMap["store-only"].InStore)
	assert.False(t, resultMap["store-only"].Complete())
}

// TestReconcileAll_MismatchDetection tests field drift detection.
func TestReconcileAll_MismatchDetection(t *testing.T) {
	adapter := &mockAdapter{
		desired: map[string]Record{
			"2": "doc-2",
			"3": "doc-3",
		},
		actual: map[string]Record{
			"2": "store-2",
			"3": "store-3",
		},
		mismatches: map[string][]string{
			"doc-2": {"Title: doc=Vault store=Cellar", "Area: doc=keep store=crypt"},
			"doc-3": {}, // No drift
		},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 0,
	}

	results, err := ReconcileAll(context.Background(), spec)
	assert.NoError(t, err)

	resultMap := make(map[string]Result)
	for _, r := range results {
		resultMap[r.Key] = r
	}

	assert.Len(t, resultMap["2"].Mismatch, 2)
	assert.Contains(t, resultMap["2"].Mismatch, "Title: doc=Vault store=Cellar")
	assert.False(t, resultMap["2"].Complete())

	assert.Empty(t, resultMap["3"].Mismatch)
	assert.True(t, resultMap["3"].Complete())
}

// TestCache_Hit tests that a fresh snapshot is reused on the second call.
func TestCache_Hit(t *testing.T) {
	loadCount := 0

	adapter := &mockAdapter{
		actual: map[string]Record{},
		desiredFunc: func(ctx context.Context) (map[string]Record, error) {
			loadCount++
			return map[string]Record{"1": "doc-1"}, nil
		},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 5 * time.Minute,
	}

	cache1, err := GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.NotNil(t, cache1)
	assert.Equal(t, 1, loadCount)

	cache2, err := GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.NotNil(t, cache2)
	assert.Equal(t, 1, loadCount) // Still 1, not called again

	// Cleanup
	InvalidateCache(spec)
}

// TestCache_Expiration tests that an expired snapshot is rebuilt.
func TestCache_Expiration(t *testing.T) {
	loadCount := 0

	adapter := &mockAdapter{
		actual: map[string]Record{},
		desiredFunc: func(ctx context.Context) (map[string]Record, error) {
			loadCount++
			return map[string]Record{"1": "doc-1"}, nil
		},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 10 * time.Millisecond,
	}

	_, err := GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, 1, loadCount)

	time.Sleep(20 * time.Millisecond)

	_, err = GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, 2, loadCount) // Rebuilt

	// Cleanup
	InvalidateCache(spec)
}

// TestCache_Invalidation tests that dropping the snapshot forces a rebuild.
func TestCache_Invalidation(t *testing.T) {
	loadCount := 0

	adapter := &mockAdapter{
		actual: map[string]Record{},
		desiredFunc: func(ctx context.Context) (map[string]Record, error) {
			loadCount++
			return map[string]Record{"1": "doc-1"}, nil
		},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 5 * time.Minute,
	}

	_, err := GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, 1, loadCount)

	InvalidateCache(spec)

	_, err = GetOrBuildCache(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, 2, loadCount)

	// Cleanup
	InvalidateCache(spec)
}

// TestReconcileOne_WithCache tests targeted reconcile using the cache.
func TestReconcileOne_WithCache(t *testing.T) {
	adapter := &mockAdapter{
		desired: map[string]Record{
			"7": "doc-7",
		},
		actual: map[string]Record{
			"7": "store-7",
		},
		mismatches: map[string][]string{
			"doc-7": {"Direction: doc=East store=West"},
		},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 5 * time.Minute,
	}

	result, err := ReconcileOne(context.Background(), spec, "7")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "7", result.Key)
	assert.True(t, result.InDocument)
	assert.True(t, result.InStore)
	assert.Equal(t, []string{"Direction: doc=East store=West"}, result.Mismatch)

	// Cleanup
	InvalidateCache(spec)
}

// TestReconcileOne_NotFound tests targeted reconcile for a missing key.
func TestReconcileOne_NotFound(t *testing.T) {
	adapter := &mockAdapter{
		desired:    map[string]Record{},
		actual:     map[string]Record{},
		mismatches: map[string][]string{},
	}

	spec := &Spec{
		Adapter:  adapter,
		CacheTTL: 0,
	}

	result, err := ReconcileOne(context.Background(), spec, "nonexistent")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "nonexistent", result.Key)
	assert.False(t, result.InDocument)
	assert.False(t, result.InStore)
}
