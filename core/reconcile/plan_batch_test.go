package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestApplyPlan_UsesBatchPuts tests that ApplyPlan prefers the batch write
// when the adapter offers one.
func TestApplyPlan_UsesBatchPuts(t *testing.T) {
	mutator := &mockBatchMutator{}

	spec := &Spec{
		Adapter:  mutator,
		CacheTTL: 0,
	}

	plan := &Plan{
		Actions: []Action{
			{Type: ActionPut, Key: "1", Record: "doc-1"},
			{Type: ActionPut, Key: "2", Record: "doc-2"},
			{Type: ActionPut, Key: "3", Record: "doc-3"},
			{Type: ActionDelete, Key: "10"},
			{Type: ActionDelete, Key: "11"},
		},
	}

	opts := Options{
		Confirmed: true,
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, opts)
	assert.NoError(t, err)
	assert.Equal(t, 5, executed)

	assert.Len(t, mutator.batches, 1, "should use one batch write for all puts")
	assert.Equal(t, []Record{"doc-1", "doc-2", "doc-3"}, mutator.batches[0])
	assert.Empty(t, mutator.puts, "should not fall back to per-record puts")

	// Deletes have no batch form and run one by one.
	assert.Equal(t, []string{"10", "11"}, mutator.deletes)
}

// TestApplyPlan_FallbackToSequential tests per-record puts when the
// adapter has no batch write.
func TestApplyPlan_FallbackToSequential(t *testing.T) {
	mutator := &mockMutator{}

	spec := &Spec{
		Adapter:  mutator,
		CacheTTL: 0,
	}

	plan := &Plan{
		Actions: []Action{
			{Type: ActionPut, Key: "1", Record: "doc-1"},
			{Type: ActionPut, Key: "2", Record: "doc-2"},
		},
	}

	opts := Options{
		Confirmed: true,
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, opts)
	assert.NoError(t, err)
	assert.Equal(t, 2, executed)

	assert.Equal(t, []string{"1", "2"}, mutator.puts)
}

// TestApplyPlan_LargeScaleBatch tests that one batch call covers an
// arbitrarily large plan.
func TestApplyPlan_LargeScaleBatch(t *testing.T) {
	mutator := &mockBatchMutator{}

	spec := &Spec{
		Adapter:  mutator,
		CacheTTL: 0,
	}

	actions := make([]Action, 0, 1000)
	for i := 0; i < 1000; i++ {
		actions = append(actions, Action{
			Type:   ActionPut,
			Key:    fmt.Sprintf("%d", i),
			Record: fmt.Sprintf("doc-%d", i),
		})
	}

	plan := &Plan{
		Actions: actions,
	}

	opts := Options{
		Confirmed: true,
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, opts)
	assert.NoError(t, err)
	assert.Equal(t, 1000, executed)

	assert.Len(t, mutator.batches, 1, "should use a single batch call")
	assert.Len(t, mutator.batches[0], 1000)
	assert.Empty(t, mutator.puts)
}

// TestApplyPlan_BatchError tests that a failed batch reports zero puts.
func TestApplyPlan_BatchError(t *testing.T) {
	mutator := &mockBatchMutator{
		batchErr: fmt.Errorf("batch rejected"),
	}

	spec := &Spec{
		Adapter:  mutator,
		CacheTTL: 0,
	}

	plan := &Plan{
		Actions: []Action{
			{Type: ActionPut, Key: "1", Record: "doc-1"},
			{Type: ActionPut, Key: "2", Record: "doc-2"},
		},
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, Options{Confirmed: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to batch put mock records")
	assert.Equal(t, 0, executed)
}

// mockBatchMutator adds the batch write half on top of mockMutator.
type mockBatchMutator struct {
	mockMutator
	batches  [][]Record
	batchErr error
}

func (m *mockBatchMutator) PutBatch(ctx context.Context, recs []Record) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.batches = append(m.batches, recs)
	return nil
}
