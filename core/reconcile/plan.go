package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// ReconcileWithPlan reconciles the spec's kind and returns the results
// together with the actions the given options would allow. It plans only;
// use ApplyPlan to execute.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts Options) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec.Adapter)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})

	summary, actions := buildPlanFromResults(results, cache, opts)

	return &Plan{
		Kind:    spec.Adapter.Kind(),
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a plan and returns how many ran.
// It refuses to run anything unless opts.Confirmed is set and opts.DryRun
// is not, and requires the adapter to implement Mutator.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if len(plan.Actions) == 0 {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s is read-only and cannot apply a plan", spec.Adapter.Kind())
	}

	var puts []Action
	var deletes []Action
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionPut:
			puts = append(puts, action)
		case ActionDelete:
			deletes = append(deletes, action)
		}
	}

	if len(puts) > 0 {
		if batcher, ok := spec.Adapter.(BatchPutter); ok {
			recs := make([]Record, len(puts))
			for i, action := range puts {
				recs[i] = action.Record
			}
			if err := batcher.PutBatch(ctx, recs); err != nil {
				return executed, fmt.Errorf("failed to batch put %s records: %w", spec.Adapter.Kind(), err)
			}
			executed += len(puts)
		} else {
			for _, action := range puts {
				if err := mutator.Put(ctx, action.Key, action.Record); err != nil {
					return executed, fmt.Errorf("failed to put %s %s: %w", spec.Adapter.Kind(), action.Key, err)
				}
				executed++
			}
		}
	}

	for _, action := range deletes {
		if err := mutator.Delete(ctx, action.Key); err != nil {
			return executed, fmt.Errorf("failed to delete %s %s: %w", spec.Adapter.Kind(), action.Key, err)
		}
		executed++
	}

	// The snapshot predates the writes; drop it.
	InvalidateCache(spec)

	return executed, nil
}

// ReconcileAndApply plans and, when the options allow, applies in one
// call. It returns the plan, the number of executed actions, and any
// error.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults derives the summary and the allowed actions.
func buildPlanFromResults(results []Result, cache *Cache, opts Options) (Summary, []Action) {
	var summary Summary
	var actions []Action

	summary.Total = len(results)

	for _, result := range results {
		if result.InDocument && !result.InStore {
			summary.MissingStore++
		}
		if result.InStore && !result.InDocument {
			summary.MissingDocument++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatched++
		}

		// Repair direction is one-way: the documents are the source of
		// truth, the store follows.
		if opts.DoSync && result.InDocument && (!result.InStore || len(result.Mismatch) > 0) {
			reason := "missing in store"
			if result.InStore {
				reason = fmt.Sprintf("drift: %v", result.Mismatch)
			}
			actions = append(actions, Action{
				Type:   ActionPut,
				Key:    result.Key,
				Reason: reason,
				Record: cache.Desired[result.Key],
			})
			summary.PutActions++
		}

		if opts.DoPurge && result.InStore && !result.InDocument {
			actions = append(actions, Action{
				Type:   ActionDelete,
				Key:    result.Key,
				Reason: "no document describes this row",
			})
			summary.DeleteActions++
		}
	}

	return summary, actions
}
