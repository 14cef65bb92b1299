// Package reconcile compares two renditions of the game world: the
// authored documents (desired state) and the store tables (actual state).
// It reports per-record presence and field drift, and can plan and apply
// the writes that bring the store back in line with the documents.
//
// # Architecture
//
// The package consists of three parts:
//
//  1. Engine: builds the union of record keys from both sides, detects
//     presence/absence, and collects field mismatches.
//
//  2. Adapter: kind-specific implementations that define how to load and
//     index each side and how to compare two records. An adapter that also
//     implements Mutator can execute planned actions.
//
//  3. Cache: TTL-based snapshot of both indices with stampede protection,
//     so repeated inspection calls don't re-read the documents and re-scan
//     the tables every time.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Adapter:  adapter,
//	    CacheTTL: 5 * time.Minute,
//	}
//
//	// Full report
//	results, err := reconcile.ReconcileAll(ctx, spec)
//
//	// Plan and apply repairs
//	opts := reconcile.Options{DoSync: true, Confirmed: true}
//	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, opts)
//
// Applying a plan is gated twice: actions are only planned for the modes
// the options enable (DoSync, DoPurge), and nothing executes unless the
// options carry Confirmed and not DryRun.
package reconcile
