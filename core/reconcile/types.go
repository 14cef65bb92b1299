package reconcile

import "time"

// Record is one normalized world record. Adapters define the concrete
// type; the engine only moves records around and hands them back to the
// adapter for comparison.
type Record any

// Result is the reconciliation outcome for a single record key.
type Result struct {
	// Key is the record's primary key rendered as a string.
	Key string `json:"key"`

	// InDocument reports whether the authored documents describe the record.
	InDocument bool `json:"in_document"`

	// InStore reports whether the store currently holds the record.
	InStore bool `json:"in_store"`

	// Mismatch describes field-level drift between the two sides.
	// Each entry names the field and both values, e.g. "Title: doc=Vault store=Cellar".
	// Only populated when the record exists on both sides.
	Mismatch []string `json:"mismatch"`
}

// Complete reports whether the record exists on both sides with no drift.
func (r Result) Complete() bool {
	return r.InDocument && r.InStore && len(r.Mismatch) == 0
}

// Spec bundles the adapter and cache settings for one reconcile run.
type Spec struct {
	// Adapter provides kind-specific loading and comparison.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, every call rebuilds both indices.
	CacheTTL time.Duration
}

// CacheKey returns the key under which this spec's snapshot is cached.
func (s *Spec) CacheKey() string {
	return s.Adapter.Kind()
}

// ActionType names a planned mutation.
type ActionType string

const (
	// ActionPut writes the document's record to the store, replacing
	// whatever row is there. Planned for records the store is missing or
	// holds a drifted copy of.
	ActionPut ActionType = "put"

	// ActionDelete removes a store row no document describes.
	ActionDelete ActionType = "delete"
)

// Action is one planned mutation.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType `json:"type"`

	// Key is the record key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Record carries the desired record for put actions.
	Record Record `json:"-"`
}

// Plan holds reconciliation results and the actions that would repair them.
type Plan struct {
	// Kind is the record kind the plan covers.
	Kind string `json:"kind"`

	// Results contains per-record reconciliation data.
	Results []Result `json:"results"`

	// Actions contains the planned mutations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// Total is the number of unique record keys across both sides.
	Total int `json:"total"`

	// MissingStore counts authored records the store does not hold.
	MissingStore int `json:"missing_in_store"`

	// MissingDocument counts store rows no document describes.
	MissingDocument int `json:"missing_in_documents"`

	// Mismatched counts records present on both sides with field drift.
	Mismatched int `json:"mismatched"`

	// PutActions counts planned put (repair) actions.
	PutActions int `json:"put_actions"`

	// DeleteActions counts planned delete (purge) actions.
	DeleteActions int `json:"delete_actions"`
}

// Options controls which actions are planned and whether they execute.
type Options struct {
	// DryRun prevents execution of any mutation even when confirmed.
	DryRun bool

	// DoPurge plans deletes for store rows without document backing.
	DoPurge bool

	// DoSync plans puts for records the store is missing or holds a
	// drifted copy of.
	DoSync bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// Without it, ApplyPlan executes nothing.
	Confirmed bool
}
