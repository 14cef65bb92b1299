package reconcile

import "context"

// Adapter defines the kind-specific half of a reconciliation. Each world
// record kind (rooms, exits, archetypes, prototypes) supplies one: how to
// load and index each side, and how to compare two records of that kind.
type Adapter interface {
	// Kind returns the unique record kind this adapter covers.
	Kind() string

	// LoadDesired reads the authored documents and returns their records
	// indexed by key. When a key repeats, the last occurrence wins, the
	// same way the bulk loader resolves duplicates.
	LoadDesired(ctx context.Context) (map[string]Record, error)

	// LoadActual scans the store table and returns its rows indexed by key.
	LoadActual(ctx context.Context) (map[string]Record, error)

	// Compare reports field-level drift between a document record and the
	// stored row. Both records are guaranteed non-nil. Each string names
	// the field and both values, e.g. "Title: doc=Vault store=Cellar".
	Compare(desired, actual Record) []string
}

// Mutator is the optional write half of an adapter. ApplyPlan requires it;
// read-only adapters simply don't implement it.
type Mutator interface {
	// Put writes one desired record, replacing the stored row.
	Put(ctx context.Context, key string, rec Record) error

	// Delete removes one stored row.
	Delete(ctx context.Context, key string) error
}

// BatchPutter is an optional optimization for adapters whose store offers
// a batch write API. When implemented, ApplyPlan issues all planned puts
// in one call instead of row by row.
type BatchPutter interface {
	// PutBatch writes every record in one batched operation.
	PutBatch(ctx context.Context, recs []Record) error
}
