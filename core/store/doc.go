// Package store provides the adapter over the backing multi-table key-value
// store (DynamoDB).
//
// It wraps the AWS SDK v2 DynamoDB client behind a narrow API interface so
// that callers depend only on the operations the world data system needs and
// tests can substitute protocol-level doubles (see store/mocks and
// store/storetest).
//
// # Operations
//
//   - Get: single-item fetch by primary key, ErrNotFound when absent.
//   - Scan: full-table read, paging internally until the table is exhausted.
//   - Put: full-item upsert (idempotent overwrite).
//   - BatchPut: chunked bulk upsert with retry of unprocessed items.
//   - Update: partial SET update, optionally conditioned on item existence.
//   - Delete: single-item removal by primary key.
//   - ListTables / DescribeTable: store inspection.
//
// All record marshaling goes through the attributevalue codec; numeric fields
// use num.Decimal so values are carried as exact decimal strings.
//
// # Construction
//
// The Store is constructed once and passed into every component that touches
// the backing tables. Nothing in this package holds ambient or global state.
//
//	api, err := store.NewClient(cfg.Store)
//	st := store.New(api, logg)
//	err = st.Put(ctx, "rooms", room)
package store
