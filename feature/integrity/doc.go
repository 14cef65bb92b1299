// Package integrity provides world health checks.
//
// The world feature loads documents into tables; this package answers
// whether that pipeline is currently trustworthy: are the authored
// documents readable, do the tables exist with the right key schemas,
// and do the stored records still match what the documents describe.
//
// # Checks Provided
//
//   - Documents: Verifies each configured world document is present, parses, and carries records.
//   - Tables: Validates that every world table exists and exposes the expected primary key.
//   - Contents: Reconciles stored records against the documents per kind (delegates to the reconcile engine).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/documents : Runs the document check.
//   - GET /integrity/tables : Runs the table schema check.
//   - GET /integrity/contents : Reconciles every kind (summaries only).
//   - GET /integrity/contents?kind=rooms : Full per-record plan for one kind.
package integrity
