// Package models defines the typed world records and the normalizing
// constructors that build them from authored documents.
//
// The record types mirror the live table attributes (RoomID, ExitID,
// ItemID and friends keep their singular store spellings). Numeric fields
// use num.Decimal throughout so authored literals like 0.5 reach the store
// exactly as written.
//
// # Normalization
//
// The Normalize constructors are the only place raw document fields are
// read. They accept every observed authoring dialect: exits embedded in
// rooms (keyed by direction or as arrays), standalone exit collections,
// and snake_case or PascalCase field names. Records that lack their
// identity field fail with ErrMissingIdentity; other missing fields are
// defaulted or rejected according to the configured Policy.
package models
