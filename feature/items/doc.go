// Package items mints live items from stored prototypes and attaches them
// to rooms.
//
// Minting copies the prototype template into a fresh item row with its own
// ItemID; the prototype is never mutated. Attachment is a small saga: the
// item row is written first, then the owning room's ItemID list is
// re-written to include it. If the room update fails the item row is
// deleted again so the store never holds an item no room references. A
// failed rollback leaves the item row orphaned, which is logged and
// reported but not retried.
//
// # HTTP Endpoints
//
//   - GET  /items/:id        fetch one item
//   - POST /rooms/:id/items  spawn a prototype into a room
package items
