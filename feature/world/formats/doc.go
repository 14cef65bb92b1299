// Package formats decodes hand-authored world documents.
//
// World documents come from several authoring eras. They disagree on field
// casing (RoomID, room_id, roomId) and on collection shape (keyed maps vs
// record arrays). This package wraps the raw JSON with lookups that accept
// all the observed spellings, so the normalizer works off one
// representation.
//
// Numbers are decoded as json.Number rather than float64, keeping decimal
// literals exact until they are encoded for the store.
package formats
