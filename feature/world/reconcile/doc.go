// Package reconcile adapts the world's record kinds to the drift engine
// in core/reconcile. Each adapter normalizes the authored documents on
// one side and scans the matching store table on the other, so a
// reconcile run answers: would loading the documents right now change
// anything?
//
// Repairs inherit the bulk loader's replace semantics. A sync rewrites
// the whole row from the document, which also drops item attachments the
// documents do not author; the drift report ignores those attachments in
// the first place, so a synced room immediately reads clean.
package reconcile
