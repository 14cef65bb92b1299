package items

import "world-manager/feature/world/models"

// AttachState tracks the attach protocol. The two writes are not atomic,
// so the protocol names every state it can end in.
type AttachState string

const (
	// StateCreated means the item row is written but the room is not yet
	// updated. Attach never returns this state; it only passes through it.
	StateCreated AttachState = "Created"
	// StateAttached means both writes landed. This is the only success.
	StateAttached AttachState = "Attached"
	// StateRollingBack means the room step failed and the compensating
	// delete is in flight.
	StateRollingBack AttachState = "RollingBack"
	// StateFailed means the attach failed and the item row was cleaned up.
	StateFailed AttachState = "Failed"
	// StateOrphanedItem means the attach failed and the compensating
	// delete failed too: an item row may remain that no room references.
	// This terminal state is logged and accepted, never retried.
	StateOrphanedItem AttachState = "OrphanedItem"
)

// AttachResult reports the end state of one attach.
type AttachResult struct {
	State AttachState `json:"state"`
	Item  models.Item `json:"item"`
	// Err is the failure that stopped the attach, nil on success.
	Err error `json:"-"`
	// RollbackErr is set when the compensating delete itself failed.
	RollbackErr error `json:"-"`
}

// Succeeded reports whether the item is stored and the room references it.
func (r AttachResult) Succeeded() bool {
	return r.State == StateAttached
}
