// Package history holds the immutable audit trail of item mutations and the
// pure logic built on top of it: field diffs, filtering, time windows,
// aggregation and reverts.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/item"
)

var (
	ErrNotFound        = errors.New("history entry not found")
	ErrRevertDeleted   = errors.New("deletion entries cannot be reverted")
	ErrNoPreviousState = errors.New("entry has no previous state to restore")
)

// Entry is one audit record of a create/edit/delete/revert event on an item.
// Entries are written once and never mutated.
type Entry struct {
	ID       uuid.UUID
	FolderID uuid.UUID
	UserID   uuid.UUID // acting user; uuid.Nil when unknown
	ItemID   uuid.UUID

	// PrevItem is nil for creations, ChangedItem is nil for deletions.
	PrevItem    *item.Snapshot
	ChangedItem *item.Snapshot

	OccurredAt time.Time

	IsCreated  bool
	IsEdited   bool
	IsDeleted  bool
	IsReverted bool
}

// Action is the human-readable classification of an entry.
type Action string

const (
	ActionCreated  Action = "Created"
	ActionEdited   Action = "Edited"
	ActionDeleted  Action = "Deleted"
	ActionReverted Action = "Reverted"
	ActionUnknown  Action = "Unknown"
)

// Action classifies the entry by its flags, first match wins. A record with no
// flag set is Unknown; that is a defined fallback, not an error.
func (e *Entry) Action() Action {
	switch {
	case e.IsCreated:
		return ActionCreated
	case e.IsEdited:
		return ActionEdited
	case e.IsDeleted:
		return ActionDeleted
	case e.IsReverted:
		return ActionReverted
	}

	return ActionUnknown
}

// ItemName returns the best-known name of the affected item, preferring the
// previous snapshot.
func (e *Entry) ItemName() string {
	if e.PrevItem != nil && e.PrevItem.Name != "" {
		return e.PrevItem.Name
	}

	if e.ChangedItem != nil {
		return e.ChangedItem.Name
	}

	return ""
}
