package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// ActivityID is a UUID-based identifier for Activity
type ActivityID string

// NewActivityID generates a new UUID v4 ActivityID
func NewActivityID() ActivityID {
	return ActivityID(uuid.New().String())
}

// Activity is one immutable audit trail entry for a work item. Entries are
// never updated or deleted; the per-item order is CreatedAt descending with
// Seq as the tiebreak for entries sharing a timestamp.
type Activity struct {
	ID          ActivityID
	WorkItemID  int64
	ActorID     types.UserID // empty = system-generated
	Kind        types.ActivityKind
	Description string
	OldValue    string
	NewValue    string
	CreatedAt   time.Time
	Seq         int64 // insertion sequence, assigned by the repository
}
