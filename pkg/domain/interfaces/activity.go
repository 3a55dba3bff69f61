package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// ActivityRepository defines the interface for the append-only activity log.
// No update or delete operation exists; entries are immutable once appended.
type ActivityRepository interface {
	// Append appends a new activity entry, assigning ID, CreatedAt and the
	// insertion sequence number
	Append(ctx context.Context, orgID types.OrgID, activity *model.Activity) (*model.Activity, error)

	// ListByWorkItem retrieves the activity trail for a work item, newest
	// first. Entries with equal timestamps are ordered by insertion sequence.
	ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Activity, error)
}
