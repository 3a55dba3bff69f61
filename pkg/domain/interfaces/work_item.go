package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// WorkItemRepository defines the interface for WorkItem data access
type WorkItemRepository interface {
	// Create creates a new work item with auto-generated ID
	Create(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error)

	// Get retrieves a work item by ID
	Get(ctx context.Context, orgID types.OrgID, id int64) (*model.WorkItem, error)

	// List retrieves work items with optional filtering
	List(ctx context.Context, orgID types.OrgID, opts ...ListWorkItemOption) ([]*model.WorkItem, error)

	// Update replaces the detail fields of an existing work item. Status and
	// assignee fields are updated through the dedicated patch methods below
	// so concurrent lifecycle writes keep per-field last-write-wins semantics.
	Update(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error)

	// UpdateStatus patches only the status field
	UpdateStatus(ctx context.Context, orgID types.OrgID, id int64, status types.Status) (*model.WorkItem, error)

	// UpdateAssignee patches only the assigned user field; empty clears it
	UpdateAssignee(ctx context.Context, orgID types.OrgID, id int64, userID types.UserID) (*model.WorkItem, error)

	// UpdateTeam patches only the assigned team field; empty clears it
	UpdateTeam(ctx context.Context, orgID types.OrgID, id int64, teamID types.TeamID) (*model.WorkItem, error)

	// Delete removes a work item. This is a store-level operation; the
	// lifecycle core never calls it.
	Delete(ctx context.Context, orgID types.OrgID, id int64) error
}
