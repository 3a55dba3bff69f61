package model

import (
	"time"

	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// WorkItem represents a sales lead or a service order tracked through its
// status lifecycle. Status and assignee fields are mutated only through the
// transition and assignment use cases.
type WorkItem struct {
	ID          int64
	Kind        types.WorkItemKind
	Title       string
	Description string
	Estimate    *float64 // monetary estimate, non-negative when set
	Status      types.Status
	Source      string // origin tag, e.g. "web", "phone", empty when unknown
	OrgID       types.OrgID
	CustomerID  string
	AssigneeID  types.UserID // empty = unassigned
	TeamID      types.TeamID // empty = no team
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
