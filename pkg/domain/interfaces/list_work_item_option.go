package interfaces

import (
	"time"

	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// ListWorkItemOption is a functional option for filtering work items in List
type ListWorkItemOption func(*listWorkItemConfig)

type listWorkItemConfig struct {
	kind          *types.WorkItemKind
	status        *types.Status
	assigneeID    *types.UserID
	teamID        *types.TeamID
	unassigned    bool
	createdAfter  *time.Time
	createdBefore *time.Time
	titleContains string
}

// WithKind filters work items by kind
func WithKind(kind types.WorkItemKind) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.kind = &kind
	}
}

// WithStatus filters work items by status
func WithStatus(status types.Status) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.status = &status
	}
}

// WithAssignee filters work items by assigned user
func WithAssignee(userID types.UserID) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.assigneeID = &userID
	}
}

// WithTeam filters work items by assigned team
func WithTeam(teamID types.TeamID) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.teamID = &teamID
	}
}

// WithUnassigned filters work items without an assigned user
func WithUnassigned() ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.unassigned = true
	}
}

// WithCreatedAfter filters work items created at or after t
func WithCreatedAfter(t time.Time) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.createdAfter = &t
	}
}

// WithCreatedBefore filters work items created before t
func WithCreatedBefore(t time.Time) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.createdBefore = &t
	}
}

// WithTitleContains filters work items whose title contains the substring
// (case-insensitive)
func WithTitleContains(s string) ListWorkItemOption {
	return func(c *listWorkItemConfig) {
		c.titleContains = s
	}
}

// BuildListWorkItemConfig builds a listWorkItemConfig from options
func BuildListWorkItemConfig(opts ...ListWorkItemOption) *listWorkItemConfig {
	cfg := &listWorkItemConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Kind returns the kind filter value, or nil if not set
func (c *listWorkItemConfig) Kind() *types.WorkItemKind { return c.kind }

// Status returns the status filter value, or nil if not set
func (c *listWorkItemConfig) Status() *types.Status { return c.status }

// Assignee returns the assignee filter value, or nil if not set
func (c *listWorkItemConfig) Assignee() *types.UserID { return c.assigneeID }

// Team returns the team filter value, or nil if not set
func (c *listWorkItemConfig) Team() *types.TeamID { return c.teamID }

// Unassigned returns whether only unassigned items are requested
func (c *listWorkItemConfig) Unassigned() bool { return c.unassigned }

// CreatedAfter returns the lower creation time bound, or nil if not set
func (c *listWorkItemConfig) CreatedAfter() *time.Time { return c.createdAfter }

// CreatedBefore returns the upper creation time bound, or nil if not set
func (c *listWorkItemConfig) CreatedBefore() *time.Time { return c.createdBefore }

// TitleContains returns the title substring filter, or empty if not set
func (c *listWorkItemConfig) TitleContains() string { return c.titleContains }
