package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

type workItemRepository struct {
	mu     sync.RWMutex
	items  map[types.OrgID]map[int64]*model.WorkItem
	nextID map[types.OrgID]int64
}

func newWorkItemRepository() *workItemRepository {
	return &workItemRepository{
		items:  make(map[types.OrgID]map[int64]*model.WorkItem),
		nextID: make(map[types.OrgID]int64),
	}
}

func (r *workItemRepository) ensureOrg(orgID types.OrgID) {
	if _, exists := r.items[orgID]; !exists {
		r.items[orgID] = make(map[int64]*model.WorkItem)
	}
	if _, exists := r.nextID[orgID]; !exists {
		r.nextID[orgID] = 1
	}
}

// copyWorkItem creates a deep copy of a work item
func copyWorkItem(item *model.WorkItem) *model.WorkItem {
	copied := *item
	if item.Estimate != nil {
		estimate := *item.Estimate
		copied.Estimate = &estimate
	}
	return &copied
}

func (r *workItemRepository) Create(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOrg(orgID)

	now := time.Now().UTC()
	created := copyWorkItem(item)
	created.ID = r.nextID[orgID]
	created.OrgID = orgID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[orgID]++

	r.items[orgID][created.ID] = created
	return copyWorkItem(created), nil
}

func (r *workItemRepository) Get(ctx context.Context, orgID types.OrgID, id int64) (*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
	}

	return copyWorkItem(item), nil
}

func (r *workItemRepository) List(ctx context.Context, orgID types.OrgID, opts ...interfaces.ListWorkItemOption) ([]*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.BuildListWorkItemConfig(opts...)

	result := make([]*model.WorkItem, 0)
	for _, item := range r.items[orgID] {
		if kind := cfg.Kind(); kind != nil && item.Kind != *kind {
			continue
		}
		if status := cfg.Status(); status != nil && item.Status != *status {
			continue
		}
		if assignee := cfg.Assignee(); assignee != nil && item.AssigneeID != *assignee {
			continue
		}
		if team := cfg.Team(); team != nil && item.TeamID != *team {
			continue
		}
		if cfg.Unassigned() && item.AssigneeID != "" {
			continue
		}
		if after := cfg.CreatedAfter(); after != nil && item.CreatedAt.Before(*after) {
			continue
		}
		if before := cfg.CreatedBefore(); before != nil && !item.CreatedAt.Before(*before) {
			continue
		}
		if sub := cfg.TitleContains(); sub != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(sub)) {
			continue
		}
		result = append(result, copyWorkItem(item))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *workItemRepository) Update(ctx context.Context, orgID types.OrgID, item *model.WorkItem) (*model.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[orgID][item.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", item.ID))
	}

	updated := copyWorkItem(item)
	updated.OrgID = orgID
	updated.Kind = existing.Kind
	updated.Status = existing.Status
	updated.AssigneeID = existing.AssigneeID
	updated.TeamID = existing.TeamID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.items[orgID][item.ID] = updated
	return copyWorkItem(updated), nil
}

func (r *workItemRepository) UpdateStatus(ctx context.Context, orgID types.OrgID, id int64, status types.Status) (*model.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
	}

	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	return copyWorkItem(item), nil
}

func (r *workItemRepository) UpdateAssignee(ctx context.Context, orgID types.OrgID, id int64, userID types.UserID) (*model.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
	}

	item.AssigneeID = userID
	item.UpdatedAt = time.Now().UTC()
	return copyWorkItem(item), nil
}

func (r *workItemRepository) UpdateTeam(ctx context.Context, orgID types.OrgID, id int64, teamID types.TeamID) (*model.WorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
	}

	item.TeamID = teamID
	item.UpdatedAt = time.Now().UTC()
	return copyWorkItem(item), nil
}

func (r *workItemRepository) Delete(ctx context.Context, orgID types.OrgID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[orgID][id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "work item not found", goerr.V("id", id))
	}

	delete(r.items[orgID], id)
	return nil
}
