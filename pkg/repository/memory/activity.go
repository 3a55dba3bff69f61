package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// activityKey is a composite key for activity entries (orgID + workItemID)
type activityKey struct {
	orgID      types.OrgID
	workItemID int64
}

type activityRepository struct {
	mu      sync.RWMutex
	entries map[activityKey][]*model.Activity
	nextSeq int64
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		entries: make(map[activityKey][]*model.Activity),
	}
}

func copyActivity(a *model.Activity) *model.Activity {
	copied := *a
	return &copied
}

func (r *activityRepository) Append(ctx context.Context, orgID types.OrgID, activity *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := activityKey{orgID: orgID, workItemID: activity.WorkItemID}

	created := copyActivity(activity)
	if created.ID == "" {
		created.ID = model.NewActivityID()
	}
	created.CreatedAt = time.Now().UTC()
	r.nextSeq++
	created.Seq = r.nextSeq

	r.entries[key] = append(r.entries[key], created)
	return copyActivity(created), nil
}

func (r *activityRepository) ListByWorkItem(ctx context.Context, orgID types.OrgID, workItemID int64) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := activityKey{orgID: orgID, workItemID: workItemID}
	all, exists := r.entries[key]
	if !exists {
		return []*model.Activity{}, nil
	}

	result := make([]*model.Activity, 0, len(all))
	for _, a := range all {
		result = append(result, copyActivity(a))
	}

	// Newest first; insertion sequence breaks timestamp ties
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Seq > result[j].Seq
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
