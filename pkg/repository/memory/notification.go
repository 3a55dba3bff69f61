package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[types.OrgID]map[model.NotificationID]*model.Notification
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[types.OrgID]map[model.NotificationID]*model.Notification),
	}
}

func (r *notificationRepository) ensureOrg(orgID types.OrgID) {
	if _, exists := r.notifications[orgID]; !exists {
		r.notifications[orgID] = make(map[model.NotificationID]*model.Notification)
	}
}

func copyNotification(n *model.Notification) *model.Notification {
	copied := *n
	return &copied
}

func (r *notificationRepository) Create(ctx context.Context, orgID types.OrgID, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOrg(orgID)

	created := copyNotification(n)
	if created.ID == "" {
		created.ID = model.NewNotificationID()
	}
	created.CreatedAt = time.Now().UTC()

	r.notifications[orgID][created.ID] = created
	return copyNotification(created), nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, orgID types.OrgID, userID types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Notification, 0)
	for _, n := range r.notifications[orgID] {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		result = append(result, copyNotification(n))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, orgID types.OrgID, id model.NotificationID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.notifications[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}

	n.Read = true
	return copyNotification(n), nil
}
