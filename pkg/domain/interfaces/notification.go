package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NotificationRepository defines the interface for Notification data access
type NotificationRepository interface {
	// Create persists a new notification with auto-generated ID
	Create(ctx context.Context, orgID types.OrgID, n *model.Notification) (*model.Notification, error)

	// ListByRecipient retrieves notifications for a user, newest first.
	// When unreadOnly is set, read notifications are excluded.
	ListByRecipient(ctx context.Context, orgID types.OrgID, userID types.UserID, unreadOnly bool) ([]*model.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, orgID types.OrgID, id model.NotificationID) (*model.Notification, error)
}
