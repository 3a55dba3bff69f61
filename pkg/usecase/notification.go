package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NotificationUseCase covers the in-app notification inbox
type NotificationUseCase struct {
	repo interfaces.Repository
}

// Inbox retrieves a user's notifications, newest first
func (u *NotificationUseCase) Inbox(ctx context.Context, orgID types.OrgID, userID types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	notifications, err := u.repo.Notification().ListByRecipient(ctx, orgID, userID, unreadOnly)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("user_id", userID))
	}
	return notifications, nil
}

// MarkRead marks a notification as read
func (u *NotificationUseCase) MarkRead(ctx context.Context, orgID types.OrgID, id model.NotificationID) (*model.Notification, error) {
	n, err := u.repo.Notification().MarkRead(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotificationNotFound, "notification not found",
				goerr.V("notification_id", id))
		}
		return nil, goerr.Wrap(err, "failed to mark notification read", goerr.V("notification_id", id))
	}
	return n, nil
}
