package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// Inbox stores notifications in the repository so users can read them
// from the in-app notification list.
type Inbox struct {
	repo interfaces.Repository
}

// NewInbox creates a repository-backed notifier
func NewInbox(repo interfaces.Repository) *Inbox {
	return &Inbox{repo: repo}
}

func (x *Inbox) Notify(ctx context.Context, orgID types.OrgID, notification *model.Notification) error {
	if _, err := x.repo.Notification().Create(ctx, orgID, notification); err != nil {
		return goerr.Wrap(err, "failed to store notification",
			goerr.V("recipient", notification.RecipientID))
	}
	return nil
}
