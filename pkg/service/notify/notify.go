package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// Notifier delivers a notification to its recipient. Delivery is
// best-effort from the caller's point of view: failures are reported
// but must not abort the operation that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, orgID types.OrgID, notification *model.Notification) error
}

// Multi fans out a notification to several notifiers. Every notifier
// is attempted even when an earlier one fails.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, orgID types.OrgID, notification *model.Notification) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, orgID, notification); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return goerr.New("notification delivery failed",
			goerr.V("recipient", notification.RecipientID),
			goerr.V("errors", errs))
	}
	return nil
}
