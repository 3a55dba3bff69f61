package notify

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/utils/async"
)

// Async wraps a notifier so delivery runs in a background goroutine.
// Used for sinks doing network IO (Slack) so they never block the
// operation that triggered the notification. Delivery errors are logged
// by the dispatch helper.
type Async struct {
	inner Notifier
}

// NewAsync wraps the given notifier for background delivery
func NewAsync(inner Notifier) *Async {
	return &Async{inner: inner}
}

func (x *Async) Notify(ctx context.Context, orgID types.OrgID, notification *model.Notification) error {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return x.inner.Notify(ctx, orgID, notification)
	})
	return nil
}
