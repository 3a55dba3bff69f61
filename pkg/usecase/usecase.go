package usecase

import (
	"context"
	"fmt"

	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/service/notify"
	"github.com/workyard-lab/workyard/pkg/utils/errutil"
)

type UseCases struct {
	repo      interfaces.Repository
	notifier  notify.Notifier
	supplier  interfaces.ContextSupplier
	baseURL   string
	workTypes map[types.WorkTypeID]bool

	WorkItem     *WorkItemUseCase
	Note         *NoteUseCase
	TimeTrack    *TimeTrackUseCase
	Notification *NotificationUseCase
}

type Option func(*UseCases)

// WithNotifier sets the notification sink. Without one, notifications
// are silently skipped.
func WithNotifier(n notify.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithContextSupplier sets the optional location/environment supplier
// sampled when a time session starts
func WithContextSupplier(s interfaces.ContextSupplier) Option {
	return func(uc *UseCases) {
		uc.supplier = s
	}
}

// WithBaseURL sets the base URL used for deep links in notifications
func WithBaseURL(u string) Option {
	return func(uc *UseCases) {
		uc.baseURL = u
	}
}

// WithWorkTypes restricts time session work types to the given set.
// Without it, any work type tag is accepted.
func WithWorkTypes(ids []types.WorkTypeID) Option {
	return func(uc *UseCases) {
		uc.workTypes = make(map[types.WorkTypeID]bool, len(ids))
		for _, id := range ids {
			uc.workTypes[id] = true
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.WorkItem = &WorkItemUseCase{repo: repo, uc: uc}
	uc.Note = &NoteUseCase{repo: repo}
	uc.TimeTrack = &TimeTrackUseCase{repo: repo, supplier: uc.supplier, workTypes: uc.workTypes}
	uc.Notification = &NotificationUseCase{repo: repo}

	return uc
}

// deliver passes a notification to the configured sink. Callers suppress
// self-notification before calling; the dispatcher itself has no actor
// awareness.
func (uc *UseCases) deliver(ctx context.Context, orgID types.OrgID, n *model.Notification) error {
	if uc.notifier == nil || n.RecipientID == "" {
		return nil
	}
	return uc.notifier.Notify(ctx, orgID, n)
}

// dispatch delivers a notification best-effort. Delivery failures are
// logged and never propagated: the triggering operation has already
// succeeded.
func (uc *UseCases) dispatch(ctx context.Context, orgID types.OrgID, n *model.Notification) {
	errutil.Handle(ctx, uc.deliver(ctx, orgID, n), "failed to deliver notification")
}

// itemLink renders the deep link to a work item for notifications
func (uc *UseCases) itemLink(id int64) string {
	return fmt.Sprintf("%s/work-items/%d", uc.baseURL, id)
}
