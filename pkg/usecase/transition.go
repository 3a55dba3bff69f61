package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// Transition moves a work item to the requested status. The status graph
// is fully connected within a kind: any status can be reached from any
// other, including terminal ones. Policy restrictions, if any, belong to
// the caller.
//
// Side-effect order is fixed: status write, then audit append, then
// notification. A failed notification never fails the transition.
func (u *WorkItemUseCase) Transition(ctx context.Context, orgID types.OrgID, id int64, status types.Status) (*model.WorkItem, error) {
	item, err := u.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !status.ValidFor(item.Kind) {
		return nil, goerr.Wrap(ErrInvalidStatus, "status not valid for kind",
			goerr.V("work_item_id", id),
			goerr.V("kind", item.Kind),
			goerr.V("status", status))
	}

	// Transitioning to the current status is a no-op: no audit entry,
	// no notification.
	if status == item.Status {
		return item, nil
	}

	updated, err := u.repo.WorkItem().UpdateStatus(ctx, orgID, id, status)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrWorkItemNotFound, "work item not found", goerr.V("work_item_id", id))
		}
		return nil, goerr.Wrap(err, "failed to update status", goerr.V("work_item_id", id))
	}

	description := fmt.Sprintf("Status ändrad från %s till %s",
		item.Status.Label(item.Kind), status.Label(item.Kind))

	actor := auth.ActorFromContext(ctx)

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  id,
		ActorID:     actor,
		Kind:        types.ActivityKindStatusChanged,
		Description: description,
		OldValue:    item.Status.String(),
		NewValue:    status.String(),
	}); err != nil {
		// The status write already landed; an un-audited change is left
		// for the reconciliation job, not retried inline.
		return nil, goerr.Wrap(err, "status changed but audit append failed",
			goerr.V("work_item_id", id))
	}

	if updated.AssigneeID != "" && updated.AssigneeID != actor {
		u.uc.dispatch(ctx, orgID, &model.Notification{
			RecipientID: updated.AssigneeID,
			Subject:     fmt.Sprintf("Statusändring: %s", updated.Title),
			Body:        description,
			Link:        u.uc.itemLink(id),
		})
	}

	return updated, nil
}
