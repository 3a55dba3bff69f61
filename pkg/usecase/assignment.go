package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/utils/errutil"
)

// AssignUser sets or clears the responsible user of a work item. Empty
// userID clears the assignment, which always succeeds when the item
// exists. The new assignee is notified unless they performed the
// assignment themselves.
func (u *WorkItemUseCase) AssignUser(ctx context.Context, orgID types.OrgID, id int64, userID types.UserID) (*model.WorkItem, error) {
	item, err := u.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	var assignee *model.User
	if userID != "" {
		assignee, err = u.repo.Directory().GetUser(ctx, orgID, userID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrInvalidAssignee, "user not in directory",
					goerr.V("user_id", userID))
			}
			return nil, goerr.Wrap(err, "failed to resolve assignee", goerr.V("user_id", userID))
		}
	}

	if item.AssigneeID == userID {
		return item, nil
	}

	updated, err := u.repo.WorkItem().UpdateAssignee(ctx, orgID, id, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assignee", goerr.V("work_item_id", id))
	}

	description := "Tilldelning borttagen"
	if assignee != nil {
		description = fmt.Sprintf("Tilldelad till %s", assignee.Name)
	}

	actor := auth.ActorFromContext(ctx)

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  id,
		ActorID:     actor,
		Kind:        types.ActivityKindAssigned,
		Description: description,
		OldValue:    string(item.AssigneeID),
		NewValue:    string(userID),
	}); err != nil {
		return nil, goerr.Wrap(err, "assignee changed but audit append failed",
			goerr.V("work_item_id", id))
	}

	if userID != "" && userID != actor {
		u.uc.dispatch(ctx, orgID, &model.Notification{
			RecipientID: userID,
			Subject:     fmt.Sprintf("Ny tilldelning: %s", updated.Title),
			Body:        description,
			Link:        u.uc.itemLink(id),
		})
	}

	return updated, nil
}

// AssignTeam sets or clears the responsible team of a work item. On a
// change, every team member except the actor is notified.
func (u *WorkItemUseCase) AssignTeam(ctx context.Context, orgID types.OrgID, id int64, teamID types.TeamID) (*model.WorkItem, error) {
	item, err := u.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	var team *model.Team
	if teamID != "" {
		team, err = u.repo.Directory().GetTeam(ctx, orgID, teamID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrInvalidAssignee, "team not in directory",
					goerr.V("team_id", teamID))
			}
			return nil, goerr.Wrap(err, "failed to resolve team", goerr.V("team_id", teamID))
		}
	}

	if item.TeamID == teamID {
		return item, nil
	}

	updated, err := u.repo.WorkItem().UpdateTeam(ctx, orgID, id, teamID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update team", goerr.V("work_item_id", id))
	}

	description := "Teamtilldelning borttagen"
	if team != nil {
		description = fmt.Sprintf("Tilldelad till teamet %s", team.Name)
	}

	actor := auth.ActorFromContext(ctx)

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  id,
		ActorID:     actor,
		Kind:        types.ActivityKindTeamAssigned,
		Description: description,
		OldValue:    string(item.TeamID),
		NewValue:    string(teamID),
	}); err != nil {
		return nil, goerr.Wrap(err, "team changed but audit append failed",
			goerr.V("work_item_id", id))
	}

	if team != nil {
		u.notifyTeam(ctx, orgID, team, actor, &model.Notification{
			Subject: fmt.Sprintf("Teamet tilldelat: %s", updated.Title),
			Body:    description,
			Link:    u.uc.itemLink(id),
		})
	}

	return updated, nil
}

// notifyTeam fans the notification out to all team members except the
// actor. Delivery is best-effort per member.
func (u *WorkItemUseCase) notifyTeam(ctx context.Context, orgID types.OrgID, team *model.Team, actor types.UserID, template *model.Notification) {
	var eg errgroup.Group
	for _, memberID := range team.MemberIDs {
		if memberID == actor {
			continue
		}
		n := &model.Notification{
			RecipientID: memberID,
			Subject:     template.Subject,
			Body:        template.Body,
			Link:        template.Link,
		}
		eg.Go(func() error {
			return u.uc.deliver(ctx, orgID, n)
		})
	}
	errutil.Handle(ctx, eg.Wait(), "failed to notify team members")
}
