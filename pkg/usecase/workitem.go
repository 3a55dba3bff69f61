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

// WorkItemUseCase covers work item intake, lifecycle transitions,
// assignment and the activity trail
type WorkItemUseCase struct {
	repo interfaces.Repository
	uc   *UseCases
}

// CreateWorkItemInput carries the intake fields for a new work item
type CreateWorkItemInput struct {
	Kind        types.WorkItemKind
	Title       string
	Description string
	Estimate    *float64
	Source      string
	CustomerID  string
}

// Validate checks the intake constraints
func (x *CreateWorkItemInput) Validate() error {
	if !x.Kind.IsValid() {
		return goerr.Wrap(ErrInvalidArgument, "invalid work item kind", goerr.V("kind", x.Kind))
	}
	if x.Title == "" {
		return goerr.Wrap(ErrInvalidArgument, "title is required")
	}
	if x.Estimate != nil && *x.Estimate < 0 {
		return goerr.Wrap(ErrInvalidArgument, "estimate must be non-negative",
			goerr.V("estimate", *x.Estimate))
	}
	return nil
}

// Create performs the intake action: the item starts in the kind's
// initial status and gets a creation entry in its activity trail.
func (u *WorkItemUseCase) Create(ctx context.Context, orgID types.OrgID, input *CreateWorkItemInput) (*model.WorkItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := u.repo.WorkItem().Create(ctx, orgID, &model.WorkItem{
		Kind:        input.Kind,
		Title:       input.Title,
		Description: input.Description,
		Estimate:    input.Estimate,
		Status:      types.InitialStatusFor(input.Kind),
		Source:      input.Source,
		OrgID:       orgID,
		CustomerID:  input.CustomerID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create work item")
	}

	description := "Lead skapad"
	if created.Kind == types.WorkItemKindOrder {
		description = "Arbetsorder skapad"
	}
	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  created.ID,
		ActorID:     auth.ActorFromContext(ctx),
		Kind:        types.ActivityKindCreated,
		Description: description,
	}); err != nil {
		return nil, goerr.Wrap(err, "work item created but audit append failed",
			goerr.V("work_item_id", created.ID))
	}

	return created, nil
}

// Get retrieves a work item
func (u *WorkItemUseCase) Get(ctx context.Context, orgID types.OrgID, id int64) (*model.WorkItem, error) {
	item, err := u.repo.WorkItem().Get(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrWorkItemNotFound, "work item not found", goerr.V("work_item_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("work_item_id", id))
	}
	return item, nil
}

// List retrieves work items with optional filters
func (u *WorkItemUseCase) List(ctx context.Context, orgID types.OrgID, opts ...interfaces.ListWorkItemOption) ([]*model.WorkItem, error) {
	items, err := u.repo.WorkItem().List(ctx, orgID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list work items")
	}
	return items, nil
}

// UpdateDetailsInput carries the detail fields a caller may patch. Nil
// means leave unchanged; lifecycle fields are out of reach here.
type UpdateDetailsInput struct {
	Title       *string
	Description *string
	Estimate    *float64
	Source      *string
	CustomerID  *string
}

// UpdateDetails patches the descriptive fields of a work item without
// lifecycle side effects
func (u *WorkItemUseCase) UpdateDetails(ctx context.Context, orgID types.OrgID, id int64, input *UpdateDetailsInput) (*model.WorkItem, error) {
	item, err := u.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, goerr.Wrap(ErrInvalidArgument, "title is required")
		}
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Estimate != nil {
		if *input.Estimate < 0 {
			return nil, goerr.Wrap(ErrInvalidArgument, "estimate must be non-negative",
				goerr.V("estimate", *input.Estimate))
		}
		item.Estimate = input.Estimate
	}
	if input.Source != nil {
		item.Source = *input.Source
	}
	if input.CustomerID != nil {
		item.CustomerID = *input.CustomerID
	}

	updated, err := u.repo.WorkItem().Update(ctx, orgID, item)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update work item", goerr.V("work_item_id", id))
	}
	return updated, nil
}

// ConvertLead creates a service order from a won lead. The lead moves to
// its won status and gets a conversion entry pointing at the new order.
func (u *WorkItemUseCase) ConvertLead(ctx context.Context, orgID types.OrgID, leadID int64) (*model.WorkItem, error) {
	lead, err := u.Get(ctx, orgID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Kind != types.WorkItemKindLead {
		return nil, goerr.Wrap(ErrInvalidArgument, "only leads can be converted",
			goerr.V("work_item_id", leadID), goerr.V("kind", lead.Kind))
	}

	order, err := u.repo.WorkItem().Create(ctx, orgID, &model.WorkItem{
		Kind:        types.WorkItemKindOrder,
		Title:       lead.Title,
		Description: lead.Description,
		Estimate:    lead.Estimate,
		Status:      types.InitialStatusFor(types.WorkItemKindOrder),
		Source:      lead.Source,
		OrgID:       orgID,
		CustomerID:  lead.CustomerID,
		AssigneeID:  lead.AssigneeID,
		TeamID:      lead.TeamID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create order from lead", goerr.V("lead_id", leadID))
	}

	actor := auth.ActorFromContext(ctx)

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  order.ID,
		ActorID:     actor,
		Kind:        types.ActivityKindCreated,
		Description: fmt.Sprintf("Arbetsorder skapad från lead #%d", lead.ID),
	}); err != nil {
		return nil, goerr.Wrap(err, "order created but audit append failed",
			goerr.V("work_item_id", order.ID))
	}

	if lead.Status != types.LeadStatusWon {
		if _, err := u.Transition(ctx, orgID, leadID, types.LeadStatusWon); err != nil {
			return nil, goerr.Wrap(err, "order created but lead status update failed",
				goerr.V("lead_id", leadID), goerr.V("order_id", order.ID))
		}
	}

	if _, err := u.repo.Activity().Append(ctx, orgID, &model.Activity{
		WorkItemID:  lead.ID,
		ActorID:     actor,
		Kind:        types.ActivityKindConverted,
		Description: fmt.Sprintf("Konverterad till arbetsorder #%d", order.ID),
		NewValue:    fmt.Sprintf("%d", order.ID),
	}); err != nil {
		return nil, goerr.Wrap(err, "lead converted but audit append failed",
			goerr.V("lead_id", leadID))
	}

	return order, nil
}

// ListActivities retrieves the activity trail of a work item, newest first
func (u *WorkItemUseCase) ListActivities(ctx context.Context, orgID types.OrgID, id int64) ([]*model.Activity, error) {
	if _, err := u.Get(ctx, orgID, id); err != nil {
		return nil, err
	}

	activities, err := u.repo.Activity().ListByWorkItem(ctx, orgID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities", goerr.V("work_item_id", id))
	}
	return activities, nil
}
