package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

func TestCreateWorkItem(t *testing.T) {
	t.Run("lead starts in initial status with creation entry", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		estimate := 125000.0
		item, err := uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
			Kind:        types.WorkItemKindLead,
			Title:       "Takbyte Villa Ekhagen",
			Description: "Byte av tegeltak, ca 180 kvm",
			Estimate:    &estimate,
			Source:      "web",
			CustomerID:  "C100",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, item.Status).Equal(types.LeadStatusNew)
		gt.Value(t, item.Kind).Equal(types.WorkItemKindLead)
		gt.Value(t, *item.Estimate).Equal(125000.0)

		activities, err := uc.WorkItem.ListActivities(ctx, testOrgID, item.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(1)
		gt.Value(t, activities[0].Kind).Equal(types.ActivityKindCreated)
		gt.Value(t, activities[0].Description).Equal("Lead skapad")
	})

	t.Run("order starts in initial status", func(t *testing.T) {
		uc, _ := setup(t)

		item, err := uc.WorkItem.Create(actorCtx("U1"), testOrgID, &usecase.CreateWorkItemInput{
			Kind:  types.WorkItemKindOrder,
			Title: "Installation värmepump",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, item.Status).Equal(types.OrderStatusNew)
	})

	t.Run("input validation", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		_, err := uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
			Kind: types.WorkItemKindLead,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()

		negative := -1.0
		_, err = uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
			Kind:     types.WorkItemKindLead,
			Title:    "x",
			Estimate: &negative,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()

		_, err = uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
			Kind:  "project",
			Title: "x",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()
	})
}

func TestUpdateDetails(t *testing.T) {
	t.Run("patches fields without lifecycle side effects", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		lead := createLead(t, uc, "Gammalt namn")
		title := "Nytt namn"
		estimate := 50000.0
		updated, err := uc.WorkItem.UpdateDetails(ctx, testOrgID, lead.ID, &usecase.UpdateDetailsInput{
			Title:    &title,
			Estimate: &estimate,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal("Nytt namn")
		gt.Value(t, *updated.Estimate).Equal(50000.0)
		gt.Value(t, updated.Status).Equal(types.LeadStatusNew)

		activities, err := uc.WorkItem.ListActivities(ctx, testOrgID, lead.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(1) // only the creation entry
	})

	t.Run("rejects empty title and negative estimate", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		lead := createLead(t, uc, "Behåller namnet")
		empty := ""
		_, err := uc.WorkItem.UpdateDetails(ctx, testOrgID, lead.ID, &usecase.UpdateDetailsInput{Title: &empty})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()

		negative := -5.0
		_, err = uc.WorkItem.UpdateDetails(ctx, testOrgID, lead.ID, &usecase.UpdateDetailsInput{Estimate: &negative})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()
	})
}

func TestConvertLead(t *testing.T) {
	t.Run("creates order and marks lead won", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		lead := createLead(t, uc, "Solceller BRF Utsikten")
		_, err := uc.WorkItem.AssignUser(ctx, testOrgID, lead.ID, "U2")
		gt.NoError(t, err).Required()

		order, err := uc.WorkItem.ConvertLead(ctx, testOrgID, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, order.Kind).Equal(types.WorkItemKindOrder)
		gt.Value(t, order.Status).Equal(types.OrderStatusNew)
		gt.Value(t, order.Title).Equal(lead.Title)
		gt.Value(t, order.AssigneeID).Equal(types.UserID("U2"))

		wonLead, err := uc.WorkItem.Get(ctx, testOrgID, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, wonLead.Status).Equal(types.LeadStatusWon)

		activities, err := uc.WorkItem.ListActivities(ctx, testOrgID, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, activities[0].Kind).Equal(types.ActivityKindConverted)
	})

	t.Run("orders cannot be converted", func(t *testing.T) {
		uc, _ := setup(t)
		ctx := actorCtx("U1")

		order, err := uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
			Kind:  types.WorkItemKindOrder,
			Title: "Redan en order",
		})
		gt.NoError(t, err).Required()

		_, err = uc.WorkItem.ConvertLead(ctx, testOrgID, order.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidArgument)).True()
	})
}

func TestListWorkItems(t *testing.T) {
	uc, _ := setup(t)
	ctx := actorCtx("U1")

	lead := createLead(t, uc, "Takbyte")
	_, err := uc.WorkItem.AssignUser(ctx, testOrgID, lead.ID, "U2")
	gt.NoError(t, err).Required()
	createLead(t, uc, "Dränering")

	_, err = uc.WorkItem.Create(ctx, testOrgID, &usecase.CreateWorkItemInput{
		Kind:  types.WorkItemKindOrder,
		Title: "Installation",
	})
	gt.NoError(t, err).Required()

	leads, err := uc.WorkItem.List(ctx, testOrgID, interfaces.WithKind(types.WorkItemKindLead))
	gt.NoError(t, err).Required()
	gt.Array(t, leads).Length(2)

	assigned, err := uc.WorkItem.List(ctx, testOrgID, interfaces.WithAssignee("U2"))
	gt.NoError(t, err).Required()
	gt.Array(t, assigned).Length(1)
	gt.Value(t, assigned[0].ID).Equal(lead.ID)

	unassigned, err := uc.WorkItem.List(ctx, testOrgID, interfaces.WithUnassigned())
	gt.NoError(t, err).Required()
	gt.Array(t, unassigned).Length(2)
}
