package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
)

const testOrgID = types.OrgID("test-org")

func runWorkItemRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create creates work item with auto-increment ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item1 := &model.WorkItem{
			Kind:        types.WorkItemKindLead,
			Title:       "Takbyte villa Sundsvall",
			Description: "Customer wants a quote for roof replacement",
			Status:      types.LeadStatusNew,
			Source:      "web",
		}

		created1, err := repo.WorkItem().Create(ctx, testOrgID, item1)
		gt.NoError(t, err).Required()

		gt.Value(t, created1.ID).NotEqual(int64(0))
		gt.Value(t, created1.Title).Equal(item1.Title)
		gt.Value(t, created1.Status).Equal(types.LeadStatusNew)
		gt.Bool(t, created1.CreatedAt.IsZero()).False()
		gt.Bool(t, created1.UpdatedAt.IsZero()).False()

		created2, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind:   types.WorkItemKindOrder,
			Title:  "Service boiler",
			Status: types.OrderStatusNew,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created2.ID).NotEqual(created1.ID)
	})

	t.Run("Get retrieves existing work item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		estimate := 45000.0
		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind:       types.WorkItemKindLead,
			Title:      "Fasadmålning",
			Status:     types.LeadStatusNew,
			Estimate:   &estimate,
			AssigneeID: "U100",
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.WorkItem().Get(ctx, testOrgID, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Title).Equal(created.Title)
		gt.Value(t, retrieved.AssigneeID).Equal(types.UserID("U100"))
		gt.Value(t, *retrieved.Estimate).Equal(estimate)
	})

	t.Run("Get returns error for non-existent work item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WorkItem().Get(ctx, testOrgID, time.Now().UnixNano())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("UpdateStatus patches only the status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind:       types.WorkItemKindLead,
			Title:      "Lead",
			Status:     types.LeadStatusNew,
			AssigneeID: "U200",
		})
		gt.NoError(t, err).Required()

		updated, err := repo.WorkItem().UpdateStatus(ctx, testOrgID, created.ID, types.LeadStatusContacted)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.LeadStatusContacted)
		gt.Value(t, updated.AssigneeID).Equal(types.UserID("U200"))
		gt.Value(t, updated.Title).Equal("Lead")
	})

	t.Run("UpdateAssignee clears assignee with empty ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind:       types.WorkItemKindOrder,
			Title:      "Order",
			Status:     types.OrderStatusNew,
			AssigneeID: "U300",
		})
		gt.NoError(t, err).Required()

		updated, err := repo.WorkItem().UpdateAssignee(ctx, testOrgID, created.ID, "")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.AssigneeID).Equal(types.UserID(""))

		updated, err = repo.WorkItem().UpdateTeam(ctx, testOrgID, created.ID, "field-crew")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.TeamID).Equal(types.TeamID("field-crew"))
	})

	t.Run("Update preserves lifecycle fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind:       types.WorkItemKindLead,
			Title:      "Original",
			Status:     types.LeadStatusContacted,
			AssigneeID: "U400",
		})
		gt.NoError(t, err).Required()

		created.Title = "Renamed"
		created.Description = "Updated description"
		created.Status = types.LeadStatusLost // must be ignored by Update

		updated, err := repo.WorkItem().Update(ctx, testOrgID, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Title).Equal("Renamed")
		gt.Value(t, updated.Description).Equal("Updated description")
		gt.Value(t, updated.Status).Equal(types.LeadStatusContacted)
		gt.Value(t, updated.AssigneeID).Equal(types.UserID("U400"))
	})

	t.Run("List filters by kind, status and assignee", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindLead, Title: "Lead A", Status: types.LeadStatusNew, AssigneeID: "U1",
		})
		gt.NoError(t, err).Required()
		_, err = repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindLead, Title: "Lead B", Status: types.LeadStatusContacted,
		})
		gt.NoError(t, err).Required()
		_, err = repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindOrder, Title: "Order C", Status: types.OrderStatusNew,
		})
		gt.NoError(t, err).Required()

		leads, err := repo.WorkItem().List(ctx, testOrgID, interfaces.WithKind(types.WorkItemKindLead))
		gt.NoError(t, err).Required()
		gt.Number(t, len(leads)).GreaterOrEqual(2)
		for _, item := range leads {
			gt.Value(t, item.Kind).Equal(types.WorkItemKindLead)
		}

		contacted, err := repo.WorkItem().List(ctx, testOrgID,
			interfaces.WithKind(types.WorkItemKindLead),
			interfaces.WithStatus(types.LeadStatusContacted))
		gt.NoError(t, err).Required()
		for _, item := range contacted {
			gt.Value(t, item.Status).Equal(types.LeadStatusContacted)
		}

		assigned, err := repo.WorkItem().List(ctx, testOrgID, interfaces.WithAssignee("U1"))
		gt.NoError(t, err).Required()
		for _, item := range assigned {
			gt.Value(t, item.AssigneeID).Equal(types.UserID("U1"))
		}
	})

	t.Run("List filters by title substring", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindLead, Title: "Takbyte Kungsgatan", Status: types.LeadStatusNew,
		})
		gt.NoError(t, err).Required()

		found, err := repo.WorkItem().List(ctx, testOrgID, interfaces.WithTitleContains("kungsgatan"))
		gt.NoError(t, err).Required()
		gt.Number(t, len(found)).GreaterOrEqual(1)
	})

	t.Run("Delete removes work item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindLead, Title: "To be deleted", Status: types.LeadStatusNew,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.WorkItem().Delete(ctx, testOrgID, created.ID)).Required()

		_, err = repo.WorkItem().Get(ctx, testOrgID, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Orgs are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.WorkItem().Create(ctx, testOrgID, &model.WorkItem{
			Kind: types.WorkItemKindLead, Title: "Org scoped", Status: types.LeadStatusNew,
		})
		gt.NoError(t, err).Required()

		_, err = repo.WorkItem().Get(ctx, "other-org", created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestMemoryWorkItemRepository(t *testing.T) {
	runWorkItemRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreWorkItemRepository(t *testing.T) {
	runWorkItemRepositoryTest(t, newFirestoreRepo)
}
