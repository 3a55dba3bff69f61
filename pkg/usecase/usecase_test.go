package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
	"github.com/workyard-lab/workyard/pkg/service/notify"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

const testOrgID = types.OrgID("test-org")

// setup builds use cases over a memory repository with an inbox notifier
// and a seeded directory: Anna (U1), Björn (U2), Cecilia (U3), team
// "install" = {U2, U3}
func setup(t *testing.T) (*usecase.UseCases, interfaces.Repository) {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	err := repo.Directory().ReplaceUsers(ctx, testOrgID, []*model.User{
		{ID: "U1", Name: "Anna", Email: "anna@example.com"},
		{ID: "U2", Name: "Björn", Email: "bjorn@example.com"},
		{ID: "U3", Name: "Cecilia", Email: "cecilia@example.com"},
	})
	gt.NoError(t, err).Required()

	err = repo.Directory().ReplaceTeams(ctx, testOrgID, []*model.Team{
		{ID: "install", Name: "Installation", MemberIDs: []types.UserID{"U2", "U3"}},
	})
	gt.NoError(t, err).Required()

	uc := usecase.New(repo,
		usecase.WithNotifier(notify.NewInbox(repo)),
		usecase.WithBaseURL("https://workyard.example.com"),
	)
	return uc, repo
}

// actorCtx returns a context acting as the given user
func actorCtx(userID types.UserID) context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{Sub: userID})
}

// testCtx returns a context with no actor token (system actor)
func testCtx() context.Context {
	return context.Background()
}

// createLead is a shorthand for intake of a lead acting as U1
func createLead(t *testing.T, uc *usecase.UseCases, title string) *model.WorkItem {
	t.Helper()
	item, err := uc.WorkItem.Create(actorCtx("U1"), testOrgID, &usecase.CreateWorkItemInput{
		Kind:  types.WorkItemKindLead,
		Title: title,
	})
	gt.NoError(t, err).Required()
	return item
}

// inbox lists a user's notifications
func inbox(t *testing.T, repo interfaces.Repository, userID types.UserID) []*model.Notification {
	t.Helper()
	notifications, err := repo.Notification().ListByRecipient(context.Background(), testOrgID, userID, false)
	gt.NoError(t, err).Required()
	return notifications
}
