package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
)

func runNotificationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Notification().Create(ctx, testOrgID, &model.Notification{
			RecipientID: "U1",
			Subject:     "Ny tilldelning",
			Body:        "Du har tilldelats arbetsorder #42",
			Link:        "/work-items/42",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(model.NotificationID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.Read).False()
	})

	t.Run("ListByRecipient filters by recipient and unread flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		n1, err := repo.Notification().Create(ctx, testOrgID, &model.Notification{RecipientID: "U1", Subject: "a"})
		gt.NoError(t, err).Required()
		_, err = repo.Notification().Create(ctx, testOrgID, &model.Notification{RecipientID: "U1", Subject: "b"})
		gt.NoError(t, err).Required()
		_, err = repo.Notification().Create(ctx, testOrgID, &model.Notification{RecipientID: "U2", Subject: "c"})
		gt.NoError(t, err).Required()

		all, err := repo.Notification().ListByRecipient(ctx, testOrgID, "U1", false)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)

		_, err = repo.Notification().MarkRead(ctx, testOrgID, n1.ID)
		gt.NoError(t, err).Required()

		unread, err := repo.Notification().ListByRecipient(ctx, testOrgID, "U1", true)
		gt.NoError(t, err).Required()
		gt.Array(t, unread).Length(1)
		gt.Value(t, unread[0].Subject).Equal("b")
	})

	t.Run("MarkRead unknown notification returns NotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Notification().MarkRead(ctx, testOrgID, model.NewNotificationID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestMemoryNotificationRepository(t *testing.T) {
	runNotificationRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreNotificationRepository(t *testing.T) {
	runNotificationRepositoryTest(t, newFirestoreRepo)
}
