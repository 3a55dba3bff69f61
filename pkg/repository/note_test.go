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

func runNoteRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Note().Create(ctx, testOrgID, &model.Note{
			WorkItemID: 1,
			AuthorID:   "U1",
			Body:       "Kunden vill ha offert senast fredag",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(model.NoteID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.Equal(created.CreatedAt)).True()

		retrieved, err := repo.Note().Get(ctx, testOrgID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Body).Equal(created.Body)
		gt.Value(t, retrieved.AuthorID).Equal(created.AuthorID)
	})

	t.Run("Update replaces body and bumps UpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Note().Create(ctx, testOrgID, &model.Note{
			WorkItemID: 1, AuthorID: "U1", Body: "Original",
		})
		gt.NoError(t, err).Required()

		created.Body = "Edited"
		updated, err := repo.Note().Update(ctx, testOrgID, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Body).Equal("Edited")
		gt.Bool(t, updated.UpdatedAt.Before(created.CreatedAt)).False()
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("ListByWorkItem only returns the item's notes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Note().Create(ctx, testOrgID, &model.Note{WorkItemID: 10, AuthorID: "U1", Body: "a"})
		gt.NoError(t, err).Required()
		_, err = repo.Note().Create(ctx, testOrgID, &model.Note{WorkItemID: 10, AuthorID: "U2", Body: "b"})
		gt.NoError(t, err).Required()
		_, err = repo.Note().Create(ctx, testOrgID, &model.Note{WorkItemID: 11, AuthorID: "U1", Body: "c"})
		gt.NoError(t, err).Required()

		notes, err := repo.Note().ListByWorkItem(ctx, testOrgID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(2)
		for _, n := range notes {
			gt.Value(t, n.WorkItemID).Equal(int64(10))
		}
	})

	t.Run("Delete removes note", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Note().Create(ctx, testOrgID, &model.Note{
			WorkItemID: 1, AuthorID: "U1", Body: "to be removed",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Note().Delete(ctx, testOrgID, created.ID)).Required()

		_, err = repo.Note().Get(ctx, testOrgID, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		err = repo.Note().Delete(ctx, testOrgID, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestMemoryNoteRepository(t *testing.T) {
	runNoteRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreNoteRepository(t *testing.T) {
	runNoteRepositoryTest(t, newFirestoreRepo)
}
