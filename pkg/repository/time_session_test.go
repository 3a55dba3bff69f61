package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
)

func runTimeSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Start creates active session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 1,
			WorkerID:   "W1",
			WorkType:   "installation",
			Location:   &model.Location{Lat: 62.39, Lng: 17.31},
			Environment: "Clear, 4C",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(model.TimeSessionID(""))
		gt.Bool(t, created.StartedAt.IsZero()).False()
		gt.Bool(t, created.Active()).True()
		gt.Value(t, created.Location.Lat).Equal(62.39)
	})

	t.Run("Start fails while worker has an active session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 1, WorkerID: "W2",
		})
		gt.NoError(t, err).Required()

		_, err = repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 2, WorkerID: "W2",
		})
		gt.Bool(t, errors.Is(err, interfaces.ErrActiveSessionExists)).True()

		// The first session stays the active one
		active, err := repo.TimeSession().GetActive(ctx, testOrgID, "W2")
		gt.NoError(t, err).Required()
		gt.Value(t, active.ID).Equal(first.ID)
		gt.Value(t, active.WorkItemID).Equal(int64(1))
	})

	t.Run("Concurrent starts admit exactly one session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const attempts = 16
		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
					WorkItemID: int64(i + 1),
					WorkerID:   "W3",
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				gt.Bool(t, errors.Is(err, interfaces.ErrActiveSessionExists)).True()
			}
		}
		gt.Number(t, succeeded).Equal(1)
	})

	t.Run("Close ends session and releases the worker", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 1, WorkerID: "W4",
		})
		gt.NoError(t, err).Required()

		closed, err := repo.TimeSession().Close(ctx, testOrgID, created.ID, time.Now())
		gt.NoError(t, err).Required()
		gt.Bool(t, closed.Active()).False()

		active, err := repo.TimeSession().GetActive(ctx, testOrgID, "W4")
		gt.NoError(t, err).Required()
		gt.Value(t, active).Nil()

		// A new session may start now
		_, err = repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 2, WorkerID: "W4",
		})
		gt.NoError(t, err).Required()
	})

	t.Run("Close is rejected for an already closed session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 1, WorkerID: "W5",
		})
		gt.NoError(t, err).Required()

		first, err := repo.TimeSession().Close(ctx, testOrgID, created.ID, time.Now())
		gt.NoError(t, err).Required()

		_, err = repo.TimeSession().Close(ctx, testOrgID, created.ID, time.Now().Add(time.Hour))
		gt.Bool(t, errors.Is(err, interfaces.ErrSessionClosed)).True()

		// End timestamp is not corrupted by the second call
		stored, err := repo.TimeSession().Get(ctx, testOrgID, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.EndedAt.Equal(first.EndedAt)).True()
	})

	t.Run("Close returns NotFound for unknown session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.TimeSession().Close(ctx, testOrgID, model.NewTimeSessionID(), time.Now())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetActive returns nil for idle worker", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		active, err := repo.TimeSession().GetActive(ctx, testOrgID, "idle-worker")
		gt.NoError(t, err).Required()
		gt.Value(t, active).Nil()
	})

	t.Run("ListByWorker returns sessions newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			created, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
				WorkItemID: int64(i + 1), WorkerID: "W6",
			})
			gt.NoError(t, err).Required()
			_, err = repo.TimeSession().Close(ctx, testOrgID, created.ID, time.Now())
			gt.NoError(t, err).Required()
		}

		sessions, err := repo.TimeSession().ListByWorker(ctx, testOrgID, "W6")
		gt.NoError(t, err).Required()
		gt.Array(t, sessions).Length(3)
		for i := 1; i < len(sessions); i++ {
			gt.Bool(t, sessions[i-1].StartedAt.Before(sessions[i].StartedAt)).False()
		}
	})

	t.Run("ListActiveBefore finds stale sessions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
			WorkItemID: 1, WorkerID: "W7",
		})
		gt.NoError(t, err).Required()

		stale, err := repo.TimeSession().ListActiveBefore(ctx, testOrgID, time.Now().Add(time.Minute))
		gt.NoError(t, err).Required()
		gt.Number(t, len(stale)).GreaterOrEqual(1)

		found := false
		for _, s := range stale {
			if s.ID == created.ID {
				found = true
			}
		}
		gt.Bool(t, found).True()

		none, err := repo.TimeSession().ListActiveBefore(ctx, testOrgID, created.StartedAt.Add(-time.Minute))
		gt.NoError(t, err).Required()
		for _, s := range none {
			gt.Value(t, s.ID).NotEqual(created.ID)
		}
	})
}

func TestMemoryTimeSessionRepository(t *testing.T) {
	runTimeSessionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreTimeSessionRepository(t *testing.T) {
	runTimeSessionRepositoryTest(t, newFirestoreRepo)
}
