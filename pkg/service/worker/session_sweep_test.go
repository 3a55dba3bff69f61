package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
	"github.com/workyard-lab/workyard/pkg/service/worker"
)

const testOrgID = types.OrgID("test-org")

func TestSessionSweep(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	stale, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
		WorkItemID: 1,
		WorkerID:   "W1",
		WorkType:   "installation",
		StartedAt:  time.Now().Add(-24 * time.Hour),
	})
	gt.NoError(t, err).Required()

	fresh, err := repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
		WorkItemID: 1,
		WorkerID:   "W2",
		WorkType:   "installation",
		StartedAt:  time.Now().Add(-time.Hour),
	})
	gt.NoError(t, err).Required()

	w := worker.NewSessionSweepWorker(repo, []types.OrgID{testOrgID}, time.Minute, 16*time.Hour)
	gt.NoError(t, w.Sweep(ctx)).Required()

	swept, err := repo.TimeSession().Get(ctx, testOrgID, stale.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, swept.Active()).False()
	gt.Bool(t, swept.EndedAt.Equal(stale.StartedAt.Add(16*time.Hour))).True()

	untouched, err := repo.TimeSession().Get(ctx, testOrgID, fresh.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, untouched.Active()).True()

	// The swept worker can clock in again
	_, err = repo.TimeSession().Start(ctx, testOrgID, &model.TimeSession{
		WorkItemID: 2,
		WorkerID:   "W1",
		WorkType:   "installation",
		StartedAt:  time.Now(),
	})
	gt.NoError(t, err).Required()
}

func TestSessionSweepWorkerLifecycle(t *testing.T) {
	repo := memory.New()
	w := worker.NewSessionSweepWorker(repo, []types.OrgID{testOrgID}, 10*time.Millisecond, time.Hour)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(30 * time.Millisecond)
	w.Stop()
}
