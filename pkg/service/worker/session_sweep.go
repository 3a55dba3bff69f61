package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

const (
	// DefaultSweepInterval is how often the sweep looks for stale sessions
	DefaultSweepInterval = 15 * time.Minute
	// DefaultMaxSessionAge is how long a session may stay open before the
	// sweep force-closes it (a forgotten clock-out)
	DefaultMaxSessionAge = 16 * time.Hour
)

// SessionSweepWorker force-closes time sessions whose worker forgot to
// clock out. Closed sessions get an end time of start + max age, so a
// forgotten session never accrues unbounded time.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type SessionSweepWorker struct {
	repo     interfaces.Repository
	orgIDs   []types.OrgID
	interval time.Duration
	maxAge   time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionSweepWorker creates a worker sweeping the given organizations
func NewSessionSweepWorker(repo interfaces.Repository, orgIDs []types.OrgID, interval, maxAge time.Duration) *SessionSweepWorker {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxSessionAge
	}
	return &SessionSweepWorker{
		repo:     repo,
		orgIDs:   orgIDs,
		interval: interval,
		maxAge:   maxAge,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Does not block server startup.
func (w *SessionSweepWorker) Start(ctx context.Context) error {
	logging.Default().Info("session sweep worker starting",
		"interval", w.interval.String(),
		"max_age", w.maxAge.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SessionSweepWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("session sweep worker stopped")
}

func (w *SessionSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("session sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("session sweep worker context cancelled")
			return
		}
	}
}

// Sweep performs one sweep cycle over all configured organizations
func (w *SessionSweepWorker) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-w.maxAge)

	for _, orgID := range w.orgIDs {
		stale, err := w.repo.TimeSession().ListActiveBefore(ctx, orgID, cutoff)
		if err != nil {
			return goerr.Wrap(err, "failed to list stale sessions", goerr.V("org_id", orgID))
		}

		for _, session := range stale {
			endedAt := session.StartedAt.Add(w.maxAge)
			if _, err := w.repo.TimeSession().Close(ctx, orgID, session.ID, endedAt); err != nil {
				// A racing manual stop can close the session first; that is fine.
				logging.Default().Warn("failed to force-close stale session",
					"org_id", orgID,
					"session_id", session.ID,
					"worker_id", session.WorkerID,
					"error", err.Error())
				continue
			}

			logging.Default().Info("force-closed stale session",
				"org_id", orgID,
				"session_id", session.ID,
				"worker_id", session.WorkerID,
				"started_at", session.StartedAt,
				"ended_at", endedAt)
		}
	}

	return nil
}
