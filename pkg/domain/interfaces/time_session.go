package interfaces

import (
	"context"
	"time"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// TimeSessionRepository defines the interface for TimeSession data access.
// The single-active-session invariant is enforced here: Start is a single
// atomic conditional insert, never a separate check followed by an insert.
type TimeSessionRepository interface {
	// Start inserts a new active session for the worker only if the worker
	// has no active session. Returns ErrActiveSessionExists otherwise.
	Start(ctx context.Context, orgID types.OrgID, session *model.TimeSession) (*model.TimeSession, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, orgID types.OrgID, id model.TimeSessionID) (*model.TimeSession, error)

	// GetActive retrieves the worker's active session. Returns nil, nil when
	// the worker has no active session.
	GetActive(ctx context.Context, orgID types.OrgID, workerID types.UserID) (*model.TimeSession, error)

	// Close sets the end timestamp of an active session. Returns
	// ErrSessionClosed if the session already has one, so exactly one of two
	// racing stop calls succeeds.
	Close(ctx context.Context, orgID types.OrgID, id model.TimeSessionID, endedAt time.Time) (*model.TimeSession, error)

	// ListByWorker retrieves a worker's sessions, newest first
	ListByWorker(ctx context.Context, orgID types.OrgID, workerID types.UserID) ([]*model.TimeSession, error)

	// ListActiveBefore retrieves sessions still active that started before
	// the cutoff. Used by the stale-session sweep.
	ListActiveBefore(ctx context.Context, orgID types.OrgID, cutoff time.Time) ([]*model.TimeSession, error)
}
