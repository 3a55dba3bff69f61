package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/utils/errutil"
)

// TimeTrackUseCase covers clock-in/clock-out of workers against work
// items. The one-active-session-per-worker invariant is enforced by the
// repository's atomic Start; the pre-check here only shortcuts the
// common conflict so the caller gets the existing session surfaced.
type TimeTrackUseCase struct {
	repo      interfaces.Repository
	supplier  interfaces.ContextSupplier
	workTypes map[types.WorkTypeID]bool
}

// Start opens a time session for the worker on a work item. The optional
// context supplier contributes a location and environment snapshot;
// supplier failures never fail the start.
func (u *TimeTrackUseCase) Start(ctx context.Context, orgID types.OrgID, workItemID int64, workerID types.UserID, workType types.WorkTypeID) (*model.TimeSession, error) {
	if workerID == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "worker is required")
	}
	if workType != "" && len(u.workTypes) > 0 && !u.workTypes[workType] {
		return nil, goerr.Wrap(ErrInvalidArgument, "unknown work type", goerr.V("work_type", workType))
	}

	if _, err := u.repo.WorkItem().Get(ctx, orgID, workItemID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrWorkItemNotFound, "work item not found",
				goerr.V("work_item_id", workItemID))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("work_item_id", workItemID))
	}

	// Surface the conflict with the existing session attached. The
	// authoritative check is the atomic insert below; this read alone
	// would be a race.
	active, err := u.repo.TimeSession().GetActive(ctx, orgID, workerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check active session", goerr.V("worker_id", workerID))
	}
	if active != nil {
		return nil, goerr.Wrap(ErrSessionAlreadyActive, "worker already clocked in",
			goerr.V("worker_id", workerID),
			goerr.V("session_id", active.ID),
			goerr.V("work_item_id", active.WorkItemID))
	}

	session := &model.TimeSession{
		WorkItemID: workItemID,
		WorkerID:   workerID,
		WorkType:   workType,
		StartedAt:  time.Now().UTC(),
	}
	u.snapshotContext(ctx, session)

	created, err := u.repo.TimeSession().Start(ctx, orgID, session)
	if err != nil {
		if errors.Is(err, interfaces.ErrActiveSessionExists) {
			return nil, goerr.Wrap(ErrSessionAlreadyActive, "worker already clocked in",
				goerr.V("worker_id", workerID))
		}
		return nil, goerr.Wrap(err, "failed to start session", goerr.V("worker_id", workerID))
	}

	return created, nil
}

// snapshotContext samples the optional location/environment context onto
// the session. Both pieces are best-effort.
func (u *TimeTrackUseCase) snapshotContext(ctx context.Context, session *model.TimeSession) {
	if u.supplier == nil {
		return
	}

	loc, err := u.supplier.CurrentLocation(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "failed to sample location for session")
		return
	}
	session.Location = loc

	env, err := u.supplier.EnvironmentSnapshot(ctx, loc)
	if err != nil {
		errutil.Handle(ctx, err, "failed to sample environment for session")
		return
	}
	session.Environment = env
}

// Stop closes a session at the current time. Exactly one of two racing
// stops succeeds; the loser gets ErrSessionAlreadyStopped.
func (u *TimeTrackUseCase) Stop(ctx context.Context, orgID types.OrgID, sessionID model.TimeSessionID) (*model.TimeSession, error) {
	closed, err := u.repo.TimeSession().Close(ctx, orgID, sessionID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V("session_id", sessionID))
		case errors.Is(err, interfaces.ErrSessionClosed):
			return nil, goerr.Wrap(ErrSessionAlreadyStopped, "session already stopped", goerr.V("session_id", sessionID))
		default:
			return nil, goerr.Wrap(err, "failed to stop session", goerr.V("session_id", sessionID))
		}
	}
	return closed, nil
}

// GetActive retrieves the worker's active session, or nil when the
// worker is not clocked in
func (u *TimeTrackUseCase) GetActive(ctx context.Context, orgID types.OrgID, workerID types.UserID) (*model.TimeSession, error) {
	active, err := u.repo.TimeSession().GetActive(ctx, orgID, workerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get active session", goerr.V("worker_id", workerID))
	}
	return active, nil
}

// ListSessions retrieves the worker's sessions, newest first
func (u *TimeTrackUseCase) ListSessions(ctx context.Context, orgID types.OrgID, workerID types.UserID) ([]*model.TimeSession, error) {
	sessions, err := u.repo.TimeSession().ListByWorker(ctx, orgID, workerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions", goerr.V("worker_id", workerID))
	}
	return sessions, nil
}
