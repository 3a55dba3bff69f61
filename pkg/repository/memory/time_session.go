package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// activeKey identifies the worker holding an active session (orgID + workerID)
type activeKey struct {
	orgID    types.OrgID
	workerID types.UserID
}

type timeSessionRepository struct {
	mu       sync.Mutex
	sessions map[types.OrgID]map[model.TimeSessionID]*model.TimeSession
	active   map[activeKey]model.TimeSessionID
}

func newTimeSessionRepository() *timeSessionRepository {
	return &timeSessionRepository{
		sessions: make(map[types.OrgID]map[model.TimeSessionID]*model.TimeSession),
		active:   make(map[activeKey]model.TimeSessionID),
	}
}

func (r *timeSessionRepository) ensureOrg(orgID types.OrgID) {
	if _, exists := r.sessions[orgID]; !exists {
		r.sessions[orgID] = make(map[model.TimeSessionID]*model.TimeSession)
	}
}

func copyTimeSession(s *model.TimeSession) *model.TimeSession {
	copied := *s
	if s.Location != nil {
		loc := *s.Location
		copied.Location = &loc
	}
	return &copied
}

// Start performs the active-check and the insert inside one critical section
// so concurrent starts for the same worker cannot both succeed.
func (r *timeSessionRepository) Start(ctx context.Context, orgID types.OrgID, session *model.TimeSession) (*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOrg(orgID)

	key := activeKey{orgID: orgID, workerID: session.WorkerID}
	if _, exists := r.active[key]; exists {
		return nil, goerr.Wrap(interfaces.ErrActiveSessionExists, "worker already has an active session",
			goerr.V("workerID", session.WorkerID))
	}

	created := copyTimeSession(session)
	if created.ID == "" {
		created.ID = model.NewTimeSessionID()
	}
	if created.StartedAt.IsZero() {
		created.StartedAt = time.Now().UTC()
	}
	created.EndedAt = time.Time{}

	r.sessions[orgID][created.ID] = created
	r.active[key] = created.ID
	return copyTimeSession(created), nil
}

func (r *timeSessionRepository) Get(ctx context.Context, orgID types.OrgID, id model.TimeSessionID) (*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "time session not found", goerr.V("id", id))
	}

	return copyTimeSession(session), nil
}

func (r *timeSessionRepository) GetActive(ctx context.Context, orgID types.OrgID, workerID types.UserID) (*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := activeKey{orgID: orgID, workerID: workerID}
	id, exists := r.active[key]
	if !exists {
		return nil, nil
	}

	return copyTimeSession(r.sessions[orgID][id]), nil
}

func (r *timeSessionRepository) Close(ctx context.Context, orgID types.OrgID, id model.TimeSessionID, endedAt time.Time) (*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "time session not found", goerr.V("id", id))
	}
	if !session.EndedAt.IsZero() {
		return nil, goerr.Wrap(interfaces.ErrSessionClosed, "time session already closed", goerr.V("id", id))
	}

	session.EndedAt = endedAt.UTC()
	delete(r.active, activeKey{orgID: orgID, workerID: session.WorkerID})
	return copyTimeSession(session), nil
}

func (r *timeSessionRepository) ListByWorker(ctx context.Context, orgID types.OrgID, workerID types.UserID) ([]*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*model.TimeSession, 0)
	for _, s := range r.sessions[orgID] {
		if s.WorkerID == workerID {
			result = append(result, copyTimeSession(s))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})

	return result, nil
}

func (r *timeSessionRepository) ListActiveBefore(ctx context.Context, orgID types.OrgID, cutoff time.Time) ([]*model.TimeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*model.TimeSession, 0)
	for _, s := range r.sessions[orgID] {
		if s.EndedAt.IsZero() && s.StartedAt.Before(cutoff) {
			result = append(result, copyTimeSession(s))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})

	return result, nil
}
