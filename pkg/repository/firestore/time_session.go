package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// timeSessionDoc is the Firestore document representation of model.TimeSession
type timeSessionDoc struct {
	ID          string     `firestore:"ID"`
	WorkItemID  int64      `firestore:"WorkItemID"`
	WorkerID    string     `firestore:"WorkerID"`
	WorkType    string     `firestore:"WorkType"`
	StartedAt   time.Time  `firestore:"StartedAt"`
	EndedAt     *time.Time `firestore:"EndedAt"` // nil while active
	Lat         *float64   `firestore:"Lat"`
	Lng         *float64   `firestore:"Lng"`
	Environment string     `firestore:"Environment"`
}

func toTimeSessionDoc(s *model.TimeSession) *timeSessionDoc {
	d := &timeSessionDoc{
		ID:          string(s.ID),
		WorkItemID:  s.WorkItemID,
		WorkerID:    s.WorkerID.String(),
		WorkType:    s.WorkType.String(),
		StartedAt:   s.StartedAt,
		Environment: s.Environment,
	}
	if !s.EndedAt.IsZero() {
		ended := s.EndedAt
		d.EndedAt = &ended
	}
	if s.Location != nil {
		lat, lng := s.Location.Lat, s.Location.Lng
		d.Lat, d.Lng = &lat, &lng
	}
	return d
}

func fromTimeSessionDoc(d *timeSessionDoc) *model.TimeSession {
	s := &model.TimeSession{
		ID:          model.TimeSessionID(d.ID),
		WorkItemID:  d.WorkItemID,
		WorkerID:    types.UserID(d.WorkerID),
		WorkType:    types.WorkTypeID(d.WorkType),
		StartedAt:   d.StartedAt,
		Environment: d.Environment,
	}
	if d.EndedAt != nil {
		s.EndedAt = *d.EndedAt
	}
	if d.Lat != nil && d.Lng != nil {
		s.Location = &model.Location{Lat: *d.Lat, Lng: *d.Lng}
	}
	return s
}

type timeSessionRepository struct {
	client *firestore.Client
}

func newTimeSessionRepository(client *firestore.Client) *timeSessionRepository {
	return &timeSessionRepository{client: client}
}

// sessionsCollection returns the subcollection path orgs/{orgID}/time_sessions
func (r *timeSessionRepository) sessionsCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("time_sessions")
}

// activeMarkerDoc returns the per-worker active session marker:
// orgs/{orgID}/active_sessions/{workerID}. The marker's existence is the
// store-level uniqueness constraint for "one active session per worker".
func (r *timeSessionRepository) activeMarkerDoc(orgID types.OrgID, workerID types.UserID) *firestore.DocumentRef {
	return r.client.Collection("orgs").Doc(orgID.String()).
		Collection("active_sessions").Doc(workerID.String())
}

// Start creates the session and its active marker in one transaction.
// tx.Create of the marker fails with AlreadyExists when the worker already
// holds an active session, making the check-and-insert atomic.
func (r *timeSessionRepository) Start(ctx context.Context, orgID types.OrgID, session *model.TimeSession) (*model.TimeSession, error) {
	created := *session
	if created.ID == "" {
		created.ID = model.NewTimeSessionID()
	}
	if created.StartedAt.IsZero() {
		created.StartedAt = time.Now().UTC()
	}
	created.EndedAt = time.Time{}

	markerRef := r.activeMarkerDoc(orgID, created.WorkerID)
	sessionRef := r.sessionsCollection(orgID).Doc(string(created.ID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(markerRef, map[string]interface{}{
			"SessionID": string(created.ID),
			"WorkerID":  created.WorkerID.String(),
			"StartedAt": created.StartedAt,
		}); err != nil {
			if status.Code(err) == codes.AlreadyExists {
				return goerr.Wrap(interfaces.ErrActiveSessionExists, "worker already has an active session",
					goerr.V("workerID", created.WorkerID))
			}
			return goerr.Wrap(err, "failed to create active session marker")
		}
		return tx.Create(sessionRef, toTimeSessionDoc(&created))
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrActiveSessionExists) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to start time session",
			goerr.V("workerID", created.WorkerID))
	}

	return &created, nil
}

func (r *timeSessionRepository) Get(ctx context.Context, orgID types.OrgID, id model.TimeSessionID) (*model.TimeSession, error) {
	docSnap, err := r.sessionsCollection(orgID).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "time session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get time session", goerr.V("id", id))
	}

	var d timeSessionDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal time session", goerr.V("id", id))
	}

	return fromTimeSessionDoc(&d), nil
}

func (r *timeSessionRepository) GetActive(ctx context.Context, orgID types.OrgID, workerID types.UserID) (*model.TimeSession, error) {
	markerSnap, err := r.activeMarkerDoc(orgID, workerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get active session marker",
			goerr.V("workerID", workerID))
	}

	sessionID, err := markerSnap.DataAt("SessionID")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read active session marker",
			goerr.V("workerID", workerID))
	}

	id, ok := sessionID.(string)
	if !ok {
		return nil, goerr.New("active session marker has no session ID",
			goerr.V("workerID", workerID))
	}

	return r.Get(ctx, orgID, model.TimeSessionID(id))
}

func (r *timeSessionRepository) Close(ctx context.Context, orgID types.OrgID, id model.TimeSessionID, endedAt time.Time) (*model.TimeSession, error) {
	sessionRef := r.sessionsCollection(orgID).Doc(string(id))

	var closed *model.TimeSession
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(sessionRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "time session not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get time session")
		}

		var d timeSessionDoc
		if err := docSnap.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to unmarshal time session")
		}
		if d.EndedAt != nil {
			return goerr.Wrap(interfaces.ErrSessionClosed, "time session already closed", goerr.V("id", id))
		}

		ended := endedAt.UTC()
		if err := tx.Update(sessionRef, []firestore.Update{
			{Path: "EndedAt", Value: &ended},
		}); err != nil {
			return goerr.Wrap(err, "failed to close time session")
		}
		if err := tx.Delete(r.activeMarkerDoc(orgID, types.UserID(d.WorkerID))); err != nil {
			return goerr.Wrap(err, "failed to delete active session marker")
		}

		session := fromTimeSessionDoc(&d)
		session.EndedAt = ended
		closed = session
		return nil
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) || errors.Is(err, interfaces.ErrSessionClosed) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to close time session", goerr.V("id", id))
	}

	return closed, nil
}

func (r *timeSessionRepository) ListByWorker(ctx context.Context, orgID types.OrgID, workerID types.UserID) ([]*model.TimeSession, error) {
	query := r.sessionsCollection(orgID).
		Where("WorkerID", "==", workerID.String()).
		OrderBy("StartedAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *timeSessionRepository) ListActiveBefore(ctx context.Context, orgID types.OrgID, cutoff time.Time) ([]*model.TimeSession, error) {
	query := r.sessionsCollection(orgID).
		Where("EndedAt", "==", nil).
		Where("StartedAt", "<", cutoff).
		OrderBy("StartedAt", firestore.Asc)

	return r.collect(ctx, query)
}

func (r *timeSessionRepository) collect(ctx context.Context, query firestore.Query) ([]*model.TimeSession, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.TimeSession, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate time sessions")
		}

		var d timeSessionDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal time session")
		}

		result = append(result, fromTimeSessionDoc(&d))
	}

	return result, nil
}
