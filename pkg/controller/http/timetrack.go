package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id, err := itemIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		WorkerID string `json:"worker_id"` // defaults to the acting user
		WorkType string `json:"work_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	workerID := types.UserID(req.WorkerID)
	if workerID == "" {
		workerID = auth.ActorFromContext(r.Context())
	}

	session, err := s.uc.TimeTrack.Start(r.Context(), orgID, id, workerID, types.WorkTypeID(req.WorkType))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderSession(session))
}

func (s *Server) stopSession(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID := model.TimeSessionID(chi.URLParam(r, "sessionID"))

	session, err := s.uc.TimeTrack.Stop(r.Context(), orgID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderSession(session))
}

func (s *Server) getActiveSession(w http.ResponseWriter, r *http.Request) {
	orgID, workerID, err := sessionQueryParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.uc.TimeTrack.GetActive(r.Context(), orgID, workerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if session == nil {
		respondJSON(w, r, http.StatusOK, map[string]any{"session": nil})
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"session": renderSession(session)})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	orgID, workerID, err := sessionQueryParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	sessions, err := s.uc.TimeTrack.ListSessions(r.Context(), orgID, workerID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]sessionResponse, len(sessions))
	for i, sess := range sessions {
		resp[i] = renderSession(sess)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"sessions": resp})
}

// sessionQueryParams resolves the org and the worker for session queries.
// The worker defaults to the acting user.
func sessionQueryParams(r *http.Request) (types.OrgID, types.UserID, error) {
	orgID, err := orgIDParam(r)
	if err != nil {
		return "", "", err
	}

	workerID := types.UserID(r.URL.Query().Get("worker"))
	if workerID == "" {
		workerID = auth.ActorFromContext(r.Context())
	}
	if workerID == "" {
		return "", "", goerr.Wrap(usecase.ErrInvalidArgument, "worker is required")
	}

	return orgID, workerID, nil
}
