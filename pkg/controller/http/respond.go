package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/usecase"
	"github.com/workyard-lab/workyard/pkg/utils/errutil"
)

// statusFor maps use case sentinels to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrWorkItemNotFound),
		errors.Is(err, usecase.ErrNoteNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound):
		return http.StatusNotFound

	case errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidAssignee),
		errors.Is(err, usecase.ErrInvalidArgument):
		return http.StatusBadRequest

	case errors.Is(err, usecase.ErrSessionAlreadyActive),
		errors.Is(err, usecase.ErrSessionAlreadyStopped):
		return http.StatusConflict

	case errors.Is(err, usecase.ErrNotNoteAuthor):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

func decodeJSON(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, "invalid request body")
	}
	return nil
}

// orgIDParam extracts and validates the org ID path parameter
func orgIDParam(r *http.Request) (types.OrgID, error) {
	orgID := types.OrgID(chi.URLParam(r, "orgID"))
	if err := orgID.Validate(); err != nil {
		return "", goerr.Wrap(usecase.ErrInvalidArgument, "invalid org ID", goerr.V("org_id", orgID))
	}
	return orgID, nil
}

// itemIDParam extracts the work item ID path parameter
func itemIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrInvalidArgument, "invalid work item ID")
	}
	return id, nil
}
