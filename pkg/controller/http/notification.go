package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

// listNotifications serves the acting user's notification inbox
func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	actor := auth.ActorFromContext(r.Context())
	if actor == "" {
		handleError(w, r, goerr.Wrap(usecase.ErrInvalidArgument, "actor is required"))
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := s.uc.Notification.Inbox(r.Context(), orgID, actor, unreadOnly)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = renderNotification(n)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"notifications": resp})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id := model.NotificationID(chi.URLParam(r, "notificationID"))

	n, err := s.uc.Notification.MarkRead(r.Context(), orgID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderNotification(n))
}
