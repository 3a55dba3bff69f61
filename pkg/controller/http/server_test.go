package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/workyard-lab/workyard/pkg/controller/http"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/repository/memory"
	"github.com/workyard-lab/workyard/pkg/service/notify"
	"github.com/workyard-lab/workyard/pkg/usecase"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	err := repo.Directory().ReplaceUsers(ctx, "test-org", []*model.User{
		{ID: "U1", Name: "Anna", Email: "anna@example.com"},
		{ID: "U2", Name: "Björn", Email: "bjorn@example.com"},
	})
	gt.NoError(t, err).Required()

	uc := usecase.New(repo,
		usecase.WithNotifier(notify.NewInbox(repo)),
		usecase.WithBaseURL("http://localhost:8080"),
	)
	return server.New(uc)
}

func doJSON(t *testing.T, srv *server.Server, method, path, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(server.DefaultActorHeader, actor)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), into)).Required()
}

func TestWorkItemEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orgs/test-org/work-items", "U1", map[string]any{
		"kind":  "lead",
		"title": "Takbyte Villa Ekhagen",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID          int64  `json:"id"`
		Status      string `json:"status"`
		StatusLabel string `json:"status_label"`
	}
	decode(t, rec, &created)
	gt.Value(t, created.Status).Equal("new")
	gt.Value(t, created.StatusLabel).Equal("Ny")

	base := fmt.Sprintf("/api/orgs/test-org/work-items/%d", created.ID)

	t.Run("transition", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, base+"/status", "U1", map[string]any{"status": "contacted"})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var updated struct {
			StatusLabel string `json:"status_label"`
		}
		decode(t, rec, &updated)
		gt.Value(t, updated.StatusLabel).Equal("Kontaktad")
	})

	t.Run("invalid status is 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, base+"/status", "U1", map[string]any{"status": "planned"})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("assign user and read activities", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, base+"/assignee", "U1", map[string]any{"user_id": "U2"})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodGet, base+"/activities", "U1", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var trail struct {
			Activities []struct {
				Kind        string `json:"kind"`
				Description string `json:"description"`
			} `json:"activities"`
		}
		decode(t, rec, &trail)
		gt.Array(t, trail.Activities).Length(3)
		gt.Value(t, trail.Activities[0].Kind).Equal("assigned")
		gt.Value(t, trail.Activities[1].Description).Equal("Status ändrad från Ny till Kontaktad")
	})

	t.Run("unknown assignee is 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, base+"/assignee", "U1", map[string]any{"user_id": "U9"})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("assignee inbox", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/orgs/test-org/notifications?unread=true", "U2", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Notifications []struct {
				ID      string `json:"id"`
				Subject string `json:"subject"`
			} `json:"notifications"`
		}
		decode(t, rec, &resp)
		gt.Array(t, resp.Notifications).Length(1)

		rec = doJSON(t, srv, http.MethodPost, "/api/orgs/test-org/notifications/"+resp.Notifications[0].ID+"/read", "U2", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("missing work item is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/orgs/test-org/work-items/9999", "U1", nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestNoteEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orgs/test-org/work-items", "U1", map[string]any{
		"kind":  "order",
		"title": "Installation värmepump",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var item struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &item)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/orgs/test-org/work-items/%d/notes", item.ID), "U1", map[string]any{
		"body": "Kunden vill ha installation vecka 40",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var note struct {
		ID string `json:"id"`
	}
	decode(t, rec, &note)

	t.Run("non-author edit is 403", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/orgs/test-org/notes/"+note.ID, "U2", map[string]any{"body": "x"})
		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("author delete is 204", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodDelete, "/api/orgs/test-org/notes/"+note.ID, "U1", nil)
		gt.Number(t, rec.Code).Equal(http.StatusNoContent)
	})
}

func TestSessionEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orgs/test-org/work-items", "U2", map[string]any{
		"kind":  "order",
		"title": "Dränering Kvarngatan",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var item struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &item)

	sessionsPath := fmt.Sprintf("/api/orgs/test-org/work-items/%d/sessions", item.ID)

	rec = doJSON(t, srv, http.MethodPost, sessionsPath, "U2", map[string]any{"work_type": "excavation"})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var session struct {
		ID       string `json:"id"`
		WorkerID string `json:"worker_id"`
	}
	decode(t, rec, &session)
	gt.Value(t, session.WorkerID).Equal("U2")

	t.Run("second clock-in is 409", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, sessionsPath, "U2", map[string]any{})
		gt.Number(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("active session query", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/orgs/test-org/sessions/active", "U2", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Session *struct {
				ID string `json:"id"`
			} `json:"session"`
		}
		decode(t, rec, &resp)
		gt.Value(t, resp.Session.ID).Equal(session.ID)
	})

	t.Run("stop then double-stop is 409", func(t *testing.T) {
		stopPath := "/api/orgs/test-org/sessions/" + session.ID + "/stop"
		rec := doJSON(t, srv, http.MethodPost, stopPath, "U2", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodPost, stopPath, "U2", nil)
		gt.Number(t, rec.Code).Equal(http.StatusConflict)
	})
}
