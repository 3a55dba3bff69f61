package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/workyard-lab/workyard/pkg/usecase"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

// DefaultActorHeader carries the acting user's ID. Requests without it
// run as the system actor.
const DefaultActorHeader = "X-Workyard-Actor"

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	actorHeader string
}

type Options func(*Server)

// WithActorHeader overrides the header name carrying the actor identity
func WithActorHeader(name string) Options {
	return func(s *Server) {
		s.actorHeader = name
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		uc:          uc,
		actorHeader: DefaultActorHeader,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(actorMiddleware(s.actorHeader))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck // header already committed
	})

	r.Route("/api/orgs/{orgID}", func(r chi.Router) {
		r.Route("/work-items", func(r chi.Router) {
			r.Post("/", s.createWorkItem)
			r.Get("/", s.listWorkItems)

			r.Route("/{itemID}", func(r chi.Router) {
				r.Get("/", s.getWorkItem)
				r.Patch("/", s.updateWorkItemDetails)
				r.Put("/status", s.transitionWorkItem)
				r.Put("/assignee", s.assignUser)
				r.Put("/team", s.assignTeam)
				r.Post("/convert", s.convertLead)
				r.Get("/activities", s.listActivities)
				r.Post("/notes", s.addNote)
				r.Get("/notes", s.listNotes)
				r.Post("/sessions", s.startSession)
			})
		})

		r.Route("/notes/{noteID}", func(r chi.Router) {
			r.Put("/", s.updateNote)
			r.Delete("/", s.deleteNote)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Get("/active", s.getActiveSession)
			r.Post("/{sessionID}/stop", s.stopSession)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.listNotifications)
			r.Post("/{notificationID}/read", s.markNotificationRead)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
