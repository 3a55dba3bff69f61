package http

import (
	"net/http"

	"github.com/workyard-lab/workyard/pkg/domain/model/auth"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// actorMiddleware resolves the acting user from the actor header.
// Requests without the header act as the anonymous system actor; their
// audit entries carry no actor reference.
func actorMiddleware(headerName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.NewAnonymousUser()
			if actor := r.Header.Get(headerName); actor != "" {
				token = &auth.Token{Sub: types.UserID(actor)}
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
