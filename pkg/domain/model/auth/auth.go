package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// Token identifies the actor of the current request. Sub is empty for the
// anonymous (system) actor, in which case activities are recorded as
// system-generated.
type Token struct {
	Sub  types.UserID
	Name string
}

// NewAnonymousUser returns a token for the system actor
func NewAnonymousUser() *Token {
	return &Token{}
}

// IsAnonymous reports whether the token carries no user identity
func (t *Token) IsAnonymous() bool {
	return t == nil || t.Sub == ""
}

type ctxKey struct{}

// ContextWithToken embeds the actor token into the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts the actor token from the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxKey{}).(*Token)
	if !ok || token == nil {
		return nil, goerr.New("no actor token in context")
	}
	return token, nil
}

// ActorFromContext returns the acting user ID, or empty for system actions
func ActorFromContext(ctx context.Context) types.UserID {
	token, err := TokenFromContext(ctx)
	if err != nil {
		return ""
	}
	return token.Sub
}
