package internal

import (
	"context"
	"time"
)

// Identity is the authenticated caller attached to the request context by the
// token middleware. Handlers receive it explicitly through these helpers,
// never through framework-managed globals.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// RefreshSession carries the verified refresh-token claims plus the raw token
// string. The plaintext is needed downstream so it can be compared against
// the stored bcrypt hash.
type RefreshSession struct {
	Identity
	RefreshToken string
}

type ctxKey string

const (
	identityKey       ctxKey = "identity"
	refreshSessionKey ctxKey = "refreshSession"
)

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func ContextWithRefreshSession(ctx context.Context, s RefreshSession) context.Context {
	return context.WithValue(ctx, refreshSessionKey, s)
}

func RefreshSessionFromContext(ctx context.Context) (RefreshSession, bool) {
	if ctx == nil {
		return RefreshSession{}, false
	}
	s, ok := ctx.Value(refreshSessionKey).(RefreshSession)
	return s, ok
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
