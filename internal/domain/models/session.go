package models

import (
	"context"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// Session is the authenticated caller extracted from a bearer token.
// Login/registration flows are owned elsewhere; this system only verifies
// tokens it is handed.
type Session struct {
	UserID uuid.UUID      `json:"user_id"`
	Name   string         `json:"name"`
	Role   types.UserRole `json:"role"`
}

func (s *Session) IsAnonymous() bool {
	return s == nil || s.UserID == uuid.UUID{}
}

func AnonymousSession() *Session {
	return &Session{}
}

type sessionCtxKey struct{}

var sessionKey = sessionCtxKey{}

// WithSession injects the session into ctx for handlers to read back.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored in ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok {
		return s
	}
	return nil
}
