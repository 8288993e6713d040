package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
)

// Auth verifies the bearer token and injects the session into context.
// Requests without a header pass through as anonymous; protected routes
// reject those in RequireRoles.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			r = r.WithContext(models.WithSession(ctx, models.AnonymousSession()))
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		session, err := h.verifier.Verify(tokenStr)
		if err != nil || session == nil {
			if err == nil {
				err = fmt.Errorf("verifier returned no session")
			}
			h.log.Error(wrap.ErrorCtx(ctx, err), "failed to authenticate caller", err)
			errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		ctx = wrap.WithUserID(ctx, session.UserID.String())
		next.ServeHTTP(w, r.WithContext(models.WithSession(ctx, session)))
	})
}

// RequireRoles allows only authenticated callers with one of the given
// roles. With no roles listed, any authenticated caller passes.
func (h *Middleware) RequireRoles(next http.HandlerFunc, allowedRoles ...types.UserRole) http.Handler {
	allowed := make(map[types.UserRole]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := models.SessionFromContext(r.Context())
		if session.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[session.Role]; !ok {
				errorResponse(w, http.StatusForbidden, "forbidden: insufficient role")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
