package middleware

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
)

type (
	// TokenVerifier turns a bearer token into a session. Implemented by
	// pkg/token; login and registration belong to the auth service.
	TokenVerifier interface {
		Verify(tokenStr string) (*models.Session, error)
	}

	Middleware struct {
		verifier TokenVerifier
		log      logger.Logger
	}
)

func NewMiddleware(verifier TokenVerifier, log logger.Logger) *Middleware {
	return &Middleware{
		verifier: verifier,
		log:      log,
	}
}
