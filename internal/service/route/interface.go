package route

import (
	"context"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*=================Route source===================================*/

// RouteSource fetches every recorded point for a walk. Implemented by the
// walkapi HTTP client on device and by the tracking service on the server.
type RouteSource interface {
	GetWalkRoute(ctx context.Context, walkID uuid.UUID) (models.WalkRoute, error)
}

/*===================== Address Geo Coder ========================*/

// GeoCoder reverse-geocodes one coordinate into a display address.
// Implementations should prefer street-level results; any failure is
// surfaced as an error and the projector falls back to raw coordinates.
type GeoCoder interface {
	GetAddress(ctx context.Context, latitude, longitude float64) (string, error)
}
