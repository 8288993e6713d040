package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/metrics"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*=================Server-side collaborators======================*/

type CoordinateRepo interface {
	Create(ctx context.Context, sample models.LocationSample) (uuid.UUID, error)
	ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.RoutePoint, error)
}

type WalkGetter interface {
	Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error)
}

type Publisher interface {
	PublishLocationUpdate(ctx context.Context, msg models.WalkLocationUpdate) error
}

/*
Service is the walk service's side of the location pipeline: it validates
and persists incoming samples and fans live updates out to watchers.
It implements LocationSink, so the on-device Sampler and the server share
one contract.
*/
type Service struct {
	coordinates CoordinateRepo
	walks       WalkGetter
	publisher   Publisher
	l           logger.Logger
}

func NewService(coordinates CoordinateRepo, walks WalkGetter, publisher Publisher, l logger.Logger) *Service {
	return &Service{
		coordinates: coordinates,
		walks:       walks,
		publisher:   publisher,
		l:           l,
	}
}

// SaveLocation persists one sample and publishes a live update. The
// publish is best-effort: a broken broker must not lose the sample.
func (s *Service) SaveLocation(ctx context.Context, sample models.LocationSample) (models.SaveLocationResult, error) {
	const op = "tracking.Service.SaveLocation"
	ctx = wrap.WithWalkID(ctx, sample.WalkID.String())

	if err := sample.Validate(); err != nil {
		metrics.LocationSamplesRejected.Inc()
		ctx = wrap.WithAction(ctx, types.ActionLocationSampleRejected)
		return models.SaveLocationResult{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	walk, err := s.walks.Get(ctx, sample.WalkID)
	if err != nil {
		return models.SaveLocationResult{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	if _, err := s.coordinates.Create(ctx, sample); err != nil {
		return models.SaveLocationResult{}, wrap.Error(ctx, fmt.Errorf("%s: failed to persist sample: %w", op, err))
	}
	metrics.LocationSamplesSaved.WithLabelValues("api").Inc()

	update := models.WalkLocationUpdate{
		WalkID:    sample.WalkID,
		WalkerID:  walk.WalkerID,
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Accuracy:  sample.Accuracy,
		Timestamp: time.UnixMilli(sample.TimestampMs).UTC(),
	}
	if err := s.publisher.PublishLocationUpdate(ctx, update); err != nil {
		s.l.Warn(ctx, "failed to publish location update", "err", err.Error())
	}

	points, err := s.coordinates.ListByWalk(ctx, sample.WalkID)
	if err != nil {
		// The sample is already saved; return a minimal result.
		s.l.Warn(ctx, "failed to list points after save", "err", err.Error())
		return models.SaveLocationResult{SavedCount: 1}, nil
	}

	return models.SaveLocationResult{
		SavedCount: 1,
		Locations:  points,
	}, nil
}

// GetWalkRoute returns every recorded point for a walk, in recorded
// (ascending) order.
func (s *Service) GetWalkRoute(ctx context.Context, walkID uuid.UUID) (models.WalkRoute, error) {
	const op = "tracking.Service.GetWalkRoute"
	ctx = wrap.WithWalkID(ctx, walkID.String())

	if _, err := s.walks.Get(ctx, walkID); err != nil {
		return models.WalkRoute{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	points, err := s.coordinates.ListByWalk(ctx, walkID)
	if err != nil {
		return models.WalkRoute{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	route := models.WalkRoute{
		HasMap:    len(points) > 0,
		WalkID:    walkID,
		Locations: points,
	}
	if len(points) > 0 {
		route.MapID = points[0].ID
	}

	return route, nil
}
