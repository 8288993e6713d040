package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// SamplerConfig carries the sampling cadences. Background work runs with a
// larger interval and distance filter than the foreground watch.
type SamplerConfig struct {
	TaskName string

	ForegroundIntervalSeconds int
	ForegroundMinDistanceM    float64
	BackgroundIntervalSeconds int
	BackgroundMinDistanceM    float64

	NotificationTitle string
	NotificationBody  string
}

// DefaultSamplerConfig returns the production cadences: 180s/30m foreground,
// 300s/50m background.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		TaskName:                  "walk-location-tracking",
		ForegroundIntervalSeconds: 180,
		ForegroundMinDistanceM:    30,
		BackgroundIntervalSeconds: 300,
		BackgroundMinDistanceM:    50,
		NotificationTitle:         "Paseo en curso",
		NotificationBody:          "Registrando la ubicación del paseo",
	}
}

/*
Sampler drives GPS capture for one active walk. The platform owns the
timers: the sampler's job is permissions, callback registration, per-sample
validation and fire-and-forget forwarding to the sink. Every start has a
matching idempotent stop.
*/
type Sampler struct {
	cfg      SamplerConfig
	provider LocationProvider
	registry TaskRegistry
	sink     LocationSink
	l        logger.Logger

	mu    sync.Mutex
	watch Subscription
}

// NewSampler returns a sampler with all platform collaborators injected.
func NewSampler(cfg SamplerConfig, provider LocationProvider, registry TaskRegistry, sink LocationSink, l logger.Logger) *Sampler {
	return &Sampler{
		cfg:      cfg,
		provider: provider,
		registry: registry,
		sink:     sink,
		l:        l,
	}
}

// StartForeground begins a continuous foreground watch for walkID.
// Requires foreground location permission. Each fix is validated and
// forwarded immediately; upload failures are logged and the watch keeps
// running. A second call replaces the previous watch.
func (s *Sampler) StartForeground(ctx context.Context, walkID uuid.UUID) error {
	ctx = wrap.WithWalkID(ctx, walkID.String())

	granted, err := s.provider.RequestForegroundPermission(ctx)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !granted {
		return wrap.Error(ctx, types.ErrPermissionDenied)
	}

	opts := WatchOptions{
		IntervalSeconds:   s.cfg.ForegroundIntervalSeconds,
		MinDistanceMeters: s.cfg.ForegroundMinDistanceM,
	}

	sub, err := s.provider.WatchPosition(ctx, opts, func(loc RawLocation) {
		s.forward(ctx, walkID, loc, "foreground")
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}

	s.mu.Lock()
	if s.watch != nil {
		s.watch.Remove()
	}
	s.watch = sub
	s.mu.Unlock()

	s.l.Info(wrap.WithAction(ctx, types.ActionTrackingStarted), "foreground watch started",
		"interval_s", opts.IntervalSeconds,
		"min_distance_m", opts.MinDistanceMeters,
	)

	return nil
}

// StopForeground cancels the active watch. Calling it with no active watch
// is a no-op.
func (s *Sampler) StopForeground(ctx context.Context) {
	s.mu.Lock()
	sub := s.watch
	s.watch = nil
	s.mu.Unlock()

	if sub == nil {
		return
	}

	sub.Remove()
	s.l.Info(wrap.WithAction(ctx, types.ActionTrackingStopped), "foreground watch stopped")
}

// StartBackground registers the named background task for walkID.
// Background capture needs both permissions; when only the foreground one is
// granted the call degrades to TrackingModeForeground instead of failing.
func (s *Sampler) StartBackground(ctx context.Context, walkID uuid.UUID) (types.TrackingMode, error) {
	ctx = wrap.WithWalkID(ctx, walkID.String())

	granted, err := s.provider.RequestForegroundPermission(ctx)
	if err != nil {
		return types.TrackingModeOff, wrap.Error(ctx, err)
	}
	if !granted {
		return types.TrackingModeOff, wrap.Error(ctx, types.ErrPermissionDenied)
	}

	bgGranted, err := s.provider.RequestBackgroundPermission(ctx)
	if err != nil {
		return types.TrackingModeOff, wrap.Error(ctx, err)
	}
	if !bgGranted {
		// Degraded success: the caller still has foreground capture.
		s.l.Warn(ctx, "background permission denied, staying foreground-only")
		return types.TrackingModeForeground, nil
	}

	opts := TaskOptions{
		IntervalSeconds:   s.cfg.BackgroundIntervalSeconds,
		MinDistanceMeters: s.cfg.BackgroundMinDistanceM,
		NotificationTitle: s.cfg.NotificationTitle,
		NotificationBody:  s.cfg.NotificationBody,
	}

	if err := s.registry.Register(ctx, s.cfg.TaskName, opts); err != nil {
		return types.TrackingModeOff, wrap.Error(ctx, err)
	}

	s.l.Info(wrap.WithAction(ctx, types.ActionTrackingStarted), "background task registered",
		"task", s.cfg.TaskName,
		"interval_s", opts.IntervalSeconds,
		"min_distance_m", opts.MinDistanceMeters,
	)

	return types.TrackingModeBackground, nil
}

// StopBackground unregisters the background task. It checks the registry
// first so a double stop never errors against the platform.
func (s *Sampler) StopBackground(ctx context.Context) error {
	registered, err := s.registry.IsRegistered(ctx, s.cfg.TaskName)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !registered {
		return nil
	}

	if err := s.registry.Unregister(ctx, s.cfg.TaskName); err != nil {
		return wrap.Error(ctx, err)
	}

	s.l.Info(wrap.WithAction(ctx, types.ActionTrackingStopped), "background task unregistered",
		"task", s.cfg.TaskName,
	)
	return nil
}

// IsTrackingActive reports whether the background task is registered.
// Fails safe to false when the registry cannot be queried.
func (s *Sampler) IsTrackingActive(ctx context.Context) bool {
	registered, err := s.registry.IsRegistered(ctx, s.cfg.TaskName)
	if err != nil {
		s.l.Warn(ctx, "task registry query failed, reporting inactive", "err", err.Error())
		return false
	}
	return registered
}

// HandleBackgroundBatch is the callback the platform invokes for the
// background task, possibly long after the app process that registered it
// is gone. It takes the first location of the batch, builds a sample and
// forwards it. Errors are logged and swallowed: the platform retries the
// task on its own schedule.
func (s *Sampler) HandleBackgroundBatch(ctx context.Context, walkID uuid.UUID, batch []RawLocation) {
	if len(batch) == 0 {
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())
	s.forward(ctx, walkID, batch[0], "background")
}

// forward validates one fix and ships it to the sink. Upload failures are
// logged, never retried here, and never stop the sampling source.
func (s *Sampler) forward(ctx context.Context, walkID uuid.UUID, loc RawLocation, source string) {
	sample := models.LocationSample{
		WalkID:      walkID,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Altitude:    loc.Altitude,
		Accuracy:    loc.Accuracy,
		TimestampMs: loc.TimestampMs,
	}
	if sample.TimestampMs == 0 {
		sample.TimestampMs = time.Now().UnixMilli()
	}

	if err := sample.Validate(); err != nil {
		s.l.Error(wrap.WithAction(ctx, types.ActionLocationSampleRejected),
			"dropping out-of-range sample", err,
			"lat", loc.Latitude, "lng", loc.Longitude, "source", source,
		)
		return
	}

	if _, err := s.sink.SaveLocation(ctx, sample); err != nil {
		s.l.Warn(ctx, "sample upload failed",
			"err", err.Error(), "source", source,
		)
		return
	}

	s.l.Debug(wrap.WithAction(ctx, types.ActionLocationSampleSaved), "sample forwarded",
		"source", source,
	)
}
