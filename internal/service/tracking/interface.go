package tracking

import (
	"context"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
)

/*=================Platform location provider=====================*/

// WatchOptions tune a continuous location watch.
type WatchOptions struct {
	IntervalSeconds   int
	MinDistanceMeters float64
}

// Subscription is a handle to an active foreground watch. Remove is
// idempotent on the platform side.
type Subscription interface {
	Remove()
}

// RawLocation is what the platform hands a callback on each fix.
type RawLocation struct {
	Latitude    float64
	Longitude   float64
	Altitude    *float64
	Accuracy    *float64
	TimestampMs int64
}

// LocationProvider abstracts the device location subsystem. Foreground and
// background sampling are both driven by the platform; this service only
// registers callbacks.
type LocationProvider interface {
	RequestForegroundPermission(ctx context.Context) (granted bool, err error)
	RequestBackgroundPermission(ctx context.Context) (granted bool, err error)
	WatchPosition(ctx context.Context, opts WatchOptions, cb func(RawLocation)) (Subscription, error)
}

/*=================Background task registry=======================*/

// TaskOptions configure a named long-running background task. The platform
// mandates a persistent user-visible notification for background location
// work.
type TaskOptions struct {
	IntervalSeconds   int
	MinDistanceMeters float64
	NotificationTitle string
	NotificationBody  string
}

// TaskRegistry abstracts the platform task table. At most one registration
// per task name is enforced by the platform, not re-implemented here.
type TaskRegistry interface {
	Register(ctx context.Context, taskName string, opts TaskOptions) error
	Unregister(ctx context.Context, taskName string) error
	IsRegistered(ctx context.Context, taskName string) (bool, error)
}

/*=================Remote sink====================================*/

// LocationSink persists one sample. Implemented by the walkapi HTTP client
// on device and by the tracking service directly on the server.
type LocationSink interface {
	SaveLocation(ctx context.Context, sample models.LocationSample) (models.SaveLocationResult, error)
}
