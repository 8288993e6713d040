package models

import (
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// LocationSample is one device GPS reading. It is built in the sampling
// callback and forwarded to the sink immediately; nothing retains it after
// the callback returns.
type LocationSample struct {
	WalkID    uuid.UUID `json:"walk_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	// TimestampMs is the device clock at capture time, epoch milliseconds.
	TimestampMs int64 `json:"timestamp"`
}

// Validate rejects out-of-range coordinates. Out-of-range values are a hard
// error, never clamped.
func (s LocationSample) Validate() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return types.ErrInvalidLatitude
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return types.ErrInvalidLongitude
	}
	return nil
}

// RoutePoint is a persisted sample as the route query returns it. Lat/Lng
// come back as strings from the backend and are parsed defensively.
type RoutePoint struct {
	ID         uuid.UUID `json:"id"`
	Lat        string    `json:"lat"`
	Lng        string    `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
	Address    string    `json:"address,omitempty"`
}

// WalkRoute is the full recorded route for one walk.
type WalkRoute struct {
	HasMap    bool         `json:"has_map"`
	MapID     uuid.UUID    `json:"map_id"`
	WalkID    uuid.UUID    `json:"walk_id"`
	Locations []RoutePoint `json:"locations"`
}

// SaveLocationResult mirrors the sink's response to a saved sample.
type SaveLocationResult struct {
	SavedCount int          `json:"saved_count"`
	Locations  []RoutePoint `json:"locations"`
}

// RabbitMQ message: live location update -> <walk_location_fanout> exchange
type WalkLocationUpdate struct {
	WalkID    uuid.UUID `json:"walk_id"`
	WalkerID  uuid.UUID `json:"walker_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
