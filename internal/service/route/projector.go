package route

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/internal/policy"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/metrics"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// placeholderPrefix marks addresses that were stored as stringified
// coordinates ("Lat: -34.6, Lng: -58.3") instead of a real address.
const placeholderPrefix = "Lat:"

// Stroke colors: a finished walk renders muted, an in-progress one vivid.
const (
	strokeActive   = "#2E86DE"
	strokeFinished = "#95A5A6"
)

// LatLng is one vertex of the rendered polyline.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Record is one row of the human-readable GPS record list.
type Record struct {
	ID         uuid.UUID `json:"id"`
	Position   LatLng    `json:"position"`
	Address    string    `json:"address"`
	RecordedAt string    `json:"recorded_at"`
}

// Projection is everything a map view needs to draw one walk's route.
// Path keeps recorded (ascending) order for the polyline; Records are
// most-recent-first for the list.
type Projection struct {
	WalkID  uuid.UUID `json:"walk_id"`
	Path    []LatLng  `json:"path"`
	Records []Record  `json:"records"`

	// TotalDistanceMeters is the summed leg distance along the path.
	TotalDistanceMeters float64 `json:"total_distance_meters"`

	ShowStartMarker bool   `json:"show_start_marker"`
	ShowEndMarker   bool   `json:"show_end_marker"`
	ShowPolyline    bool   `json:"show_polyline"`
	StrokeColor     string `json:"stroke_color"`
	Interactive     bool   `json:"interactive"`
	StatusMessage   string `json:"status_message"`
}

/*
Projector turns raw persisted route points into a displayable path plus
reverse-geocoded record rows. Geocoding is best-effort enrichment: any
failure falls back to a fixed-precision coordinate string and never fails
the projection.
*/
type Projector struct {
	source   RouteSource
	geocoder GeoCoder
	l        logger.Logger
}

func NewProjector(source RouteSource, geocoder GeoCoder, l logger.Logger) *Projector {
	return &Projector{
		source:   source,
		geocoder: geocoder,
		l:        l,
	}
}

// Project fetches the walk's route and builds the render plan for the given
// status. Called once per view-open; there is no incremental update.
func (p *Projector) Project(ctx context.Context, walkID uuid.UUID, status types.WalkStatus) (*Projection, error) {
	const op = "route.Projector.Project"
	ctx = wrap.WithWalkID(ctx, walkID.String())

	routeData, err := p.source.GetWalkRoute(ctx, walkID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return p.Build(ctx, walkID, status, routeData.Locations), nil
}

// Build assembles a projection from already-fetched points. Exposed
// separately so callers holding a route response can re-render without a
// second fetch.
func (p *Projector) Build(ctx context.Context, walkID uuid.UUID, status types.WalkStatus, points []models.RoutePoint) *Projection {
	parsed := p.parsePoints(ctx, points)

	// Polyline order is recorded order.
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].point.RecordedAt.Before(parsed[j].point.RecordedAt)
	})

	proj := &Projection{
		WalkID:        walkID,
		Path:          make([]LatLng, 0, len(parsed)),
		Records:       make([]Record, 0, len(parsed)),
		Interactive:   policy.IsMapInteractive(status),
		StatusMessage: policy.MapStatusMessage(status),
	}

	for _, pp := range parsed {
		proj.Path = append(proj.Path, pp.pos)
	}

	// Record list is most-recent-first; parsed is already ascending.
	for i := len(parsed) - 1; i >= 0; i-- {
		pp := parsed[i]
		proj.Records = append(proj.Records, Record{
			ID:         pp.point.ID,
			Position:   pp.pos,
			Address:    p.resolveAddress(ctx, pp),
			RecordedAt: pp.point.RecordedAt.Format("02/01/2006 15:04"),
		})
	}

	proj.TotalDistanceMeters = pathDistance(proj.Path)

	proj.ShowStartMarker = len(proj.Path) >= 1
	proj.ShowPolyline = len(proj.Path) >= 2
	// An in-progress walk has no end yet.
	proj.ShowEndMarker = len(proj.Path) >= 2 && status == types.StatusFinished

	if status == types.StatusFinished {
		proj.StrokeColor = strokeFinished
	} else {
		proj.StrokeColor = strokeActive
	}

	return proj
}

type parsedPoint struct {
	point models.RoutePoint
	pos   LatLng
}

// parsePoints converts stringified lat/lng defensively; unparsable points
// are dropped with a warning rather than failing the render.
func (p *Projector) parsePoints(ctx context.Context, points []models.RoutePoint) []parsedPoint {
	out := make([]parsedPoint, 0, len(points))
	for _, pt := range points {
		lat, err := strconv.ParseFloat(strings.TrimSpace(pt.Lat), 64)
		if err != nil {
			p.l.Warn(ctx, "dropping route point with bad latitude", "id", pt.ID, "lat", pt.Lat)
			continue
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(pt.Lng), 64)
		if err != nil {
			p.l.Warn(ctx, "dropping route point with bad longitude", "id", pt.ID, "lng", pt.Lng)
			continue
		}
		out = append(out, parsedPoint{
			point: pt,
			pos:   LatLng{Latitude: lat, Longitude: lng},
		})
	}
	return out
}

// resolveAddress prefers the stored address, falls back to reverse
// geocoding for missing or placeholder values, and finally to a fixed
// 4-decimal coordinate string. This path never returns an error.
func (p *Projector) resolveAddress(ctx context.Context, pp parsedPoint) string {
	addr := strings.TrimSpace(pp.point.Address)
	if addr != "" && !strings.HasPrefix(addr, placeholderPrefix) {
		return addr
	}

	if p.geocoder != nil {
		resolved, err := p.geocoder.GetAddress(ctx, pp.pos.Latitude, pp.pos.Longitude)
		if err == nil && resolved != "" {
			return resolved
		}
		if err != nil {
			p.l.Debug(wrap.WithAction(ctx, types.ActionGeocodeFallback),
				"reverse geocode failed, using coordinates",
				"err", err.Error(),
			)
		}
	}

	metrics.GeocodeFallbacks.Inc()
	return FallbackAddress(pp.pos.Latitude, pp.pos.Longitude)
}

// FallbackAddress renders a coordinate pair at fixed 4-decimal precision.
func FallbackAddress(lat, lng float64) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(lat, 'f', 4, 64),
		strconv.FormatFloat(lng, 'f', 4, 64),
	)
}
