package route

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*=================fakes==========================================*/

type fakeSource struct {
	route models.WalkRoute
	err   error
}

func (f *fakeSource) GetWalkRoute(ctx context.Context, walkID uuid.UUID) (models.WalkRoute, error) {
	if f.err != nil {
		return models.WalkRoute{}, f.err
	}
	return f.route, nil
}

type fakeGeocoder struct {
	address string
	err     error
	calls   int
}

func (f *fakeGeocoder) GetAddress(ctx context.Context, lat, lng float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.address, nil
}

func testProjector(src *fakeSource, geo *fakeGeocoder) *Projector {
	return NewProjector(src, geo, logger.InitLogger("test", logger.LevelError))
}

func pointAt(lat, lng string, minute int, address string) models.RoutePoint {
	return models.RoutePoint{
		ID:         uuid.MustNew(),
		Lat:        lat,
		Lng:        lng,
		RecordedAt: time.Date(2026, 3, 14, 16, minute, 0, 0, time.UTC),
		Address:    address,
	}
}

/*=================rendering rules================================*/

func TestProject_EmptyRoute(t *testing.T) {
	p := testProjector(&fakeSource{}, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if proj.ShowStartMarker || proj.ShowEndMarker || proj.ShowPolyline {
		t.Fatalf("empty route must render nothing, got %+v", proj)
	}
	if len(proj.Path) != 0 || len(proj.Records) != 0 {
		t.Fatalf("empty route must have no path or records")
	}
}

func TestProject_SinglePointStartMarkerOnly(t *testing.T) {
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, "Av. Corrientes 1234"),
	}}}
	p := testProjector(src, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if !proj.ShowStartMarker {
		t.Fatal("single point must render a start marker")
	}
	if proj.ShowPolyline || proj.ShowEndMarker {
		t.Fatalf("single point must render neither polyline nor end marker, got %+v", proj)
	}
}

func TestProject_ActiveWalkHasNoEndMarker(t *testing.T) {
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, "a"),
		pointAt("-34.6040", "-58.3820", 1, "b"),
		pointAt("-34.6050", "-58.3830", 2, "c"),
	}}}
	p := testProjector(src, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if !proj.ShowPolyline || !proj.ShowStartMarker {
		t.Fatalf("multi-point route must render a connected path, got %+v", proj)
	}
	if proj.ShowEndMarker {
		t.Fatal("in-progress walk must not render an end marker")
	}
	if !proj.Interactive {
		t.Fatal("active walk map must be interactive")
	}
}

func TestProject_FinishedWalkHasEndMarkerAndMutedStroke(t *testing.T) {
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, "a"),
		pointAt("-34.6040", "-58.3820", 1, "b"),
	}}}
	p := testProjector(src, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusFinished)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if !proj.ShowEndMarker {
		t.Fatal("finished walk must render a distinct end marker")
	}
	if proj.Interactive {
		t.Fatal("finished walk map must be frozen")
	}
	if proj.StrokeColor == strokeActive {
		t.Fatal("finished walk must be visually distinct from an active one")
	}
}

func TestProject_OrderingPathAscRecordsDesc(t *testing.T) {
	// Deliberately out of order.
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("2", "2", 5, "second"),
		pointAt("1", "1", 0, "first"),
		pointAt("3", "3", 9, "third"),
	}}}
	p := testProjector(src, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusFinished)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if proj.Path[0].Latitude != 1 || proj.Path[1].Latitude != 2 || proj.Path[2].Latitude != 3 {
		t.Fatalf("path must keep recorded order, got %+v", proj.Path)
	}
	if proj.Records[0].Address != "third" || proj.Records[2].Address != "first" {
		t.Fatalf("records must be most-recent-first, got %+v", proj.Records)
	}
}

func TestProject_DropsUnparsablePoints(t *testing.T) {
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("not-a-number", "-58.38", 0, "bad"),
		pointAt("-34.60", "-58.38", 1, "good"),
	}}}
	p := testProjector(src, &fakeGeocoder{})

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("bad point must not fail the render: %v", err)
	}
	if len(proj.Path) != 1 {
		t.Fatalf("want 1 parsed point, got %d", len(proj.Path))
	}
}

/*=================address resolution=============================*/

func TestResolveAddress_RealAddressSkipsGeocode(t *testing.T) {
	geo := &fakeGeocoder{address: "should not be used"}
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, "Av. Corrientes 1234"),
	}}}
	p := testProjector(src, geo)

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if geo.calls != 0 {
		t.Fatalf("stored address must not trigger a geocode, got %d calls", geo.calls)
	}
	if proj.Records[0].Address != "Av. Corrientes 1234" {
		t.Fatalf("unexpected address %q", proj.Records[0].Address)
	}
}

func TestResolveAddress_PlaceholderTriggersGeocode(t *testing.T) {
	geo := &fakeGeocoder{address: "Av. Santa Fe 2500"}
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6", "-58.3", 0, "Lat: -34.6, Lng: -58.3"),
	}}}
	p := testProjector(src, geo)

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if geo.calls != 1 {
		t.Fatalf("placeholder address must trigger exactly one geocode, got %d", geo.calls)
	}
	if proj.Records[0].Address != "Av. Santa Fe 2500" {
		t.Fatalf("unexpected address %q", proj.Records[0].Address)
	}
}

func TestResolveAddress_GeocodeFailureFallsBackToCoordinates(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("quota exceeded")}
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, ""),
	}}}
	p := testProjector(src, geo)

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("geocode failure must not fail the render: %v", err)
	}

	want := "-34.6037, -58.3816"
	if proj.Records[0].Address != want {
		t.Fatalf("fallback address = %q, want %q", proj.Records[0].Address, want)
	}
}

func TestResolveAddress_EmptyGeocodeResultFallsBack(t *testing.T) {
	geo := &fakeGeocoder{address: ""}
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, ""),
	}}}
	p := testProjector(src, geo)

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if proj.Records[0].Address != "-34.6037, -58.3816" {
		t.Fatalf("empty result must fall back to coordinates, got %q", proj.Records[0].Address)
	}
}

func TestResolveAddress_NilGeocoder(t *testing.T) {
	src := &fakeSource{route: models.WalkRoute{Locations: []models.RoutePoint{
		pointAt("-34.6037", "-58.3816", 0, ""),
	}}}
	p := NewProjector(src, nil, logger.InitLogger("test", logger.LevelError))

	proj, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if proj.Records[0].Address != "-34.6037, -58.3816" {
		t.Fatalf("missing geocoder must fall back, got %q", proj.Records[0].Address)
	}
}

func TestFallbackAddress_FixedPrecision(t *testing.T) {
	if got := FallbackAddress(-34.60370001, -58.38159999); got != "-34.6037, -58.3816" {
		t.Fatalf("FallbackAddress = %q", got)
	}
	if got := FallbackAddress(0, 0); got != "0.0000, 0.0000" {
		t.Fatalf("FallbackAddress = %q", got)
	}
}

func TestProject_SourceErrorSurfaces(t *testing.T) {
	src := &fakeSource{err: errors.New("backend down")}
	p := testProjector(src, &fakeGeocoder{})

	if _, err := p.Project(context.Background(), uuid.MustNew(), types.StatusActive); err == nil {
		t.Fatal("route fetch failure must surface to the caller")
	}
}
