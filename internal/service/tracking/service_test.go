package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type fakeCoordRepo struct {
	created []models.LocationSample
	points  []models.RoutePoint
	listErr error
}

func (f *fakeCoordRepo) Create(ctx context.Context, sample models.LocationSample) (uuid.UUID, error) {
	f.created = append(f.created, sample)
	return uuid.MustNew(), nil
}

func (f *fakeCoordRepo) ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.RoutePoint, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.points, nil
}

type fakeWalkGetter struct {
	walk *models.Walk
	err  error
}

func (f *fakeWalkGetter) Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.walk, nil
}

type fakePublisher struct {
	published []models.WalkLocationUpdate
	err       error
}

func (f *fakePublisher) PublishLocationUpdate(ctx context.Context, msg models.WalkLocationUpdate) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func newTestService(repo *fakeCoordRepo, walks *fakeWalkGetter, pub *fakePublisher) *Service {
	return NewService(repo, walks, pub, logger.InitLogger("test", logger.LevelError))
}

func activeWalk() *models.Walk {
	return &models.Walk{
		ID:       uuid.MustNew(),
		WalkerID: uuid.MustNew(),
		Status:   types.StatusActive,
	}
}

func TestSaveLocation_PersistsAndPublishes(t *testing.T) {
	walk := activeWalk()
	repo := &fakeCoordRepo{points: []models.RoutePoint{{Lat: "1.0", Lng: "2.0"}}}
	pub := &fakePublisher{}
	svc := newTestService(repo, &fakeWalkGetter{walk: walk}, pub)

	result, err := svc.SaveLocation(context.Background(), models.LocationSample{
		WalkID: walk.ID, Latitude: 1.0, Longitude: 2.0, TimestampMs: 1700000000000,
	})
	if err != nil {
		t.Fatalf("SaveLocation: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("persisted %d samples, want 1", len(repo.created))
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d updates, want 1", len(pub.published))
	}
	if pub.published[0].WalkerID != walk.WalkerID {
		t.Fatal("published update must carry the walker id")
	}
	if result.SavedCount != 1 || len(result.Locations) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSaveLocation_RejectsOutOfRange(t *testing.T) {
	repo := &fakeCoordRepo{}
	svc := newTestService(repo, &fakeWalkGetter{walk: activeWalk()}, &fakePublisher{})

	_, err := svc.SaveLocation(context.Background(), models.LocationSample{
		WalkID: uuid.MustNew(), Latitude: 91, Longitude: 0, TimestampMs: 1,
	})
	if !errors.Is(err, types.ErrInvalidLatitude) {
		t.Fatalf("want ErrInvalidLatitude, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("rejected sample must not be persisted")
	}
}

func TestSaveLocation_WalkMissing(t *testing.T) {
	svc := newTestService(&fakeCoordRepo{}, &fakeWalkGetter{err: types.ErrWalkNotFound}, &fakePublisher{})

	_, err := svc.SaveLocation(context.Background(), models.LocationSample{
		WalkID: uuid.MustNew(), Latitude: 1, Longitude: 2, TimestampMs: 1,
	})
	if !errors.Is(err, types.ErrWalkNotFound) {
		t.Fatalf("want ErrWalkNotFound, got %v", err)
	}
}

func TestSaveLocation_PublishFailureIsNotFatal(t *testing.T) {
	walk := activeWalk()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(&fakeCoordRepo{}, &fakeWalkGetter{walk: walk}, pub)

	_, err := svc.SaveLocation(context.Background(), models.LocationSample{
		WalkID: walk.ID, Latitude: 1, Longitude: 2, TimestampMs: 1,
	})
	if err != nil {
		t.Fatalf("broken broker must not fail the save: %v", err)
	}
}

func TestSaveLocation_ListFailureReturnsMinimalResult(t *testing.T) {
	walk := activeWalk()
	repo := &fakeCoordRepo{listErr: errors.New("query failed")}
	svc := newTestService(repo, &fakeWalkGetter{walk: walk}, &fakePublisher{})

	result, err := svc.SaveLocation(context.Background(), models.LocationSample{
		WalkID: walk.ID, Latitude: 1, Longitude: 2, TimestampMs: 1,
	})
	if err != nil {
		t.Fatalf("sample is saved, listing failure must not surface: %v", err)
	}
	if result.SavedCount != 1 || result.Locations != nil {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGetWalkRoute(t *testing.T) {
	walk := activeWalk()
	first := uuid.MustNew()
	repo := &fakeCoordRepo{points: []models.RoutePoint{
		{ID: first, Lat: "1.0", Lng: "2.0"},
		{ID: uuid.MustNew(), Lat: "1.1", Lng: "2.1"},
	}}
	svc := newTestService(repo, &fakeWalkGetter{walk: walk}, &fakePublisher{})

	route, err := svc.GetWalkRoute(context.Background(), walk.ID)
	if err != nil {
		t.Fatalf("GetWalkRoute: %v", err)
	}
	if !route.HasMap || route.MapID != first || len(route.Locations) != 2 {
		t.Fatalf("unexpected route: %+v", route)
	}
}

func TestGetWalkRoute_EmptyWalk(t *testing.T) {
	svc := newTestService(&fakeCoordRepo{}, &fakeWalkGetter{walk: activeWalk()}, &fakePublisher{})

	route, err := svc.GetWalkRoute(context.Background(), uuid.MustNew())
	if err != nil {
		t.Fatalf("GetWalkRoute: %v", err)
	}
	if route.HasMap {
		t.Fatal("walk with no points must report has_map=false")
	}
}
