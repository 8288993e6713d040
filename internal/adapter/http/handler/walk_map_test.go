package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/internal/service/route"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type fakeWalkService struct {
	walk *models.Walk
	err  error
}

func (f *fakeWalkService) Get(_ context.Context, _ uuid.UUID) (*models.Walk, error) {
	return f.walk, f.err
}

type fakeProjector struct {
	projection *route.Projection
	err        error

	gotStatus types.WalkStatus
}

func (f *fakeProjector) Project(_ context.Context, _ uuid.UUID, status types.WalkStatus) (*route.Projection, error) {
	f.gotStatus = status
	return f.projection, f.err
}

func TestGetMap(t *testing.T) {
	walkID := uuid.MustNew()

	walks := &fakeWalkService{walk: &models.Walk{ID: walkID, Status: types.StatusActive}}
	projector := &fakeProjector{projection: &route.Projection{
		WalkID:      walkID,
		StrokeColor: "#2E86DE",
		Interactive: true,
	}}

	h := NewWalkMap(walks, projector, logger.InitLogger("test", logger.LevelError))

	r := httptest.NewRequest(http.MethodGet, "/walks/"+walkID.String()+"/map", nil)
	r.SetPathValue("walk_id", walkID.String())
	w := httptest.NewRecorder()

	h.GetMap(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if projector.gotStatus != types.StatusActive {
		t.Errorf("projector received status %q, want %q", projector.gotStatus, types.StatusActive)
	}

	var body struct {
		Map route.Projection `json:"map"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Map.WalkID != walkID {
		t.Errorf("map.walk_id = %s, want %s", body.Map.WalkID, walkID)
	}
	if body.Map.StrokeColor != "#2E86DE" {
		t.Errorf("map.stroke_color = %q, want %q", body.Map.StrokeColor, "#2E86DE")
	}
}

func TestGetMapWalkNotFound(t *testing.T) {
	walkID := uuid.MustNew()

	walks := &fakeWalkService{err: fmt.Errorf("WalkRepo.Get: %w", types.ErrWalkNotFound)}
	h := NewWalkMap(walks, &fakeProjector{}, logger.InitLogger("test", logger.LevelError))

	r := httptest.NewRequest(http.MethodGet, "/walks/"+walkID.String()+"/map", nil)
	r.SetPathValue("walk_id", walkID.String())
	w := httptest.NewRecorder()

	h.GetMap(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
