package handler

import (
	"context"
	"net/http"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/internal/service/route"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// WalkMap serves the rendered map view of a walk's route: polyline path,
// markers, stroke color and the reverse-geocoded record list.
type WalkMap struct {
	walks     WalkService
	projector MapProjector
	l         logger.Logger
}

type MapProjector interface {
	Project(ctx context.Context, walkID uuid.UUID, status types.WalkStatus) (*route.Projection, error)
}

func NewWalkMap(walks WalkService, projector MapProjector, l logger.Logger) *WalkMap {
	return &WalkMap{
		walks:     walks,
		projector: projector,
		l:         l,
	}
}

// GetMap godoc
// @Summary      Get walk map view
// @Description  Returns the walk's route projected for map rendering, with addresses resolved per record
// @Tags         Tracking
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Success      200  {object}  route.Projection
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/map [get]
func (h *WalkMap) GetMap(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_walk_map")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	walk, err := h.walks.Get(ctx, walkID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get walk", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	projection, err := h.projector.Project(ctx, walkID, walk.Status)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to project walk route", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"map": projection}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
