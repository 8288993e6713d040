package handler

import (
	"context"
	"net/http"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type Walk struct {
	service WalkService
	l       logger.Logger
}

type WalkService interface {
	Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error)
}

func NewWalk(service WalkService, l logger.Logger) *Walk {
	return &Walk{
		service: service,
		l:       l,
	}
}

// GetWalk godoc
// @Summary      Get walk
// @Description  Returns the walk with its current lifecycle status
// @Tags         Walks
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Success      200  {object}  models.Walk
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id} [get]
func (h *Walk) GetWalk(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_walk")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	walk, err := h.service.Get(ctx, walkID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get walk", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"walk": walk}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
