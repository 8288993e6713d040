package handler

import (
	"context"
	"net/http"

	"github.com/pasealo/walk-tracking-system/internal/adapter/http/handler/dto"
	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
	"github.com/pasealo/walk-tracking-system/pkg/validator"
)

type Tracking struct {
	service TrackingService
	l       logger.Logger
}

type TrackingService interface {
	SaveLocation(ctx context.Context, sample models.LocationSample) (models.SaveLocationResult, error)
	GetWalkRoute(ctx context.Context, walkID uuid.UUID) (models.WalkRoute, error)
}

func NewTracking(service TrackingService, l logger.Logger) *Tracking {
	return &Tracking{
		service: service,
		l:       l,
	}
}

// SaveLocation godoc
// @Summary      Save walk location
// @Description  Persists one GPS sample for a walk and returns the refreshed route
// @Tags         Tracking
// @Accept       json
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Param        request  body  dto.SaveLocationRequest  true  "Location sample"
// @Success      201  {object}  models.SaveLocationResult
// @Failure      422  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/locations [post]
func (h *Tracking) SaveLocation(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "save_location")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	var req dto.SaveLocationRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to read request JSON data", err)
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	result, err := h.service.SaveLocation(ctx, req.ToModel(walkID))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to save location", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"saved_count": result.SavedCount,
		"locations":   result.Locations,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

// GetRoute godoc
// @Summary      Get walk route
// @Description  Returns every recorded point for a walk in recorded order
// @Tags         Tracking
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Success      200  {object}  models.WalkRoute
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/route [get]
func (h *Tracking) GetRoute(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_walk_route")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	route, err := h.service.GetWalkRoute(ctx, walkID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get walk route", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"has_map":   route.HasMap,
		"map_id":    route.MapID,
		"walk_id":   route.WalkID,
		"locations": route.Locations,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
