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

type Chat struct {
	service ChatService
	l       logger.Logger
}

type ChatService interface {
	GetMessages(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, walkID, userID uuid.UUID) error
}

func NewChat(service ChatService, l logger.Logger) *Chat {
	return &Chat{
		service: service,
		l:       l,
	}
}

// GetMessages godoc
// @Summary      Get walk messages
// @Description  Returns the full chat transcript for a walk, oldest first
// @Tags         Chat
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Success      200  {object}  map[string][]models.ChatMessage
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/messages [get]
func (h *Chat) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_messages")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	msgs, err := h.service.GetMessages(ctx, walkID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get messages", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}

	if err := writeJSON(w, http.StatusOK, envelope{"messages": msgs}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

// SendMessage godoc
// @Summary      Send walk message
// @Description  Appends one message to the walk chat
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Param        request  body  dto.SendMessageRequest  true  "Message"
// @Success      201  {object}  models.ChatMessage
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/messages [post]
func (h *Chat) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "send_message")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	var req dto.SendMessageRequest
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

	session := models.SessionFromContext(ctx)
	stored, err := h.service.SendMessage(ctx, req.ToModel(walkID, session))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to send message", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"message": stored}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}

// MarkRead godoc
// @Summary      Mark messages read
// @Description  Marks the counterpart's messages in the walk chat as read
// @Tags         Chat
// @Produce      json
// @Param        walk_id  path  string  true  "Walk ID"
// @Success      200  {object}  map[string]string
// @Security     BearerAuth
// @Router       /walks/{walk_id}/messages/read [post]
func (h *Chat) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "mark_messages_read")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	session := models.SessionFromContext(ctx)
	if err := h.service.MarkMessagesRead(ctx, walkID, session.UserID); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to mark messages read", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"status": "ok"}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}
}
