package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/metrics"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
	ws "github.com/pasealo/walk-tracking-system/pkg/wsHub"
)

type Watch struct {
	hub      *ws.WatchHub
	upgrader websocket.Upgrader
	l        logger.Logger
}

func NewWatch(hub *ws.WatchHub, l logger.Logger) *Watch {
	return &Watch{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		l: l,
	}
}

// HandleWS godoc
// @Summary      Watch walk live
// @Description  WebSocket stream of live location updates for a walk
// @Tags         Tracking
// @Param        walk_id  path  string  true  "Walk ID"
// @Router       /ws/walks/{walk_id} [get]
func (h *Watch) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "watch_walk_ws")

	walkID, err := uuid.Parse(r.PathValue("walk_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid walk uuid format")
		errorResponse(w, http.StatusBadRequest, "invalid walk uuid format")
		return
	}
	ctx = wrap.WithWalkID(ctx, walkID.String())

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to upgrade connection", err)
		return
	}

	connID, err := uuid.New()
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate conn id", err)
		wsConn.Close()
		return
	}

	conn := ws.NewConn(ctx, connID, walkID, wsConn)
	if err := h.hub.Add(conn); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register watcher", err)
		conn.Close()
		return
	}

	metrics.WalkWatchers.Inc()
	h.l.Info(ctx, "watcher connected", "conn_id", connID)

	// Listen blocks until the client disconnects. Watchers only receive;
	// inbound frames are drained and dropped.
	if err := conn.Listen(nil); err != nil {
		h.l.Debug(ctx, "watcher disconnected", "conn_id", connID, "reason", err.Error())
	}

	h.hub.Delete(walkID, connID)
	metrics.WalkWatchers.Dec()
}
