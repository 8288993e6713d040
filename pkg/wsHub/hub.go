package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

var (
	ErrEmptyConn  = errors.New("connection is empty")
	ErrNoWatchers = errors.New("no watchers for walk")
)

// WatchHub keeps every active watcher connection, grouped by walk.
// A walk can have several watchers at once (owner's phone plus the web
// dashboard), so messages are broadcast per walk rather than per client.
type WatchHub struct {
	watchers map[uuid.UUID]map[uuid.UUID]*Conn // walkID -> connID -> conn
	l        logger.Logger
	mu       sync.Mutex
}

func NewWatchHub(l logger.Logger) *WatchHub {
	return &WatchHub{
		watchers: make(map[uuid.UUID]map[uuid.UUID]*Conn),
		l:        l,
	}
}

// Add registers a watcher connection under its walk.
func (h *WatchHub) Add(conn *Conn) error {
	if conn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	walkConns, ok := h.watchers[conn.walkID]
	if !ok {
		walkConns = make(map[uuid.UUID]*Conn)
		h.watchers[conn.walkID] = walkConns
	}
	walkConns[conn.id] = conn

	return nil
}

// Delete removes and closes one watcher connection.
func (h *WatchHub) Delete(walkID, connID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_watcher_delete")

	walkConns, ok := h.watchers[walkID]
	if !ok {
		return
	}

	conn, ok := walkConns[connID]
	if !ok {
		return
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close watcher conn",
			"walk_id", walkID,
			"conn_id", connID,
			"err", err.Error(),
		)
	}

	delete(walkConns, connID)
	if len(walkConns) == 0 {
		delete(h.watchers, walkID)
	}
}

// Broadcast sends msg to every watcher of the given walk. A dead connection
// is dropped from the hub, it never fails the broadcast for the others.
func (h *WatchHub) Broadcast(walkID uuid.UUID, msg any) error {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.watchers[walkID]))
	for _, c := range h.watchers[walkID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	if len(conns) == 0 {
		return ErrNoWatchers
	}

	ctx := wrap.WithAction(context.Background(), "ws_broadcast")
	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			h.l.Warn(ctx,
				"dropping dead watcher",
				"walk_id", walkID,
				"conn_id", c.id,
				"err", err.Error(),
			)
			h.Delete(walkID, c.id)
		}
	}

	return nil
}

// WatcherCount returns the number of active watchers for a walk.
func (h *WatchHub) WatcherCount(walkID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[walkID])
}

// Close closes every watcher connection.
func (h *WatchHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	h.mu.Lock()
	all := make([]*Conn, 0)
	for _, walkConns := range h.watchers {
		for _, c := range walkConns {
			all = append(all, c)
		}
	}
	h.watchers = make(map[uuid.UUID]map[uuid.UUID]*Conn)
	h.mu.Unlock()

	for _, c := range all {
		_ = c.Close()
	}

	h.l.Info(ctx, "all watcher connections closed")
}
