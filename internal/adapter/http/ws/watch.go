package wshandler

import (
	"context"
	"errors"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	ws "github.com/pasealo/walk-tracking-system/pkg/wsHub"
)

// Broadcaster pushes live location updates from the broker to every
// connected watcher of the walk.
type Broadcaster struct {
	hub *ws.WatchHub
	l   logger.Logger
}

func NewBroadcaster(hub *ws.WatchHub, l logger.Logger) *Broadcaster {
	return &Broadcaster{
		hub: hub,
		l:   l,
	}
}

// HandleLocationUpdate fans one update out to the walk's watchers. A walk
// with no watchers is the normal case, not an error.
func (b *Broadcaster) HandleLocationUpdate(ctx context.Context, update models.WalkLocationUpdate) {
	ctx = wrap.WithAction(ctx, "ws_broadcast_location")
	ctx = wrap.WithWalkID(ctx, update.WalkID.String())

	if err := b.hub.Broadcast(update.WalkID, update); err != nil {
		if errors.Is(err, ws.ErrNoWatchers) {
			return
		}
		b.l.Warn(ctx, "failed to broadcast location update", "err", err.Error())
	}
}
