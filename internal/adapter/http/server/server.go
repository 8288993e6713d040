package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pasealo/walk-tracking-system/config"
	"github.com/pasealo/walk-tracking-system/internal/adapter/http/handler"
	"github.com/pasealo/walk-tracking-system/internal/adapter/http/middleware"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	ws "github.com/pasealo/walk-tracking-system/pkg/wsHub"
)

const serviceName = "walk-tracking"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health   *handler.Health
	walk     *handler.Walk
	tracking *handler.Tracking
	walkMap  *handler.WalkMap
	chat     *handler.Chat
	watch    *handler.Watch
}

func New(
	cfg config.Config,
	walkService handler.WalkService,
	trackingService handler.TrackingService,
	projector handler.MapProjector,
	chatService handler.ChatService,
	verifier middleware.TokenVerifier,
	hub *ws.WatchHub,
	log logger.Logger,
) (*API, error) {
	if verifier == nil {
		return nil, errors.New("token verifier is required")
	}

	routes := &handlers{
		health:   handler.NewHealth(serviceName, log),
		walk:     handler.NewWalk(walkService, log),
		tracking: handler.NewTracking(trackingService, log),
		walkMap:  handler.NewWalkMap(walkService, projector, log),
		chat:     handler.NewChat(chatService, log),
		watch:    handler.NewWatch(hub, log),
	}

	mid := middleware.NewMiddleware(verifier, log)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

// withMiddleware applies the middleware chain to the mux.
func (a *API) withMiddleware() http.Handler {
	metrics := a.m.Metrics(serviceName)
	return a.m.Recover(a.m.RequestID(a.m.Logging(metrics(a.m.Auth(a.mux)))))
}
