package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pasealo/walk-tracking-system/config"
	"github.com/pasealo/walk-tracking-system/internal/adapter/geocode"
	"github.com/pasealo/walk-tracking-system/internal/adapter/http/server"
	wshandler "github.com/pasealo/walk-tracking-system/internal/adapter/http/ws"
	repo "github.com/pasealo/walk-tracking-system/internal/adapter/postgres"
	rabbitAdapter "github.com/pasealo/walk-tracking-system/internal/adapter/rabbit"
	"github.com/pasealo/walk-tracking-system/internal/service/chat"
	"github.com/pasealo/walk-tracking-system/internal/service/route"
	"github.com/pasealo/walk-tracking-system/internal/service/tracking"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	"github.com/pasealo/walk-tracking-system/pkg/postgres"
	"github.com/pasealo/walk-tracking-system/pkg/rabbit"
	"github.com/pasealo/walk-tracking-system/pkg/token"
	"github.com/pasealo/walk-tracking-system/pkg/trm"
	ws "github.com/pasealo/walk-tracking-system/pkg/wsHub"
)

// App owns the wiring and lifecycle of the walk tracking service.
type App struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	httpServer *server.API
	watchHub   *ws.WatchHub

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to setup database", err)
		return nil, err
	}

	rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "failed to setup rabbitMQ", err)
		return nil, err
	}

	walkRepo := repo.NewWalkRepo(postgresDB.Pool)
	coordRepo := repo.NewCoordinateRepo(postgresDB.Pool)
	chatRepo := repo.NewChatRepo(postgresDB.Pool)

	txManager := trm.New(postgresDB.Pool)

	producer, err := rabbitAdapter.NewLocationProducer(rabbitMQ)
	if err != nil {
		log.Error(ctx, "failed to setup location producer", err)
		return nil, err
	}

	trackingService := tracking.NewService(coordRepo, walkRepo, producer, log)
	chatService := chat.NewService(chatRepo, walkRepo, txManager, log)

	// Server-side map view reuses the projector with the same geocoder the
	// device build uses.
	geocoder := geocode.New(cfg.Geocoder.APIKey)
	projector := route.NewProjector(trackingService, geocoder, log)

	hub := ws.NewWatchHub(log)

	// Location updates flow back from the broker into connected watchers.
	broadcaster := wshandler.NewBroadcaster(hub, log)
	consumer := rabbitAdapter.NewLocationConsumer(rabbitMQ)
	if err := consumer.ConsumeLocationUpdates(ctx, broadcaster.HandleLocationUpdate); err != nil {
		log.Error(ctx, "failed to start location consumer", err)
		return nil, err
	}

	verifier := token.NewVerifier(cfg.Auth.JWTSecret)

	httpServer, err := server.New(cfg, walkRepo, trackingService, projector, chatService, verifier, hub, log)
	if err != nil {
		log.Error(ctx, "failed to setup http server", err)
		return nil, err
	}

	return &App{
		postgresDB: postgresDB,
		rabbitMQ:   rabbitMQ,
		httpServer: httpServer,
		watchHub:   hub,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "walk tracking service closed")
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "walk tracking service started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}

	if a.watchHub != nil {
		a.watchHub.Close()
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close rabbitMQ", "error", err.Error())
		}
	}

	if a.postgresDB != nil && a.postgresDB.Pool != nil {
		a.postgresDB.Pool.Close()
	}
}
