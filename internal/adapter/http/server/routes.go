package server

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes wires every route onto the mux.
func (a *API) setupRoutes() {
	// System health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Walks
	a.mux.Handle("GET /walks/{walk_id}", a.m.RequireRoles(a.routes.walk.GetWalk, types.RoleOwner, types.RoleWalker, types.RoleAdmin))

	// Tracking. Only the walker's device reports positions; anyone on the
	// walk can read the route back.
	a.mux.Handle("POST /walks/{walk_id}/locations", a.m.RequireRoles(a.routes.tracking.SaveLocation, types.RoleWalker))
	a.mux.Handle("GET /walks/{walk_id}/route", a.m.RequireRoles(a.routes.tracking.GetRoute, types.RoleOwner, types.RoleWalker, types.RoleAdmin))
	a.mux.Handle("GET /walks/{walk_id}/map", a.m.RequireRoles(a.routes.walkMap.GetMap, types.RoleOwner, types.RoleWalker, types.RoleAdmin))

	// Chat
	a.mux.Handle("GET /walks/{walk_id}/messages", a.m.RequireRoles(a.routes.chat.GetMessages, types.RoleOwner, types.RoleWalker))
	a.mux.Handle("POST /walks/{walk_id}/messages", a.m.RequireRoles(a.routes.chat.SendMessage, types.RoleOwner, types.RoleWalker))
	a.mux.Handle("POST /walks/{walk_id}/messages/read", a.m.RequireRoles(a.routes.chat.MarkRead, types.RoleOwner, types.RoleWalker))

	// Live watching
	a.mux.HandleFunc("GET /ws/walks/{walk_id}", a.routes.watch.HandleWS)
}

// setupSwaggerRoutes configures the Swagger UI endpoint.
func (a *API) setupSwaggerRoutes() {
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("walk")))
}

// setupMetricsRoute configures the Prometheus metrics endpoint.
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
