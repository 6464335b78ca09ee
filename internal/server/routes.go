package server

import (
	"net/http"

	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/middleware"
	"darts-tournament/pkg/dartsv1/dartsv1connect"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// SetupRoutes mounts both connect services, the per-board websocket feed
// and a health check behind request ids and CORS.
func SetupRoutes(matchSrv *MatchServer, shootoutSrv *ShootoutServer, hub *broadcast.Hub, origins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	matchPath, matchHandler := dartsv1connect.NewMatchServiceHandler(matchSrv)
	r.Mount(matchPath, matchHandler)
	shootoutPath, shootoutHandler := dartsv1connect.NewShootoutServiceHandler(shootoutSrv)
	r.Mount(shootoutPath, shootoutHandler)

	r.Get("/ws/boards/{boardID}", broadcast.Handler(hub, origins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}
