package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/constants"
	fxmodules "darts-tournament/internal/fx"
	"darts-tournament/internal/logger"
	"darts-tournament/internal/server"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	matchServer *server.MatchServer,
	shootoutServer *server.ShootoutServer,
	hub *broadcast.Hub,
	cfg *config.Config,
	db *sql.DB,
	log zerolog.Logger,
) {
	zerolog.SetGlobalLevel(logger.Level(cfg.LogLevel))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: server.SetupRoutes(matchServer, shootoutServer, hub, cfg.CORSOrigins, log),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			// Ends every websocket stream before the listener closes.
			hub.Shutdown()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
