package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"darts-tournament/internal/config"
	"darts-tournament/internal/logger"

	"github.com/rs/zerolog"
)

func main() {
	log := logger.New()

	cfg, err := config.LoadScoreboard(log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scoreboard configuration")
	}
	zerolog.SetGlobalLevel(logger.Level(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("server", cfg.ServerURL).Str("board_id", cfg.BoardID).Dur("poll_interval", cfg.PollInterval).Msg("scoreboard starting")
	if err := newScoreboard(cfg, log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("scoreboard stopped")
	}
	log.Info().Msg("scoreboard stopped")
}
