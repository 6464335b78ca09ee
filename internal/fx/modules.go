package fx

import (
	"database/sql"

	"darts-tournament/internal/api"
	"darts-tournament/internal/broadcast"
	"darts-tournament/internal/config"
	"darts-tournament/internal/database"
	"darts-tournament/internal/db"
	"darts-tournament/internal/logger"
	"darts-tournament/internal/repository"
	"darts-tournament/internal/server"
	"darts-tournament/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewShootoutRepository),
	// broadcast
	fx.Provide(fx.Annotate(broadcast.NewHub, fx.As(fx.Self()), fx.As(new(service.Publisher)))),
	// api client
	fx.Provide(fx.Annotate(api.NewBracketClient, fx.As(new(service.SeedingExporter)))),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewShootoutService),
	// server
	fx.Provide(server.NewMatchServer),
	fx.Provide(server.NewShootoutServer),
)
