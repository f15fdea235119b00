package fx

import (
	"moba-stats/internal/config"
	"moba-stats/internal/database"
	"moba-stats/internal/logger"
	"moba-stats/internal/repository"
	"moba-stats/internal/server"
	"moba-stats/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// applyLogLevel narrows the bootstrap logger to the configured level. It is
// scoped to the stats module so config loading still sees the bootstrap one.
func applyLogLevel(cfg *config.Config, log zerolog.Logger) zerolog.Logger {
	return log.Level(logger.ParseLevel(cfg.LogLevel))
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Module("stats",
		fx.Decorate(applyLogLevel),
		fx.Provide(database.New),
		// repos
		fx.Provide(repository.NewPlayerRepository),
		fx.Provide(repository.NewRoleRepository),
		fx.Provide(repository.NewItemRepository),
		fx.Provide(repository.NewCharacterRepository),
		fx.Provide(repository.NewMatchRepository),
		fx.Provide(repository.NewEntitlementRepository),
		// svc
		fx.Provide(service.NewPlayerService),
		fx.Provide(service.NewMatchService),
		fx.Provide(service.NewCharacterService),
		fx.Provide(service.NewCatalogService),
		fx.Provide(service.NewAdminService),
		// server
		fx.Provide(server.NewStatsServer),
	),
)
