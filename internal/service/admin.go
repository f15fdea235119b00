package service

import (
	"context"

	"moba-stats/internal/constants"
	"moba-stats/internal/database"

	"github.com/rs/zerolog"
)

// AdminService manages the schema and exposes the generic table browser.
type AdminService struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewAdminService(gw *database.Gateway, logger zerolog.Logger) *AdminService {
	return &AdminService{gw: gw, logger: logger}
}

func (s *AdminService) DropAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ScriptTimeout)
	defer cancel()

	return s.gw.DropAll(ctx)
}

func (s *AdminService) CreateAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ScriptTimeout)
	defer cancel()

	return s.gw.CreateAll(ctx)
}

func (s *AdminService) SeedAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ScriptTimeout)
	defer cancel()

	return s.gw.SeedAll(ctx)
}

func (s *AdminService) ListTables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.gw.ListTables(ctx)
}

func (s *AdminService) Browse(ctx context.Context, table string) ([]database.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := s.gw.Browse(ctx, table)
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Msg("failed to browse table")
		return nil, err
	}
	return rows, nil
}
