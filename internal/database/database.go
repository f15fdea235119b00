package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"moba-stats/internal/config"
	"moba-stats/internal/constants"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Gateway owns the SQLite handle. Every operation checks out one connection,
// runs its statements and hands the connection back before returning.
type Gateway struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Gateway, error) {
	gw, err := Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ScriptTimeout)
	defer cancel()

	if cfg.AutoMigrate {
		if err := gw.CreateAll(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to create schema")
			_ = gw.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	if cfg.SeedOnStart {
		if err := gw.SeedAll(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to seed database")
			_ = gw.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	logger.Info().Msg("database connection established")
	return gw, nil
}

// Open connects to the SQLite file at path without touching the schema.
func Open(path string, logger zerolog.Logger) (*Gateway, error) {
	logger.Info().Str("path", path).Msg("connecting to database")

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	gw := &Gateway{db: db, logger: logger}
	if err := gw.verifyForeignKeys(context.Background()); err != nil {
		logger.Error().Err(err).Msg("failed to verify foreign key enforcement")
		_ = db.Close()
		return nil, err
	}
	return gw, nil
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// DB exposes the pool for tooling that needs a *sql.DB.
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// The driver applies these on every new connection, so enforcement does not
// depend on which pooled connection a statement lands on.
var pragmas = []struct {
	name  string
	value string
}{
	{"_foreign_keys", "on"},
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_busy_timeout", strconv.Itoa(constants.DBBusyTimeoutMs)},
	{"_cache_size", "-64000"},
}

func dsn(path string) string {
	params := url.Values{}
	for _, p := range pragmas {
		params.Set(p.name, p.value)
	}
	return path + "?" + params.Encode()
}

func (g *Gateway) verifyForeignKeys(ctx context.Context) error {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	var enabled int
	if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("failed to read PRAGMA foreign_keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("foreign key enforcement is disabled")
	}

	version, _, _ := sqlite3.Version()
	g.logger.Debug().
		Str("sqlite_version", version).
		Bool("foreign_keys", true).
		Msg("SQLite connection verified")
	return nil
}
