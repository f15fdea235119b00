package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"moba-stats/internal/constants"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed seed/seed.sql
var seedSQL string

const gooseVersionTable = "goose_db_version"

// CreateAll applies the embedded schema. Already applied files are skipped,
// so calling it twice is harmless.
func (g *Gateway) CreateAll(ctx context.Context) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded schema: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, g.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to apply schema: %w", ErrSchema, err)
	}

	g.logger.Info().Int("applied", len(results)).Msg("schema created")
	return nil
}

func (g *Gateway) SeedAll(ctx context.Context) error {
	if err := g.ExecScript(ctx, seedSQL); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	g.logger.Info().Msg("database seeded")
	return nil
}

// DropAll drops every table with foreign key enforcement switched off on the
// connection doing the work, and switches it back on before returning.
func (g *Gateway) DropAll(ctx context.Context) (err error) {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	defer func() {
		if _, perr := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); perr != nil && err == nil {
			err = fmt.Errorf("failed to re-enable foreign keys: %w", perr)
		}
	}()

	tables, err := listTables(ctx, conn, true)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, classify(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit drop: %w", err)
	}

	g.logger.Info().Int("dropped", len(tables)).Msg("all tables dropped")
	return nil
}

// ListTables returns user table names in alphabetical order. SQLite catalog
// tables and schema bookkeeping are left out.
func (g *Gateway) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := g.Run(ctx, func(s *Session) error {
		var err error
		tables, err = listTables(ctx, s.conn, false)
		return err
	})
	return tables, err
}

// Browse returns up to constants.BrowseLimit rows of table. The name cannot be
// bound as a parameter, so it must match a live table name exactly; anything
// else yields an empty result without running a statement against it.
func (g *Gateway) Browse(ctx context.Context, table string) ([]Row, error) {
	tables, err := g.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(tables, table) {
		g.logger.Debug().Str("table", table).Msg("browse rejected unknown table")
		return []Row{}, nil
	}

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), constants.BrowseLimit)
	return g.Execute(ctx, query, nil, true)
}

func listTables(ctx context.Context, q execQuerier, includeBookkeeping bool) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", classify(err))
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		if name == gooseVersionTable && !includeBookkeeping {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
