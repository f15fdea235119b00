package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Session is one checked-out connection, optionally inside a transaction.
// Outside a transaction each statement commits on its own.
type Session struct {
	conn   *sql.Conn
	tx     *sql.Tx
	logger zerolog.Logger
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Session) target() execQuerier {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := s.checkArity(query, args); err != nil {
		return nil, err
	}
	res, err := s.target().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// Query runs a single statement; the caller closes the rows.
func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if err := s.checkArity(query, args); err != nil {
		return nil, err
	}
	rows, err := s.target().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

func (s *Session) Fetch(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// checkArity compares len(args) with the placeholder count SQLite reports for
// the prepared statement.
func (s *Session) checkArity(query string, args []any) error {
	want := -1
	err := s.conn.Raw(func(driverConn any) error {
		sc, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return nil
		}
		stmt, err := sc.Prepare(query)
		if err != nil {
			return err
		}
		defer stmt.Close()
		want = stmt.NumInput()
		return nil
	})
	if err != nil {
		return classify(err)
	}
	if want >= 0 && want != len(args) {
		return fmt.Errorf("%w: statement expects %d arguments, got %d", ErrParameterMismatch, want, len(args))
	}
	return nil
}

// Run checks out one connection for fn and releases it afterwards.
func (g *Gateway) Run(ctx context.Context, fn func(*Session) error) error {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(&Session{conn: conn, logger: g.logger})
}

// Tx runs fn inside one transaction: committed when fn returns nil, rolled
// back otherwise.
func (g *Gateway) Tx(ctx context.Context, fn func(*Session) error) error {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Session{conn: conn, tx: tx, logger: g.logger}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

// Execute runs one parameterized statement. With fetch the rows are returned
// (an empty slice when nothing matched); without it the result is nil.
func (g *Gateway) Execute(ctx context.Context, query string, args []any, fetch bool) ([]Row, error) {
	var rows []Row
	err := g.Run(ctx, func(s *Session) error {
		if fetch {
			var err error
			rows, err = s.Fetch(ctx, query, args...)
			return err
		}
		_, err := s.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		g.logger.Debug().Err(err).Str("query", compact(query)).Msg("statement failed")
		return nil, err
	}
	return rows, nil
}

// ExecScript runs a multi-statement body in one transaction.
func (g *Gateway) ExecScript(ctx context.Context, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	err := g.Tx(ctx, func(s *Session) error {
		_, err := s.tx.ExecContext(ctx, script)
		return err
	})
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrSchema) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
