package repository

import (
	"context"
	"database/sql"
	"time"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"
)

type scanFunc[T any] func(rows *sql.Rows) (T, error)

func collect[T any](ctx context.Context, s *database.Session, scan scanFunc[T], query string, args ...any) ([]T, error) {
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func queryAll[T any](ctx context.Context, gw *database.Gateway, scan scanFunc[T], query string, args ...any) ([]T, error) {
	var result []T
	err := gw.Run(ctx, func(s *database.Session) error {
		var err error
		result, err = collect(ctx, s, scan, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// queryOne returns domain.ErrNotFound when the statement yields no row.
func queryOne[T any](ctx context.Context, gw *database.Gateway, scan scanFunc[T], query string, args ...any) (*T, error) {
	result, err := queryAll(ctx, gw, scan, query, args...)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, domain.ErrNotFound
	}
	return &result[0], nil
}

func exec(ctx context.Context, gw *database.Gateway, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := gw.Run(ctx, func(s *database.Session) error {
		var err error
		res, err = s.Exec(ctx, query, args...)
		return err
	})
	return res, err
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
