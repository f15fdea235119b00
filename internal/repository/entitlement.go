package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/constants"
	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type EntitlementRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewEntitlementRepository(gw *database.Gateway, logger zerolog.Logger) *EntitlementRepository {
	return &EntitlementRepository{gw: gw, logger: logger}
}

func (r *EntitlementRepository) List(ctx context.Context) ([]domain.EntitlementView, error) {
	return queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.EntitlementView, error) {
		var e domain.EntitlementView
		err := rows.Scan(
			&e.EntitlementID, &e.PlayerID, &e.DisplayName, &e.ItemID, &e.ItemName,
			&e.Quantity, &e.Status, &e.AcquiredAt,
		)
		return e, err
	}, `
		SELECT
			e.entitlement_id,
			e.player_id,
			p.display_name,
			e.item_id,
			i.name,
			e.quantity,
			e.status,
			e.acquired_at
		FROM entitlement e
		JOIN player p ON e.player_id = p.player_id
		JOIN item i ON e.item_id = i.item_id
		ORDER BY e.entitlement_id DESC`)
}

func (r *EntitlementRepository) ListTransactions(ctx context.Context) ([]domain.Txn, error) {
	return queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.Txn, error) {
		var t domain.Txn
		err := rows.Scan(&t.TxnID, &t.PlayerID, &t.ItemID, &t.Currency, &t.Amount, &t.Quantity, &t.Source, &t.CreatedAt)
		return t, err
	}, `
		SELECT txn_id, player_id, item_id, currency, amount, quantity, source, created_at
		FROM txn
		ORDER BY txn_id DESC`)
}

// Grant records an active entitlement and its zero-cost ledger entry. Both
// rows are written in one transaction, so a failure leaves neither behind.
func (r *EntitlementRepository) Grant(ctx context.Context, playerID, itemID int64, quantity int) (*domain.Entitlement, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1, got %d", domain.ErrInvalidInput, quantity)
	}

	var entitlementID int64
	err := r.gw.Tx(ctx, func(s *database.Session) error {
		res, err := s.Exec(ctx, `
			INSERT INTO entitlement (player_id, item_id, quantity, status)
			VALUES (?, ?, ?, ?)`,
			playerID, itemID, quantity, constants.EntitlementActive)
		if err != nil {
			return fmt.Errorf("failed to insert entitlement: %w", err)
		}
		if entitlementID, err = res.LastInsertId(); err != nil {
			return err
		}

		if _, err := s.Exec(ctx, `
			INSERT INTO txn (player_id, item_id, currency, amount, quantity, source)
			VALUES (?, ?, ?, 0, ?, ?)`,
			playerID, itemID, constants.GrantCurrency, quantity, constants.GrantSource); err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("player_id", playerID).Int64("item_id", itemID).Msg("grant failed")
		return nil, err
	}

	r.logger.Debug().
		Int64("entitlement_id", entitlementID).
		Int64("player_id", playerID).
		Int64("item_id", itemID).
		Int("quantity", quantity).
		Msg("entitlement granted")

	return queryOne(ctx, r.gw, func(rows *sql.Rows) (domain.Entitlement, error) {
		var e domain.Entitlement
		err := rows.Scan(&e.EntitlementID, &e.PlayerID, &e.ItemID, &e.Quantity, &e.Status, &e.AcquiredAt)
		return e, err
	}, `
		SELECT entitlement_id, player_id, item_id, quantity, status, acquired_at
		FROM entitlement
		WHERE entitlement_id = ?`,
		entitlementID)
}
