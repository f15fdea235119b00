package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type ItemRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewItemRepository(gw *database.Gateway, logger zerolog.Logger) *ItemRepository {
	return &ItemRepository{gw: gw, logger: logger}
}

func scanItem(rows *sql.Rows) (domain.Item, error) {
	var i domain.Item
	err := rows.Scan(&i.ItemID, &i.Name, &i.Category, &i.Rarity)
	return i, err
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	return queryAll(ctx, r.gw, scanItem, `SELECT item_id, name, category, rarity FROM item ORDER BY item_id`)
}

func (r *ItemRepository) Get(ctx context.Context, itemID int64) (*domain.Item, error) {
	return queryOne(ctx, r.gw, scanItem, `SELECT item_id, name, category, rarity FROM item WHERE item_id = ?`, itemID)
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (int64, error) {
	res, err := exec(ctx, r.gw, `INSERT INTO item (name, category, rarity) VALUES (?, ?, ?)`,
		item.Name, item.Category, item.Rarity)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	return res.LastInsertId()
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	res, err := exec(ctx, r.gw, `UPDATE item SET name = ?, category = ?, rarity = ? WHERE item_id = ?`,
		item.Name, item.Category, item.Rarity, item.ItemID)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ItemID, err)
	}
	logNoop(r.logger, res, "item", item.ItemID)
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID int64) error {
	res, err := exec(ctx, r.gw, `DELETE FROM item WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}
	logNoop(r.logger, res, "item", itemID)
	return nil
}
