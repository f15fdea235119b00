package service

import (
	"context"
	"fmt"
	"strings"

	"moba-stats/internal/constants"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"

	"github.com/rs/zerolog"
)

// CatalogService covers roles, items and the entitlements granted on them.
type CatalogService struct {
	roles        *repository.RoleRepository
	items        *repository.ItemRepository
	entitlements *repository.EntitlementRepository
	logger       zerolog.Logger
}

func NewCatalogService(
	roles *repository.RoleRepository,
	items *repository.ItemRepository,
	entitlements *repository.EntitlementRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{roles: roles, items: items, entitlements: entitlements, logger: logger}
}

func (s *CatalogService) ListRoles(ctx context.Context) ([]domain.GameRole, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.roles.List(ctx)
}

// SaveRole inserts when RoleID is zero and replaces the row otherwise.
func (s *CatalogService) SaveRole(ctx context.Context, role *domain.GameRole) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	role.Name = strings.TrimSpace(role.Name)
	role.Description = strings.TrimSpace(role.Description)
	if role.Name == "" {
		return 0, fmt.Errorf("%w: role name is required", domain.ErrInvalidInput)
	}

	if role.RoleID == 0 {
		id, err := s.roles.Create(ctx, role)
		if err != nil {
			s.logger.Error().Err(err).Str("name", role.Name).Msg("failed to create role")
			return 0, err
		}
		return id, nil
	}
	if err := s.roles.Update(ctx, role); err != nil {
		s.logger.Error().Err(err).Int64("role_id", role.RoleID).Msg("failed to update role")
		return 0, err
	}
	return role.RoleID, nil
}

func (s *CatalogService) DeleteRole(ctx context.Context, roleID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.roles.Delete(ctx, roleID); err != nil {
		s.logger.Error().Err(err).Int64("role_id", roleID).Msg("failed to delete role")
		return err
	}
	return nil
}

func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.items.List(ctx)
}

func (s *CatalogService) SaveItem(ctx context.Context, item *domain.Item) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Category == "" || item.Rarity == "" {
		return 0, fmt.Errorf("%w: item name, category and rarity are required", domain.ErrInvalidInput)
	}

	if item.ItemID == 0 {
		return s.items.Create(ctx, item)
	}
	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error().Err(err).Int64("item_id", item.ItemID).Msg("failed to update item")
		return 0, err
	}
	return item.ItemID, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, itemID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.items.Delete(ctx, itemID)
}

func (s *CatalogService) ListEntitlements(ctx context.Context) ([]domain.EntitlementView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.entitlements.List(ctx)
}

func (s *CatalogService) ListTransactions(ctx context.Context) ([]domain.Txn, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.entitlements.ListTransactions(ctx)
}

func (s *CatalogService) GrantEntitlement(ctx context.Context, playerID, itemID int64, quantity int) (*domain.Entitlement, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if playerID == 0 || itemID == 0 {
		return nil, fmt.Errorf("%w: player id and item id are required", domain.ErrInvalidInput)
	}

	ent, err := s.entitlements.Grant(ctx, playerID, itemID, quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("entitlement_id", ent.EntitlementID).
		Int64("player_id", playerID).
		Int64("item_id", itemID).
		Msg("item granted")
	return ent, nil
}
