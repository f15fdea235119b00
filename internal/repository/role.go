package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type RoleRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewRoleRepository(gw *database.Gateway, logger zerolog.Logger) *RoleRepository {
	return &RoleRepository{gw: gw, logger: logger}
}

func scanRole(rows *sql.Rows) (domain.GameRole, error) {
	var r domain.GameRole
	err := rows.Scan(&r.RoleID, &r.Name, &r.Description)
	return r, err
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.GameRole, error) {
	return queryAll(ctx, r.gw, scanRole, `SELECT role_id, name, description FROM game_role ORDER BY role_id`)
}

func (r *RoleRepository) Get(ctx context.Context, roleID int64) (*domain.GameRole, error) {
	return queryOne(ctx, r.gw, scanRole, `SELECT role_id, name, description FROM game_role WHERE role_id = ?`, roleID)
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.GameRole) (int64, error) {
	res, err := exec(ctx, r.gw, `INSERT INTO game_role (name, description) VALUES (?, ?)`, role.Name, role.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert role: %w", err)
	}
	return res.LastInsertId()
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.GameRole) error {
	res, err := exec(ctx, r.gw, `UPDATE game_role SET name = ?, description = ? WHERE role_id = ?`,
		role.Name, role.Description, role.RoleID)
	if err != nil {
		return fmt.Errorf("failed to update role %d: %w", role.RoleID, err)
	}
	logNoop(r.logger, res, "game_role", role.RoleID)
	return nil
}

// Delete does not check for characters still using the role; the schema's
// foreign key decides whether the delete goes through.
func (r *RoleRepository) Delete(ctx context.Context, roleID int64) error {
	res, err := exec(ctx, r.gw, `DELETE FROM game_role WHERE role_id = ?`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role %d: %w", roleID, err)
	}
	logNoop(r.logger, res, "game_role", roleID)
	return nil
}
