package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type CharacterRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewCharacterRepository(gw *database.Gateway, logger zerolog.Logger) *CharacterRepository {
	return &CharacterRepository{gw: gw, logger: logger}
}

// CharacterWithRole is a character row with its role inlined.
type CharacterWithRole struct {
	Character       domain.GameCharacter
	RoleName        string
	RoleDescription string
}

func scanCharacterWithRole(rows *sql.Rows) (CharacterWithRole, error) {
	var c CharacterWithRole
	err := rows.Scan(
		&c.Character.CharacterID, &c.Character.Name, &c.Character.RoleID,
		&c.Character.BaseHealth, &c.Character.AttackPower, &c.Character.AttackSpeed,
		&c.RoleName, &c.RoleDescription,
	)
	return c, err
}

const characterWithRoleSelect = `
	SELECT
		gc.character_id,
		gc.name,
		gc.role_id,
		gc.base_health,
		gc.attack_power,
		gc.attack_speed,
		gr.name,
		gr.description
	FROM game_character gc
	JOIN game_role gr ON gc.role_id = gr.role_id`

func (r *CharacterRepository) List(ctx context.Context) ([]CharacterWithRole, error) {
	return queryAll(ctx, r.gw, scanCharacterWithRole, characterWithRoleSelect+` ORDER BY gc.character_id`)
}

func (r *CharacterRepository) Get(ctx context.Context, characterID int64) (*CharacterWithRole, error) {
	return queryOne(ctx, r.gw, scanCharacterWithRole, characterWithRoleSelect+` WHERE gc.character_id = ?`, characterID)
}

// Abilities orders by slot precedence (primary, secondary, tertiary), never
// alphabetically, and then by ability id.
func (r *CharacterRepository) Abilities(ctx context.Context, characterID int64) ([]domain.SlottedAbility, error) {
	abilities, err := queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.SlottedAbility, error) {
		var a domain.SlottedAbility
		err := rows.Scan(&a.AbilityID, &a.Name, &a.Type, &a.Power, &a.Cooldown, &a.Slot)
		return a, err
	}, `
		SELECT
			a.ability_id,
			a.name,
			a.type,
			a.power,
			a.cooldown,
			ca.slot
		FROM character_ability ca
		JOIN ability a ON ca.ability_id = a.ability_id
		WHERE ca.character_id = ?
		ORDER BY
			CASE ca.slot
				WHEN 'primary' THEN 1
				WHEN 'secondary' THEN 2
				WHEN 'tertiary' THEN 3
				ELSE 4
			END,
			a.ability_id`,
		characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load abilities for character %d: %w", characterID, err)
	}
	return abilities, nil
}

func (r *CharacterRepository) PlayStats(ctx context.Context, characterID int64) (domain.CharacterPlayStats, error) {
	stats, err := queryOne(ctx, r.gw, func(rows *sql.Rows) (domain.CharacterPlayStats, error) {
		var s domain.CharacterPlayStats
		var kills, deaths, assists, damage sql.NullInt64
		if err := rows.Scan(&s.TimesPlayed, &s.Wins, &s.Losses, &kills, &deaths, &assists, &damage); err != nil {
			return s, err
		}
		s.AvgKills = intPtr(kills)
		s.AvgDeaths = intPtr(deaths)
		s.AvgAssists = intPtr(assists)
		s.AvgDamage = intPtr(damage)
		return s, nil
	}, `
		SELECT
			COUNT(mp.match_player_id),
			COALESCE(SUM(CASE WHEN mp.result = 'win' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN mp.result = 'loss' THEN 1 ELSE 0 END), 0),
			CAST(AVG(mps.kills) AS INTEGER),
			CAST(AVG(mps.deaths) AS INTEGER),
			CAST(AVG(mps.assists) AS INTEGER),
			CAST(AVG(mps.damage_dealt) AS INTEGER)
		FROM match_player mp
		LEFT JOIN match_player_stats mps ON mp.match_player_id = mps.match_player_id
		WHERE mp.character_id = ?`,
		characterID)
	if err != nil {
		return domain.CharacterPlayStats{}, fmt.Errorf("failed to aggregate stats for character %d: %w", characterID, err)
	}
	return *stats, nil
}

// Create inserts a character and its slotted abilities in one transaction.
func (r *CharacterRepository) Create(ctx context.Context, c *domain.GameCharacter, abilities []domain.CharacterAbility) (int64, error) {
	var id int64
	err := r.gw.Tx(ctx, func(s *database.Session) error {
		res, err := s.Exec(ctx, `
			INSERT INTO game_character (name, role_id, base_health, attack_power, attack_speed)
			VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.RoleID, c.BaseHealth, c.AttackPower, c.AttackSpeed)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		for _, a := range abilities {
			if _, err := s.Exec(ctx, `INSERT INTO character_ability (character_id, ability_id, slot) VALUES (?, ?, ?)`,
				id, a.AbilityID, a.Slot); err != nil {
				return fmt.Errorf("failed to attach ability %d: %w", a.AbilityID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert character: %w", err)
	}
	return id, nil
}

func (r *CharacterRepository) CreateAbility(ctx context.Context, a *domain.Ability) (int64, error) {
	res, err := exec(ctx, r.gw, `INSERT INTO ability (name, type, power, cooldown) VALUES (?, ?, ?, ?)`,
		a.Name, a.Type, a.Power, a.Cooldown)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ability: %w", err)
	}
	return res.LastInsertId()
}
