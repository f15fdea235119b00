package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewPlayerRepository(gw *database.Gateway, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		gw:     gw,
		logger: logger,
	}
}

const playerColumns = `player_id, display_name, email, password_hash, rank_mmr, created_at`

func scanPlayer(rows *sql.Rows) (domain.Player, error) {
	var p domain.Player
	err := rows.Scan(&p.PlayerID, &p.DisplayName, &p.Email, &p.PasswordHash, &p.RankMMR, &p.CreatedAt)
	return p, err
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	return queryAll(ctx, r.gw, scanPlayer, `SELECT `+playerColumns+` FROM player ORDER BY player_id`)
}

func (r *PlayerRepository) Get(ctx context.Context, playerID int64) (*domain.Player, error) {
	return queryOne(ctx, r.gw, scanPlayer, `SELECT `+playerColumns+` FROM player WHERE player_id = ?`, playerID)
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) (int64, error) {
	res, err := exec(ctx, r.gw, `
		INSERT INTO player (display_name, email, password_hash, rank_mmr)
		VALUES (?, ?, ?, ?)`,
		p.DisplayName, p.Email, p.PasswordHash, p.RankMMR)
	if err != nil {
		return 0, fmt.Errorf("failed to insert player: %w", err)
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. A missing id is not an error.
func (r *PlayerRepository) Update(ctx context.Context, p *domain.Player) error {
	res, err := exec(ctx, r.gw, `
		UPDATE player
		SET display_name = ?, email = ?, password_hash = ?, rank_mmr = ?
		WHERE player_id = ?`,
		p.DisplayName, p.Email, p.PasswordHash, p.RankMMR, p.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", p.PlayerID, err)
	}
	logNoop(r.logger, res, "player", p.PlayerID)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) error {
	res, err := exec(ctx, r.gw, `DELETE FROM player WHERE player_id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", playerID, err)
	}
	logNoop(r.logger, res, "player", playerID)
	return nil
}

func (r *PlayerRepository) Search(ctx context.Context, term string, limit int) ([]domain.Player, error) {
	pattern := "%" + term + "%"
	return queryAll(ctx, r.gw, scanPlayer, `
		SELECT `+playerColumns+`
		FROM player
		WHERE display_name LIKE ? OR email LIKE ?
		ORDER BY display_name, player_id
		LIMIT ?`,
		pattern, pattern, limit)
}

// Stats summarises every match the player took part in. Averages are
// truncated and stay nil when no stats rows exist.
func (r *PlayerRepository) Stats(ctx context.Context, playerID int64) (domain.PlayerStats, error) {
	stats, err := queryOne(ctx, r.gw, func(rows *sql.Rows) (domain.PlayerStats, error) {
		var s domain.PlayerStats
		var kills, deaths, assists, damage, healing sql.NullInt64
		if err := rows.Scan(&s.TotalMatches, &s.Wins, &s.Losses, &kills, &deaths, &assists, &damage, &healing); err != nil {
			return s, err
		}
		s.AvgKills = intPtr(kills)
		s.AvgDeaths = intPtr(deaths)
		s.AvgAssists = intPtr(assists)
		s.AvgDamage = intPtr(damage)
		s.AvgHealing = intPtr(healing)
		return s, nil
	}, `
		SELECT
			COUNT(DISTINCT mp.match_id),
			COALESCE(SUM(CASE WHEN mp.result = 'win' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN mp.result = 'loss' THEN 1 ELSE 0 END), 0),
			CAST(AVG(mps.kills) AS INTEGER),
			CAST(AVG(mps.deaths) AS INTEGER),
			CAST(AVG(mps.assists) AS INTEGER),
			CAST(AVG(mps.damage_dealt) AS INTEGER),
			CAST(AVG(mps.healing_done) AS INTEGER)
		FROM match_player mp
		LEFT JOIN match_player_stats mps ON mp.match_player_id = mps.match_player_id
		WHERE mp.player_id = ?`,
		playerID)
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("failed to aggregate stats for player %d: %w", playerID, err)
	}
	return *stats, nil
}

func (r *PlayerRepository) RecentMatches(ctx context.Context, playerID int64, limit int) ([]domain.RecentMatch, error) {
	matches, err := queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.RecentMatch, error) {
		var m domain.RecentMatch
		var endedAt sql.NullTime
		var kills, deaths, assists, damage, healing, mmr sql.NullInt64
		err := rows.Scan(
			&m.MatchID, &m.Gamemode, &m.StartedAt, &endedAt, &m.Result, &m.TeamLabel,
			&m.CharacterID, &m.CharacterName,
			&kills, &deaths, &assists, &damage, &healing, &mmr,
		)
		if err != nil {
			return m, err
		}
		m.EndedAt = timePtr(endedAt)
		m.Kills = intPtr(kills)
		m.Deaths = intPtr(deaths)
		m.Assists = intPtr(assists)
		m.DamageDealt = intPtr(damage)
		m.HealingDone = intPtr(healing)
		m.MMRDelta = intPtr(mmr)
		return m, nil
	}, `
		SELECT
			mg.match_id,
			mg.gamemode,
			mg.started_at,
			mg.ended_at,
			mp.result,
			t.team_label,
			gc.character_id,
			gc.name,
			mps.kills,
			mps.deaths,
			mps.assists,
			mps.damage_dealt,
			mps.healing_done,
			mps.mmr_delta
		FROM match_player mp
		JOIN match_game mg ON mp.match_id = mg.match_id
		JOIN game_character gc ON mp.character_id = gc.character_id
		JOIN team t ON mp.team_id = t.team_id
		LEFT JOIN match_player_stats mps ON mp.match_player_id = mps.match_player_id
		WHERE mp.player_id = ?
		ORDER BY mg.started_at DESC, mg.match_id DESC
		LIMIT ?`,
		playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent matches for player %d: %w", playerID, err)
	}
	return matches, nil
}

// FavoriteCharacters groups by character id so two characters sharing a
// name are never merged. Ties on play count fall back to the id.
func (r *PlayerRepository) FavoriteCharacters(ctx context.Context, playerID int64, limit int) ([]domain.FavoriteCharacter, error) {
	characters, err := queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.FavoriteCharacter, error) {
		var c domain.FavoriteCharacter
		err := rows.Scan(&c.CharacterID, &c.CharacterName, &c.TimesPlayed, &c.Wins)
		return c, err
	}, `
		SELECT
			gc.character_id,
			gc.name,
			COUNT(*) AS times_played,
			SUM(CASE WHEN mp.result = 'win' THEN 1 ELSE 0 END) AS wins
		FROM match_player mp
		JOIN game_character gc ON mp.character_id = gc.character_id
		WHERE mp.player_id = ?
		GROUP BY gc.character_id, gc.name
		ORDER BY times_played DESC, gc.character_id ASC
		LIMIT ?`,
		playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite characters for player %d: %w", playerID, err)
	}
	return characters, nil
}

func logNoop(logger zerolog.Logger, res sql.Result, entity string, id int64) {
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		logger.Debug().Str("entity", entity).Int64("id", id).Msg("no row matched, nothing changed")
	}
}
