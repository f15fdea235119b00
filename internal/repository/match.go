package repository

import (
	"context"
	"database/sql"
	"fmt"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	gw     *database.Gateway
	logger zerolog.Logger
}

func NewMatchRepository(gw *database.Gateway, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		gw:     gw,
		logger: logger,
	}
}

func scanMatch(rows *sql.Rows) (domain.MatchGame, error) {
	var m domain.MatchGame
	var endedAt sql.NullTime
	if err := rows.Scan(&m.MatchID, &m.Gamemode, &m.StartedAt, &endedAt); err != nil {
		return m, err
	}
	m.EndedAt = timePtr(endedAt)
	return m, nil
}

// List returns matches newest id first.
func (r *MatchRepository) List(ctx context.Context) ([]domain.MatchGame, error) {
	return queryAll(ctx, r.gw, scanMatch, `
		SELECT match_id, gamemode, started_at, ended_at
		FROM match_game
		ORDER BY match_id DESC`)
}

func (r *MatchRepository) Get(ctx context.Context, matchID int64) (*domain.MatchGame, error) {
	return queryOne(ctx, r.gw, scanMatch, `
		SELECT match_id, gamemode, started_at, ended_at
		FROM match_game
		WHERE match_id = ?`,
		matchID)
}

// Participants returns one entry per match_player row of the match, grouped
// by team label and then display name. Stats are left-joined: a participant
// without a stats row is still listed, with nil stat fields.
func (r *MatchRepository) Participants(ctx context.Context, matchID int64) ([]domain.MatchParticipant, error) {
	players, err := queryAll(ctx, r.gw, func(rows *sql.Rows) (domain.MatchParticipant, error) {
		var p domain.MatchParticipant
		var kills, deaths, assists, damage, healing, mmr sql.NullInt64
		err := rows.Scan(
			&p.MatchPlayerID, &p.PlayerID, &p.DisplayName,
			&p.CharacterID, &p.CharacterName, &p.Result, &p.TeamLabel,
			&kills, &deaths, &assists, &damage, &healing, &mmr,
		)
		if err != nil {
			return p, err
		}
		p.Kills = intPtr(kills)
		p.Deaths = intPtr(deaths)
		p.Assists = intPtr(assists)
		p.DamageDealt = intPtr(damage)
		p.HealingDone = intPtr(healing)
		p.MMRDelta = intPtr(mmr)
		return p, nil
	}, `
		SELECT
			mp.match_player_id,
			mp.player_id,
			p.display_name,
			mp.character_id,
			gc.name,
			mp.result,
			t.team_label,
			mps.kills,
			mps.deaths,
			mps.assists,
			mps.damage_dealt,
			mps.healing_done,
			mps.mmr_delta
		FROM match_player mp
		JOIN player p ON mp.player_id = p.player_id
		JOIN game_character gc ON mp.character_id = gc.character_id
		JOIN team t ON mp.team_id = t.team_id
		LEFT JOIN match_player_stats mps ON mp.match_player_id = mps.match_player_id
		WHERE mp.match_id = ?
		ORDER BY t.team_label, p.display_name, mp.match_player_id`,
		matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants for match %d: %w", matchID, err)
	}
	return players, nil
}

// CountParticipants counts match_player rows directly, without any join.
func (r *MatchRepository) CountParticipants(ctx context.Context, matchID int64) (int, error) {
	n, err := queryOne(ctx, r.gw, func(rows *sql.Rows) (int, error) {
		var n int
		err := rows.Scan(&n)
		return n, err
	}, `SELECT COUNT(*) FROM match_player WHERE match_id = ?`, matchID)
	if err != nil {
		return 0, err
	}
	return *n, nil
}
