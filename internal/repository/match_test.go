package repository_test

import (
	"context"
	"testing"

	"moba-stats/internal/domain"
	"moba-stats/internal/repository"
	"moba-stats/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchList(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewMatchRepository(gw, zerolog.Nop())

	matches, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.EqualValues(t, 3, matches[0].MatchID)
	assert.Nil(t, matches[0].EndedAt)
	assert.EqualValues(t, 1, matches[2].MatchID)
	require.NotNil(t, matches[2].EndedAt)
	assert.Equal(t, 35, int(matches[2].EndedAt.Sub(matches[2].StartedAt).Minutes()))
}

func TestMatchGetMissing(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewMatchRepository(gw, zerolog.Nop())

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchParticipants(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewMatchRepository(gw, zerolog.Nop())
	ctx := context.Background()

	players, err := repo.Participants(ctx, 1)
	require.NoError(t, err)
	require.Len(t, players, 4)

	var order []string
	for _, p := range players {
		order = append(order, p.TeamLabel+"/"+p.DisplayName)
	}
	assert.Equal(t, []string{"Blue/Alice", "Blue/Bob", "Red/Cara", "Red/Dan"}, order)

	alice := players[0]
	assert.Equal(t, "Ironclad", alice.CharacterName)
	assert.Equal(t, domain.ResultWin, alice.Result)
	require.True(t, alice.HasStats())
	assert.Equal(t, 5, *alice.Kills)
	assert.Equal(t, 20, *alice.MMRDelta)

	dan := players[3]
	assert.False(t, dan.HasStats())
	assert.Nil(t, dan.Deaths)
	assert.Nil(t, dan.HealingDone)
}

func TestMatchParticipantsSurviveMissingStats(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewMatchRepository(gw, zerolog.Nop())
	ctx := context.Background()

	_, err := gw.Execute(ctx, "DELETE FROM match_player_stats WHERE match_player_id IN (?, ?)", []any{5, 6}, false)
	require.NoError(t, err)

	players, err := repo.Participants(ctx, 2)
	require.NoError(t, err)

	count, err := repo.CountParticipants(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, count, len(players))
	assert.Equal(t, 4, count)

	missing := 0
	for _, p := range players {
		if !p.HasStats() {
			missing++
		}
	}
	assert.Equal(t, 2, missing)
}

func TestMatchParticipantsEmpty(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewMatchRepository(gw, zerolog.Nop())
	ctx := context.Background()

	_, err := gw.Execute(ctx, "INSERT INTO match_game (match_id, gamemode) VALUES (?, ?)", []any{50, "custom"}, false)
	require.NoError(t, err)

	players, err := repo.Participants(ctx, 50)
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}
