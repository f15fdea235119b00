package service_test

import (
	"context"
	"testing"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"
	"moba-stats/internal/service"
	"moba-stats/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	gw        *database.Gateway
	player    *service.PlayerService
	match     *service.MatchService
	character *service.CharacterService
	catalog   *service.CatalogService
	admin     *service.AdminService
}

func setup(t *testing.T) services {
	t.Helper()
	gw := testutil.SetupSeededGateway(t)
	log := zerolog.Nop()
	return services{
		gw:        gw,
		player:    service.NewPlayerService(repository.NewPlayerRepository(gw, log), log),
		match:     service.NewMatchService(repository.NewMatchRepository(gw, log), log),
		character: service.NewCharacterService(repository.NewCharacterRepository(gw, log), log),
		catalog: service.NewCatalogService(
			repository.NewRoleRepository(gw, log),
			repository.NewItemRepository(gw, log),
			repository.NewEntitlementRepository(gw, log),
			log,
		),
		admin: service.NewAdminService(gw, log),
	}
}

func TestGetProfile(t *testing.T) {
	s := setup(t)

	profile, err := s.player.GetProfile(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Player.DisplayName)
	assert.Equal(t, 3, profile.Stats.TotalMatches)
	assert.Equal(t, 2, profile.Stats.Wins)
	require.Len(t, profile.Matches, 3)
	assert.EqualValues(t, 3, profile.Matches[0].MatchID)
	require.Len(t, profile.Characters, 2)
	assert.EqualValues(t, 1, profile.Characters[0].CharacterID)
}

func TestGetProfileNoMatches(t *testing.T) {
	s := setup(t)

	profile, err := s.player.GetProfile(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Eve", profile.Player.DisplayName)
	assert.Zero(t, profile.Stats.TotalMatches)
	assert.Nil(t, profile.Stats.AvgKills)
	assert.NotNil(t, profile.Matches)
	assert.Empty(t, profile.Matches)
	assert.Empty(t, profile.Characters)
}

func TestGetProfileMissingPlayer(t *testing.T) {
	s := setup(t)

	_, err := s.player.GetProfile(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSavePlayer(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	id, err := s.player.SavePlayer(ctx, &domain.Player{
		DisplayName: "  Gus ", Email: "gus@example.com", PasswordHash: "h", RankMMR: 1000,
	})
	require.NoError(t, err)

	got, err := s.player.GetPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gus", got.DisplayName)

	got.RankMMR = 1500
	sameID, err := s.player.SavePlayer(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, id, sameID)

	got, err = s.player.GetPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1500, got.RankMMR)
}

func TestSavePlayerValidation(t *testing.T) {
	s := setup(t)

	_, err := s.player.SavePlayer(context.Background(), &domain.Player{DisplayName: "   ", Email: "a@b.c", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchPlayersRequiresTerm(t *testing.T) {
	s := setup(t)

	_, err := s.player.SearchPlayers(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	players, err := s.player.SearchPlayers(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.EqualValues(t, 2, players[0].PlayerID)
}

func TestGetMatchDetail(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	detail, err := s.match.GetMatchDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ranked", detail.Match.Gamemode)
	assert.Len(t, detail.Players, 4)

	_, err = s.match.GetMatchDetail(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCharacterDetail(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	detail, err := s.character.GetCharacterDetail(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Emberwitch", detail.Character.Name)
	assert.Equal(t, "Mage", detail.RoleName)
	require.Len(t, detail.Abilities, 3)
	assert.Equal(t, "Fireball", detail.Abilities[0].Name)
	assert.Equal(t, 2, detail.Stats.TimesPlayed)

	_, err = s.character.GetCharacterDetail(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	summaries, err := s.character.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 5)
	assert.Equal(t, "Support", summaries[3].RoleName)
}

func TestGrantEntitlement(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	_, err := s.catalog.GrantEntitlement(ctx, 0, 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ent, err := s.catalog.GrantEntitlement(ctx, 4, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ent.Quantity)

	views, err := s.catalog.ListEntitlements(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Dan", views[0].DisplayName)
}

func TestSaveRoleAndItemValidation(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	_, err := s.catalog.SaveRole(ctx, &domain.GameRole{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.catalog.SaveItem(ctx, &domain.Item{Name: "Orb"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	id, err := s.catalog.SaveItem(ctx, &domain.Item{Name: "Orb", Category: "trinket", Rarity: "rare"})
	require.NoError(t, err)
	require.NoError(t, s.catalog.DeleteItem(ctx, id))
}

func TestAdminLifecycle(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.admin.DropAll(ctx))
	tables, err := s.admin.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	require.NoError(t, s.admin.CreateAll(ctx))
	require.NoError(t, s.admin.SeedAll(ctx))

	rows, err := s.admin.Browse(ctx, "player")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}
