package repository_test

import (
	"context"
	"testing"

	"moba-stats/internal/database"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"
	"moba-stats/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterListInlinesRole(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewCharacterRepository(gw, zerolog.Nop())

	characters, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, characters, 5)
	assert.Equal(t, "Ironclad", characters[0].Character.Name)
	assert.Equal(t, "Tank", characters[0].RoleName)
	assert.Equal(t, "Marksman", characters[4].RoleName)
}

func TestCharacterAbilitiesOrderedBySlot(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewCharacterRepository(gw, zerolog.Nop())
	ctx := context.Background()

	// seeded in tertiary, primary, secondary order
	abilities, err := repo.Abilities(ctx, 1)
	require.NoError(t, err)
	require.Len(t, abilities, 3)
	assert.Equal(t, domain.SlotPrimary, abilities[0].Slot)
	assert.Equal(t, "Shield Bash", abilities[0].Name)
	assert.Equal(t, domain.SlotSecondary, abilities[1].Slot)
	assert.Equal(t, domain.SlotTertiary, abilities[2].Slot)
	assert.Equal(t, "Earthshaker", abilities[2].Name)

	none, err := repo.Abilities(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCharacterCreateWithAbilities(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewCharacterRepository(gw, zerolog.Nop())
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Zap", "Arc", "Bolt"} {
		id, err := repo.CreateAbility(ctx, &domain.Ability{Name: name, Type: "damage", Power: 100, Cooldown: 5})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// slots deliberately out of alphabetical and id order
	charID, err := repo.Create(ctx, &domain.GameCharacter{Name: "Sparks", RoleID: 2, BaseHealth: 1700, AttackPower: 105, AttackSpeed: 1.0},
		[]domain.CharacterAbility{
			{AbilityID: ids[0], Slot: domain.SlotTertiary},
			{AbilityID: ids[1], Slot: domain.SlotSecondary},
			{AbilityID: ids[2], Slot: domain.SlotPrimary},
		})
	require.NoError(t, err)

	abilities, err := repo.Abilities(ctx, charID)
	require.NoError(t, err)
	require.Len(t, abilities, 3)
	assert.Equal(t, "Bolt", abilities[0].Name)
	assert.Equal(t, "Arc", abilities[1].Name)
	assert.Equal(t, "Zap", abilities[2].Name)
}

func TestCharacterCreateRollsBackOnBadSlot(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewCharacterRepository(gw, zerolog.Nop())
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.GameCharacter{Name: "Broken", RoleID: 1},
		[]domain.CharacterAbility{{AbilityID: 1, Slot: "ultimate"}})
	require.ErrorIs(t, err, database.ErrConstraintViolation)

	characters, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, characters, 5)
}

func TestCharacterPlayStats(t *testing.T) {
	gw := testutil.SetupSeededGateway(t)
	repo := repository.NewCharacterRepository(gw, zerolog.Nop())
	ctx := context.Background()

	t.Run("played", func(t *testing.T) {
		stats, err := repo.PlayStats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TimesPlayed)
		assert.Equal(t, 3, stats.Wins)
		assert.Equal(t, 0, stats.Losses)
		assert.Equal(t, 4, *stats.AvgKills)
		assert.Equal(t, 1, *stats.AvgDeaths)
		assert.Equal(t, 10, *stats.AvgAssists)
		assert.Equal(t, 11000, *stats.AvgDamage)
	})

	t.Run("partially recorded", func(t *testing.T) {
		stats, err := repo.PlayStats(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TimesPlayed)
		assert.Equal(t, 0, stats.Wins)
		assert.Equal(t, 2, stats.Losses)
		assert.Equal(t, 1, *stats.AvgKills)
		assert.Equal(t, 4, *stats.AvgDeaths)
		assert.Equal(t, 15, *stats.AvgAssists)
		assert.Equal(t, 3000, *stats.AvgDamage)
	})

	t.Run("never played", func(t *testing.T) {
		stats, err := repo.PlayStats(ctx, 5)
		require.NoError(t, err)
		assert.Zero(t, stats.TimesPlayed)
		assert.Nil(t, stats.AvgKills)
		assert.Nil(t, stats.AvgDamage)
	})
}
