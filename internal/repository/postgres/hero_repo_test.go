package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository/postgres"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHero(id uint64, owner uuid.UUID, rarity domain.Rarity) *domain.Hero {
	return &domain.Hero{
		ID:        id,
		OwnerID:   owner,
		Name:      "Hero",
		Class:     domain.ClassWarrior,
		Level:     1,
		Stats:     domain.ClassTemplate(domain.ClassWarrior),
		Rarity:    rarity,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Abilities: []uint32{},
		Traits: domain.Traits{
			Personality: "Balanced",
			BattleStyle: domain.BattleStyleAggressive,
		},
	}
}

func TestHeroRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewHeroRepository(testDB.DB)
	ctx := context.Background()
	owner := uuid.New()

	hero := newHero(1, owner, domain.RarityCommon)
	hero.Abilities = []uint32{100, 42}
	hero.Traits.AISeed = 77
	require.NoError(t, repo.Create(ctx, hero))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, owner, got.OwnerID)
	assert.Equal(t, domain.ClassTemplate(domain.ClassWarrior), got.Stats)
	assert.Equal(t, []uint32{100, 42}, []uint32(got.Abilities))
	assert.Equal(t, uint64(77), got.Traits.AISeed)
	assert.Equal(t, domain.RarityCommon, got.Rarity)
}

func TestHeroRepository_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewHeroRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)

	_, err = repo.GetForUpdate(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)

	err = repo.Update(ctx, newHero(404, uuid.New(), domain.RarityCommon))
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)
}

func TestHeroRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewHeroRepository(testDB.DB)
	ctx := context.Background()

	hero := newHero(1, uuid.New(), domain.RarityCommon)
	require.NoError(t, repo.Create(ctx, hero))

	hero.Level = 26
	hero.Experience = 0
	hero.Rarity = domain.RarityRare
	hero.Abilities = append(hero.Abilities, 102)
	hero.LastEvolutionAt = time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Update(ctx, hero))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(26), got.Level)
	assert.Equal(t, domain.RarityRare, got.Rarity)
	assert.Equal(t, []uint32{102}, []uint32(got.Abilities))
	assert.True(t, hero.LastEvolutionAt.Equal(got.LastEvolutionAt))
}

func TestHeroRepository_Listing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewHeroRepository(testDB.DB)
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, repo.Create(ctx, newHero(1, owner, domain.RarityCommon)))
	require.NoError(t, repo.Create(ctx, newHero(2, owner, domain.RarityEpic)))
	require.NoError(t, repo.Create(ctx, newHero(3, owner, domain.RarityCommon)))

	ids, err := repo.ListIDsByRarity(ctx, domain.RarityCommon)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, ids)

	heroes, err := repo.GetByIDs(ctx, []uint64{3, 2, 99})
	require.NoError(t, err)
	require.Len(t, heroes, 2)
	assert.Equal(t, uint64(2), heroes[0].ID)
	assert.Equal(t, uint64(3), heroes[1].ID)

	heroes, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, heroes)
}
