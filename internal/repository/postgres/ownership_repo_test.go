package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository/postgres"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipRepository_AddAndMove(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOwnershipRepository(testDB.DB)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	for id := uint64(1); id <= 7; id++ {
		require.NoError(t, repo.Add(ctx, a, id))
	}

	require.NoError(t, repo.Move(ctx, 7, a, b))

	tests := []struct {
		name      string
		owner     uuid.UUID
		wantIDs   []uint64
		wantCount uint32
	}{
		{"sender", a, []uint64{1, 2, 3, 4, 5, 6}, 6},
		{"recipient", b, []uint64{7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := repo.HeroIDs(ctx, tt.owner)
			require.NoError(t, err)
			count, err := repo.Count(ctx, tt.owner)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, uint32(len(ids)), count)
		})
	}
}

func TestOwnershipRepository_MoveRequiresCurrentOwner(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOwnershipRepository(testDB.DB)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Add(ctx, a, 1))

	err := repo.Move(ctx, 1, b, a)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	count, err := repo.Count(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)
}

func TestOwnershipRepository_DuplicateAddFails(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOwnershipRepository(testDB.DB)
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, repo.Add(ctx, owner, 1))
	assert.Error(t, repo.Add(ctx, owner, 1))

	count, err := repo.Count(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)
}

func TestSequenceRepository_Next(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSequenceRepository(testDB.DB)
	ctx := context.Background()

	current, err := repo.Current(ctx, domain.SequenceHero)
	require.NoError(t, err)
	assert.Zero(t, current)

	for want := uint64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, domain.SequenceHero)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.Next(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), other)

	current, err = repo.Current(ctx, domain.SequenceHero)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), current)
}

func TestOwnershipRepository_CountForUpdateAndMoveBack(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOwnershipRepository(testDB.DB)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	count, err := repo.CountForUpdate(ctx, a)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Add(ctx, a, 1))
	require.NoError(t, repo.Move(ctx, 1, a, b))
	require.NoError(t, repo.Move(ctx, 1, b, a))

	count, err = repo.CountForUpdate(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	count, err = repo.Count(ctx, b)
	require.NoError(t, err)
	assert.Zero(t, count)
}
