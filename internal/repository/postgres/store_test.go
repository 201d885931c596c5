package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/dom/hero-forge/internal/repository/postgres"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AtomicRollsBack(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	store := postgres.NewStore(testDB.DB)
	ctx := context.Background()
	owner := uuid.New()
	boom := errors.New("boom")

	err := store.Atomic(ctx, func(repos *repository.Repositories) error {
		id, err := repos.Sequence.Next(ctx, domain.SequenceHero)
		if err != nil {
			return err
		}
		if err := repos.Hero.Create(ctx, newHero(id, owner, domain.RarityCommon)); err != nil {
			return err
		}
		if err := repos.Ownership.Add(ctx, owner, id); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	repos := store.Repositories()
	current, err := repos.Sequence.Current(ctx, domain.SequenceHero)
	require.NoError(t, err)
	assert.Zero(t, current)

	count, err := repos.Ownership.Count(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettingsRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	paused, err := repos.Settings.IsPaused(ctx)
	require.NoError(t, err)
	assert.False(t, paused)

	require.NoError(t, repos.Settings.SetPaused(ctx, true))
	paused, err = repos.Settings.IsPaused(ctx)
	require.NoError(t, err)
	assert.True(t, paused)

	caller := uuid.New()
	require.NoError(t, repos.AuthorizedCaller.Add(ctx, caller))
	require.NoError(t, repos.AuthorizedCaller.Add(ctx, caller))

	ok, err := repos.AuthorizedCaller.Exists(ctx, caller)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repos.AuthorizedCaller.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{caller}, list)

	require.NoError(t, repos.AuthorizedCaller.Remove(ctx, caller))
	ok, err = repos.AuthorizedCaller.Exists(ctx, caller)
	require.NoError(t, err)
	assert.False(t, ok)
}
