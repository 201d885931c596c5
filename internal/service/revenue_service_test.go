package service_test

import (
	"testing"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueService_Record(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.svc.Revenue.Record(h.ctx, domain.CategoryStatBoost, domain.Unit/2, fixedNow))
	require.NoError(t, h.svc.Revenue.Record(h.ctx, domain.CategoryStatBoost, domain.Unit, fixedNow))
	require.NoError(t, h.svc.Revenue.Record(h.ctx, domain.CategoryHeroAscension, 5*domain.Unit, fixedNow))

	err := h.svc.Revenue.Record(h.ctx, "tips", domain.Unit, fixedNow)
	assert.ErrorIs(t, err, domain.ErrInvalidRevenueCategory)

	assert.Equal(t, domain.Unit+domain.Unit/2, h.revenue(domain.CategoryStatBoost))

	total, err := h.svc.Revenue.Total(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 6*domain.Unit+domain.Unit/2, total)

	_, err = h.svc.Revenue.ByCategory(h.ctx, "tips")
	assert.ErrorIs(t, err, domain.ErrInvalidRevenueCategory)

	note, ok := h.recorder.Last(domain.NotificationRevenueCollected)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryHeroAscension, note.Data["category"])
	assert.Equal(t, total, note.Data["total"])
}

func TestRevenueService_SummaryMatchesCategories(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()

	hero := h.createHero(owner, domain.ClassWarrior)
	h.patch(hero.ID, testutil.HeroPatch{Level: 30})
	_, _, err := h.svc.Hero.Evolve(h.ctx, inv(owner, domain.Unit), hero.ID, domain.EvolutionRarityUpgrade)
	require.NoError(t, err)
	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, 1)
	require.NoError(t, err)

	summary, err := h.svc.Revenue.Summary(h.ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Categories, len(domain.AllRevenueCategories))

	var sum domain.Amount
	for _, amount := range summary.Categories {
		sum += amount
	}
	assert.Equal(t, summary.Total, sum)
	assert.Equal(t, domain.BasicCreationFee+domain.Unit+domain.AbilityUnlockFee, summary.Total)
	assert.Zero(t, summary.Categories[domain.CategoryClassEvolution])
}
