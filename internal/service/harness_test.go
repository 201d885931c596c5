package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/dom/hero-forge/internal/repository/memory"
	"github.com/dom/hero-forge/internal/service"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps daily buckets stable across a test
var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type harness struct {
	t        *testing.T
	ctx      context.Context
	cfg      *config.Config
	store    *memory.Store
	repos    *repository.Repositories
	svc      *service.Services
	recorder *testutil.NotificationRecorder
	admin    uuid.UUID
}

func newHarness(t *testing.T, opts ...func(*config.Config)) *harness {
	t.Helper()

	cfg := testutil.TestConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	store := memory.NewStore()
	recorder := testutil.NewNotificationRecorder()

	return &harness{
		t:        t,
		ctx:      context.Background(),
		cfg:      cfg,
		store:    store,
		repos:    store.Repositories(),
		svc:      service.NewServices(store, cfg, host.NewSequenceEntropy(7), recorder),
		recorder: recorder,
		admin:    cfg.AdminAccountID,
	}
}

func inv(caller uuid.UUID, paid domain.Amount) host.Invocation {
	return host.Invocation{Caller: caller, Paid: paid, Now: fixedNow}
}

func (h *harness) createHero(owner uuid.UUID, class domain.HeroClass) *domain.Hero {
	h.t.Helper()
	hero, err := h.svc.Hero.Create(h.ctx, inv(owner, domain.BasicCreationFee), service.CreateHeroInput{
		Name:  "Hero",
		Class: &class,
	})
	require.NoError(h.t, err)
	return hero
}

func (h *harness) patch(heroID uint64, p testutil.HeroPatch) *domain.Hero {
	h.t.Helper()
	return testutil.PatchHero(h.t, h.repos.Hero, heroID, p)
}

func (h *harness) hero(heroID uint64) *domain.Hero {
	h.t.Helper()
	hero, err := h.svc.Hero.Get(h.ctx, heroID)
	require.NoError(h.t, err)
	return hero
}

func (h *harness) revenue(category domain.RevenueCategory) domain.Amount {
	h.t.Helper()
	amount, err := h.svc.Revenue.ByCategory(h.ctx, category)
	require.NoError(h.t, err)
	return amount
}

func (h *harness) pause() {
	h.t.Helper()
	require.NoError(h.t, h.svc.Admin.Pause(h.ctx, inv(h.admin, 0)))
}

func classPtr(c domain.HeroClass) *domain.HeroClass {
	return &c
}
