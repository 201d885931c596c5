package service_test

import (
	"strings"
	"testing"

	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/service"
	"github.com/dom/hero-forge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroService_CreateBasic(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()

	hero, err := h.svc.Hero.Create(h.ctx, inv(owner, domain.BasicCreationFee), service.CreateHeroInput{
		Name:  "Aria",
		Class: classPtr(domain.ClassWarrior),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), hero.ID)
	assert.Equal(t, owner, hero.OwnerID)
	assert.Equal(t, uint32(1), hero.Level)
	assert.Equal(t, uint64(0), hero.Experience)
	assert.Equal(t, domain.RarityCommon, hero.Rarity)
	assert.Equal(t, domain.ClassTemplate(domain.ClassWarrior), hero.Stats)
	assert.Empty(t, hero.Abilities)
	assert.False(t, hero.AIGenerated)
	assert.Equal(t, fixedNow, hero.CreatedAt)

	assert.Equal(t, domain.DefaultPersonality, hero.Traits.Personality)
	assert.Equal(t, domain.BattleStyleAggressive, hero.Traits.BattleStyle)
	assert.Equal(t, uint32(77), hero.Traits.AdaptationRate)
	assert.Equal(t, uint32(67), hero.Traits.LearningFactor)
	assert.Equal(t, uint64(8), hero.Traits.AISeed)

	stored := h.hero(hero.ID)
	assert.Equal(t, hero.Stats, stored.Stats)

	ids, err := h.svc.Hero.HeroIDsOf(h.ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)

	total, err := h.svc.Hero.Total(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	assert.Equal(t, domain.BasicCreationFee, h.revenue(domain.CategoryBasicHeroGeneration))
	assert.Equal(t, []domain.NotificationType{
		domain.NotificationHeroCreated,
		domain.NotificationRevenueCollected,
	}, h.recorder.Types())

	created, ok := h.recorder.Last(domain.NotificationHeroCreated)
	require.True(t, ok)
	assert.Equal(t, []uint64{1}, created.HeroIDs)
	assert.Equal(t, []uuid.UUID{owner}, created.Accounts)
}

func TestHeroService_CreateEnhanced(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()

	tests := []struct {
		name        string
		class       *domain.HeroClass
		personality string
		wantClass   domain.HeroClass
		wantStats   domain.Stats
	}{
		{
			name:        "class derived from personality length",
			personality: "Brave",
			wantClass:   domain.ClassElementalist,
			wantStats:   domain.UniformStats(115),
		},
		{
			name:        "explicit class keeps its template",
			class:       classPtr(domain.ClassMage),
			personality: "Calm and collected",
			wantClass:   domain.ClassMage,
			wantStats:   domain.ClassTemplate(domain.ClassMage).AddUniform(28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero, err := h.svc.Hero.Create(h.ctx, inv(owner, domain.EnhancedCreationFee), service.CreateHeroInput{
				Name:        "Oracle",
				Class:       tt.class,
				Personality: tt.personality,
				Enhanced:    true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, hero.Class)
			assert.Equal(t, tt.wantStats, hero.Stats)
			assert.True(t, hero.AIGenerated)
			assert.Equal(t, tt.personality, hero.Traits.Personality)
		})
	}

	assert.Equal(t, 2*domain.EnhancedCreationFee, h.revenue(domain.CategoryAIHeroGeneration))
	assert.Equal(t, domain.Amount(0), h.revenue(domain.CategoryBasicHeroGeneration))
}

func TestHeroService_CreateRecordsFullPayment(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Hero.Create(h.ctx, inv(uuid.New(), 2*domain.Unit), service.CreateHeroInput{
		Name:  "Generous",
		Class: classPtr(domain.ClassRogue),
	})
	require.NoError(t, err)

	assert.Equal(t, 2*domain.Unit, h.revenue(domain.CategoryBasicHeroGeneration))
	total, err := h.svc.Revenue.Total(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*domain.Unit, total)
}

func TestHeroService_CreateRejections(t *testing.T) {
	tests := []struct {
		name    string
		caller  uuid.UUID
		paid    domain.Amount
		input   service.CreateHeroInput
		wantErr error
	}{
		{
			name:    "anonymous caller",
			caller:  uuid.Nil,
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: "A", Class: classPtr(domain.ClassMage)},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "empty name",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: "", Class: classPtr(domain.ClassMage)},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "name too long",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: strings.Repeat("x", domain.MaxNameLength+1), Class: classPtr(domain.ClassMage)},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "unknown class",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: "A", Class: classPtr("bard")},
			wantErr: domain.ErrInvalidClass,
		},
		{
			name:    "basic creation without a class",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: "A"},
			wantErr: domain.ErrInvalidClass,
		},
		{
			name:    "basic underpaid",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee - 1,
			input:   service.CreateHeroInput{Name: "A", Class: classPtr(domain.ClassMage)},
			wantErr: domain.ErrUnderpaid,
		},
		{
			name:    "enhanced paid at the basic rate",
			caller:  uuid.New(),
			paid:    domain.BasicCreationFee,
			input:   service.CreateHeroInput{Name: "A", Personality: "Bold", Enhanced: true},
			wantErr: domain.ErrUnderpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			hero, err := h.svc.Hero.Create(h.ctx, inv(tt.caller, tt.paid), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, hero)

			total, err := h.svc.Hero.Total(h.ctx)
			require.NoError(t, err)
			assert.Zero(t, total)
			revenue, err := h.svc.Revenue.Total(h.ctx)
			require.NoError(t, err)
			assert.Zero(t, revenue)
			assert.Empty(t, h.recorder.All())
		})
	}
}

func TestHeroService_CreateQuota(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.MaxHeroesPerAccount = 2 })
	owner := uuid.New()

	h.createHero(owner, domain.ClassWarrior)
	h.createHero(owner, domain.ClassMage)

	_, err := h.svc.Hero.Create(h.ctx, inv(owner, domain.BasicCreationFee), service.CreateHeroInput{
		Name:  "Third",
		Class: classPtr(domain.ClassRogue),
	})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	count, err := h.svc.Hero.Count(h.ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)
	assert.Equal(t, 2*domain.BasicCreationFee, h.revenue(domain.CategoryBasicHeroGeneration))

	// Another account is unaffected and continues the id sequence.
	other := h.createHero(uuid.New(), domain.ClassRogue)
	assert.Equal(t, uint64(3), other.ID)
}

func TestHeroService_PausedRejectsMutations(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	hero := h.createHero(owner, domain.ClassWarrior)
	h.pause()

	_, err := h.svc.Hero.Create(h.ctx, inv(owner, domain.BasicCreationFee), service.CreateHeroInput{
		Name:  "Late",
		Class: classPtr(domain.ClassMage),
	})
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, _, err = h.svc.Hero.LevelUp(h.ctx, inv(owner, 0), hero.ID)
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, err = h.svc.Hero.RecordBattleResult(h.ctx, inv(owner, 0), hero.ID, true, 10)
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, err = h.svc.Hero.Transfer(h.ctx, inv(owner, 0), hero.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, _, err = h.svc.Hero.Evolve(h.ctx, inv(owner, domain.Unit), hero.ID, domain.EvolutionStatBoost)
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.Unit), hero.ID, 1)
	assert.ErrorIs(t, err, domain.ErrPaused)

	_, err = h.svc.Hero.Ascend(h.ctx, inv(owner, domain.AscensionFee), hero.ID)
	assert.ErrorIs(t, err, domain.ErrPaused)

	// Reads keep working while paused.
	got, err := h.svc.Hero.Get(h.ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, hero.ID, got.ID)

	require.NoError(t, h.svc.Admin.Resume(h.ctx, inv(h.admin, 0)))
	_, err = h.svc.Hero.RecordBattleResult(h.ctx, inv(owner, 0), hero.ID, true, 10)
	assert.NoError(t, err)
}

func TestHeroService_LevelUp(t *testing.T) {
	tests := []struct {
		name       string
		patch      testutil.HeroPatch
		wantErr    error
		wantGained uint32
		wantLevel  uint32
		wantExp    uint64
	}{
		{
			name:    "not enough experience",
			patch:   testutil.HeroPatch{Experience: 99},
			wantErr: domain.ErrInsufficientExperience,
		},
		{
			name:       "exactly one level",
			patch:      testutil.HeroPatch{Experience: 100},
			wantGained: 1,
			wantLevel:  2,
			wantExp:    0,
		},
		{
			name:       "leftover experience is kept",
			patch:      testutil.HeroPatch{Experience: 250},
			wantGained: 1,
			wantLevel:  2,
			wantExp:    150,
		},
		{
			name:       "several levels at once",
			patch:      testutil.HeroPatch{Experience: 300},
			wantGained: 2,
			wantLevel:  3,
			wantExp:    0,
		},
		{
			name:       "stops at max level",
			patch:      testutil.HeroPatch{Level: 99, Experience: 1_000_000},
			wantGained: 1,
			wantLevel:  domain.MaxLevel,
			wantExp:    1_000_000 - 9_900,
		},
		{
			name:    "already max level",
			patch:   testutil.HeroPatch{Level: domain.MaxLevel, Experience: 1_000_000},
			wantErr: domain.ErrMaxLevelReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			owner := uuid.New()
			hero := h.createHero(owner, domain.ClassWarrior)
			before := h.patch(hero.ID, tt.patch)
			h.recorder.Reset()

			got, gained, err := h.svc.Hero.LevelUp(h.ctx, inv(owner, 0), hero.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, h.hero(hero.ID))
				assert.Empty(t, h.recorder.All())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantGained, gained)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantExp, got.Experience)

			growth := domain.LevelGrowth(domain.ClassWarrior)
			want := before.Stats
			for i := uint32(0); i < tt.wantGained; i++ {
				want = want.Apply(growth)
			}
			assert.Equal(t, want, got.Stats)
			assert.Equal(t, got.Stats, h.hero(hero.ID).Stats)

			note, ok := h.recorder.Last(domain.NotificationHeroLeveled)
			require.True(t, ok)
			assert.EqualValues(t, before.Level, note.Data["oldLevel"])
			assert.EqualValues(t, tt.wantLevel, note.Data["newLevel"])
		})
	}
}

func TestHeroService_LevelUpAccess(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	hero := h.createHero(owner, domain.ClassWarrior)
	h.patch(hero.ID, testutil.HeroPatch{Experience: 500})

	_, _, err := h.svc.Hero.LevelUp(h.ctx, inv(uuid.New(), 0), hero.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, _, err = h.svc.Hero.LevelUp(h.ctx, inv(owner, 0), 404)
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)
}

func TestHeroService_RecordBattleResult(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	battleService := uuid.New()
	hero := h.createHero(owner, domain.ClassRogue)

	got, err := h.svc.Hero.RecordBattleResult(h.ctx, inv(owner, 0), hero.ID, true, 40)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.BattlesFought)
	assert.Equal(t, uint32(1), got.BattlesWon)
	assert.Equal(t, uint64(40), got.Experience)

	_, err = h.svc.Hero.RecordBattleResult(h.ctx, inv(battleService, 0), hero.ID, false, 25)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, h.svc.Admin.Authorize(h.ctx, inv(h.admin, 0), battleService))
	got, err = h.svc.Hero.RecordBattleResult(h.ctx, inv(battleService, 0), hero.ID, false, 25)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), got.BattlesFought)
	assert.Equal(t, uint32(1), got.BattlesWon)
	assert.Equal(t, uint64(65), got.Experience)

	// Recording a battle never levels the hero by itself.
	assert.Equal(t, uint32(1), got.Level)

	stats, err := h.svc.Hero.BattleStats(h.ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), stats.WinRate)

	_, err = h.svc.Hero.RecordBattleResult(h.ctx, inv(h.admin, 0), 999, true, 1)
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)
}

func TestHeroService_Transfer(t *testing.T) {
	h := newHarness(t)
	owner, recipient := uuid.New(), uuid.New()
	hero := h.createHero(owner, domain.ClassPaladin)
	kept := h.createHero(owner, domain.ClassMage)

	tests := []struct {
		name    string
		caller  uuid.UUID
		to      uuid.UUID
		wantErr error
	}{
		{"nil recipient", owner, uuid.Nil, domain.ErrInvalidRecipient},
		{"self transfer", owner, owner, domain.ErrSelfTransfer},
		{"not the owner", recipient, uuid.New(), domain.ErrNotOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Hero.Transfer(h.ctx, inv(tt.caller, 0), hero.ID, tt.to)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, owner, h.hero(hero.ID).OwnerID)
		})
	}

	h.recorder.Reset()
	got, err := h.svc.Hero.Transfer(h.ctx, inv(owner, 0), hero.ID, recipient)
	require.NoError(t, err)
	assert.Equal(t, recipient, got.OwnerID)
	assert.Equal(t, recipient, h.hero(hero.ID).OwnerID)

	ownerIDs, err := h.svc.Hero.HeroIDsOf(h.ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint64{kept.ID}, ownerIDs)

	recipientIDs, err := h.svc.Hero.HeroIDsOf(h.ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, []uint64{hero.ID}, recipientIDs)

	ownerCount, err := h.svc.Hero.Count(h.ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ownerCount)

	recipientCount, err := h.svc.Hero.Count(h.ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), recipientCount)

	note, ok := h.recorder.Last(domain.NotificationHeroTransferred)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{owner, recipient}, note.Accounts)

	// The previous owner has lost control of the hero.
	_, err = h.svc.Hero.Transfer(h.ctx, inv(owner, 0), hero.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestHeroService_EvolveGates(t *testing.T) {
	tests := []struct {
		name    string
		patch   testutil.HeroPatch
		evo     domain.EvolutionType
		paid    domain.Amount
		wantErr error
	}{
		{"unknown type", testutil.HeroPatch{Level: 80}, "mutation", domain.Unit, domain.ErrInvalidEvolutionType},
		{"stat boost below level", testutil.HeroPatch{Level: 9}, domain.EvolutionStatBoost, domain.Unit, domain.ErrGateNotMet},
		{"stat boost underpaid", testutil.HeroPatch{Level: 10}, domain.EvolutionStatBoost, domain.Unit/2 - 1, domain.ErrUnderpaid},
		{"rarity upgrade at legendary", testutil.HeroPatch{Level: 40, Rarity: domain.RarityLegendary}, domain.EvolutionRarityUpgrade, domain.Unit, domain.ErrGateNotMet},
		{"class evolution without battles", testutil.HeroPatch{Level: 50, Battles: 19}, domain.EvolutionClassEvolution, 2 * domain.Unit, domain.ErrGateNotMet},
		{"elemental on a common hero", testutil.HeroPatch{Level: 30}, domain.EvolutionElementalInfusion, 2 * domain.Unit, domain.ErrGateNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			owner := uuid.New()
			hero := h.createHero(owner, domain.ClassWarrior)
			before := h.patch(hero.ID, tt.patch)
			revenueBefore, err := h.svc.Revenue.Total(h.ctx)
			require.NoError(t, err)

			_, _, err = h.svc.Hero.Evolve(h.ctx, inv(owner, tt.paid), hero.ID, tt.evo)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr != domain.ErrInvalidEvolutionType {
				assert.ErrorIs(t, err, domain.ErrEvolutionRequirementNotMet)
			}

			assert.Equal(t, before, h.hero(hero.ID))
			revenueAfter, err := h.svc.Revenue.Total(h.ctx)
			require.NoError(t, err)
			assert.Equal(t, revenueBefore, revenueAfter)
		})
	}
}

func TestHeroService_Evolve(t *testing.T) {
	tests := []struct {
		name       string
		class      domain.HeroClass
		patch      testutil.HeroPatch
		evo        domain.EvolutionType
		paid       domain.Amount
		wantDelta  domain.StatDelta
		wantRarity domain.Rarity
		category   domain.RevenueCategory
	}{
		{
			name:       "stat boost",
			class:      domain.ClassWarrior,
			patch:      testutil.HeroPatch{Level: 10},
			evo:        domain.EvolutionStatBoost,
			paid:       domain.Unit / 2,
			wantDelta:  domain.StatDelta{Vitality: 25, Strength: 15, MagicPower: 12, Agility: 10, Intelligence: 8},
			wantRarity: domain.RarityCommon,
			category:   domain.CategoryStatBoost,
		},
		{
			name:       "rarity upgrade common to rare",
			class:      domain.ClassWarrior,
			patch:      testutil.HeroPatch{Level: 25},
			evo:        domain.EvolutionRarityUpgrade,
			paid:       domain.Unit,
			wantDelta:  domain.StatDelta{Vitality: 50, Strength: 30, MagicPower: 25, Agility: 20, Intelligence: 15},
			wantRarity: domain.RarityRare,
			category:   domain.CategoryRarityUpgrade,
		},
		{
			name:       "rarity upgrade epic to legendary",
			class:      domain.ClassWarrior,
			patch:      testutil.HeroPatch{Level: 25, Rarity: domain.RarityEpic},
			evo:        domain.EvolutionRarityUpgrade,
			paid:       domain.Unit,
			wantDelta:  domain.StatDelta{Vitality: 100, Strength: 60, MagicPower: 50, Agility: 40, Intelligence: 35},
			wantRarity: domain.RarityLegendary,
			category:   domain.CategoryRarityUpgrade,
		},
		{
			name:       "class evolution for a mage",
			class:      domain.ClassMage,
			patch:      testutil.HeroPatch{Level: 50, Battles: 20},
			evo:        domain.EvolutionClassEvolution,
			paid:       2 * domain.Unit,
			wantDelta:  domain.StatDelta{Intelligence: 70, Strength: 40, Agility: 20},
			wantRarity: domain.RarityCommon,
			category:   domain.CategoryClassEvolution,
		},
		{
			name:       "class evolution falls back for paladins",
			class:      domain.ClassPaladin,
			patch:      testutil.HeroPatch{Level: 50, Battles: 20},
			evo:        domain.EvolutionClassEvolution,
			paid:       3 * domain.Unit,
			wantDelta:  domain.StatDelta{Vitality: 40, Strength: 35, MagicPower: 25, Agility: 30, Intelligence: 30},
			wantRarity: domain.RarityCommon,
			category:   domain.CategoryClassEvolution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			owner := uuid.New()
			hero := h.createHero(owner, tt.class)
			before := h.patch(hero.ID, tt.patch)
			h.recorder.Reset()

			got, result, err := h.svc.Hero.Evolve(h.ctx, inv(owner, tt.paid), hero.ID, tt.evo)
			require.NoError(t, err)

			assert.Equal(t, before.Stats.Apply(tt.wantDelta), got.Stats)
			assert.Equal(t, tt.wantRarity, got.Rarity)
			assert.Equal(t, before.Level+1, got.Level)
			assert.Equal(t, fixedNow, got.LastEvolutionAt)
			assert.Equal(t, before.Rarity, result.OldRarity)
			assert.Equal(t, tt.wantRarity, result.NewRarity)
			assert.Nil(t, result.GrantedAbility)

			assert.Equal(t, got, h.hero(hero.ID))
			assert.Equal(t, tt.paid, h.revenue(tt.category))
			assert.Equal(t, []domain.NotificationType{
				domain.NotificationHeroEvolved,
				domain.NotificationRevenueCollected,
			}, h.recorder.Types())
		})
	}
}

func TestHeroService_ElementalInfusion(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	hero := h.createHero(owner, domain.ClassMage)
	h.patch(hero.ID, testutil.HeroPatch{Level: 30, Rarity: domain.RarityRare})

	// The entropy source yields 7, which selects ElementalAbilities[2].
	got, result, err := h.svc.Hero.Evolve(h.ctx, inv(owner, domain.Unit+domain.Unit/2), hero.ID, domain.EvolutionElementalInfusion)
	require.NoError(t, err)
	require.NotNil(t, result.GrantedAbility)
	assert.Equal(t, uint32(102), *result.GrantedAbility)
	assert.Equal(t, []uint32{102}, []uint32(got.Abilities))

	// The same ability again grants nothing but still applies the bonus.
	before := h.hero(hero.ID)
	got, result, err = h.svc.Hero.Evolve(h.ctx, inv(owner, domain.Unit+domain.Unit/2), hero.ID, domain.EvolutionElementalInfusion)
	require.NoError(t, err)
	assert.Nil(t, result.GrantedAbility)
	assert.Equal(t, []uint32{102}, []uint32(got.Abilities))
	assert.Equal(t, before.Stats.Apply(domain.StatDelta{Vitality: 40, Strength: 35, MagicPower: 30, Intelligence: 40}), got.Stats)
	assert.Equal(t, 2*(domain.Unit+domain.Unit/2), h.revenue(domain.CategoryElementalInfusion))
}

func TestHeroService_UnlockAbility(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	hero := h.createHero(owner, domain.ClassRogue)

	_, err := h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, 7)
	assert.ErrorIs(t, err, domain.ErrGateNotMet)

	h.patch(hero.ID, testutil.HeroPatch{Level: domain.AbilityMinLevel})

	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee-1), hero.ID, 7)
	assert.ErrorIs(t, err, domain.ErrUnderpaid)

	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(uuid.New(), domain.AbilityUnlockFee), hero.ID, 7)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	got, err := h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint32{7}, []uint32(got.Abilities))
	assert.Equal(t, domain.AbilityUnlockFee, h.revenue(domain.CategoryAbilityUnlock))

	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, 7)
	assert.ErrorIs(t, err, domain.ErrAbilityAlreadyUnlocked)

	for _, ability := range []uint32{8, 9, 10, 11} {
		_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, ability)
		require.NoError(t, err)
	}
	_, err = h.svc.Hero.UnlockAbility(h.ctx, inv(owner, domain.AbilityUnlockFee), hero.ID, 12)
	assert.ErrorIs(t, err, domain.ErrAbilitySlotsFull)

	history, err := h.svc.Hero.History(h.ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxAbilities, history.AbilityCount)
	assert.Equal(t, 5*domain.AbilityUnlockFee, h.revenue(domain.CategoryAbilityUnlock))
}

func TestHeroService_Ascend(t *testing.T) {
	ready := testutil.HeroPatch{Level: 100, Rarity: domain.RarityLegendary, Battles: 60, Wins: 50}

	tests := []struct {
		name    string
		patch   testutil.HeroPatch
		paid    domain.Amount
		wantErr error
	}{
		{"below max level", testutil.HeroPatch{Level: 99, Rarity: domain.RarityLegendary, Battles: 60, Wins: 50}, domain.AscensionFee, domain.ErrGateNotMet},
		{"not legendary", testutil.HeroPatch{Level: 100, Rarity: domain.RarityEpic, Battles: 60, Wins: 50}, domain.AscensionFee, domain.ErrGateNotMet},
		{"too few wins", testutil.HeroPatch{Level: 100, Rarity: domain.RarityLegendary, Battles: 60, Wins: 49}, domain.AscensionFee, domain.ErrGateNotMet},
		{"slots full", testutil.HeroPatch{Level: 100, Rarity: domain.RarityLegendary, Battles: 60, Wins: 50, Abilities: []uint32{1, 2, 3, 4, 5}}, domain.AscensionFee, domain.ErrAbilitySlotsFull},
		{"underpaid", ready, domain.AscensionFee - 1, domain.ErrUnderpaid},
		{"ascends", ready, domain.AscensionFee, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			owner := uuid.New()
			hero := h.createHero(owner, domain.ClassNecromancer)
			before := h.patch(hero.ID, tt.patch)

			canAscend, err := h.svc.Hero.CanAscend(h.ctx, hero.ID)
			require.NoError(t, err)

			got, err := h.svc.Hero.Ascend(h.ctx, inv(owner, tt.paid), hero.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, h.hero(hero.ID))
				return
			}

			require.NoError(t, err)
			assert.True(t, canAscend)
			assert.Equal(t, domain.RarityMythical, got.Rarity)
			assert.Equal(t, uint32(1), got.Level)
			assert.Equal(t, before.Stats.DoubleCore(), got.Stats)
			assert.Equal(t, before.Stats.Luck, got.Stats.Luck)
			assert.True(t, got.HasAbility(domain.AscendedAbility))
			assert.Equal(t, domain.AscensionFee, h.revenue(domain.CategoryHeroAscension))

			canAscend, err = h.svc.Hero.CanAscend(h.ctx, hero.ID)
			require.NoError(t, err)
			assert.False(t, canAscend)

			mythical, err := h.svc.Hero.IDsByRarity(h.ctx, domain.RarityMythical)
			require.NoError(t, err)
			assert.Equal(t, []uint64{hero.ID}, mythical)
		})
	}
}

func TestHeroService_Views(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	first := h.createHero(owner, domain.ClassWarrior)
	second := h.createHero(owner, domain.ClassMage)
	h.patch(second.ID, testutil.HeroPatch{Level: 12, Experience: 30, Rarity: domain.RarityRare})

	stats, err := h.svc.Hero.Stats(h.ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), stats.Level)
	assert.Equal(t, uint64(30), stats.Experience)
	assert.Equal(t, domain.RarityRare, stats.Rarity)

	heroes, err := h.svc.Hero.HeroesOf(h.ctx, owner)
	require.NoError(t, err)
	require.Len(t, heroes, 2)
	assert.Equal(t, first.ID, heroes[0].ID)
	assert.Equal(t, second.ID, heroes[1].ID)

	none, err := h.svc.Hero.HeroesOf(h.ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	common, err := h.svc.Hero.IDsByRarity(h.ctx, domain.RarityCommon)
	require.NoError(t, err)
	assert.Equal(t, []uint64{first.ID}, common)

	_, err = h.svc.Hero.IDsByRarity(h.ctx, "shiny")
	assert.ErrorIs(t, err, domain.ErrInvalidRarity)

	canBoost, err := h.svc.Hero.CanEvolve(h.ctx, second.ID, domain.EvolutionStatBoost)
	require.NoError(t, err)
	assert.True(t, canBoost)
	canBoost, err = h.svc.Hero.CanEvolve(h.ctx, first.ID, domain.EvolutionStatBoost)
	require.NoError(t, err)
	assert.False(t, canBoost)
	_, err = h.svc.Hero.CanEvolve(h.ctx, first.ID, "mutation")
	assert.ErrorIs(t, err, domain.ErrInvalidEvolutionType)

	_, err = h.svc.Hero.Stats(h.ctx, 404)
	assert.ErrorIs(t, err, domain.ErrHeroNotFound)
}

func TestHeroService_Costs(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		evo  domain.EvolutionType
		want domain.Amount
	}{
		{domain.EvolutionStatBoost, domain.Unit / 2},
		{domain.EvolutionRarityUpgrade, domain.Unit},
		{domain.EvolutionClassEvolution, 2 * domain.Unit},
		{domain.EvolutionElementalInfusion, domain.Unit + domain.Unit/2},
	}
	for _, tt := range tests {
		t.Run(string(tt.evo), func(t *testing.T) {
			cost, err := h.svc.Hero.EvolutionCost(tt.evo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)
		})
	}

	_, err := h.svc.Hero.EvolutionCost("mutation")
	assert.ErrorIs(t, err, domain.ErrInvalidEvolutionType)

	assert.Equal(t, domain.Unit/5, h.svc.Hero.AbilityCost())
	assert.Equal(t, 5*domain.Unit, h.svc.Hero.AscensionCost())
	assert.Equal(t, domain.Unit/2, h.svc.Hero.CreationCost(false))
	assert.Equal(t, domain.Unit, h.svc.Hero.CreationCost(true))
}
