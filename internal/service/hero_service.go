package service

import (
	"context"
	"fmt"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/game"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultMaxHeroesPerAccount caps how many heroes one account may create
const DefaultMaxHeroesPerAccount = 50

type HeroService struct {
	store     repository.Store
	generator game.Generator
	entropy   host.Entropy
	auth      *Authorizer
	revenue   *RevenueService
	notifier  notify.Notifier
	maxHeroes uint32
}

func NewHeroService(
	store repository.Store,
	generator game.Generator,
	entropy host.Entropy,
	auth *Authorizer,
	revenue *RevenueService,
	notifier notify.Notifier,
	maxHeroes uint32,
) *HeroService {
	if maxHeroes == 0 {
		maxHeroes = DefaultMaxHeroesPerAccount
	}
	return &HeroService{
		store:     store,
		generator: generator,
		entropy:   entropy,
		auth:      auth,
		revenue:   revenue,
		notifier:  notifier,
		maxHeroes: maxHeroes,
	}
}

type CreateHeroInput struct {
	Name        string
	Class       *domain.HeroClass
	Personality string
	// Enhanced selects AI-assisted generation at the higher fee
	Enhanced bool
}

func (in CreateHeroInput) validate() error {
	if len(in.Name) == 0 || len(in.Name) > domain.MaxNameLength {
		return domain.ErrInvalidName
	}
	if in.Class != nil && !in.Class.IsValid() {
		return domain.ErrInvalidClass
	}
	if !in.Enhanced && in.Class == nil {
		return domain.ErrInvalidClass
	}
	return nil
}

func (in CreateHeroInput) fee() (domain.Amount, domain.RevenueCategory) {
	if in.Enhanced {
		return domain.EnhancedCreationFee, domain.CategoryAIHeroGeneration
	}
	return domain.BasicCreationFee, domain.CategoryBasicHeroGeneration
}

// Create mints a hero for the caller. Pause, input, payment and quota are
// all checked before the first write.
func (s *HeroService) Create(ctx context.Context, inv host.Invocation, in CreateHeroInput) (*domain.Hero, error) {
	if err := requireCaller(inv.Caller); err != nil {
		return nil, err
	}

	var (
		hero  *domain.Hero
		notes []domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}
		fee, category := in.fee()
		if inv.Paid < fee {
			return domain.ErrUnderpaid
		}

		count, err := repos.Ownership.CountForUpdate(ctx, inv.Caller)
		if err != nil {
			return fmt.Errorf("count heroes: %w", err)
		}
		if count >= s.maxHeroes {
			return domain.ErrQuotaExceeded
		}

		id, err := repos.Sequence.Next(ctx, domain.SequenceHero)
		if err != nil {
			return fmt.Errorf("next hero id: %w", err)
		}

		gen, err := s.generator.Generate(game.GenerationRequest{
			Class:       in.Class,
			Personality: in.Personality,
			Enhanced:    in.Enhanced,
			HeroID:      id,
		}, s.entropy.NextTick())
		if err != nil {
			return err
		}

		hero = &domain.Hero{
			ID:          id,
			OwnerID:     inv.Caller,
			Name:        in.Name,
			Class:       gen.Class,
			Level:       1,
			Stats:       gen.Stats,
			Rarity:      domain.RarityCommon,
			CreatedAt:   inv.Now,
			Abilities:   datatypes.JSONSlice[uint32]{},
			Traits:      gen.Traits,
			AIGenerated: in.Enhanced,
		}
		if err := repos.Hero.Create(ctx, hero); err != nil {
			return fmt.Errorf("create hero: %w", err)
		}
		if err := repos.Ownership.Add(ctx, inv.Caller, id); err != nil {
			return fmt.Errorf("register ownership: %w", err)
		}

		revenueNote, err := s.revenue.collect(ctx, repos, category, inv.Paid, inv.Now)
		if err != nil {
			return err
		}

		notes = append(notes,
			domain.NewNotification(domain.NotificationHeroCreated, inv.Now, map[string]interface{}{
				"class":       hero.Class,
				"name":        hero.Name,
				"aiGenerated": hero.AIGenerated,
				"stats":       hero.Stats,
			}).WithHeroes(id).WithAccounts(inv.Caller),
			revenueNote,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, notes)
	return hero, nil
}

// LevelUp spends experience on as many levels as it covers
func (s *HeroService) LevelUp(ctx context.Context, inv host.Invocation, heroID uint64) (*domain.Hero, uint32, error) {
	var (
		hero   *domain.Hero
		gained uint32
		note   domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		var err error
		hero, err = loadOwned(ctx, repos, heroID, inv.Caller)
		if err != nil {
			return err
		}

		oldLevel := hero.Level
		gained, err = game.LevelUp(hero)
		if err != nil {
			return err
		}
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		note = domain.NewNotification(domain.NotificationHeroLeveled, inv.Now, map[string]interface{}{
			"oldLevel":   oldLevel,
			"newLevel":   hero.Level,
			"experience": hero.Experience,
			"stats":      hero.Stats,
		}).WithHeroes(heroID).WithAccounts(hero.OwnerID)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	publish(ctx, s.notifier, []domain.Notification{note})
	return hero, gained, nil
}

// RecordBattleResult is called by the owner or an authorized battle service
func (s *HeroService) RecordBattleResult(ctx context.Context, inv host.Invocation, heroID uint64, won bool, experience uint64) (*domain.Hero, error) {
	var (
		hero *domain.Hero
		note domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		var err error
		hero, err = repos.Hero.GetForUpdate(ctx, heroID)
		if err != nil {
			return err
		}
		if hero.OwnerID != inv.Caller {
			if err := s.auth.With(repos.AuthorizedCaller).RequireAuthorized(ctx, inv.Caller); err != nil {
				return err
			}
		}

		game.ApplyBattleResult(hero, won, experience)
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		note = domain.NewNotification(domain.NotificationBattleRecorded, inv.Now, map[string]interface{}{
			"won":           won,
			"experience":    experience,
			"battlesFought": hero.BattlesFought,
			"battlesWon":    hero.BattlesWon,
		}).WithHeroes(heroID).WithAccounts(hero.OwnerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, []domain.Notification{note})
	return hero, nil
}

// Transfer moves a hero from the caller to another account
func (s *HeroService) Transfer(ctx context.Context, inv host.Invocation, heroID uint64, to uuid.UUID) (*domain.Hero, error) {
	var (
		hero *domain.Hero
		note domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		if to == uuid.Nil {
			return domain.ErrInvalidRecipient
		}
		if to == inv.Caller {
			return domain.ErrSelfTransfer
		}
		var err error
		hero, err = loadOwned(ctx, repos, heroID, inv.Caller)
		if err != nil {
			return err
		}

		if err := repos.Ownership.Move(ctx, heroID, inv.Caller, to); err != nil {
			return err
		}
		hero.OwnerID = to
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		note = domain.NewNotification(domain.NotificationHeroTransferred, inv.Now, map[string]interface{}{
			"from": inv.Caller,
			"to":   to,
		}).WithHeroes(heroID).WithAccounts(inv.Caller, to)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, []domain.Notification{note})
	return hero, nil
}

// Evolve applies a paid evolution and books its fee
func (s *HeroService) Evolve(ctx context.Context, inv host.Invocation, heroID uint64, t domain.EvolutionType) (*domain.Hero, game.EvolutionResult, error) {
	if !t.IsValid() {
		return nil, game.EvolutionResult{}, domain.ErrInvalidEvolutionType
	}

	var (
		hero   *domain.Hero
		result game.EvolutionResult
		notes  []domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		var err error
		hero, err = loadOwned(ctx, repos, heroID, inv.Caller)
		if err != nil {
			return err
		}

		result, err = game.Evolve(hero, t, inv.Paid, inv.Now, s.entropy.NextTick())
		if err != nil {
			return err
		}
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		revenueNote, err := s.revenue.collect(ctx, repos, result.Rule.Category, inv.Paid, inv.Now)
		if err != nil {
			return err
		}

		data := map[string]interface{}{
			"evolutionType": t,
			"oldRarity":     result.OldRarity,
			"newRarity":     result.NewRarity,
			"oldLevel":      result.OldLevel,
			"newLevel":      result.NewLevel,
			"stats":         hero.Stats,
		}
		if result.GrantedAbility != nil {
			data["grantedAbility"] = *result.GrantedAbility
		}
		notes = append(notes,
			domain.NewNotification(domain.NotificationHeroEvolved, inv.Now, data).WithHeroes(heroID).WithAccounts(inv.Caller),
			revenueNote,
		)
		return nil
	})
	if err != nil {
		return nil, game.EvolutionResult{}, err
	}

	publish(ctx, s.notifier, notes)
	return hero, result, nil
}

func (s *HeroService) UnlockAbility(ctx context.Context, inv host.Invocation, heroID uint64, ability uint32) (*domain.Hero, error) {
	var (
		hero  *domain.Hero
		notes []domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		var err error
		hero, err = loadOwned(ctx, repos, heroID, inv.Caller)
		if err != nil {
			return err
		}

		if err := game.UnlockAbility(hero, ability, inv.Paid); err != nil {
			return err
		}
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		revenueNote, err := s.revenue.collect(ctx, repos, domain.CategoryAbilityUnlock, inv.Paid, inv.Now)
		if err != nil {
			return err
		}
		notes = append(notes,
			domain.NewNotification(domain.NotificationAbilityUnlocked, inv.Now, map[string]interface{}{
				"ability":      ability,
				"abilityCount": len(hero.Abilities),
			}).WithHeroes(heroID).WithAccounts(inv.Caller),
			revenueNote,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, notes)
	return hero, nil
}

// Ascend turns a maxed legendary hero mythical and restarts it at level 1
func (s *HeroService) Ascend(ctx context.Context, inv host.Invocation, heroID uint64) (*domain.Hero, error) {
	var (
		hero  *domain.Hero
		notes []domain.Notification
	)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		var err error
		hero, err = loadOwned(ctx, repos, heroID, inv.Caller)
		if err != nil {
			return err
		}

		oldLevel, oldRarity := hero.Level, hero.Rarity
		if err := game.Ascend(hero, inv.Paid, inv.Now); err != nil {
			return err
		}
		if err := repos.Hero.Update(ctx, hero); err != nil {
			return fmt.Errorf("update hero: %w", err)
		}

		revenueNote, err := s.revenue.collect(ctx, repos, domain.CategoryHeroAscension, inv.Paid, inv.Now)
		if err != nil {
			return err
		}
		notes = append(notes,
			domain.NewNotification(domain.NotificationHeroAscended, inv.Now, map[string]interface{}{
				"oldLevel":  oldLevel,
				"oldRarity": oldRarity,
				"newRarity": hero.Rarity,
				"stats":     hero.Stats,
			}).WithHeroes(heroID).WithAccounts(inv.Caller),
			revenueNote,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.notifier, notes)
	return hero, nil
}
