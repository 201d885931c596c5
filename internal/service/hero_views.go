package service

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/game"
	"github.com/google/uuid"
)

func (s *HeroService) Get(ctx context.Context, heroID uint64) (*domain.Hero, error) {
	return s.store.Repositories().Hero.GetByID(ctx, heroID)
}

func (s *HeroService) Stats(ctx context.Context, heroID uint64) (*domain.HeroStatsView, error) {
	hero, err := s.Get(ctx, heroID)
	if err != nil {
		return nil, err
	}
	return &domain.HeroStatsView{
		Stats:      hero.Stats,
		Level:      hero.Level,
		Experience: hero.Experience,
		Rarity:     hero.Rarity,
	}, nil
}

func (s *HeroService) BattleStats(ctx context.Context, heroID uint64) (*domain.BattleStatsView, error) {
	hero, err := s.Get(ctx, heroID)
	if err != nil {
		return nil, err
	}
	return &domain.BattleStatsView{
		BattlesFought: hero.BattlesFought,
		BattlesWon:    hero.BattlesWon,
		WinRate:       hero.WinRate(),
	}, nil
}

func (s *HeroService) History(ctx context.Context, heroID uint64) (*domain.EvolutionHistory, error) {
	hero, err := s.Get(ctx, heroID)
	if err != nil {
		return nil, err
	}
	return &domain.EvolutionHistory{
		LastEvolutionAt: hero.LastEvolutionAt,
		AbilityCount:    len(hero.Abilities),
	}, nil
}

// HeroIDsOf lists the ids in the owner's set, ascending
func (s *HeroService) HeroIDsOf(ctx context.Context, owner uuid.UUID) ([]uint64, error) {
	return s.store.Repositories().Ownership.HeroIDs(ctx, owner)
}

func (s *HeroService) HeroesOf(ctx context.Context, owner uuid.UUID) ([]*domain.Hero, error) {
	repos := s.store.Repositories()
	ids, err := repos.Ownership.HeroIDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Hero{}, nil
	}
	return repos.Hero.GetByIDs(ctx, ids)
}

func (s *HeroService) Count(ctx context.Context, owner uuid.UUID) (uint32, error) {
	return s.store.Repositories().Ownership.Count(ctx, owner)
}

// Total is the number of heroes ever minted
func (s *HeroService) Total(ctx context.Context) (uint64, error) {
	return s.store.Repositories().Sequence.Current(ctx, domain.SequenceHero)
}

func (s *HeroService) IDsByRarity(ctx context.Context, rarity domain.Rarity) ([]uint64, error) {
	if !rarity.IsValid() {
		return nil, domain.ErrInvalidRarity
	}
	return s.store.Repositories().Hero.ListIDsByRarity(ctx, rarity)
}

func (s *HeroService) CanEvolve(ctx context.Context, heroID uint64, t domain.EvolutionType) (bool, error) {
	if !t.IsValid() {
		return false, domain.ErrInvalidEvolutionType
	}
	hero, err := s.Get(ctx, heroID)
	if err != nil {
		return false, err
	}
	return game.CanEvolve(hero, t), nil
}

func (s *HeroService) CanAscend(ctx context.Context, heroID uint64) (bool, error) {
	hero, err := s.Get(ctx, heroID)
	if err != nil {
		return false, err
	}
	return game.CanAscend(hero), nil
}

func (s *HeroService) EvolutionCost(t domain.EvolutionType) (domain.Amount, error) {
	return game.EvolutionCost(t)
}

func (s *HeroService) AbilityCost() domain.Amount {
	return domain.AbilityUnlockFee
}

func (s *HeroService) AscensionCost() domain.Amount {
	return domain.AscensionFee
}

// CreationCost returns the fee for basic or enhanced generation
func (s *HeroService) CreationCost(enhanced bool) domain.Amount {
	fee, _ := CreateHeroInput{Enhanced: enhanced}.fee()
	return fee
}
