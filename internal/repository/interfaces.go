package repository

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.AccountSession) error
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.AccountSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}

// HeroRepository returns domain.ErrHeroNotFound for unknown ids
type HeroRepository interface {
	Create(ctx context.Context, hero *domain.Hero) error
	GetByID(ctx context.Context, id uint64) (*domain.Hero, error)
	// GetForUpdate locks the hero row for the rest of the unit of work
	GetForUpdate(ctx context.Context, id uint64) (*domain.Hero, error)
	Update(ctx context.Context, hero *domain.Hero) error
	GetByIDs(ctx context.Context, ids []uint64) ([]*domain.Hero, error)
	ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]uint64, error)
}

// OwnershipRepository keeps each owner's hero set and its cached count in step
type OwnershipRepository interface {
	Add(ctx context.Context, owner uuid.UUID, heroID uint64) error
	Move(ctx context.Context, heroID uint64, from, to uuid.UUID) error
	HeroIDs(ctx context.Context, owner uuid.UUID) ([]uint64, error)
	Count(ctx context.Context, owner uuid.UUID) (uint32, error)
	// CountForUpdate reads the count and holds it until the unit of work ends
	CountForUpdate(ctx context.Context, owner uuid.UUID) (uint32, error)
}

type SequenceRepository interface {
	Next(ctx context.Context, name string) (uint64, error)
	Current(ctx context.Context, name string) (uint64, error)
}

type RevenueRepository interface {
	Add(ctx context.Context, category domain.RevenueCategory, amount domain.Amount) error
	Total(ctx context.Context) (domain.Amount, error)
	ByCategory(ctx context.Context, category domain.RevenueCategory) (domain.Amount, error)
	All(ctx context.Context) (map[domain.RevenueCategory]domain.Amount, error)
}

// AnalyticsRepository stores telemetry aggregates. Getters return zero-valued
// records for keys that were never written. The ForUpdate getters also hold
// the record until the unit of work ends; take them in the order global,
// player, heroes by ascending id.
type AnalyticsRepository interface {
	GetHeroMetrics(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error)
	GetHeroMetricsForUpdate(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error)
	SaveHeroMetrics(ctx context.Context, m *domain.HeroMetrics) error
	ListHeroMetrics(ctx context.Context) ([]domain.HeroMetrics, error)

	GetPlayerMetrics(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error)
	GetPlayerMetricsForUpdate(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error)
	SavePlayerMetrics(ctx context.Context, m *domain.PlayerMetrics) error
	AddPlayerSpend(ctx context.Context, account uuid.UUID, currency string, amount domain.Amount) error
	GetPlayerSpend(ctx context.Context, account uuid.UUID, currency string) (domain.Amount, error)

	AddDailyActiveUser(ctx context.Context, day int64, account uuid.UUID) error
	CountDailyActiveUsers(ctx context.Context, day int64) (int, error)
	IncrementDailyAction(ctx context.Context, day int64, action string) error
	GetDailyActionCount(ctx context.Context, day int64, action string) (uint64, error)
	IncrementDailyBattles(ctx context.Context, day int64) error
	GetDailyBattles(ctx context.Context, day int64) (uint64, error)
	AddDailyVolume(ctx context.Context, day int64, currency string, amount domain.Amount) error
	GetDailyVolume(ctx context.Context, day int64, currency string) (domain.Amount, error)

	IncrementAction(ctx context.Context, action string) error
	GetActionCount(ctx context.Context, action string) (uint64, error)
	AddCurrencyVolume(ctx context.Context, currency string, amount domain.Amount) error
	GetCurrencyVolume(ctx context.Context, currency string) (domain.Amount, error)
	AddTransaction(ctx context.Context, txType, currency string, amount domain.Amount) error
	GetTransactionStats(ctx context.Context, txType, currency string) (count uint64, volume domain.Amount, err error)

	GetGlobal(ctx context.Context) (*domain.GlobalMetrics, error)
	GetGlobalForUpdate(ctx context.Context) (*domain.GlobalMetrics, error)
	SaveGlobal(ctx context.Context, g *domain.GlobalMetrics) error
}

type SettingsRepository interface {
	IsPaused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
}

type AuthorizedCallerRepository interface {
	Add(ctx context.Context, account uuid.UUID) error
	Remove(ctx context.Context, account uuid.UUID) error
	Exists(ctx context.Context, account uuid.UUID) (bool, error)
	List(ctx context.Context) ([]uuid.UUID, error)
}

type Repositories struct {
	Account          AccountRepository
	Session          SessionRepository
	Hero             HeroRepository
	Ownership        OwnershipRepository
	Sequence         SequenceRepository
	Revenue          RevenueRepository
	Analytics        AnalyticsRepository
	Settings         SettingsRepository
	AuthorizedCaller AuthorizedCallerRepository
}

// Store hands out repositories and runs units of work. Everything fn does
// through the repositories it receives commits together or not at all.
type Store interface {
	Repositories() *Repositories
	Atomic(ctx context.Context, fn func(repos *Repositories) error) error
}
