package postgres

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.AccountSession{},
		&domain.Hero{},
		&domain.HeroOwnership{},
		&domain.OwnerHeroCount{},
		&domain.Sequence{},
		&domain.RevenueCategoryTotal{},
		&domain.RevenueTotal{},
		&domain.HeroMetrics{},
		&domain.PlayerMetrics{},
		&domain.PlayerSpend{},
		&domain.DailyActiveUser{},
		&domain.DailyActionCount{},
		&domain.DailyBattleCount{},
		&domain.DailyTransactionVolume{},
		&domain.ActionCount{},
		&domain.CurrencyVolume{},
		&domain.TransactionTypeStat{},
		&domain.GlobalMetrics{},
		&domain.Setting{},
		&domain.AuthorizedCaller{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Account:          NewAccountRepository(db),
		Session:          NewSessionRepository(db),
		Hero:             NewHeroRepository(db),
		Ownership:        NewOwnershipRepository(db),
		Sequence:         NewSequenceRepository(db),
		Revenue:          NewRevenueRepository(db),
		Analytics:        NewAnalyticsRepository(db),
		Settings:         NewSettingsRepository(db),
		AuthorizedCaller: NewAuthorizedCallerRepository(db),
	}
}

// Store runs units of work as database transactions
type Store struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, repos: NewRepositories(db)}
}

func (s *Store) Repositories() *repository.Repositories {
	return s.repos
}

func (s *Store) Atomic(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
