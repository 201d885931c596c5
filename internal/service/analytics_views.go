package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/game"
	"github.com/google/uuid"
)

// PlayerStats reports activity and spend in the given currency, or the
// default currency when empty.
func (s *AnalyticsService) PlayerStats(ctx context.Context, account uuid.UUID, currency string) (*domain.PlayerStats, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	a := s.store.Repositories().Analytics

	m, err := a.GetPlayerMetrics(ctx, account)
	if err != nil {
		return nil, err
	}
	spent, err := a.GetPlayerSpend(ctx, account, currency)
	if err != nil {
		return nil, err
	}
	return &domain.PlayerStats{
		ActivityCount:    m.ActivityCount,
		LastActivityAt:   m.LastActivityAt,
		TransactionCount: m.TransactionCount,
		TotalSpent:       spent,
	}, nil
}

func (s *AnalyticsService) HeroPerformance(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error) {
	return s.store.Repositories().Analytics.GetHeroMetrics(ctx, heroID)
}

func (s *AnalyticsService) GameStats(ctx context.Context) (*domain.GlobalMetrics, error) {
	return s.store.Repositories().Analytics.GetGlobal(ctx)
}

// DailyStats reports the bucket containing at
func (s *AnalyticsService) DailyStats(ctx context.Context, at time.Time, currency string) (*domain.DailyStats, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	a := s.store.Repositories().Analytics
	day := domain.DayOf(at)

	users, err := a.CountDailyActiveUsers(ctx, day)
	if err != nil {
		return nil, err
	}
	battles, err := a.GetDailyBattles(ctx, day)
	if err != nil {
		return nil, err
	}
	volume, err := a.GetDailyVolume(ctx, day, currency)
	if err != nil {
		return nil, err
	}
	return &domain.DailyStats{
		Day:               day,
		ActiveUsers:       users,
		Battles:           battles,
		TransactionVolume: volume,
	}, nil
}

func (s *AnalyticsService) ActionStats(ctx context.Context, action string) (uint64, error) {
	return s.store.Repositories().Analytics.GetActionCount(ctx, action)
}

// TransactionStats returns the type's count across currencies and its
// volume in the given currency
func (s *AnalyticsService) TransactionStats(ctx context.Context, txType, currency string) (uint64, domain.Amount, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return s.store.Repositories().Analytics.GetTransactionStats(ctx, txType, currency)
}

func (s *AnalyticsService) CurrencyVolume(ctx context.Context, currency string) (domain.Amount, error) {
	return s.store.Repositories().Analytics.GetCurrencyVolume(ctx, currency)
}

func (s *AnalyticsService) HeroWinRate(ctx context.Context, heroID uint64) (uint64, error) {
	m, err := s.HeroPerformance(ctx, heroID)
	if err != nil {
		return 0, err
	}
	return m.WinRate(), nil
}

func (s *AnalyticsService) PlayerTier(ctx context.Context, account uuid.UUID) (domain.PlayerTier, error) {
	m, err := s.store.Repositories().Analytics.GetPlayerMetrics(ctx, account)
	if err != nil {
		return 0, err
	}
	return game.TierFor(m.ActivityCount, m.TransactionCount), nil
}

func (s *AnalyticsService) TopPerforming(ctx context.Context, limit int) ([]game.HeroScore, error) {
	metrics, err := s.store.Repositories().Analytics.ListHeroMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return game.TopPerforming(metrics, limit), nil
}

// Export renders a one-line summary of the requested data set
func (s *AnalyticsService) Export(ctx context.Context, kind domain.ExportKind) (string, error) {
	global, err := s.GameStats(ctx)
	if err != nil {
		return "", err
	}
	switch kind {
	case domain.ExportBattles:
		return fmt.Sprintf("Total battles: %d", global.TotalBattles), nil
	case domain.ExportEconomy:
		return fmt.Sprintf("Total transactions: %d", global.TotalTransactions), nil
	default:
		return "", domain.ErrInvalidExportKind
	}
}
