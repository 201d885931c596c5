package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
)

type AnalyticsService struct {
	store    repository.Store
	auth     *Authorizer
	notifier notify.Notifier
}

func NewAnalyticsService(store repository.Store, auth *Authorizer, notifier notify.Notifier) *AnalyticsService {
	return &AnalyticsService{store: store, auth: auth, notifier: notifier}
}

// BattleOutcome is a finished battle reported by an authorized battle service
type BattleOutcome struct {
	Hero1    uint64
	Hero2    uint64
	Winner   uint64
	Duration uint64
	Damage   uint64
}

// RecordPlayerAction counts an action against the caller, the day and
// optionally the hero that performed it.
func (s *AnalyticsService) RecordPlayerAction(ctx context.Context, inv host.Invocation, action string, heroID, value uint64) error {
	if err := requireCaller(inv.Caller); err != nil {
		return err
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	day := domain.DayOf(inv.Now)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		a := repos.Analytics

		player, err := a.GetPlayerMetricsForUpdate(ctx, inv.Caller)
		if err != nil {
			return err
		}
		player.ActivityCount++
		player.LastActivityAt = inv.Now
		if err := a.SavePlayerMetrics(ctx, player); err != nil {
			return fmt.Errorf("save player metrics: %w", err)
		}

		if err := a.IncrementAction(ctx, action); err != nil {
			return err
		}
		if err := a.AddDailyActiveUser(ctx, day, inv.Caller); err != nil {
			return err
		}
		if err := a.IncrementDailyAction(ctx, day, action); err != nil {
			return err
		}

		if heroID > 0 {
			m, err := a.GetHeroMetricsForUpdate(ctx, heroID)
			if err != nil {
				return err
			}
			m.UsageCount++
			m.LastUsedAt = inv.Now
			if err := a.SaveHeroMetrics(ctx, m); err != nil {
				return fmt.Errorf("save hero metrics: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	n := domain.NewNotification(domain.NotificationPlayerActionRecorded, inv.Now, map[string]interface{}{
		"action": action,
		"value":  value,
	}).WithAccounts(inv.Caller)
	if heroID > 0 {
		n = n.WithHeroes(heroID)
	}
	publish(ctx, s.notifier, []domain.Notification{n})
	return nil
}

// RecordBattleOutcome folds a battle into the global and per-hero counters
func (s *AnalyticsService) RecordBattleOutcome(ctx context.Context, inv host.Invocation, outcome BattleOutcome) error {
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		if err := s.auth.With(repos.AuthorizedCaller).RequireAuthorized(ctx, inv.Caller); err != nil {
			return err
		}
		a := repos.Analytics

		global, err := a.GetGlobalForUpdate(ctx)
		if err != nil {
			return err
		}
		global.AddBattleDuration(outcome.Duration)
		global.TotalBattleDamage += outcome.Damage
		if err := a.SaveGlobal(ctx, global); err != nil {
			return fmt.Errorf("save global metrics: %w", err)
		}

		credited := false
		for _, id := range []uint64{min(outcome.Hero1, outcome.Hero2), max(outcome.Hero1, outcome.Hero2)} {
			m, err := a.GetHeroMetricsForUpdate(ctx, id)
			if err != nil {
				return err
			}
			m.BattlesFought++
			if id == outcome.Winner && !credited {
				m.BattlesWon++
				credited = true
			}
			m.RecomputeAverages()
			if err := a.SaveHeroMetrics(ctx, m); err != nil {
				return fmt.Errorf("save hero metrics: %w", err)
			}
		}

		return a.IncrementDailyBattles(ctx, domain.DayOf(inv.Now))
	})
	if err != nil {
		return err
	}

	publish(ctx, s.notifier, []domain.Notification{
		domain.NewNotification(domain.NotificationBattleOutcomeRecorded, inv.Now, map[string]interface{}{
			"winner":   outcome.Winner,
			"duration": outcome.Duration,
			"damage":   outcome.Damage,
		}).WithHeroes(outcome.Hero1, outcome.Hero2),
	})
	return nil
}

// RecordEconomicTransaction books a transaction against the caller
func (s *AnalyticsService) RecordEconomicTransaction(ctx context.Context, inv host.Invocation, txType string, amount domain.Amount, currency string) error {
	if err := requireCaller(inv.Caller); err != nil {
		return err
	}
	txType = strings.TrimSpace(txType)
	if txType == "" {
		return domain.ErrInvalidAction
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return domain.ErrInvalidCurrency
	}

	day := domain.DayOf(inv.Now)
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		a := repos.Analytics

		global, err := a.GetGlobalForUpdate(ctx)
		if err != nil {
			return err
		}
		global.TotalTransactions++
		if err := a.SaveGlobal(ctx, global); err != nil {
			return fmt.Errorf("save global metrics: %w", err)
		}

		if err := a.AddCurrencyVolume(ctx, currency, amount); err != nil {
			return err
		}
		if err := a.AddTransaction(ctx, txType, currency, amount); err != nil {
			return err
		}
		if err := a.AddDailyVolume(ctx, day, currency, amount); err != nil {
			return err
		}

		player, err := a.GetPlayerMetricsForUpdate(ctx, inv.Caller)
		if err != nil {
			return err
		}
		player.TransactionCount++
		if err := a.SavePlayerMetrics(ctx, player); err != nil {
			return fmt.Errorf("save player metrics: %w", err)
		}
		return a.AddPlayerSpend(ctx, inv.Caller, currency, amount)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.notifier, []domain.Notification{
		domain.NewNotification(domain.NotificationTransactionRecorded, inv.Now, map[string]interface{}{
			"transactionType": txType,
			"amount":          amount,
			"currency":        currency,
		}).WithAccounts(inv.Caller),
	})
	return nil
}

// UpdateHeroPerformance adds battle telemetry for one hero. Averages are
// recomputed from the sums on every call.
func (s *AnalyticsService) UpdateHeroPerformance(ctx context.Context, inv host.Invocation, heroID, experience, dealt, taken uint64) error {
	return s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		if err := ensureRunning(ctx, repos); err != nil {
			return err
		}
		if err := s.auth.With(repos.AuthorizedCaller).RequireAuthorized(ctx, inv.Caller); err != nil {
			return err
		}
		a := repos.Analytics

		global, err := a.GetGlobalForUpdate(ctx)
		if err != nil {
			return err
		}
		global.TotalExperience += experience
		global.TotalDamage += dealt + taken
		if err := a.SaveGlobal(ctx, global); err != nil {
			return fmt.Errorf("save global metrics: %w", err)
		}

		m, err := a.GetHeroMetricsForUpdate(ctx, heroID)
		if err != nil {
			return err
		}
		m.TotalExperienceGained += experience
		m.TotalDamageDealt += dealt
		m.TotalDamageTaken += taken
		m.RecomputeAverages()
		return a.SaveHeroMetrics(ctx, m)
	})
}

// Reset zeroes the game-wide counters. Per-hero, per-player and daily
// aggregates are kept.
func (s *AnalyticsService) Reset(ctx context.Context, inv host.Invocation, confirm bool) error {
	if err := s.auth.RequireAdmin(inv.Caller); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationRequired
	}

	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		global, err := repos.Analytics.GetGlobalForUpdate(ctx)
		if err != nil {
			return err
		}
		global.Reset()
		return repos.Analytics.SaveGlobal(ctx, global)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.notifier, []domain.Notification{
		domain.NewNotification(domain.NotificationAnalyticsReset, inv.Now, nil).WithAccounts(inv.Caller),
	})
	return nil
}
