package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ensureRunning(ctx context.Context, repos *repository.Repositories) error {
	paused, err := repos.Settings.IsPaused(ctx)
	if err != nil {
		return fmt.Errorf("read pause flag: %w", err)
	}
	if paused {
		return domain.ErrPaused
	}
	return nil
}

func requireCaller(caller uuid.UUID) error {
	if caller == uuid.Nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// loadOwned locks the hero and checks the caller owns it
func loadOwned(ctx context.Context, repos *repository.Repositories, heroID uint64, caller uuid.UUID) (*domain.Hero, error) {
	hero, err := repos.Hero.GetForUpdate(ctx, heroID)
	if err != nil {
		return nil, err
	}
	if hero.OwnerID != caller {
		return nil, domain.ErrNotOwner
	}
	return hero, nil
}

// deliveryTimeout bounds how long publishing may take once the caller is gone
const deliveryTimeout = 5 * time.Second

// publish delivers notifications once the unit of work has committed.
// Delivery is detached from the caller's cancellation.
// Failures are logged, never returned.
func publish(ctx context.Context, notifier notify.Notifier, notes []domain.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()

	for _, n := range notes {
		if err := notifier.Notify(ctx, n); err != nil {
			logger.Logger().Warn("notification delivery failed",
				zap.String("type", string(n.Type)),
				zap.Stringer("id", n.ID),
				zap.Error(err),
			)
		}
	}
}
