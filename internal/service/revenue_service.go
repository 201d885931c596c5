package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
)

type RevenueService struct {
	store    repository.Store
	notifier notify.Notifier
}

func NewRevenueService(store repository.Store, notifier notify.Notifier) *RevenueService {
	return &RevenueService{store: store, notifier: notifier}
}

// Record adds a collected fee to its category and the grand total
func (s *RevenueService) Record(ctx context.Context, category domain.RevenueCategory, amount domain.Amount, at time.Time) error {
	if !category.IsValid() {
		return domain.ErrInvalidRevenueCategory
	}

	var note domain.Notification
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		var err error
		note, err = s.collect(ctx, repos, category, amount, at)
		return err
	})
	if err != nil {
		return err
	}

	publish(ctx, s.notifier, []domain.Notification{note})
	return nil
}

// collect records revenue inside a caller's unit of work
func (s *RevenueService) collect(ctx context.Context, repos *repository.Repositories, category domain.RevenueCategory, amount domain.Amount, at time.Time) (domain.Notification, error) {
	if err := repos.Revenue.Add(ctx, category, amount); err != nil {
		return domain.Notification{}, fmt.Errorf("record revenue: %w", err)
	}
	total, err := repos.Revenue.Total(ctx)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("read revenue total: %w", err)
	}
	return domain.NewNotification(domain.NotificationRevenueCollected, at, map[string]interface{}{
		"category": category,
		"amount":   amount,
		"total":    total,
	}), nil
}

func (s *RevenueService) Total(ctx context.Context) (domain.Amount, error) {
	return s.store.Repositories().Revenue.Total(ctx)
}

func (s *RevenueService) ByCategory(ctx context.Context, category domain.RevenueCategory) (domain.Amount, error) {
	if !category.IsValid() {
		return 0, domain.ErrInvalidRevenueCategory
	}
	return s.store.Repositories().Revenue.ByCategory(ctx, category)
}

// Summary returns the grand total and every category, zero-filled
func (s *RevenueService) Summary(ctx context.Context) (*domain.RevenueSummary, error) {
	repos := s.store.Repositories()
	total, err := repos.Revenue.Total(ctx)
	if err != nil {
		return nil, err
	}
	all, err := repos.Revenue.All(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.RevenueSummary{
		Total:      total,
		Categories: make(map[domain.RevenueCategory]domain.Amount, len(domain.AllRevenueCategories)),
	}
	for _, c := range domain.AllRevenueCategories {
		summary.Categories[c] = all[c]
	}
	return summary, nil
}
