package memory

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

type revenueRepository struct {
	acc accessor
}

func (r *revenueRepository) Add(ctx context.Context, category domain.RevenueCategory, amount domain.Amount) error {
	return r.acc.with(func(st *state) error {
		st.revenue[category] += amount
		st.revenueTotal += amount
		return nil
	})
}

func (r *revenueRepository) Total(ctx context.Context) (domain.Amount, error) {
	var total domain.Amount
	err := r.acc.with(func(st *state) error {
		total = st.revenueTotal
		return nil
	})
	return total, err
}

func (r *revenueRepository) ByCategory(ctx context.Context, category domain.RevenueCategory) (domain.Amount, error) {
	var total domain.Amount
	err := r.acc.with(func(st *state) error {
		total = st.revenue[category]
		return nil
	})
	return total, err
}

func (r *revenueRepository) All(ctx context.Context) (map[domain.RevenueCategory]domain.Amount, error) {
	var out map[domain.RevenueCategory]domain.Amount
	err := r.acc.with(func(st *state) error {
		out = maps.Clone(st.revenue)
		return nil
	})
	return out, err
}

type settingsRepository struct {
	acc accessor
}

func (r *settingsRepository) IsPaused(ctx context.Context) (bool, error) {
	var paused bool
	err := r.acc.with(func(st *state) error {
		paused = st.paused
		return nil
	})
	return paused, err
}

func (r *settingsRepository) SetPaused(ctx context.Context, paused bool) error {
	return r.acc.with(func(st *state) error {
		st.paused = paused
		return nil
	})
}

type authorizedCallerRepository struct {
	acc accessor
}

func (r *authorizedCallerRepository) Add(ctx context.Context, account uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		if _, ok := st.authorized[account]; !ok {
			st.authorized[account] = time.Now()
		}
		return nil
	})
}

func (r *authorizedCallerRepository) Remove(ctx context.Context, account uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		delete(st.authorized, account)
		return nil
	})
}

func (r *authorizedCallerRepository) Exists(ctx context.Context, account uuid.UUID) (bool, error) {
	var ok bool
	err := r.acc.with(func(st *state) error {
		_, ok = st.authorized[account]
		return nil
	})
	return ok, err
}

func (r *authorizedCallerRepository) List(ctx context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := r.acc.with(func(st *state) error {
		out = slices.SortedFunc(maps.Keys(st.authorized), func(a, b uuid.UUID) int {
			return st.authorized[a].Compare(st.authorized[b])
		})
		return nil
	})
	return out, err
}
