package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

type analyticsRepository struct {
	acc accessor
}

func (r *analyticsRepository) GetHeroMetrics(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error) {
	var out domain.HeroMetrics
	err := r.acc.with(func(st *state) error {
		m, ok := st.heroMetrics[heroID]
		if !ok {
			m = domain.HeroMetrics{HeroID: heroID}
		}
		out = m
		return nil
	})
	return &out, err
}

// GetHeroMetricsForUpdate needs no extra locking: units of work already hold
// the store mutex.
func (r *analyticsRepository) GetHeroMetricsForUpdate(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error) {
	return r.GetHeroMetrics(ctx, heroID)
}

func (r *analyticsRepository) SaveHeroMetrics(ctx context.Context, m *domain.HeroMetrics) error {
	return r.acc.with(func(st *state) error {
		st.heroMetrics[m.HeroID] = *m
		return nil
	})
}

func (r *analyticsRepository) ListHeroMetrics(ctx context.Context) ([]domain.HeroMetrics, error) {
	var out []domain.HeroMetrics
	err := r.acc.with(func(st *state) error {
		for _, m := range st.heroMetrics {
			out = append(out, m)
		}
		slices.SortFunc(out, func(a, b domain.HeroMetrics) int {
			return cmp.Compare(a.HeroID, b.HeroID)
		})
		return nil
	})
	return out, err
}

func (r *analyticsRepository) GetPlayerMetrics(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error) {
	var out domain.PlayerMetrics
	err := r.acc.with(func(st *state) error {
		m, ok := st.playerMetrics[account]
		if !ok {
			m = domain.PlayerMetrics{Account: account}
		}
		out = m
		return nil
	})
	return &out, err
}

func (r *analyticsRepository) GetPlayerMetricsForUpdate(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error) {
	return r.GetPlayerMetrics(ctx, account)
}

func (r *analyticsRepository) SavePlayerMetrics(ctx context.Context, m *domain.PlayerMetrics) error {
	return r.acc.with(func(st *state) error {
		st.playerMetrics[m.Account] = *m
		return nil
	})
}

func (r *analyticsRepository) AddPlayerSpend(ctx context.Context, account uuid.UUID, currency string, amount domain.Amount) error {
	return r.acc.with(func(st *state) error {
		st.playerSpend[spendKey{account, currency}] += amount
		return nil
	})
}

func (r *analyticsRepository) GetPlayerSpend(ctx context.Context, account uuid.UUID, currency string) (domain.Amount, error) {
	var v domain.Amount
	err := r.acc.with(func(st *state) error {
		v = st.playerSpend[spendKey{account, currency}]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) AddDailyActiveUser(ctx context.Context, day int64, account uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		set, ok := st.activeUsers[day]
		if !ok {
			set = make(map[uuid.UUID]struct{})
			st.activeUsers[day] = set
		}
		set[account] = struct{}{}
		return nil
	})
}

func (r *analyticsRepository) CountDailyActiveUsers(ctx context.Context, day int64) (int, error) {
	var n int
	err := r.acc.with(func(st *state) error {
		n = len(st.activeUsers[day])
		return nil
	})
	return n, err
}

func (r *analyticsRepository) IncrementDailyAction(ctx context.Context, day int64, action string) error {
	return r.acc.with(func(st *state) error {
		st.dailyActions[dayKey{day, action}]++
		return nil
	})
}

func (r *analyticsRepository) GetDailyActionCount(ctx context.Context, day int64, action string) (uint64, error) {
	var v uint64
	err := r.acc.with(func(st *state) error {
		v = st.dailyActions[dayKey{day, action}]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) IncrementDailyBattles(ctx context.Context, day int64) error {
	return r.acc.with(func(st *state) error {
		st.dailyBattles[day]++
		return nil
	})
}

func (r *analyticsRepository) GetDailyBattles(ctx context.Context, day int64) (uint64, error) {
	var v uint64
	err := r.acc.with(func(st *state) error {
		v = st.dailyBattles[day]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) AddDailyVolume(ctx context.Context, day int64, currency string, amount domain.Amount) error {
	return r.acc.with(func(st *state) error {
		st.dailyVolume[dayKey{day, currency}] += amount
		return nil
	})
}

func (r *analyticsRepository) GetDailyVolume(ctx context.Context, day int64, currency string) (domain.Amount, error) {
	var v domain.Amount
	err := r.acc.with(func(st *state) error {
		v = st.dailyVolume[dayKey{day, currency}]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) IncrementAction(ctx context.Context, action string) error {
	return r.acc.with(func(st *state) error {
		st.actions[action]++
		return nil
	})
}

func (r *analyticsRepository) GetActionCount(ctx context.Context, action string) (uint64, error) {
	var v uint64
	err := r.acc.with(func(st *state) error {
		v = st.actions[action]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) AddCurrencyVolume(ctx context.Context, currency string, amount domain.Amount) error {
	return r.acc.with(func(st *state) error {
		st.currencyVolume[currency] += amount
		return nil
	})
}

func (r *analyticsRepository) GetCurrencyVolume(ctx context.Context, currency string) (domain.Amount, error) {
	var v domain.Amount
	err := r.acc.with(func(st *state) error {
		v = st.currencyVolume[currency]
		return nil
	})
	return v, err
}

func (r *analyticsRepository) AddTransaction(ctx context.Context, txType, currency string, amount domain.Amount) error {
	return r.acc.with(func(st *state) error {
		k := txKey{txType, currency}
		s := st.transactions[k]
		s.Type, s.Currency = txType, currency
		s.Count++
		s.Volume += amount
		st.transactions[k] = s
		return nil
	})
}

func (r *analyticsRepository) GetTransactionStats(ctx context.Context, txType, currency string) (uint64, domain.Amount, error) {
	var count uint64
	var volume domain.Amount
	err := r.acc.with(func(st *state) error {
		for k, s := range st.transactions {
			if k.txType == txType {
				count += s.Count
			}
		}
		volume = st.transactions[txKey{txType, currency}].Volume
		return nil
	})
	return count, volume, err
}

func (r *analyticsRepository) GetGlobal(ctx context.Context) (*domain.GlobalMetrics, error) {
	var out domain.GlobalMetrics
	err := r.acc.with(func(st *state) error {
		out = st.global
		return nil
	})
	return &out, err
}

func (r *analyticsRepository) GetGlobalForUpdate(ctx context.Context) (*domain.GlobalMetrics, error) {
	return r.GetGlobal(ctx)
}

func (r *analyticsRepository) SaveGlobal(ctx context.Context, g *domain.GlobalMetrics) error {
	return r.acc.with(func(st *state) error {
		st.global = *g
		st.global.ID = domain.GlobalMetricsRowID
		return nil
	})
}
