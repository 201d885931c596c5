package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

// increment inserts row or adds its value to the existing counter column
func (r *analyticsRepository) increment(ctx context.Context, table, column string, keys []string, row interface{}) error {
	cols := make([]clause.Column, len(keys))
	for i, k := range keys {
		cols[i] = clause.Column{Name: k}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.Assignments(map[string]interface{}{column: gorm.Expr(table + "." + column + " + EXCLUDED." + column)}),
	}).Create(row).Error
}

// firstOrZero loads dest, leaving it untouched when no row matches
func (r *analyticsRepository) firstOrZero(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := r.db.WithContext(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// lockRow makes sure the keyed row exists, then loads it into row and holds
// it FOR UPDATE until the transaction ends. row must carry its primary key.
func lockRow(tx *gorm.DB, row interface{}) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(row).Error
}

func (r *analyticsRepository) GetHeroMetricsForUpdate(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error) {
	m := domain.HeroMetrics{HeroID: heroID}
	if err := lockRow(r.db.WithContext(ctx), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *analyticsRepository) GetHeroMetrics(ctx context.Context, heroID uint64) (*domain.HeroMetrics, error) {
	m := domain.HeroMetrics{HeroID: heroID}
	if err := r.firstOrZero(ctx, &m, "hero_id = ?", heroID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *analyticsRepository) SaveHeroMetrics(ctx context.Context, m *domain.HeroMetrics) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hero_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *analyticsRepository) ListHeroMetrics(ctx context.Context) ([]domain.HeroMetrics, error) {
	var rows []domain.HeroMetrics
	if err := r.db.WithContext(ctx).Order("hero_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) GetPlayerMetrics(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error) {
	m := domain.PlayerMetrics{Account: account}
	if err := r.firstOrZero(ctx, &m, "account = ?", account); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *analyticsRepository) GetPlayerMetricsForUpdate(ctx context.Context, account uuid.UUID) (*domain.PlayerMetrics, error) {
	m := domain.PlayerMetrics{Account: account}
	if err := lockRow(r.db.WithContext(ctx), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *analyticsRepository) SavePlayerMetrics(ctx context.Context, m *domain.PlayerMetrics) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *analyticsRepository) AddPlayerSpend(ctx context.Context, account uuid.UUID, currency string, amount domain.Amount) error {
	return r.increment(ctx, "player_spend", "amount", []string{"account", "currency"},
		&domain.PlayerSpend{Account: account, Currency: currency, Amount: amount})
}

func (r *analyticsRepository) GetPlayerSpend(ctx context.Context, account uuid.UUID, currency string) (domain.Amount, error) {
	var row domain.PlayerSpend
	if err := r.firstOrZero(ctx, &row, "account = ? AND currency = ?", account, currency); err != nil {
		return 0, err
	}
	return row.Amount, nil
}

func (r *analyticsRepository) AddDailyActiveUser(ctx context.Context, day int64, account uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.DailyActiveUser{Day: day, Account: account}).Error
}

func (r *analyticsRepository) CountDailyActiveUsers(ctx context.Context, day int64) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.DailyActiveUser{}).Where("day = ?", day).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *analyticsRepository) IncrementDailyAction(ctx context.Context, day int64, action string) error {
	return r.increment(ctx, "daily_action_counts", "count", []string{"day", "action"},
		&domain.DailyActionCount{Day: day, Action: action, Count: 1})
}

func (r *analyticsRepository) GetDailyActionCount(ctx context.Context, day int64, action string) (uint64, error) {
	var row domain.DailyActionCount
	if err := r.firstOrZero(ctx, &row, "day = ? AND action = ?", day, action); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *analyticsRepository) IncrementDailyBattles(ctx context.Context, day int64) error {
	return r.increment(ctx, "daily_battle_counts", "count", []string{"day"},
		&domain.DailyBattleCount{Day: day, Count: 1})
}

func (r *analyticsRepository) GetDailyBattles(ctx context.Context, day int64) (uint64, error) {
	var row domain.DailyBattleCount
	if err := r.firstOrZero(ctx, &row, "day = ?", day); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *analyticsRepository) AddDailyVolume(ctx context.Context, day int64, currency string, amount domain.Amount) error {
	return r.increment(ctx, "daily_transaction_volumes", "volume", []string{"day", "currency"},
		&domain.DailyTransactionVolume{Day: day, Currency: currency, Volume: amount})
}

func (r *analyticsRepository) GetDailyVolume(ctx context.Context, day int64, currency string) (domain.Amount, error) {
	var row domain.DailyTransactionVolume
	if err := r.firstOrZero(ctx, &row, "day = ? AND currency = ?", day, currency); err != nil {
		return 0, err
	}
	return row.Volume, nil
}

func (r *analyticsRepository) IncrementAction(ctx context.Context, action string) error {
	return r.increment(ctx, "action_counts", "count", []string{"action"},
		&domain.ActionCount{Action: action, Count: 1})
}

func (r *analyticsRepository) GetActionCount(ctx context.Context, action string) (uint64, error) {
	var row domain.ActionCount
	if err := r.firstOrZero(ctx, &row, "action = ?", action); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *analyticsRepository) AddCurrencyVolume(ctx context.Context, currency string, amount domain.Amount) error {
	return r.increment(ctx, "currency_volumes", "volume", []string{"currency"},
		&domain.CurrencyVolume{Currency: currency, Volume: amount})
}

func (r *analyticsRepository) GetCurrencyVolume(ctx context.Context, currency string) (domain.Amount, error) {
	var row domain.CurrencyVolume
	if err := r.firstOrZero(ctx, &row, "currency = ?", currency); err != nil {
		return 0, err
	}
	return row.Volume, nil
}

func (r *analyticsRepository) AddTransaction(ctx context.Context, txType, currency string, amount domain.Amount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "type"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":  gorm.Expr("transaction_type_stats.count + 1"),
			"volume": gorm.Expr("transaction_type_stats.volume + EXCLUDED.volume"),
		}),
	}).Create(&domain.TransactionTypeStat{Type: txType, Currency: currency, Count: 1, Volume: amount}).Error
}

// GetTransactionStats returns the count of the type across all currencies
// and its volume in the given currency
func (r *analyticsRepository) GetTransactionStats(ctx context.Context, txType, currency string) (uint64, domain.Amount, error) {
	var count uint64
	err := r.db.WithContext(ctx).Model(&domain.TransactionTypeStat{}).
		Where("type = ?", txType).
		Select("COALESCE(SUM(count), 0)::bigint").
		Scan(&count).Error
	if err != nil {
		return 0, 0, err
	}

	var row domain.TransactionTypeStat
	if err := r.firstOrZero(ctx, &row, "type = ? AND currency = ?", txType, currency); err != nil {
		return 0, 0, err
	}
	return count, row.Volume, nil
}

func (r *analyticsRepository) GetGlobal(ctx context.Context) (*domain.GlobalMetrics, error) {
	g := domain.GlobalMetrics{ID: domain.GlobalMetricsRowID}
	if err := r.firstOrZero(ctx, &g, "id = ?", domain.GlobalMetricsRowID); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *analyticsRepository) GetGlobalForUpdate(ctx context.Context) (*domain.GlobalMetrics, error) {
	g := domain.GlobalMetrics{ID: domain.GlobalMetricsRowID}
	if err := lockRow(r.db.WithContext(ctx), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *analyticsRepository) SaveGlobal(ctx context.Context, g *domain.GlobalMetrics) error {
	g.ID = domain.GlobalMetricsRowID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(g).Error
}
