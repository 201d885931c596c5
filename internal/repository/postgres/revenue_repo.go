package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-forge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type revenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *revenueRepository {
	return &revenueRepository{db: db}
}

// Add credits the category and the grand total together
func (r *revenueRepository) Add(ctx context.Context, category domain.RevenueCategory, amount domain.Amount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"total": gorm.Expr("revenue_categories.total + ?", amount)}),
		}).Create(&domain.RevenueCategoryTotal{Category: category, Total: amount}).Error
		if err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"total": gorm.Expr("revenue_totals.total + ?", amount)}),
		}).Create(&domain.RevenueTotal{ID: domain.RevenueTotalRowID, Total: amount}).Error
	})
}

func (r *revenueRepository) Total(ctx context.Context) (domain.Amount, error) {
	var row domain.RevenueTotal
	err := r.db.WithContext(ctx).First(&row, "id = ?", domain.RevenueTotalRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Total, nil
}

func (r *revenueRepository) ByCategory(ctx context.Context, category domain.RevenueCategory) (domain.Amount, error) {
	var row domain.RevenueCategoryTotal
	err := r.db.WithContext(ctx).First(&row, "category = ?", category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Total, nil
}

func (r *revenueRepository) All(ctx context.Context) (map[domain.RevenueCategory]domain.Amount, error) {
	var rows []domain.RevenueCategoryTotal
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[domain.RevenueCategory]domain.Amount, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}
