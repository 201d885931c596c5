package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) IsPaused(ctx context.Context) (bool, error) {
	var s domain.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", domain.SettingPaused).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return strconv.ParseBool(s.Value)
}

func (r *settingsRepository) SetPaused(ctx context.Context, paused bool) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&domain.Setting{
		Key:       domain.SettingPaused,
		Value:     strconv.FormatBool(paused),
		UpdatedAt: time.Now(),
	}).Error
}

type authorizedCallerRepository struct {
	db *gorm.DB
}

func NewAuthorizedCallerRepository(db *gorm.DB) *authorizedCallerRepository {
	return &authorizedCallerRepository{db: db}
}

func (r *authorizedCallerRepository) Add(ctx context.Context, account uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.AuthorizedCaller{Account: account, CreatedAt: time.Now()}).Error
}

func (r *authorizedCallerRepository) Remove(ctx context.Context, account uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AuthorizedCaller{}, "account = ?", account).Error
}

func (r *authorizedCallerRepository) Exists(ctx context.Context, account uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.AuthorizedCaller{}).Where("account = ?", account).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *authorizedCallerRepository) List(ctx context.Context) ([]uuid.UUID, error) {
	var accounts []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.AuthorizedCaller{}).Order("created_at ASC").Pluck("account", &accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
