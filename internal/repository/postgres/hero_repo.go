package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-forge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type heroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *heroRepository {
	return &heroRepository{db: db}
}

func (r *heroRepository) Create(ctx context.Context, hero *domain.Hero) error {
	return r.db.WithContext(ctx).Create(hero).Error
}

func (r *heroRepository) GetByID(ctx context.Context, id uint64) (*domain.Hero, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *heroRepository) GetForUpdate(ctx context.Context, id uint64) (*domain.Hero, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *heroRepository) first(tx *gorm.DB, id uint64) (*domain.Hero, error) {
	var hero domain.Hero
	err := tx.First(&hero, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHeroNotFound
		}
		return nil, err
	}
	return &hero, nil
}

func (r *heroRepository) Update(ctx context.Context, hero *domain.Hero) error {
	result := r.db.WithContext(ctx).Model(&domain.Hero{}).Where("id = ?", hero.ID).Select("*").Updates(hero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func (r *heroRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*domain.Hero, error) {
	var heroes []*domain.Hero
	if len(ids) == 0 {
		return heroes, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&heroes).Error
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

func (r *heroRepository) ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&domain.Hero{}).
		Where("rarity = ?", rarity).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
