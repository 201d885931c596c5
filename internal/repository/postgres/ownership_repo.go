package postgres

import (
	"bytes"
	"context"
	"errors"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ownershipRepository struct {
	db *gorm.DB
}

func NewOwnershipRepository(db *gorm.DB) *ownershipRepository {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) Add(ctx context.Context, owner uuid.UUID, heroID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&domain.HeroOwnership{HeroID: heroID, OwnerID: owner}).Error; err != nil {
			return err
		}
		return adjustCount(tx, owner, 1)
	})
}

func (r *ownershipRepository) Move(ctx context.Context, heroID uint64, from, to uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.HeroOwnership{}).
			Where("hero_id = ? AND owner_id = ?", heroID, from).
			Update("owner_id", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotOwner
		}
		// Touch the two count rows in key order so crossing transfers never
		// wait on each other in a cycle.
		if bytes.Compare(from[:], to[:]) > 0 {
			if err := adjustCount(tx, to, 1); err != nil {
				return err
			}
			return adjustCount(tx, from, -1)
		}
		if err := adjustCount(tx, from, -1); err != nil {
			return err
		}
		return adjustCount(tx, to, 1)
	})
}

func adjustCount(tx *gorm.DB, owner uuid.UUID, delta int) error {
	if delta < 0 {
		return tx.Model(&domain.OwnerHeroCount{}).
			Where("owner_id = ? AND count >= ?", owner, -delta).
			Update("count", gorm.Expr("count - ?", -delta)).Error
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("owner_hero_counts.count + ?", delta)}),
	}).Create(&domain.OwnerHeroCount{OwnerID: owner, Count: uint32(delta)}).Error
}

func (r *ownershipRepository) HeroIDs(ctx context.Context, owner uuid.UUID) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&domain.HeroOwnership{}).
		Where("owner_id = ?", owner).
		Order("hero_id ASC").
		Pluck("hero_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountForUpdate locks the owner's count row so concurrent creates for the
// same owner queue behind each other
func (r *ownershipRepository) CountForUpdate(ctx context.Context, owner uuid.UUID) (uint32, error) {
	row := domain.OwnerHeroCount{OwnerID: owner}
	if err := lockRow(r.db.WithContext(ctx), &row); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *ownershipRepository) Count(ctx context.Context, owner uuid.UUID) (uint32, error) {
	var row domain.OwnerHeroCount
	err := r.db.WithContext(ctx).First(&row, "owner_id = ?", owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Count, nil
}
