package postgres

import (
	"context"
	"errors"

	"github.com/dom/hero-forge/internal/domain"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *sequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the named sequence and returns the new value. Sequences start at 1.
func (r *sequenceRepository) Next(ctx context.Context, name string) (uint64, error) {
	var value uint64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`, name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *sequenceRepository) Current(ctx context.Context, name string) (uint64, error) {
	var seq domain.Sequence
	err := r.db.WithContext(ctx).First(&seq, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return seq.Value, nil
}
