package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

type heroRepository struct {
	acc accessor
}

func (r *heroRepository) Create(ctx context.Context, hero *domain.Hero) error {
	return r.acc.with(func(st *state) error {
		if _, exists := st.heroes[hero.ID]; exists {
			return fmt.Errorf("hero %d already exists", hero.ID)
		}
		st.heroes[hero.ID] = hero.Clone()
		return nil
	})
}

func (r *heroRepository) GetByID(ctx context.Context, id uint64) (*domain.Hero, error) {
	var out *domain.Hero
	err := r.acc.with(func(st *state) error {
		h, ok := st.heroes[id]
		if !ok {
			return domain.ErrHeroNotFound
		}
		out = h.Clone()
		return nil
	})
	return out, err
}

// GetForUpdate needs no row lock here; units of work already hold the store lock
func (r *heroRepository) GetForUpdate(ctx context.Context, id uint64) (*domain.Hero, error) {
	return r.GetByID(ctx, id)
}

func (r *heroRepository) Update(ctx context.Context, hero *domain.Hero) error {
	return r.acc.with(func(st *state) error {
		if _, ok := st.heroes[hero.ID]; !ok {
			return domain.ErrHeroNotFound
		}
		st.heroes[hero.ID] = hero.Clone()
		return nil
	})
}

func (r *heroRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*domain.Hero, error) {
	var out []*domain.Hero
	err := r.acc.with(func(st *state) error {
		sorted := slices.Clone(ids)
		slices.Sort(sorted)
		for _, id := range slices.Compact(sorted) {
			if h, ok := st.heroes[id]; ok {
				out = append(out, h.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *heroRepository) ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]uint64, error) {
	var ids []uint64
	err := r.acc.with(func(st *state) error {
		for id, h := range st.heroes {
			if h.Rarity == rarity {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		return nil
	})
	return ids, err
}

type ownershipRepository struct {
	acc accessor
}

func (r *ownershipRepository) Add(ctx context.Context, owner uuid.UUID, heroID uint64) error {
	return r.acc.with(func(st *state) error {
		if _, exists := st.owners[heroID]; exists {
			return fmt.Errorf("hero %d already has an owner", heroID)
		}
		st.owners[heroID] = owner
		st.counts[owner]++
		return nil
	})
}

func (r *ownershipRepository) Move(ctx context.Context, heroID uint64, from, to uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		if st.owners[heroID] != from {
			return domain.ErrNotOwner
		}
		st.owners[heroID] = to
		if st.counts[from] > 0 {
			st.counts[from]--
		}
		st.counts[to]++
		return nil
	})
}

func (r *ownershipRepository) HeroIDs(ctx context.Context, owner uuid.UUID) ([]uint64, error) {
	var ids []uint64
	err := r.acc.with(func(st *state) error {
		for id, o := range st.owners {
			if o == owner {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		return nil
	})
	return ids, err
}

func (r *ownershipRepository) Count(ctx context.Context, owner uuid.UUID) (uint32, error) {
	var n uint32
	err := r.acc.with(func(st *state) error {
		n = st.counts[owner]
		return nil
	})
	return n, err
}

func (r *ownershipRepository) CountForUpdate(ctx context.Context, owner uuid.UUID) (uint32, error) {
	return r.Count(ctx, owner)
}

type sequenceRepository struct {
	acc accessor
}

func (r *sequenceRepository) Next(ctx context.Context, name string) (uint64, error) {
	var v uint64
	err := r.acc.with(func(st *state) error {
		st.sequences[name]++
		v = st.sequences[name]
		return nil
	})
	return v, err
}

func (r *sequenceRepository) Current(ctx context.Context, name string) (uint64, error) {
	var v uint64
	err := r.acc.with(func(st *state) error {
		v = st.sequences[name]
		return nil
	})
	return v, err
}
