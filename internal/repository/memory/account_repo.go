package memory

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

type accountRepository struct {
	acc accessor
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.acc.with(func(st *state) error {
		for _, a := range st.accounts {
			if a.DisplayName == account.DisplayName {
				return domain.ErrDisplayNameExists
			}
		}
		if account.ID == uuid.Nil {
			account.ID = uuid.New()
		}
		st.accounts[account.ID] = *account
		return nil
	})
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var out *domain.Account
	err := r.acc.with(func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *accountRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.Account, error) {
	var out *domain.Account
	err := r.acc.with(func(st *state) error {
		for _, a := range st.accounts {
			if a.DisplayName == displayName {
				out = &a
				return nil
			}
		}
		return domain.ErrAccountNotFound
	})
	return out, err
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	return r.acc.with(func(st *state) error {
		if _, ok := st.accounts[account.ID]; !ok {
			return domain.ErrAccountNotFound
		}
		st.accounts[account.ID] = *account
		return nil
	})
}

type sessionRepository struct {
	acc accessor
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.AccountSession) error {
	return r.acc.with(func(st *state) error {
		st.sessions[session.ID] = *session
		return nil
	})
}

func (r *sessionRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.AccountSession, error) {
	var out *domain.AccountSession
	err := r.acc.with(func(st *state) error {
		for _, s := range st.sessions {
			if s.AccountID == accountID && (out == nil || s.CreatedAt.After(out.CreatedAt)) {
				out = &s
			}
		}
		if out == nil {
			return domain.ErrSessionNotFound
		}
		return nil
	})
	return out, err
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		delete(st.sessions, id)
		return nil
	})
}

func (r *sessionRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	return r.acc.with(func(st *state) error {
		for id, s := range st.sessions {
			if s.AccountID == accountID {
				delete(st.sessions, id)
			}
		}
		return nil
	})
}
