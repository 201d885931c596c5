package service

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/google/uuid"
)

// Authorizer answers whether an account may make privileged calls. The
// configured admin and static callers always pass; other accounts need a row
// in the authorized caller allow-list.
type Authorizer struct {
	admin   uuid.UUID
	static  map[uuid.UUID]struct{}
	callers repository.AuthorizedCallerRepository
}

func NewAuthorizer(admin uuid.UUID, static []uuid.UUID, callers repository.AuthorizedCallerRepository) *Authorizer {
	a := &Authorizer{
		admin:   admin,
		static:  make(map[uuid.UUID]struct{}, len(static)),
		callers: callers,
	}
	for _, id := range static {
		a.static[id] = struct{}{}
	}
	return a
}

// With returns an Authorizer reading the allow-list through callers, for
// checks made inside a unit of work
func (a *Authorizer) With(callers repository.AuthorizedCallerRepository) *Authorizer {
	c := *a
	c.callers = callers
	return &c
}

func (a *Authorizer) Admin() uuid.UUID {
	return a.admin
}

func (a *Authorizer) IsAdmin(account uuid.UUID) bool {
	return a.admin != uuid.Nil && account == a.admin
}

func (a *Authorizer) IsAuthorized(ctx context.Context, account uuid.UUID) (bool, error) {
	if account == uuid.Nil {
		return false, nil
	}
	if a.IsAdmin(account) {
		return true, nil
	}
	if _, ok := a.static[account]; ok {
		return true, nil
	}
	return a.callers.Exists(ctx, account)
}

func (a *Authorizer) RequireAdmin(account uuid.UUID) error {
	if !a.IsAdmin(account) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (a *Authorizer) RequireAuthorized(ctx context.Context, account uuid.UUID) error {
	ok, err := a.IsAuthorized(ctx, account)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}
