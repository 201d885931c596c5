package service

import (
	"context"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/google/uuid"
)

// AdminService holds the privileged switches: the pause flag and the
// authorized caller allow-list.
type AdminService struct {
	store    repository.Store
	auth     *Authorizer
	notifier notify.Notifier
}

func NewAdminService(store repository.Store, auth *Authorizer, notifier notify.Notifier) *AdminService {
	return &AdminService{store: store, auth: auth, notifier: notifier}
}

func (s *AdminService) SetPaused(ctx context.Context, inv host.Invocation, paused bool) error {
	if err := s.auth.RequireAdmin(inv.Caller); err != nil {
		return err
	}

	var was bool
	err := s.store.Atomic(ctx, func(repos *repository.Repositories) error {
		var err error
		if was, err = repos.Settings.IsPaused(ctx); err != nil {
			return err
		}
		return repos.Settings.SetPaused(ctx, paused)
	})
	if err != nil {
		return err
	}

	if was != paused {
		publish(ctx, s.notifier, []domain.Notification{
			domain.NewNotification(domain.NotificationPausedChanged, inv.Now, map[string]interface{}{
				"paused": paused,
			}).WithAccounts(inv.Caller),
		})
	}
	return nil
}

func (s *AdminService) Pause(ctx context.Context, inv host.Invocation) error {
	return s.SetPaused(ctx, inv, true)
}

func (s *AdminService) Resume(ctx context.Context, inv host.Invocation) error {
	return s.SetPaused(ctx, inv, false)
}

func (s *AdminService) IsPaused(ctx context.Context) (bool, error) {
	return s.store.Repositories().Settings.IsPaused(ctx)
}

func (s *AdminService) Authorize(ctx context.Context, inv host.Invocation, account uuid.UUID) error {
	if err := s.auth.RequireAdmin(inv.Caller); err != nil {
		return err
	}
	if account == uuid.Nil {
		return domain.ErrInvalidRecipient
	}
	return s.store.Repositories().AuthorizedCaller.Add(ctx, account)
}

func (s *AdminService) Revoke(ctx context.Context, inv host.Invocation, account uuid.UUID) error {
	if err := s.auth.RequireAdmin(inv.Caller); err != nil {
		return err
	}
	return s.store.Repositories().AuthorizedCaller.Remove(ctx, account)
}

func (s *AdminService) AuthorizedCallers(ctx context.Context) ([]uuid.UUID, error) {
	return s.store.Repositories().AuthorizedCaller.List(ctx)
}

func (s *AdminService) IsAuthorized(ctx context.Context, account uuid.UUID) (bool, error) {
	return s.auth.IsAuthorized(ctx, account)
}

func (s *AdminService) ContractInfo(ctx context.Context) (*domain.ContractInfo, error) {
	repos := s.store.Repositories()
	paused, err := repos.Settings.IsPaused(ctx)
	if err != nil {
		return nil, err
	}
	total, err := repos.Sequence.Current(ctx, domain.SequenceHero)
	if err != nil {
		return nil, err
	}
	return &domain.ContractInfo{
		Admin:       s.auth.Admin(),
		Paused:      paused,
		TotalHeroes: total,
	}, nil
}
