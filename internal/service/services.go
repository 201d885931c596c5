package service

import (
	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/game"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Authorizer *Authorizer
	Hero       *HeroService
	Revenue    *RevenueService
	Analytics  *AnalyticsService
	Admin      *AdminService
}

func NewServices(store repository.Store, cfg *config.Config, entropy host.Entropy, notifier notify.Notifier) *Services {
	repos := store.Repositories()
	auth := NewAuthorizer(cfg.AdminAccountID, cfg.AuthorizedCallers, repos.AuthorizedCaller)
	revenue := NewRevenueService(store, notifier)

	return &Services{
		Auth:       NewAuthService(repos.Account, repos.Session, cfg.JWTSecret, cfg.JWTExpirationHours),
		Authorizer: auth,
		Hero:       NewHeroService(store, game.NewPlaceholderGenerator(), entropy, auth, revenue, notifier, cfg.MaxHeroesPerAccount),
		Revenue:    revenue,
		Analytics:  NewAnalyticsService(store, auth, notifier),
		Admin:      NewAdminService(store, auth, notifier),
	}
}
