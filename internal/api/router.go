package api

import (
	"net/http"

	"github.com/dom/hero-forge/internal/api/handlers"
	"github.com/dom/hero-forge/internal/api/middleware"
	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/service"
	"github.com/dom/hero-forge/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if cfg.IsDevelopment() {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	heroHandler := handlers.NewHeroHandler(services.Hero)
	analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
	adminHandler := handlers.NewAdminHandler(services.Admin, services.Revenue)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	requireAuth := middleware.Auth(services.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Read-only views are public
		r.Get("/contract", adminHandler.ContractInfo)
		r.Get("/costs", heroHandler.Costs)
		r.Get("/revenue", adminHandler.Revenue)
		r.Get("/revenue/{category}", adminHandler.RevenueByCategory)

		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.List)
			r.Get("/{id}", heroHandler.Get)
			r.Get("/{id}/stats", heroHandler.Stats)
			r.Get("/{id}/battle-stats", heroHandler.BattleStats)
			r.Get("/{id}/history", heroHandler.History)
			r.Get("/{id}/can-evolve", heroHandler.CanEvolve)
			r.Get("/{id}/can-ascend", heroHandler.CanAscend)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", heroHandler.Create)
				r.Post("/{id}/level-up", heroHandler.LevelUp)
				r.Post("/{id}/battle-result", heroHandler.RecordBattleResult)
				r.Post("/{id}/transfer", heroHandler.Transfer)
				r.Post("/{id}/evolve", heroHandler.Evolve)
				r.Post("/{id}/abilities", heroHandler.UnlockAbility)
				r.Post("/{id}/ascend", heroHandler.Ascend)
			})
		})

		r.With(requireAuth).Get("/accounts/me/heroes", heroHandler.Owned)
		r.Get("/accounts/{account}/heroes", heroHandler.Owned)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/game", analyticsHandler.GameStats)
			r.Get("/daily", analyticsHandler.DailyStats)
			r.Get("/top", analyticsHandler.TopPerforming)
			r.Get("/export/{kind}", analyticsHandler.Export)
			r.Get("/heroes/{id}", analyticsHandler.HeroPerformance)
			r.Get("/players/{account}", analyticsHandler.PlayerStats)
			r.Get("/actions/{action}", analyticsHandler.ActionStats)
			r.Get("/transactions/{type}", analyticsHandler.TransactionStats)
			r.Get("/currencies/{currency}", analyticsHandler.CurrencyVolume)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/actions", analyticsHandler.RecordPlayerAction)
				r.Post("/battles", analyticsHandler.RecordBattleOutcome)
				r.Post("/transactions", analyticsHandler.RecordEconomicTransaction)
				r.Post("/heroes/{id}/performance", analyticsHandler.UpdateHeroPerformance)
				r.Post("/reset", analyticsHandler.Reset)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/pause", adminHandler.Pause)
			r.Post("/resume", adminHandler.Resume)
			r.Get("/callers", adminHandler.ListCallers)
			r.Post("/callers", adminHandler.Authorize)
			r.Delete("/callers/{account}", adminHandler.Revoke)
		})

		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
