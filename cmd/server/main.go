package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/hero-forge/internal/api"
	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository"
	"github.com/dom/hero-forge/internal/repository/memory"
	"github.com/dom/hero-forge/internal/repository/postgres"
	"github.com/dom/hero-forge/internal/service"
	"github.com/dom/hero-forge/internal/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel.Zap())
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger.Initialize(log)
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	hub := websocket.NewHub()
	notifiers := notify.Multi{notify.NewLog(log.Named("notify")), hub}

	if cfg.JournalPath != "" {
		journal, err := notify.OpenJournal(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
		notifiers = append(notifiers, journal)
	}

	services := service.NewServices(store, cfg, host.ClockEntropy{}, notifiers)
	router := api.NewRouter(services, hub, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		hub.Stop()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config) (repository.Store, error) {
	if cfg.Store == config.StoreMemory {
		return memory.NewStore(), nil
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.LogLevel.Gorm())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return postgres.NewStore(db), nil
}
