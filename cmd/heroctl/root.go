package main

import (
	"errors"
	"fmt"

	"github.com/dom/hero-forge/internal/config"
	"github.com/dom/hero-forge/internal/host"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/notify"
	"github.com/dom/hero-forge/internal/repository/postgres"
	"github.com/dom/hero-forge/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:   "heroctl",
	Short: "Hero Forge admin CLI",
	Long: `heroctl operates a Hero Forge database directly, acting as the
configured ADMIN_ACCOUNT_ID.

ADMIN:
  migrate          Create or update the schema
  pause, resume    Toggle the global pause flag
  authorize        Grant battle-reporting rights to an account
  revoke           Remove battle-reporting rights from an account

ANALYTICS:
  reset-analytics  Zero the global counters (requires --confirm)
  revenue          Show collected fees per category
  top              Show the best performing heroes
  export           Print a battles or economy summary`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres URL (defaults to DATABASE_URL)")
}

// env bundles what every command needs to act on the store
type env struct {
	cfg      *config.Config
	services *service.Services
}

func setup() (*env, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel.Zap())
	if err != nil {
		return nil, err
	}
	logger.Initialize(log)

	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.LogLevel.Gorm())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(db)
	services := service.NewServices(store, cfg, host.ClockEntropy{}, notify.NewLog(log.Named("notify")))
	return &env{cfg: cfg, services: services}, nil
}

// admin is the invocation every mutating command runs under
func (e *env) admin() (host.Invocation, error) {
	if e.cfg.AdminAccountID == uuid.Nil {
		return host.Invocation{}, errors.New("ADMIN_ACCOUNT_ID is not set")
	}
	return host.NewInvocation(e.cfg.AdminAccountID, 0), nil
}

// withEnv wraps a command body with setup and logger flushing
func withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return fn(cmd, args, e)
	}
}
