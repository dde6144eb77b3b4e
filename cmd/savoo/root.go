package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Aquaier/Savoo/internal/adapters/notify"
	"github.com/Aquaier/Savoo/internal/adapters/ratecache"
	"github.com/Aquaier/Savoo/internal/adapters/ratesource"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/core/services"
	"github.com/Aquaier/Savoo/internal/platform/config"
	"github.com/Aquaier/Savoo/internal/repositories/database/pgsql"
	"github.com/Aquaier/Savoo/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "savoo",
	Short:        "Savoo personal finance backend",
	Long:         "Savoo tracks income, expenses, budgets and savings goals across currencies.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, ratesCmd)
}

// newLogger builds the JSON logger used by every command.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// app is the wired dependency graph shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Error during shutdown", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.pool, a.logger)
}

// bootstrap loads config, connects to Postgres and wires repositories, adapters and services.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, pool: pool}
	adapters, err := a.buildAdapters()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.services = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), adapters)
	return a, nil
}

func (a *app) buildAdapters() (services.Adapters, error) {
	adapters := services.Adapters{
		RateSource: ratesource.NewNBPClient(a.cfg.RatesSourceURL),
	}

	if a.cfg.RatesCachePath != "" {
		adapters.RateCache = ratecache.NewFileStore(afero.NewOsFs(), a.cfg.RatesCachePath)
	} else {
		adapters.RateCache = ratecache.NewMemoryStore()
	}

	if a.cfg.NotifyAMQPURL == "" {
		adapters.Notifier = notify.NewLogNotifier()
		return adapters, nil
	}
	notifier, err := notify.NewAMQPNotifier(a.cfg.NotifyAMQPURL, a.cfg.NotifyAMQPExchange, a.cfg.NotifyAMQPQueue)
	if err != nil {
		return services.Adapters{}, fmt.Errorf("failed to connect budget notifier: %w", err)
	}
	a.closers = append(a.closers, notifier.Close)
	adapters.Notifier = notifier
	a.logger.Info("Budget notifications go to AMQP",
		slog.String("exchange", a.cfg.NotifyAMQPExchange),
		slog.String("queue", a.cfg.NotifyAMQPQueue))
	return adapters, nil
}
