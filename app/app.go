// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"go-card-bank/card"
	"go-card-bank/config"
	"go-card-bank/db"
	"go-card-bank/handler"
	"go-card-bank/logger"
	"go-card-bank/metrics"
	"go-card-bank/repository"
	"go-card-bank/router"
	"go-card-bank/service"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// App is one wired console session over a ledger.
type App struct {
	Ledger  *service.LedgerService
	Router  *router.Router
	Metrics *metrics.MetricsCollector
}

// New prepares the store, loads the ledger from it and wires the console
// layers on top.
func New(ctx context.Context, cfg config.Config, repo repository.ICardRepository, in io.Reader, out io.Writer) (*App, error) {
	if err := repo.InitStore(ctx); err != nil {
		return nil, fmt.Errorf("could not initialise store: %w", err)
	}

	ledger := service.NewLedgerService(repo, card.NewDefaultGenerator(), service.LedgerOptions{
		StrictLuhn:          cfg.Ledger.StrictLuhn,
		MaxGenerateAttempts: cfg.Ledger.MaxGenerateAttempts,
	})
	if err := ledger.Load(ctx); err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}

	collector := metrics.NewMetricsCollector()
	sessions := service.NewSessionService(cfg.Session.SecretKey, cfg.Session.TTL)
	console := handler.NewConsole(in, out)
	menuHandler := handler.NewMenuHandler(ledger, sessions, console)

	return &App{
		Ledger:  ledger,
		Router:  router.NewRouter(menuHandler, console, collector),
		Metrics: collector,
	}, nil
}

func Run() {
	config.LoadConfig(".")
	cfg := config.AppConfig
	logger.Configure(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	logger.Log.Info("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, database, err := openStore(cfg)
	if err != nil {
		logger.Log.Fatalf("Error opening the store: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	application, err := New(ctx, cfg, repo, os.Stdin, os.Stdout)
	if err != nil {
		logger.Log.Errorf("Error starting the bank: %v", err)
		return
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = application.Metrics.StartMetricsServer(cfg.Metrics.Address)
	}

	done := make(chan struct{})
	go func() {
		application.Router.Serve(ctx)
		close(done)
	}()

	select {
	case <-done:
		logger.Log.Info("Console session ended")
	case <-ctx.Done():
		logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Metrics.Shutdown(shutdownCtx, metricsServer); err != nil {
		logger.Log.WithError(err).Error("Metrics server forced to shutdown")
	}

	logger.Log.Info("Bank exited properly")
}

// openStore picks the repository named by storage.driver. The returned
// *sql.DB is nil for the memory driver.
func openStore(cfg config.Config) (repository.ICardRepository, *sql.DB, error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Log.Warn("Using in-memory storage; accounts will not survive a restart")
		return repository.NewMemoryCardRepository(), nil, nil
	case "postgres", "":
		database, err := db.Connect()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewCardRepository(database), database, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
