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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"toolscout/internal/api"
	"toolscout/internal/bot"
	"toolscout/internal/config"
	"toolscout/internal/storage"
	"toolscout/internal/telemetry"
)

const (
	shutdownTimeout = 10 * time.Second
	gcInterval      = 5 * time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when a token is configured, the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg config.Config) error {
	log := newLogger(cfg, os.Stdout)
	log.WithFields(logrus.Fields{
		"badgerdb_path": cfg.BadgerDBPath,
		"http_addr":     cfg.HTTPAddr,
		"fetcher":       cfg.Fetcher,
		"bot_enabled":   cfg.BotEnabled(),
	}).Info("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	fetcher, err := newFetcher(cfg, log)
	if err != nil {
		return err
	}
	metrics := telemetry.NewMetrics()
	service := newService(cfg, fetcher, metrics, log)
	defer func() {
		if err := service.Close(); err != nil {
			log.WithError(err).Error("Error closing fetcher")
		}
	}()

	workers := []func(context.Context){
		func(ctx context.Context) { repo.RunGC(ctx, gcInterval) },
	}
	if cfg.BotEnabled() {
		botHandler, err := bot.NewHandler(cfg, repo, service, log)
		if err != nil {
			return err
		}
		workers = append(workers, botHandler.Start)
	} else {
		log.Info("TELEGRAM_BOT_TOKEN not set, Telegram bot disabled")
	}

	router := api.NewRouter(api.NewHandler(service, repo, log), metrics.Handler(), log)
	server := api.NewServer(cfg.HTTPAddr, router)

	log.WithField("addr", cfg.HTTPAddr).Info("Toolscout is running")
	if err := runServices(ctx, log, server, workers...); err != nil {
		return err
	}
	log.Info("Toolscout shut down gracefully.")
	return nil
}

// runServices serves HTTP and runs workers until ctx is done or the server
// fails, then shuts the server down. It returns only after every worker has
// returned.
func runServices(ctx context.Context, log logrus.FieldLogger, server *http.Server, workers ...func(context.Context)) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, work := range workers {
		work := work
		g.Go(func() error {
			work(gctx)
			return nil
		})
	}
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down Toolscout...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown failed")
		}
		return nil
	})

	return g.Wait()
}
