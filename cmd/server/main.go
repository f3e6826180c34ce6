package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseboard/pulseboard/internal/http/handlers"
	"github.com/pulseboard/pulseboard/internal/notifier"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/pulseboard/pulseboard/internal/routes"
	"github.com/pulseboard/pulseboard/internal/usecases"
	"github.com/pulseboard/pulseboard/internal/webhook"
	"github.com/pulseboard/pulseboard/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	repoStore := repository.NewGormRepositoryStore(db)
	engineerStore := repository.NewGormEngineerStore(db)
	commitStore := repository.NewGormCommitStore(db)
	pullStore := repository.NewGormPullRequestStore(db)
	reviewStore := repository.NewGormReviewStore(db)
	eventStore := repository.NewGormWebhookEventStore(db)
	statsStore := repository.NewGormStatsStore(db)

	hub := notifier.NewHub(cfg.NotifierBuffer)

	webhookUsecase := usecases.NewWebhookUsecase(
		eventStore, repoStore, engineerStore, commitStore, pullStore,
		hub, cfg.StoreTimeout,
		webhook.NewGitHubNormalizer(), webhook.NewAzureDevOpsNormalizer(),
	)
	repositoryUsecase := usecases.NewRepositoryUsecase(repoStore, commitStore)
	analyticsUsecase := usecases.NewAnalyticsUsecase(statsStore, engineerStore)
	reviewUsecase := usecases.NewReviewUsecase(reviewStore, pullStore, hub)

	router := routes.NewRouter(routes.Handlers{
		Webhook:    handlers.NewWebhookHandler(webhookUsecase, cfg.GitHubWebhookSecret),
		Repository: handlers.NewRepositoryHandler(repositoryUsecase),
		Analytics:  handlers.NewAnalyticsHandler(analyticsUsecase),
		Review:     handlers.NewReviewHandler(reviewUsecase),
		Stream:     handlers.NewStreamHandler(hub),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: the notification stream holds connections open.
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
