// Command bot runs the BudgetBuddy Telegram assistant.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvloznov/budgetbuddy/internal/archive"
	"github.com/dvloznov/budgetbuddy/internal/backend"
	"github.com/dvloznov/budgetbuddy/internal/bot"
	"github.com/dvloznov/budgetbuddy/internal/config"
	"github.com/dvloznov/budgetbuddy/internal/logger"
	"github.com/dvloznov/budgetbuddy/internal/oracle"
	"github.com/dvloznov/budgetbuddy/internal/turns/inmemory"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	st, err := backend.Open(ctx, cfg, logger.WithComponent(log, "store"))
	if err != nil {
		log.Fatal().Err(err).Msg("opening record store failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("closing record store failed")
		}
	}()

	gemini, err := oracle.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.OracleModel)
	if err != nil {
		log.Fatal().Err(err).Msg("creating gemini client failed")
	}
	log.Info().Str("model", cfg.OracleModel).Msg("gemini client ready")

	router := &bot.Router{
		Oracle:         gemini,
		Store:          st,
		AuthorizedUser: cfg.AuthorizedUserID,
		OracleTimeout:  cfg.OracleTimeout,
		Log:            logger.WithComponent(log, "router"),
	}

	if cfg.StatementArchiveBucket != "" {
		uploader, err := archive.NewUploader(ctx, cfg.StatementArchiveBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("creating statement archive uploader failed")
		}
		defer func() {
			if err := uploader.Close(); err != nil {
				log.Error().Err(err).Msg("closing archive uploader failed")
			}
		}()
		router.Archive = uploader
		log.Info().Str("bucket", cfg.StatementArchiveBucket).Msg("statement archive enabled")
	}

	queue := inmemory.NewQueue(cfg.TurnQueueSize, cfg.TurnWorkers, inmemory.NewStore())

	tg, err := bot.New(cfg.TelegramToken, router, queue, logger.WithComponent(log, "telegram"))
	if err != nil {
		log.Fatal().Err(err).Msg("creating telegram bot failed")
	}

	if err := queue.Start(ctx, tg.HandleTurn); err != nil {
		log.Fatal().Err(err).Msg("starting turn queue failed")
	}
	log.Info().
		Int("workers", cfg.TurnWorkers).
		Int("queue_size", cfg.TurnQueueSize).
		Msg("turn queue started")

	if err := tg.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("telegram update loop failed")
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := queue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("stopping turn queue failed")
	}
	if err := queue.Close(); err != nil {
		log.Error().Err(err).Msg("closing turn queue failed")
	}
	log.Info().Msg("shutdown complete")
}
