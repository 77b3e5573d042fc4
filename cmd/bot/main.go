package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingRequiredEnv) {
			logger.Log.WithError(err).Fatal("Refusing to start: required secrets are missing")
		}
		logger.Log.WithError(err).Fatal("Could not load application configuration")
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"chat_id":     cfg.TelegramChatID,
	}).Info("Configuration loaded")

	// Initialize Telegram Bot (send only, updates are never polled)
	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.TelegramToken,
		OnError: func(err error, c telebot.Context) {
			mainLogger.WithError(err).Error("Telegram bot error")
		},
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	apiClient, err := practicum.NewHTTPClient(cfg.PracticumEndpoint, cfg.PracticumToken)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create homework API client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseLogger := logrus.NewEntry(logger.Log)
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(ctx, bot), cfg.TelegramChatID, notification.NewLedger(), baseLogger)
	pacer := scheduler.NewPacer(app.RetryPeriod, baseLogger)
	poller := app.NewPoller(apiClient, notifier, pacer, app.InitialCursor(time.Now()), baseLogger)

	if err := poller.Run(ctx); err != nil {
		mainLogger.WithError(err).Error("Shutting down after fatal error")
		stop()
		os.Exit(1)
	}
	mainLogger.Info("Application shut down gracefully.")
}
