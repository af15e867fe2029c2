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

	"birthday_notification_bot/internal/app"
	"birthday_notification_bot/internal/infra/clock"
	"birthday_notification_bot/internal/infra/config"
	idb "birthday_notification_bot/internal/infra/database"
	"birthday_notification_bot/internal/infra/logger"
	"birthday_notification_bot/internal/infra/metrics"
	"birthday_notification_bot/internal/infra/scheduler"
	"birthday_notification_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Could not load application configuration")
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithField("environment", cfg.Environment).
		WithField("database_driver", cfg.DatabaseDriver).
		WithField("check_interval", cfg.CheckInterval().String()).
		Info("Birthday Notification Bot starting...")

	if err := run(cfg, mainLogger); err != nil {
		mainLogger.WithError(err).Fatal("Application stopped with an error")
	}
	mainLogger.Info("Application shut down gracefully.")
}

// run wires the application and blocks until a shutdown signal.
func run(cfg *config.AppConfig, mainLogger *logrus.Entry) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Database Connection
	db, err := idb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			mainLogger.WithError(err).Error("Failed to close database")
		}
	}()
	mainLogger.Info("Database connection established and migrated.")

	// Initialize Repositories
	clk := clock.NewRealClock()
	communityRepo := idb.NewSQLCommunityRepository(db, clk)
	birthdayRepo := idb.NewSQLBirthdayRepository(db, clk)

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID).WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram update handling failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return fmt.Errorf("could not create Telegram bot: %w", err)
	}
	if err := bot.SetCommands(telegram.BotCommands); err != nil {
		mainLogger.WithError(err).Warn("Could not publish bot command menu")
	}
	adapter := telegram.NewTelebotAdapter(bot)

	// Initialize Services
	registrationService := app.NewRegistrationService(communityRepo, birthdayRepo, cfg.ListPageSize, logger.Component("registration_service"))
	notificationService := app.NewNotificationServiceImpl(birthdayRepo, communityRepo, adapter, clk, logger.Component("notification_service"))

	// Register Handlers
	telegram.RegisterBotCommands(bot, logger.Component("telegram"))
	telegram.RegisterBirthdayHandlers(ctx, bot, registrationService, adapter, logger.Component("telegram"))
	mainLogger.Info("Command handlers registered.")

	birthdayScheduler := scheduler.NewBirthdayScheduler(notificationService, logger.Component("scheduler"), cfg.CheckInterval())
	if err := birthdayScheduler.Start(); err != nil {
		return fmt.Errorf("could not start birthday scheduler: %w", err)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr)
		go func() {
			mainLogger.WithField("addr", cfg.MetricsAddr).Info("Serving metrics")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				mainLogger.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	mainLogger.Info("Application setup complete. Bot and Scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	birthdayScheduler.Stop()
	bot.Stop()
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			mainLogger.WithError(err).Warn("Metrics server did not shut down cleanly")
		}
		shutdownCancel()
	}
	return nil
}
