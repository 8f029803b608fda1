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

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/cache"
	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/events"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/internal/jobs"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
	"github.com/valeriaulyamaeva/finance-tracker/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("ошибка конфигурации", log.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("сервер остановлен с ошибкой", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseDSN()
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(dsn); err != nil {
			return err
		}
		logger.Info("миграции применены", log.FieldComponent, log.ComponentMigrate)
	}

	pool, err := database.ConnectDB(ctx, dsn, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := database.NewStore(pool)
	categories := cache.NewCategories(store, cfg.CategoryCacheTTL)
	service := goals.NewService(store)

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		logger.Info("публикация событий включена", "exchange", cfg.AMQPExchange)
	}

	scheduler := jobs.NewScheduler(logger)
	rollover := jobs.NewGoalRollover(store, service, publisher, logger)
	if err := scheduler.Add("goal-rollover", cfg.RolloverSchedule, rollover); err != nil {
		return fmt.Errorf("ошибка настройки задачи обновления целей: %w", err)
	}
	if err := scheduler.Add("cache-sweep", "@every 1m", jobs.CacheSweep(logger, categories)); err != nil {
		return fmt.Errorf("ошибка настройки очистки кэша: %w", err)
	}
	scheduler.Start()

	gin.SetMode(cfg.GinMode)
	router := routes.SetupRouter(routes.Dependencies{
		Store:       store,
		Categories:  categories,
		Goals:       service,
		Notifier:    publisher,
		Logger:      logger,
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("сервер запущен", "port", cfg.Port, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("остановка сервера", log.FieldOperation, log.OpShutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}
	return nil
}
