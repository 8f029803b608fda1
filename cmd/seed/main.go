package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
	"github.com/valeriaulyamaeva/finance-tracker/models"
	"github.com/valeriaulyamaeva/finance-tracker/utils"
)

func main() {
	var (
		wallets      = flag.Int("wallets", 3, "число кошельков")
		categories   = flag.Int("categories", 10, "число категорий")
		transactions = flag.Int("transactions", 40, "число транзакций в каждом кошельке")
		goalsPer     = flag.Int("goals", 3, "число целей в каждом кошельке")
		seed         = flag.Int64("seed", time.Now().UnixNano(), "seed генератора")
	)
	flag.Parse()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentStorage,
	})

	ctx := context.Background()
	dsn := cfg.DatabaseDSN()
	if err := database.RunMigrations(dsn); err != nil {
		logger.Error("ошибка миграции", log.FieldError, err)
		os.Exit(1)
	}

	pool, err := database.ConnectDB(ctx, dsn, cfg.DBMaxConns)
	if err != nil {
		logger.Error("ошибка подключения к БД", log.FieldError, err)
		os.Exit(1)
	}
	defer pool.Close()

	g := utils.NewGenerator(database.NewStore(pool), *seed, models.Today())
	if err := generate(ctx, g, *wallets, *categories, *transactions, *goalsPer, logger); err != nil {
		logger.Error("ошибка генерации данных", log.FieldError, err)
		pool.Close()
		os.Exit(1)
	}
}

func generate(ctx context.Context, g *utils.Generator, wallets, categories, transactions, goals int, logger *log.Logger) error {
	createdWallets, err := g.GenerateTestWallets(ctx, wallets)
	if err != nil {
		return err
	}
	createdCategories, err := g.GenerateTestCategories(ctx, categories)
	if err != nil {
		return err
	}
	txCount, err := g.GenerateTestTransactions(ctx, createdWallets, createdCategories, transactions)
	if err != nil {
		return err
	}
	goalCount, err := g.GenerateTestGoals(ctx, createdWallets, goals)
	if err != nil {
		return err
	}

	logger.Info("демо-данные созданы",
		"wallets", len(createdWallets),
		"categories", len(createdCategories),
		"transactions", txCount,
		"goals", goalCount,
	)
	return nil
}
