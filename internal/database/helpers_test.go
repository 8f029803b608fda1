package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// setupStore подключается к тестовой базе из TEST_DATABASE_URL, применяет
// миграции и очищает таблицы. Без переменной тест пропускается.
func setupStore(t *testing.T) *database.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, пропускаем интеграционный тест")
	}

	if err := database.RunMigrations(dsn); err != nil {
		t.Fatalf("ошибка применения миграций: %v", err)
	}

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE goals, transaction_categories, transactions, categories, wallets RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("ошибка очистки таблиц: %v", err)
	}
	return database.NewStore(pool)
}

func createWallet(t *testing.T, store *database.Store, name string) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{Name: name, Icon: models.DefaultWalletIcon, Color: models.DefaultWalletColor}
	if err := store.CreateWallet(context.Background(), wallet); err != nil {
		t.Fatalf("ошибка создания кошелька: %v", err)
	}
	return wallet
}

func createCategory(t *testing.T, store *database.Store, name string, typ models.TransactionType) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Type: typ, Icon: models.DefaultCategoryIcon, Color: models.DefaultCategoryColor}
	if err := store.CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}
	return category
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("ошибка разбора даты: %v", err)
	}
	return d
}
