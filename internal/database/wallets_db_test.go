package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func TestWalletTotals(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := createWallet(t, store, "Основной")
	second := createWallet(t, store, "Накопления")

	for _, in := range []models.TransactionInput{
		{WalletID: first.ID, Description: "Зарплата", Amount: decimal.RequireFromString("1500.50"), Type: models.TypeIncome, Date: mustDate(t, "2024-01-05")},
		{WalletID: first.ID, Description: "Продукты", Amount: decimal.RequireFromString("200.25"), Type: models.TypeExpense, Date: mustDate(t, "2024-01-06")},
	} {
		if _, err := store.CreateTransaction(ctx, in); err != nil {
			t.Fatalf("ошибка создания транзакции: %v", err)
		}
	}

	wallets, err := store.ListWallets(ctx)
	if err != nil {
		t.Fatalf("ошибка получения кошельков: %v", err)
	}
	if len(wallets) != 2 || wallets[0].ID != first.ID || wallets[1].ID != second.ID {
		t.Fatalf("неожиданный порядок кошельков: %+v", wallets)
	}
	if !wallets[0].Balance.Equal(decimal.RequireFromString("1300.25")) {
		t.Errorf("баланс %s, хотели 1300.25", wallets[0].Balance)
	}
	if !wallets[1].Balance.IsZero() {
		t.Errorf("баланс пустого кошелька %s", wallets[1].Balance)
	}
}

func TestWalletDuplicateName(t *testing.T) {
	store := setupStore(t)
	createWallet(t, store, "Карта")

	err := store.CreateWallet(context.Background(), &models.Wallet{Name: "Карта", Icon: "x", Color: "#000000"})
	if !errors.Is(err, database.ErrConflict) {
		t.Errorf("ожидали ErrConflict, получили %v", err)
	}
}

func TestUpdateAndDeleteWallet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	wallet := createWallet(t, store, "Старое имя")

	desc := "описание"
	wallet.Name = "Новое имя"
	wallet.Description = &desc
	updated, err := store.UpdateWallet(ctx, wallet)
	if err != nil {
		t.Fatalf("ошибка обновления кошелька: %v", err)
	}
	if updated.Name != "Новое имя" || updated.Description == nil || *updated.Description != desc {
		t.Errorf("кошелек не обновился: %+v", updated)
	}

	if err := store.DeleteWallet(ctx, wallet.ID); err != nil {
		t.Fatalf("ошибка удаления кошелька: %v", err)
	}
	if err := store.DeleteWallet(ctx, wallet.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("повторное удаление: ожидали ErrNotFound, получили %v", err)
	}
	if _, err := store.UpdateWallet(ctx, wallet); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("обновление удаленного: ожидали ErrNotFound, получили %v", err)
	}
}
