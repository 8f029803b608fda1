package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func TestCreateTransactionWithCategories(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	wallet := createWallet(t, store, "Основной")
	food := createCategory(t, store, "Продукты", models.TypeExpense)
	home := createCategory(t, store, "Дом", models.TypeExpense)

	created, err := store.CreateTransaction(ctx, models.TransactionInput{
		WalletID:    wallet.ID,
		Description: "Супермаркет",
		Amount:      decimal.RequireFromString("87.40"),
		Type:        models.TypeExpense,
		Date:        mustDate(t, "2024-03-10"),
		CategoryIDs: []int{food.ID, home.ID, food.ID},
	})
	if err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	if created.Date.String() != "2024-03-10" || !created.Amount.Equal(decimal.RequireFromString("87.4")) {
		t.Errorf("данные транзакции не совпадают: %+v", created)
	}
	if len(created.Categories) != 2 || created.Categories[0].Name != "Дом" || created.Categories[1].Name != "Продукты" {
		t.Errorf("категории %+v", created.Categories)
	}
}

func TestCreateTransactionRejectsBadCategories(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	wallet := createWallet(t, store, "Основной")
	salary := createCategory(t, store, "Зарплата", models.TypeIncome)

	in := models.TransactionInput{
		WalletID:    wallet.ID,
		Description: "Кофе",
		Amount:      decimal.NewFromInt(3),
		Type:        models.TypeExpense,
		Date:        mustDate(t, "2024-03-10"),
	}

	in.CategoryIDs = []int{salary.ID}
	if _, err := store.CreateTransaction(ctx, in); !errors.Is(err, database.ErrCategoryTypeMismatch) {
		t.Errorf("ожидали ErrCategoryTypeMismatch, получили %v", err)
	}

	in.CategoryIDs = []int{9999}
	if _, err := store.CreateTransaction(ctx, in); !errors.Is(err, database.ErrCategoryNotFound) {
		t.Errorf("ожидали ErrCategoryNotFound, получили %v", err)
	}

	list, err := store.ListTransactions(ctx, wallet.ID, 0)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("после ошибок не должно остаться транзакций, получили %d", len(list))
	}
}

func TestUpdateTransactionReplacesCategories(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	wallet := createWallet(t, store, "Основной")
	food := createCategory(t, store, "Продукты", models.TypeExpense)
	fun := createCategory(t, store, "Развлечения", models.TypeExpense)

	in := models.TransactionInput{
		WalletID:    wallet.ID,
		Description: "Покупка",
		Amount:      decimal.NewFromInt(10),
		Type:        models.TypeExpense,
		Date:        mustDate(t, "2024-03-10"),
		CategoryIDs: []int{food.ID},
	}
	created, err := store.CreateTransaction(ctx, in)
	if err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	in.Description = "Кино"
	in.CategoryIDs = []int{fun.ID}
	updated, err := store.UpdateTransaction(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("ошибка обновления транзакции: %v", err)
	}
	if updated.Description != "Кино" || len(updated.Categories) != 1 || updated.Categories[0].ID != fun.ID {
		t.Errorf("транзакция не обновилась: %+v", updated)
	}

	in.Type = models.TypeIncome
	if _, err := store.UpdateTransaction(ctx, created.ID, in); !errors.Is(err, database.ErrCategoryTypeMismatch) {
		t.Fatalf("ожидали ErrCategoryTypeMismatch, получили %v", err)
	}
	unchanged, err := store.GetTransaction(ctx, created.ID, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакции: %v", err)
	}
	if unchanged.Type != models.TypeExpense || unchanged.Categories[0].ID != fun.ID {
		t.Errorf("неудачное обновление изменило запись: %+v", unchanged)
	}

	in.Type = models.TypeExpense
	in.WalletID = wallet.ID + 1
	if _, err := store.UpdateTransaction(ctx, created.ID, in); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("чужой кошелек: ожидали ErrNotFound, получили %v", err)
	}
}

func TestListAndDeleteTransactions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	wallet := createWallet(t, store, "Основной")

	for _, d := range []string{"2024-01-02", "2024-01-05", "2024-01-05", "2024-01-01"} {
		_, err := store.CreateTransaction(ctx, models.TransactionInput{
			WalletID: wallet.ID, Description: d, Amount: decimal.NewFromInt(1), Type: models.TypeIncome, Date: mustDate(t, d),
		})
		if err != nil {
			t.Fatalf("ошибка создания транзакции: %v", err)
		}
	}

	list, err := store.ListTransactions(ctx, wallet.ID, 0)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if len(list) != 4 || list[0].ID != 3 || list[1].ID != 2 || list[2].ID != 1 || list[3].ID != 4 {
		t.Fatalf("неожиданный порядок: %+v", list)
	}

	recent, err := store.ListTransactions(ctx, wallet.ID, 2)
	if err != nil || len(recent) != 2 {
		t.Fatalf("ожидали 2 последние транзакции, получили %d (%v)", len(recent), err)
	}

	count, err := store.CountTransactions(ctx, wallet.ID, mustDate(t, "2024-01-02"), mustDate(t, "2024-01-05"))
	if err != nil || count != 3 {
		t.Errorf("ожидали 3 транзакции в интервале, получили %d (%v)", count, err)
	}

	if err := store.DeleteTransaction(ctx, list[0].ID, wallet.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	if err := store.DeleteTransaction(ctx, list[0].ID, wallet.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("ожидали ErrNotFound, получили %v", err)
	}
}

func TestCreateTransactionUnknownWallet(t *testing.T) {
	store := setupStore(t)
	_, err := store.CreateTransaction(context.Background(), models.TransactionInput{
		WalletID: 777, Description: "x", Amount: decimal.NewFromInt(1), Type: models.TypeIncome, Date: mustDate(t, "2024-01-01"),
	})
	if !errors.Is(err, database.ErrInvalidReference) {
		t.Errorf("ожидали ErrInvalidReference, получили %v", err)
	}
}
