package handlers

import (
	"context"

	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

type WalletStore interface {
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	GetWallet(ctx context.Context, id int) (*models.Wallet, error)
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	UpdateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, id int) error
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

type TransactionStore interface {
	ListTransactions(ctx context.Context, walletID, limit int) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int, in models.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id, walletID int) error
	CountTransactions(ctx context.Context, walletID int, from, to models.Date) (int, error)
}

// GoalStore — запись целей. Чтение идет через goals.Service.
type GoalStore interface {
	goals.Store
	CreateGoal(ctx context.Context, in models.GoalInput) (int, error)
	UpdateGoal(ctx context.Context, id int, in models.GoalInput) error
	DeleteGoal(ctx context.Context, id, walletID int) error
}

type EntityCounter interface {
	CountEntities(ctx context.Context) (wallets, categories int, err error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Notifier публикует доменные события. Ошибки публикации не влияют на ответ.
type Notifier interface {
	Notify(ctx context.Context, routingKey string, event any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
