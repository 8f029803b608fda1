package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int             `json:"id" db:"id"`
	WalletID    int             `json:"walletId" db:"wallet_id"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Type        TransactionType `json:"type" db:"type"`
	Date        Date            `json:"date" db:"date"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	Categories  []CategoryRef   `json:"categories" db:"-"`
}

// CategoryRef описывает категорию внутри транзакции.
type CategoryRef struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
}

// TransactionInput используется при создании и изменении транзакции.
type TransactionInput struct {
	WalletID    int
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        Date
	CategoryIDs []int
}
