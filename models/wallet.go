package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultWalletIcon  = "fa-solid fa-wallet"
	DefaultWalletColor = "#22c55e"
)

type Wallet struct {
	ID           int             `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description" db:"description"`
	Icon         string          `json:"icon" db:"icon"`
	Color        string          `json:"color" db:"color"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	TotalIncome  decimal.Decimal `json:"totalIncome" db:"-"`
	TotalExpense decimal.Decimal `json:"totalExpense" db:"-"`
	Balance      decimal.Decimal `json:"balance" db:"-"`
}

// ApplyTotals заполняет итоги кошелька и баланс.
func (w *Wallet) ApplyTotals(income, expense decimal.Decimal) {
	w.TotalIncome = RoundMoney(income)
	w.TotalExpense = RoundMoney(expense)
	w.Balance = RoundMoney(income.Sub(expense))
}
