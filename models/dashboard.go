package models

import "github.com/shopspring/decimal"

// Dashboard содержит сводку по кошельку для главной страницы.
type Dashboard struct {
	WalletID              int             `json:"walletId"`
	WalletCount           int             `json:"walletCount"`
	CategoryCount         int             `json:"categoryCount"`
	MonthTransactionCount int             `json:"monthTransactionCount"`
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	TotalExpense          decimal.Decimal `json:"totalExpense"`
	Balance               decimal.Decimal `json:"balance"`
	RecentTransactions    []Transaction   `json:"recentTransactions"`
	ActiveGoals           []GoalView      `json:"activeGoals"`
}
