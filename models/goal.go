package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalInProgress GoalStatus = "in_progress"
	GoalAchieved   GoalStatus = "achieved"
)

// Goal — повторяющаяся цель по доходам или расходам кошелька.
type Goal struct {
	ID           int             `json:"id" db:"id"`
	WalletID     int             `json:"walletId" db:"wallet_id"`
	Name         string          `json:"name" db:"name"`
	Type         TransactionType `json:"type" db:"type"`
	TargetAmount decimal.Decimal `json:"targetAmount" db:"target_amount"`
	StartDate    Date            `json:"startDate" db:"start_date"`
	IntervalDays int             `json:"intervalDays" db:"interval_days"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// GoalView — цель вместе с вычисленным текущим периодом и прогрессом.
// Поля периода и прогресса не хранятся в базе.
type GoalView struct {
	Goal
	CurrentPeriodStart Date            `json:"currentPeriodStart" db:"-"`
	CurrentPeriodEnd   Date            `json:"currentPeriodEnd" db:"-"`
	ProgressAmount     decimal.Decimal `json:"progressAmount" db:"-"`
	ProgressPercentage int             `json:"progressPercentage" db:"-"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount" db:"-"`
	Status             GoalStatus      `json:"status" db:"-"`
}

type GoalInput struct {
	WalletID     int
	Name         string
	Type         TransactionType
	TargetAmount decimal.Decimal
	StartDate    Date
	IntervalDays int
}
