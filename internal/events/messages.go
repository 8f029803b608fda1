package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Ключи маршрутизации событий.
const (
	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
	GoalPeriodStarted  = "goal.period_started"
)

// TransactionEvent публикуется при изменении транзакции.
type TransactionEvent struct {
	TransactionID int                    `json:"transactionId"`
	WalletID      int                    `json:"walletId"`
	Type          models.TransactionType `json:"type,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          models.Date            `json:"date"`
	Timestamp     time.Time              `json:"timestamp"`
}

func NewTransactionEvent(tr models.Transaction) TransactionEvent {
	return TransactionEvent{
		TransactionID: tr.ID,
		WalletID:      tr.WalletID,
		Type:          tr.Type,
		Amount:        tr.Amount,
		Date:          tr.Date,
		Timestamp:     time.Now().UTC(),
	}
}

// GoalPeriodEvent — начало нового периода цели.
type GoalPeriodEvent struct {
	GoalID       int                    `json:"goalId"`
	WalletID     int                    `json:"walletId"`
	Name         string                 `json:"name"`
	Type         models.TransactionType `json:"type"`
	TargetAmount decimal.Decimal        `json:"targetAmount"`
	PeriodStart  models.Date            `json:"periodStart"`
	PeriodEnd    models.Date            `json:"periodEnd"`
	Timestamp    time.Time              `json:"timestamp"`
}

func NewGoalPeriodEvent(view models.GoalView) GoalPeriodEvent {
	return GoalPeriodEvent{
		GoalID:       view.ID,
		WalletID:     view.WalletID,
		Name:         view.Name,
		Type:         view.Type,
		TargetAmount: view.TargetAmount,
		PeriodStart:  view.CurrentPeriodStart,
		PeriodEnd:    view.CurrentPeriodEnd,
		Timestamp:    time.Now().UTC(),
	}
}

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
