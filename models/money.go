package models

import "github.com/shopspring/decimal"

// TransactionType — тип операции: доход или расход.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid проверяет, что тип равен income или expense.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func init() {
	// Суммы отдаются в JSON числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxAmount — первая сумма, которая не помещается в NUMERIC(14, 2).
var MaxAmount = decimal.New(1, 12)

// AmountFits проверяет, что сумма хранится без округления:
// не больше двух знаков после запятой и меньше MaxAmount по модулю.
func AmountFits(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(MaxAmount)
}

// RoundMoney округляет денежную сумму до копеек.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
