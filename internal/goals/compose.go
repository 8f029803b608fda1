package goals

import (
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// MaxProgressPercentage ограничивает процент выполнения цели.
const MaxProgressPercentage = 999

var hundred = decimal.NewFromInt(100)

// Compose собирает ответ по цели из периода и накопленной суммы.
// Округление до копеек делается только здесь.
func Compose(goal models.Goal, period Period, progress decimal.Decimal) models.GoalView {
	remaining := goal.TargetAmount.Sub(progress)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	status := models.GoalInProgress
	if progress.GreaterThanOrEqual(goal.TargetAmount) {
		status = models.GoalAchieved
	}

	return models.GoalView{
		Goal:               goal,
		CurrentPeriodStart: period.Start,
		CurrentPeriodEnd:   period.End,
		ProgressAmount:     models.RoundMoney(progress),
		ProgressPercentage: Percentage(progress, goal.TargetAmount),
		RemainingAmount:    models.RoundMoney(remaining),
		Status:             status,
	}
}

// Percentage возвращает round(progress/target*100), не больше 999.
// При неположительной цели результат 0.
func Percentage(progress, target decimal.Decimal) int {
	if !target.IsPositive() {
		return 0
	}

	ratio := progress.Div(target).Mul(hundred).Round(0)
	if ratio.GreaterThan(decimal.NewFromInt(MaxProgressPercentage)) {
		return MaxProgressPercentage
	}
	return int(ratio.IntPart())
}
