package goals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// InvalidDateError возвращается, когда начальную дату цели нельзя разобрать.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("некорректная начальная дата цели: %q", e.Value)
}

// Period — текущий период цели, обе границы включительно.
type Period struct {
	Start models.Date
	End   models.Date
}

// Contains сообщает, попадает ли дата в период.
func (p Period) Contains(d models.Date) bool {
	return !d.Before(p.Start) && !p.End.Before(d)
}

// ParseStartDate разбирает дату вида год-месяц-день.
// Выход дня или месяца за границы нормализуется, как это делает time.Date.
func ParseStartDate(value string) (models.Date, error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 {
		return models.Date{}, &InvalidDateError{Value: value}
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return models.Date{}, &InvalidDateError{Value: value}
		}
		nums[i] = n
	}

	return models.DateOf(time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC)), nil
}

// CalculateCurrentPeriod вычисляет период для строковой начальной даты.
func CalculateCurrentPeriod(startDate string, intervalDays int, reference models.Date) (Period, error) {
	start, err := ParseStartDate(startDate)
	if err != nil {
		return Period{}, err
	}
	return PeriodFor(start, intervalDays, reference)
}

// PeriodFor возвращает период длиной intervalDays, содержащий reference.
// Если reference раньше начала, возвращается первый период.
// Интервал меньше одного дня считается равным одному дню.
func PeriodFor(start models.Date, intervalDays int, reference models.Date) (Period, error) {
	if start.IsZero() {
		return Period{}, &InvalidDateError{Value: start.String()}
	}

	interval := max(intervalDays, 1)
	start = models.DateOf(start.Time)
	reference = models.DateOf(reference.Time)

	if reference.Before(start) {
		return Period{Start: start, End: start.AddDays(interval - 1)}, nil
	}

	cycles := reference.DaysSince(start) / interval
	periodStart := start.AddDays(cycles * interval)

	return Period{Start: periodStart, End: periodStart.AddDays(interval - 1)}, nil
}
