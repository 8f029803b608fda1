package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout — формат календарной даты в API и в базе.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date — календарная дата в полночь UTC.
type Date struct {
	time.Time
}

// NewDate строит дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время суток, оставляя календарный день в UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today возвращает сегодняшнюю дату по UTC.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate строго разбирает дату в формате YYYY-MM-DD.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("некорректная дата %q: %w", value, err)
	}
	return DateOf(t), nil
}

// AddDays сдвигает дату на n календарных дней.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DaysSince возвращает число целых дней от other до d.
// Считается через Unix-секунды: time.Duration ограничен примерно 292 годами.
func (d Date) DaysSince(other Date) int {
	return int((d.Unix() - other.Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
