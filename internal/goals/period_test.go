package goals

import (
	"errors"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("ошибка разбора даты %q: %v", s, err)
	}
	return d
}

func TestCalculateCurrentPeriod(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		interval  int
		reference string
		wantStart string
		wantEnd   string
	}{
		{"первый период", "2024-01-01", 30, "2024-01-15", "2024-01-01", "2024-01-30"},
		{"второй период в високосном году", "2024-01-01", 30, "2024-02-05", "2024-01-31", "2024-02-29"},
		{"второй период в обычном году", "2023-01-01", 30, "2023-02-05", "2023-01-31", "2023-03-01"},
		{"дата раньше начала", "2024-03-11", 7, "2024-03-01", "2024-03-11", "2024-03-17"},
		{"совпадает с началом", "2024-03-11", 7, "2024-03-11", "2024-03-11", "2024-03-17"},
		{"последний день периода", "2024-03-11", 7, "2024-03-17", "2024-03-11", "2024-03-17"},
		{"первый день следующего периода", "2024-03-11", 7, "2024-03-18", "2024-03-18", "2024-03-24"},
		{"интервал в один день", "2024-01-01", 1, "2024-06-15", "2024-06-15", "2024-06-15"},
		{"интервал ноль", "2024-01-01", 0, "2024-01-05", "2024-01-05", "2024-01-05"},
		{"отрицательный интервал", "2024-01-01", -10, "2024-01-05", "2024-01-05", "2024-01-05"},
		{"через границу года", "2023-12-20", 14, "2024-01-05", "2024-01-03", "2024-01-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCurrentPeriod(tt.start, tt.interval, date(t, tt.reference))
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if got.Start.String() != tt.wantStart || got.End.String() != tt.wantEnd {
				t.Errorf("получили [%s, %s], хотели [%s, %s]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCalculateCurrentPeriodBeforeStart(t *testing.T) {
	start := date(t, "2024-05-20")
	reference := start.AddDays(-10)

	got, err := PeriodFor(start, 30, reference)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !got.Start.Equal(start) {
		t.Errorf("начало периода %s, хотели %s", got.Start, start)
	}
	if want := start.AddDays(29); !got.End.Equal(want) {
		t.Errorf("конец периода %s, хотели %s", got.End, want)
	}
}

func TestCalculateCurrentPeriodInvalidDate(t *testing.T) {
	reference := date(t, "2024-01-01")
	for _, value := range []string{"", "abc", "2024-01", "2024-xx-01", "2024/01/01", "2024-01-01-01"} {
		_, err := CalculateCurrentPeriod(value, 30, reference)
		var dateErr *InvalidDateError
		if !errors.As(err, &dateErr) {
			t.Errorf("для %q ожидали InvalidDateError, получили %v", value, err)
		}
	}

	_, err := PeriodFor(models.Date{}, 30, reference)
	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Errorf("для нулевой даты ожидали InvalidDateError, получили %v", err)
	}
}

func TestPeriodForLongSpans(t *testing.T) {
	tests := []struct {
		start     models.Date
		interval  int
		reference models.Date
		wantStart string
	}{
		{models.NewDate(1700, time.January, 1), 1, models.NewDate(2026, time.October, 19), "2026-10-19"},
		{models.NewDate(2024, time.January, 1), 1, models.NewDate(2400, time.January, 1), "2400-01-01"},
		{models.NewDate(1600, time.March, 1), 7, models.NewDate(2024, time.March, 11), "2024-03-06"},
	}

	for _, tt := range tests {
		got, err := PeriodFor(tt.start, tt.interval, tt.reference)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if !got.Contains(tt.reference) {
			t.Errorf("период [%s, %s] не содержит %s", got.Start, got.End, tt.reference)
		}
		if got.Start.String() != tt.wantStart {
			t.Errorf("начало периода %s, хотели %s", got.Start, tt.wantStart)
		}
	}
}

func TestParseStartDateNormalizes(t *testing.T) {
	got, err := ParseStartDate("2023-02-30")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.String() != "2023-03-02" {
		t.Errorf("получили %s, хотели 2023-03-02", got)
	}
}

func TestPeriodProperties(t *testing.T) {
	starts := []models.Date{
		models.NewDate(2020, time.February, 29),
		models.NewDate(2023, time.December, 31),
		models.NewDate(2024, time.July, 4),
	}

	for _, start := range starts {
		for interval := 1; interval <= 45; interval += 4 {
			for offset := -20; offset <= 400; offset += 7 {
				reference := start.AddDays(offset)

				got, err := PeriodFor(start, interval, reference)
				if err != nil {
					t.Fatalf("неожиданная ошибка: %v", err)
				}
				again, _ := PeriodFor(start, interval, reference)
				if got != again {
					t.Fatalf("повторный вызов дал другой результат: %v и %v", got, again)
				}

				if length := got.End.DaysSince(got.Start); length != interval-1 {
					t.Fatalf("длина периода %d, хотели %d (start=%s interval=%d ref=%s)",
						length, interval-1, start, interval, reference)
				}

				if offset < 0 {
					if !got.Start.Equal(start) {
						t.Fatalf("до начала цели период должен начинаться с %s, получили %s", start, got.Start)
					}
					continue
				}

				if !got.Contains(reference) {
					t.Fatalf("период [%s, %s] не содержит %s", got.Start, got.End, reference)
				}
				if shift := got.Start.DaysSince(start); shift < 0 || shift%interval != 0 {
					t.Fatalf("начало периода %s не кратно интервалу %d от %s", got.Start, interval, start)
				}
			}
		}
	}
}
