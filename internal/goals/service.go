package goals

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Window задает окно агрегации для одной цели.
type Window struct {
	GoalID   int
	WalletID int
	Type     models.TransactionType
	Start    models.Date
	End      models.Date
}

// Store — чтение целей и суммирование прогресса.
type Store interface {
	ListGoals(ctx context.Context, walletID int) ([]models.Goal, error)
	GetGoal(ctx context.Context, id, walletID int) (*models.Goal, error)
	// SumProgress одним запросом суммирует транзакции по всем окнам.
	// Цели без подходящих транзакций получают ноль.
	SumProgress(ctx context.Context, windows []Window) (map[int]decimal.Decimal, error)
}

// Service считает текущий период и прогресс целей.
type Service struct {
	store Store
	today func() models.Date
}

func NewService(store Store) *Service {
	return &Service{store: store, today: models.Today}
}

// WithClock подменяет источник сегодняшней даты.
func (s *Service) WithClock(today func() models.Date) *Service {
	s.today = today
	return s
}

// Today возвращает текущую дату сервиса.
func (s *Service) Today() models.Date {
	return s.today()
}

// List возвращает цели кошелька на сегодня в порядке created_at DESC, id DESC.
func (s *Service) List(ctx context.Context, walletID int) ([]models.GoalView, error) {
	return s.ListAsOf(ctx, walletID, s.today())
}

// ListAsOf возвращает цели кошелька относительно заданной даты.
func (s *Service) ListAsOf(ctx context.Context, walletID int, reference models.Date) ([]models.GoalView, error) {
	goals, err := s.store.ListGoals(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %w", err)
	}
	return s.ComposeAll(ctx, goals, reference)
}

// Get возвращает одну цель кошелька на сегодня.
func (s *Service) Get(ctx context.Context, id, walletID int) (*models.GoalView, error) {
	goal, err := s.store.GetGoal(ctx, id, walletID)
	if err != nil {
		return nil, err
	}

	views, err := s.ComposeAll(ctx, []models.Goal{*goal}, s.today())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ComposeAll вычисляет периоды, одним обращением к хранилищу получает
// прогресс и собирает ответы в исходном порядке целей.
func (s *Service) ComposeAll(ctx context.Context, goals []models.Goal, reference models.Date) ([]models.GoalView, error) {
	if len(goals) == 0 {
		return []models.GoalView{}, nil
	}

	periods := make([]Period, len(goals))
	windows := make([]Window, len(goals))
	for i, g := range goals {
		period, err := PeriodFor(g.StartDate, g.IntervalDays, reference)
		if err != nil {
			return nil, fmt.Errorf("цель %d: %w", g.ID, err)
		}
		periods[i] = period
		windows[i] = Window{
			GoalID:   g.ID,
			WalletID: g.WalletID,
			Type:     g.Type,
			Start:    period.Start,
			End:      period.End,
		}
	}

	progress, err := s.store.SumProgress(ctx, windows)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчете прогресса целей: %w", err)
	}

	views := make([]models.GoalView, len(goals))
	for i, g := range goals {
		views[i] = Compose(g, periods[i], progress[g.ID])
	}
	return views, nil
}

// Active отбрасывает достигнутые цели.
func Active(views []models.GoalView) []models.GoalView {
	active := make([]models.GoalView, 0, len(views))
	for _, v := range views {
		if v.Status != models.GoalAchieved {
			active = append(active, v)
		}
	}
	return active
}
