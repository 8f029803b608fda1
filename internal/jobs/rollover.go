package jobs

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/finance-tracker/internal/events"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// GoalLister возвращает цели всех кошельков.
type GoalLister interface {
	ListAllGoals(ctx context.Context) ([]models.Goal, error)
}

// Notifier публикует доменные события.
type Notifier interface {
	Notify(ctx context.Context, routingKey string, event any)
}

// GoalRollover находит цели, у которых сегодня начался новый период.
type GoalRollover struct {
	goals    GoalLister
	service  *goals.Service
	notifier Notifier
	logger   *log.Logger
}

func NewGoalRollover(lister GoalLister, service *goals.Service, notifier Notifier, logger *log.Logger) *GoalRollover {
	return &GoalRollover{
		goals:    lister,
		service:  service,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentJobs),
	}
}

// Run вызывается планировщиком.
func (r *GoalRollover) Run() {
	ctx := log.IntoContext(context.Background(), r.logger)
	today := r.service.Today()

	started, err := r.RunAt(ctx, today)
	if err != nil {
		r.logger.Error("ошибка обработки периодов целей", log.FieldOperation, log.OpRollover, log.FieldError, err)
		return
	}
	r.logger.Info("периоды целей обработаны", log.FieldOperation, log.OpRollover,
		"date", today.String(), log.FieldCount, len(started))
}

// RunAt возвращает цели, чей текущий период начинается в today, и
// публикует по ним события. Прогресс считается одним запросом на все цели.
func (r *GoalRollover) RunAt(ctx context.Context, today models.Date) ([]models.GoalView, error) {
	all, err := r.goals.ListAllGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %w", err)
	}

	views, err := r.service.ComposeAll(ctx, all, today)
	if err != nil {
		return nil, err
	}

	started := make([]models.GoalView, 0)
	for _, v := range views {
		if !v.CurrentPeriodStart.Equal(today) {
			continue
		}
		started = append(started, v)
		r.logger.InfoContext(ctx, "начался новый период цели",
			log.FieldGoalID, v.ID,
			log.FieldWalletID, v.WalletID,
			"period_start", v.CurrentPeriodStart.String(),
			"period_end", v.CurrentPeriodEnd.String())
		if r.notifier != nil {
			r.notifier.Notify(ctx, events.GoalPeriodStarted, events.NewGoalPeriodEvent(v))
		}
	}
	return started, nil
}
