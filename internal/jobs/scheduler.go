package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/finance-tracker/internal/cache"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
)

// Scheduler запускает фоновые задачи по расписанию cron в UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
}

func NewScheduler(logger *log.Logger) *Scheduler {
	logger = logger.WithComponent(log.ComponentJobs)
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Add регистрирует задачу. spec задается выражением cron из пяти полей или дескриптором.
func (s *Scheduler) Add(name, spec string, job cron.Job) error {
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return err
	}
	s.logger.Info("задача запланирована", "job", name, "schedule", spec, "entry_id", int(id))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("задачи не завершились до остановки", log.FieldError, ctx.Err())
	}
}

// CacheSweep удаляет просроченные записи из кэшей.
func CacheSweep(logger *log.Logger, cleaners ...cache.Cleaner) cron.Job {
	logger = logger.WithComponent(log.ComponentCache)
	return cron.FuncJob(func() {
		removed := 0
		for _, c := range cleaners {
			removed += c.CleanExpired()
		}
		if removed > 0 {
			logger.Debug("просроченные записи удалены", log.FieldCount, removed)
		}
	})
}

// cronLogger передает сообщения cron в slog.
type cronLogger struct {
	logger *log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, log.FieldError, err)...)
}
