package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTimeout бюджет одного прохода, если в конфигурации не задан
const DefaultTimeout = 55 * time.Second

// Scheduler периодически запускает проход по просроченным бронированиям
// Пересекающиеся запуски пропускаются, паника в проходе не останавливает расписание
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	logger  Logger
}

// New создает планировщик с расписанием spec (стандартный cron или дескриптор вида "@every 1m")
func New(spec string, timeout time.Duration, sweeper Sweeper, logger Logger) (*Scheduler, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	adapter := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(adapter),
			// Recover внутри SkipIfStillRunning: паника не удерживает токен запуска
			cron.WithChain(
				cron.SkipIfStillRunning(adapter),
				cron.Recover(adapter),
			),
		),
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSpec, spec, err)
	}

	return s, nil
}

// ValidateSpec проверяет расписание без создания планировщика
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSpec, spec, err)
	}
	return nil
}

// Start запускает расписание в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started (timeout=%s)", s.timeout)
}

// Stop останавливает расписание и ждет завершения текущего прохода или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, running sweep abandoned")
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.sweeper.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: sweep failed: %v", err)
		return
	}

	if result.Total() > 0 {
		s.logger.Info("Scheduler: sweep done (completed=%d, cancelled=%d, skipped=%d, failed=%d)",
			result.Completed, result.Cancelled, result.Skipped, result.Failed)
	}
}
