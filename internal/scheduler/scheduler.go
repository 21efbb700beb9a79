package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job задача, запускаемая по расписанию
type Job interface {
	RunScheduled()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает фоновые задачи по cron-расписанию (UTC, с секундами)
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

func NewScheduler(logger Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		logger: logger,
	}
}

// Register добавляет задачу; повторный запуск пропускается, пока предыдущий не завершился
func (s *Scheduler) Register(name, spec string, job Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(job.RunScheduled))

	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("register job %s with spec %q: %w", name, spec, err)
	}

	s.logger.Info("Scheduler: job %s registered with spec %q", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting")
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop() {
	s.logger.Info("Scheduler: stopping")
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}

// Entries количество зарегистрированных задач
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
