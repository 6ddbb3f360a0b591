package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler - wraps gocron for the periodic background jobs (reminder sweep,
// average-moves refresh).
type Scheduler struct {
	logger *slog.Logger
	sched  gocron.Scheduler
}

func New(logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		logger: logger.With("component", "scheduler"),
		sched:  sched,
	}, nil
}

// AddJob - registers a named task on a fixed interval.
func (that *Scheduler) AddJob(name string, interval time.Duration, task func()) error {
	_, err := that.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	that.logger.Info("job registered", "job", name, "interval", interval.String())

	return nil
}

func (that *Scheduler) Start() {
	that.sched.Start()
}

func (that *Scheduler) Stop() error {
	if err := that.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}

	return nil
}
