// Package scheduler runs the periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"jobboard/internal/config"
	"jobboard/internal/service"
)

// Scheduler wires the maintenance jobs to their cron expressions.
type Scheduler struct {
	cron        *cron.Cron
	maintenance service.MaintenanceService
	enc         *json.Encoder
}

// New builds a Scheduler and registers the three maintenance jobs. Invalid
// cron expressions fail here rather than at first tick.
func New(cfg config.SchedulerConfig, maintenance service.MaintenanceService) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(),
		maintenance: maintenance,
		enc:         json.NewEncoder(os.Stdout),
	}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) (int64, error)
	}{
		{"expire_plans", cfg.PlanExpiry, maintenance.ExpirePlans},
		{"expire_jobs", cfg.JobExpiry, maintenance.ExpireJobs},
		{"auto_apply", cfg.AutoApply, maintenance.AutoApply},
	}
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.spec, func() { s.run(j.name, j.run) }); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
	}
	return s, nil
}

func (s *Scheduler) run(name string, job func(context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := job(ctx); err != nil {
		_ = s.enc.Encode(map[string]any{
			"time":  time.Now().UTC().Format(time.RFC3339Nano),
			"level": "error",
			"msg":   "maintenance job failed",
			"job":   name,
			"error": err.Error(),
		})
	}
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
