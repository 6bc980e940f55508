package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"CreditSentinel/internal/pipeline"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the scoring pipeline on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Ctx:      ctx,
	}
}

// Register schedules the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger / REFRESH_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] starting scheduled refresh cycle")
	report := s.Pipeline.Refresh(s.Ctx)
	for _, res := range report.Results {
		if res.Err != nil {
			log.Printf("[ERROR] refresh %s (%s): %v", res.Company.Name, res.Company.Ticker, res.Err)
		}
	}
	log.Printf("[INFO] refresh cycle complete: %d updated, %d skipped in %s",
		report.Updated(), report.Failed(), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
