package scheduler

import (
	"context"
	"errors"
	"parcels/internal/metrics"
	"parcels/internal/rate"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RateRefreshJobName   = "refresh-usd-rate"
	RecalculationJobName = "recalculate-delivery-costs"

	defaultRateRefreshInterval   = 5 * time.Minute
	defaultRecalculationInterval = time.Minute
)

var ErrNotStarted = errors.New("scheduler is not started")

type Recalculator interface {
	Run(ctx context.Context, execID string) (int, error)
}

type Config struct {
	RateRefreshInterval   time.Duration
	RecalculationInterval time.Duration
	// RefreshOnStart runs the rate refresh right after Start instead of waiting a full interval.
	RefreshOnStart bool
}

// Scheduler runs the rate refresh and the delivery cost recalculation periodically and on
// demand. Each job runs at most once at a time.
type Scheduler struct {
	rates        rate.Refresher
	recalculator Recalculator
	cfg          Config
	// -----
	mu         sync.Mutex
	sched      gocron.Scheduler
	refreshJob gocron.Job
	recalcJob  gocron.Job
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched != nil {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	refreshOpts := []gocron.JobOption{
		gocron.WithName(RateRefreshJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if s.cfg.RefreshOnStart {
		refreshOpts = append(refreshOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	refreshJob, err := scheduler.NewJob(
		gocron.DurationJob(s.cfg.RateRefreshInterval),
		gocron.NewTask(s.refreshRate),
		refreshOpts...,
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	recalcJob, err := scheduler.NewJob(
		gocron.DurationJob(s.cfg.RecalculationInterval),
		gocron.NewTask(s.recalculate),
		gocron.WithName(RecalculationJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	scheduler.Start()
	s.sched, s.refreshJob, s.recalcJob = scheduler, refreshJob, recalcJob

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// TriggerRateRefresh queues an immediate rate refresh and returns without waiting for it.
func (s *Scheduler) TriggerRateRefresh() error {
	return s.runNow(func() gocron.Job { return s.refreshJob })
}

// TriggerRecalculation queues an immediate recalculation and returns without waiting for it.
func (s *Scheduler) TriggerRecalculation() error {
	return s.runNow(func() gocron.Job { return s.recalcJob })
}

func (s *Scheduler) runNow(pick func() gocron.Job) error {
	s.mu.Lock()
	job := pick()
	s.mu.Unlock()

	if job == nil {
		return ErrNotStarted
	}
	return job.RunNow()
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched, s.refreshJob, s.recalcJob = nil, nil, nil
	return err
}

func (s *Scheduler) refreshRate(jobCtx context.Context) {
	execID := uuid.NewString()
	defer observe(RateRefreshJobName, time.Now())

	if err := rate.RefreshUSDRate(jobCtx, execID, s.rates); err != nil {
		logrus.Errorf("Refresh usd rate job %s failed: %v", execID, err)
	}
}

func (s *Scheduler) recalculate(jobCtx context.Context) {
	execID := uuid.NewString()
	defer observe(RecalculationJobName, time.Now())

	if _, err := s.recalculator.Run(jobCtx, execID); err != nil {
		logrus.Errorf("Recalculate delivery costs job %s failed: %v", execID, err)
	}
}

func observe(job string, start time.Time) {
	metrics.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

func NewScheduler(rates rate.Refresher, recalculator Recalculator, cfg Config) *Scheduler {
	if cfg.RateRefreshInterval <= 0 {
		cfg.RateRefreshInterval = defaultRateRefreshInterval
	}
	if cfg.RecalculationInterval <= 0 {
		cfg.RecalculationInterval = defaultRecalculationInterval
	}
	return &Scheduler{rates: rates, recalculator: recalculator, cfg: cfg}
}
