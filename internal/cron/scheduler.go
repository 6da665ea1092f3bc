package cron

import (
	"context"
	"sync"
	"time"

	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/service"
)

// Scheduler runs the in-process background jobs. The HTTP cron endpoints
// remain available for external schedulers; this ticker covers deployments
// without one.
type Scheduler struct {
	cfg           *config.Configuration
	log           *logger.Logger
	subscriptions service.SubscriptionService

	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(cfg *config.Configuration, log *logger.Logger, subscriptions service.SubscriptionService) *Scheduler {
	return &Scheduler{
		cfg:           cfg,
		log:           log,
		subscriptions: subscriptions,
	}
}

// Start launches the hourly and daily sweep loops. The two loops race on the
// same idempotent predicate, which is harmless; the daily pass only matters
// when the hourly one is misconfigured or stalled. No-op when the sweeper is
// disabled.
func (s *Scheduler) Start() {
	if !s.cfg.Sweeper.Enabled {
		s.log.Infow("subscription sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	hourly := s.cfg.Sweeper.HourlyInterval
	if hourly <= 0 {
		hourly = time.Hour
	}
	daily := s.cfg.Sweeper.DailyInterval
	if daily <= 0 {
		daily = 24 * time.Hour
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go s.run(ctx, &wg, hourly, true)
	go s.run(ctx, &wg, daily, false)
	go func() {
		wg.Wait()
		close(s.done)
	}()
	s.log.Infow("subscription sweeper started",
		"hourly_interval", hourly, "daily_interval", daily)
}

// Stop terminates both loops and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Scheduler) run(ctx context.Context, wg *sync.WaitGroup, interval time.Duration, sweepOnStart bool) {
	defer wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One sweep at startup so a long-stopped deployment catches up
	// immediately instead of waiting a full interval. Only the hourly loop
	// does this; a second startup sweep buys nothing.
	if sweepOnStart {
		s.sweep(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	expired, err := s.subscriptions.SweepExpired(ctx)
	if err != nil {
		s.log.Errorw("scheduled subscription sweep failed", "error", err)
		return
	}
	if expired > 0 {
		s.log.Infow("scheduled subscription sweep completed", "expired", expired)
	}
}
