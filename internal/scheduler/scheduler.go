package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

// Refresher re-runs the comparison on a fixed interval for watch mode. Every
// tick is an independent run against that tick's own UTC date; nothing is
// carried over between runs.
type Refresher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	location  string
	interval  time.Duration
	render    func(*weather.Report, error)
}

// New creates a Refresher that reports each run's outcome through render.
func New(location string, interval time.Duration, service *weather.Service, render func(*weather.Report, error)) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		location:  location,
		interval:  interval,
		render:    render,
	}
}

// Start schedules the periodic run and starts the underlying scheduler.
// The first run fires immediately.
func (r *Refresher) Start() error {
	interval := r.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	_, err := r.scheduler.Every(interval).StartImmediately().Do(func() {
		slog.Debug("watch tick", "location", r.location)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		rep, err := r.service.BuildReport(ctx, r.location, time.Now().UTC())
		if err != nil {
			slog.Warn("watch run failed", "location", r.location, "error", err)
		}
		r.render(rep, err)
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
