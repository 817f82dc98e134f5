package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/store"
)

// Scheduler periodically re-runs the weather fetch for the active
// location so the dashboard stays fresh between user actions. The
// gateway's response cache bounds how often the network is actually
// touched.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *store.Store
	interval  time.Duration
}

// New creates a refresh scheduler. A non-positive interval disables it.
func New(st *store.Store, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     st,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		loc, ok := s.store.CurrentLocation()
		if !ok {
			return
		}

		log.Printf("scheduler: refreshing weather for %s", loc.Name)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.store.FetchWeather(ctx, loc.Latitude, loc.Longitude, "auto", &loc)
		if msg := s.store.Err(); msg != "" {
			log.Printf("scheduler: refresh failed for %s: %s", loc.Name, msg)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop cancels any future refresh jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
