package monitoring

import (
	"time"

	"github.com/hwigle/reactStudy/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Retention periodically purges audit events and chat history older
// than the configured maximum age.
type Retention struct {
	eventSvc services.EventServiceProvider
	chatSvc  services.ChatServiceProvider
	schedule cron.Schedule
	maxAge   time.Duration
	done     chan bool
}

// NewRetention creates a retention job from a standard cron expression
// and a maximum record age.
func NewRetention(eventSvc services.EventServiceProvider, chatSvc services.ChatServiceProvider, cronExpr string, maxAge time.Duration) (*Retention, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Retention{
		eventSvc: eventSvc,
		chatSvc:  chatSvc,
		schedule: schedule,
		maxAge:   maxAge,
		done:     make(chan bool),
	}, nil
}

// Run starts the retention loop. It blocks until Stop is called.
func (r *Retention) Run() {
	log.Info().Msg("Starting retention job")
	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping retention job")
			return
		case <-timer.C:
			r.purge()
		}
	}
}

// Stop halts the retention loop.
func (r *Retention) Stop() {
	r.done <- true
}

// purge removes records older than the retention window.
func (r *Retention) purge() {
	cutoff := time.Now().Add(-r.maxAge)

	if n, err := r.eventSvc.PurgeOlderThan(cutoff); err != nil {
		log.Error().Err(err).Msg("Failed to purge old events")
	} else if n > 0 {
		log.Info().Int64("purged", n).Msg("Purged old events")
	}

	if n, err := r.chatSvc.PurgeOlderThan(cutoff); err != nil {
		log.Error().Err(err).Msg("Failed to purge old chat messages")
	} else if n > 0 {
		log.Info().Int64("purged", n).Msg("Purged old chat messages")
	}
}
