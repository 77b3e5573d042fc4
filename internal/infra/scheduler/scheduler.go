package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Pacer waits between poll cycles according to a cron schedule.
type Pacer struct {
	schedule cron.Schedule
	now      func() time.Time
	logger   *logrus.Entry
}

// NewPacer returns a Pacer that fires every period.
func NewPacer(period time.Duration, logger *logrus.Entry) *Pacer {
	return NewSchedulePacer(cron.Every(period), logger)
}

// NewSchedulePacer returns a Pacer driven by an arbitrary cron schedule,
// e.g. one parsed with cron.ParseStandard.
func NewSchedulePacer(schedule cron.Schedule, logger *logrus.Entry) *Pacer {
	return &Pacer{
		schedule: schedule,
		now:      time.Now,
		logger:   logger.WithField("component", "pacer"),
	}
}

// Next returns the time the next cycle is due.
func (p *Pacer) Next() time.Time {
	return p.schedule.Next(p.now())
}

// Wait blocks until the next scheduled time or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	next := p.Next()
	delay := next.Sub(p.now())
	p.logger.WithField("next_cycle", next.Format(time.RFC3339)).Debug("Waiting for next poll cycle")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
