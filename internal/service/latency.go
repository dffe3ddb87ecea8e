package service

import (
	"context"
	"time"
)

// Latency is the artificial pause before a scored assessment is released.
// Wait returns ctx.Err() if the caller goes away first.
type Latency interface {
	Wait(ctx context.Context) error
}

type fixedLatency struct {
	duration time.Duration
}

// NewLatency returns a Latency that sleeps for d. A zero duration only
// checks ctx.
func NewLatency(d time.Duration) Latency {
	return &fixedLatency{duration: d}
}

func (l *fixedLatency) Wait(ctx context.Context) error {
	if l.duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(l.duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
