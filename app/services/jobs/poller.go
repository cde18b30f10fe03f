// Package jobs drives the backend's asynchronous job pattern: submit, then
// poll a status endpoint at a fixed interval until a terminal state arrives.
//
// There is deliberately no poll ceiling and no backoff. The caller's request
// context is the liveness guard: a visitor navigating away cancels the
// context, which stops the loop.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/metrics"
)

// StatusFunc fetches the current state of a job.
type StatusFunc func(ctx context.Context) (models.JobState, error)

// TerminalError is returned when a job finishes in a non-success state. It
// carries the backend's output message verbatim for the error page.
type TerminalError struct {
	Status models.JobStatus
	Output string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("jobs: job finished %s: %s", e.Status, e.Output)
}

// Poller repeatedly checks a job's status until it is terminal.
type Poller struct {
	// Interval between polls. Zero means the configured default (2s).
	Interval time.Duration

	// sleep is swappable so tests can run without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a Poller with the configured poll interval.
func New() *Poller {
	return &Poller{Interval: config.PollInterval(), sleep: sleepCtx}
}

// NewWithSleep returns a Poller whose delay function is supplied by the
// caller. Tests pass a recording stub.
func NewWithSleep(interval time.Duration, sleep func(ctx context.Context, d time.Duration) error) *Poller {
	return &Poller{Interval: interval, sleep: sleep}
}

// Wait polls fetch until the job reaches a terminal status.
//   - SUCCEEDED returns the final state.
//   - FAILED, TIMED_OUT and ABORTED return a *TerminalError with the
//     backend output.
//   - A cancelled context or a fetch error aborts the loop.
//
// The first fetch happens immediately; the delay sits between polls.
func (p *Poller) Wait(ctx context.Context, kind string, fetch StatusFunc) (models.JobState, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = config.PollInterval()
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for {
		state, err := fetch(ctx)
		if err != nil {
			metrics.RecordJob(kind, "fetch_error")
			return state, err
		}

		if state.Status.IsTerminal() {
			metrics.RecordJob(kind, string(state.Status))
			if state.Status == models.JobSucceeded {
				return state, nil
			}
			logger.Warn("job finished in failure state",
				"kind", kind, "status", state.Status, "output", state.Output)
			return state, &TerminalError{Status: state.Status, Output: state.Output}
		}

		metrics.JobPolls.WithLabelValues(kind).Inc()
		if err := sleep(ctx, interval); err != nil {
			return state, err
		}
	}
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
