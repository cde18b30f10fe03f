package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shakkar/app/models"
)

// scriptedStatus returns the given states in sequence and counts fetches.
type scriptedStatus struct {
	states  []models.JobState
	fetches int
}

func (s *scriptedStatus) fetch(context.Context) (models.JobState, error) {
	state := s.states[s.fetches]
	s.fetches++
	return state, nil
}

// recordingSleep counts delays without actually sleeping.
type recordingSleep struct {
	delays []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestWaitPollsUntilSucceeded(t *testing.T) {
	script := &scriptedStatus{states: []models.JobState{
		{Status: models.JobRunning},
		{Status: models.JobRunning},
		{Status: models.JobSucceeded, Output: "done"},
	}}
	slept := &recordingSleep{}

	p := NewWithSleep(2*time.Second, slept.sleep)
	state, err := p.Wait(context.Background(), "order", script.fetch)

	require.NoError(t, err)
	assert.Equal(t, models.JobSucceeded, state.Status)
	assert.Equal(t, 3, script.fetches, "RUNNING, RUNNING, SUCCEEDED is exactly three fetches")
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, slept.delays,
		"fixed delay between polls, none after the terminal poll")
}

func TestWaitTerminalFailureCarriesBackendOutput(t *testing.T) {
	for _, status := range []models.JobStatus{models.JobFailed, models.JobTimedOut, models.JobAborted} {
		script := &scriptedStatus{states: []models.JobState{
			{Status: status, Output: "inventory check failed for product p2"},
		}}

		p := NewWithSleep(time.Second, (&recordingSleep{}).sleep)
		_, err := p.Wait(context.Background(), "order", script.fetch)

		require.Error(t, err, "status %s", status)

		var term *TerminalError
		require.ErrorAs(t, err, &term)
		assert.Equal(t, status, term.Status)
		assert.Contains(t, term.Output, "inventory check failed")
	}
}

func TestWaitStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fetches := 0
	fetch := func(context.Context) (models.JobState, error) {
		fetches++
		return models.JobState{Status: models.JobRunning}, nil
	}

	// Real context-aware sleep; cancel fires during the first delay.
	p := NewWithSleep(30*time.Second, sleepCtx)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Wait(ctx, "report", fetch)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, fetches)
}

func TestWaitSurfacesFetchErrors(t *testing.T) {
	boom := errors.New("backend: status: 500")
	fetch := func(context.Context) (models.JobState, error) {
		return models.JobState{}, boom
	}

	p := NewWithSleep(time.Second, (&recordingSleep{}).sleep)
	_, err := p.Wait(context.Background(), "order", fetch)

	assert.ErrorIs(t, err, boom)
}
