package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationStatus_Lifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	s := NewGenerationStatus()
	assert.Equal(t, GenerationStateIdle, s.State)
	assert.False(t, s.InFlight())
	assert.False(t, s.Settled())

	require.NoError(t, s.Begin(now))
	assert.True(t, s.InFlight())
	assert.Equal(t, now, s.StartedAt)
	assert.ErrorIs(t, s.Begin(now), ErrGenerationInFlight, "second Begin must be rejected")

	require.NoError(t, s.Succeed(now.Add(time.Second)))
	assert.Equal(t, GenerationStateSucceeded, s.State)
	assert.True(t, s.Settled())
	assert.False(t, s.InFlight())
	assert.Empty(t, s.Error)

	// A settled request can be retried
	require.NoError(t, s.Begin(now.Add(2*time.Second)))
	require.NoError(t, s.Fail(now.Add(3*time.Second), errors.New("processing error: boom")))
	assert.Equal(t, GenerationStateFailed, s.State)
	assert.Equal(t, "processing error: boom", s.Error)

	// Begin clears the previous outcome
	require.NoError(t, s.Begin(now.Add(4*time.Second)))
	assert.Empty(t, s.Error)
	assert.True(t, s.FinishedAt.IsZero())
}

func TestGenerationStatus_SettleWithoutBegin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		settle func(*GenerationStatus) error
	}{
		{
			name:   "succeed_from_idle",
			settle: func(s *GenerationStatus) error { return s.Succeed(time.Now()) },
		},
		{
			name:   "fail_from_idle",
			settle: func(s *GenerationStatus) error { return s.Fail(time.Now(), errors.New("x")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGenerationStatus()
			err := tt.settle(&s)
			assert.ErrorIs(t, err, ErrGenerationNotInFlight)
			assert.Equal(t, GenerationStateIdle, s.State)
		})
	}
}
