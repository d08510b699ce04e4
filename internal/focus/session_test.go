package focus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drytodo/internal/clock"
)

var sessionStart = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestSession_DefaultsToTwentyFiveMinutes(t *testing.T) {
	s := NewSession(clock.NewFake(sessionStart), 0)
	assert.Equal(t, DefaultDuration, s.Total())
	assert.Equal(t, DefaultDuration, s.Remaining())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_CountsDownWithClock(t *testing.T) {
	clk := clock.NewFake(sessionStart)
	s := NewSession(clk, 10*time.Minute)

	require.NoError(t, s.Start())
	clk.Advance(4 * time.Minute)
	assert.Equal(t, 6*time.Minute, s.Remaining())
	assert.Equal(t, StateRunning, s.State())
}

func TestSession_PauseFreezesRemaining(t *testing.T) {
	clk := clock.NewFake(sessionStart)
	s := NewSession(clk, 10*time.Minute)

	require.NoError(t, s.Start())
	clk.Advance(3 * time.Minute)
	require.NoError(t, s.Pause())

	clk.Advance(30 * time.Minute)
	assert.Equal(t, 7*time.Minute, s.Remaining())
	assert.Equal(t, StatePaused, s.State())

	require.NoError(t, s.Start())
	clk.Advance(time.Minute)
	assert.Equal(t, 6*time.Minute, s.Remaining())
}

func TestSession_FinishesOnce(t *testing.T) {
	clk := clock.NewFake(sessionStart)
	s := NewSession(clk, 10*time.Minute)

	require.NoError(t, s.Start())
	assert.False(t, s.Tick())

	clk.Advance(11 * time.Minute)
	assert.Zero(t, s.Remaining())
	assert.True(t, s.Tick(), "transition fires on the tick that crosses zero")
	assert.False(t, s.Tick(), "and only once")
	assert.Equal(t, StateFinished, s.State())

	assert.Error(t, s.Start(), "finished session must be reset first")
}

func TestSession_Reset(t *testing.T) {
	clk := clock.NewFake(sessionStart)
	s := NewSession(clk, 10*time.Minute)

	require.NoError(t, s.Start())
	clk.Advance(11 * time.Minute)
	s.Tick()

	s.Reset(15 * time.Minute)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 15*time.Minute, s.Remaining())
}

func TestSession_DoubleStart(t *testing.T) {
	s := NewSession(clock.NewFake(sessionStart), 10*time.Minute)
	require.NoError(t, s.Start())
	assert.Error(t, s.Start())
}

func TestSession_AttachTask(t *testing.T) {
	s := NewSession(clock.NewFake(sessionStart), 0)

	_, ok := s.TaskID()
	assert.False(t, ok)

	s.AttachTask(7)
	id, ok := s.TaskID()
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}
