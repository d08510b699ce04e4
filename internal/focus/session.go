// Package focus implements the Pomodoro-style focus timer.
package focus

import (
	"fmt"
	"time"

	"drytodo/internal/clock"
)

// DefaultDuration is the classic Pomodoro length.
const DefaultDuration = 25 * time.Minute

// State is the session's lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateFinished:
		return "FINISHED"
	default:
		return "IDLE"
	}
}

// Session is a single countdown, optionally attached to a task. Time
// comes from the injected clock; callers poll Remaining or Tick on
// their own cadence.
type Session struct {
	clock     clock.Clock
	taskID    *uint
	total     time.Duration
	remaining time.Duration
	startedAt time.Time
	state     State
}

// NewSession creates an idle session. A non-positive duration falls
// back to the default 25 minutes.
func NewSession(clk clock.Clock, total time.Duration) *Session {
	if total <= 0 {
		total = DefaultDuration
	}
	return &Session{clock: clk, total: total, remaining: total, state: StateIdle}
}

// AttachTask associates the session with a task for completion
// hand-off when the countdown ends.
func (s *Session) AttachTask(taskID uint) {
	s.taskID = &taskID
}

// TaskID returns the attached task, if any.
func (s *Session) TaskID() (uint, bool) {
	if s.taskID == nil {
		return 0, false
	}
	return *s.taskID, true
}

// Start begins or resumes the countdown.
func (s *Session) Start() error {
	switch s.state {
	case StateRunning:
		return fmt.Errorf("session already running")
	case StateFinished:
		return fmt.Errorf("session finished, reset first")
	}
	s.startedAt = s.clock.Now()
	s.state = StateRunning
	return nil
}

// Pause freezes the countdown.
func (s *Session) Pause() error {
	if s.state != StateRunning {
		return fmt.Errorf("session not running")
	}
	s.remaining = s.Remaining()
	s.state = StatePaused
	return nil
}

// Reset returns the session to idle with a fresh duration. Zero keeps
// the current total.
func (s *Session) Reset(total time.Duration) {
	if total > 0 {
		s.total = total
	}
	s.remaining = s.total
	s.state = StateIdle
}

// Remaining reports the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	if s.state != StateRunning {
		return s.remaining
	}
	left := s.remaining - s.clock.Now().Sub(s.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Total returns the configured countdown length.
func (s *Session) Total() time.Duration {
	return s.total
}

// State reports the current phase, accounting for elapsed time.
func (s *Session) State() State {
	if s.state == StateRunning && s.Remaining() == 0 {
		return StateFinished
	}
	return s.state
}

// Tick advances the session's bookkeeping and reports whether the
// countdown ended on this call. The transition to finished fires once.
func (s *Session) Tick() bool {
	if s.state != StateRunning {
		return false
	}
	if s.Remaining() > 0 {
		return false
	}
	s.remaining = 0
	s.state = StateFinished
	return true
}
