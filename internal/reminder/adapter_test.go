package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drytodo/internal/clock"
	"drytodo/internal/notify"
)

type notifierFunc func(taskID uint, title, message string, pre bool) error

func (f notifierFunc) Notify(n notify.Notification) error {
	return f(n.TaskID, n.Title, n.Message, n.IsPreAlarm)
}

type enqueueCall struct {
	Tag     string
	Delay   time.Duration
	Trigger Trigger
}

type schedulerRecorder struct {
	mu        sync.Mutex
	enqueued  []enqueueCall
	cancelled []string
}

func (s *schedulerRecorder) Enqueue(tag string, delay time.Duration, trigger Trigger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueued = append(s.enqueued, enqueueCall{Tag: tag, Delay: delay, Trigger: trigger})
	return nil
}

func (s *schedulerRecorder) CancelByTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, tag)
}

var adapterNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestAdapter(t *testing.T) (*Adapter, *schedulerRecorder) {
	t.Helper()
	rec := &schedulerRecorder{}
	return NewAdapter(rec, clock.NewFake(adapterNow), DefaultPreAlarmLead), rec
}

func TestSchedule_PairWhenFarEnoughOut(t *testing.T) {
	a, rec := newTestAdapter(t)

	err := a.Schedule(context.Background(), 5, "standup", adapterNow.Add(20*time.Minute))
	require.NoError(t, err)
	require.Len(t, rec.enqueued, 2)

	pre := rec.enqueued[0]
	assert.Equal(t, "task_pre_5", pre.Tag)
	assert.Equal(t, 10*time.Minute, pre.Delay)
	assert.True(t, pre.Trigger.IsPreAlarm)
	assert.Contains(t, pre.Trigger.Message, "10 minutes")
	assert.Contains(t, pre.Trigger.Message, "standup")

	onTime := rec.enqueued[1]
	assert.Equal(t, "task_5", onTime.Tag)
	assert.Equal(t, 20*time.Minute, onTime.Delay)
	assert.False(t, onTime.Trigger.IsPreAlarm)
	assert.Contains(t, onTime.Trigger.Message, "standup")
}

func TestSchedule_OnlyOnTimeWhenPreAlarmPassed(t *testing.T) {
	a, rec := newTestAdapter(t)

	err := a.Schedule(context.Background(), 5, "standup", adapterNow.Add(5*time.Minute))
	require.NoError(t, err)
	require.Len(t, rec.enqueued, 1)
	assert.Equal(t, "task_5", rec.enqueued[0].Tag)
	assert.Equal(t, 5*time.Minute, rec.enqueued[0].Delay)
	assert.False(t, rec.enqueued[0].Trigger.IsPreAlarm)
}

func TestSchedule_PastInstantClampsToNow(t *testing.T) {
	a, rec := newTestAdapter(t)

	err := a.Schedule(context.Background(), 5, "standup", adapterNow.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, rec.enqueued, 1)
	assert.Zero(t, rec.enqueued[0].Delay, "fires immediately rather than being rejected")
}

func TestCancel_RetractsBothTags(t *testing.T) {
	a, rec := newTestAdapter(t)

	a.Cancel(5)
	assert.ElementsMatch(t, []string{"task_5", "task_pre_5"}, rec.cancelled)
}

func TestTimerScheduler_FiresAndSupersedes(t *testing.T) {
	fired := make(chan Trigger, 4)
	s := NewTimerScheduler(notifierFunc(func(taskID uint, title, message string, pre bool) error {
		fired <- Trigger{TaskID: taskID, Title: title, Message: message, IsPreAlarm: pre}
		return nil
	}))
	defer s.Stop()

	// Second enqueue under the same tag supersedes the first.
	require.NoError(t, s.Enqueue("task_1", time.Hour, Trigger{TaskID: 1, Message: "stale"}))
	require.NoError(t, s.Enqueue("task_1", time.Millisecond, Trigger{TaskID: 1, Message: "fresh"}))

	select {
	case got := <-fired:
		assert.Equal(t, "fresh", got.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("trigger did not fire")
	}

	select {
	case got := <-fired:
		t.Fatalf("superseded trigger fired: %q", got.Message)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimerScheduler_CancelStopsPending(t *testing.T) {
	fired := make(chan Trigger, 1)
	s := NewTimerScheduler(notifierFunc(func(taskID uint, title, message string, pre bool) error {
		fired <- Trigger{TaskID: taskID}
		return nil
	}))
	defer s.Stop()

	require.NoError(t, s.Enqueue("task_2", 20*time.Millisecond, Trigger{TaskID: 2}))
	s.CancelByTag("task_2")
	// Cancelling an unknown tag is not an error.
	s.CancelByTag("task_99")

	select {
	case <-fired:
		t.Fatal("cancelled trigger fired")
	case <-time.After(100 * time.Millisecond):
	}
}
