package reminder

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"drytodo/internal/notify"
)

// TimerScheduler fires triggers in process with time.Timer and hands
// them to a notification sink. Enqueueing a tag supersedes any pending
// trigger under the same tag.
type TimerScheduler struct {
	notifier notify.Notifier

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerScheduler(notifier notify.Notifier) *TimerScheduler {
	return &TimerScheduler{
		notifier: notifier,
		timers:   make(map[string]*time.Timer),
	}
}

func (s *TimerScheduler) Enqueue(tag string, delay time.Duration, trigger Trigger) error {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.timers[tag]; ok {
		existing.Stop()
	}
	s.timers[tag] = time.AfterFunc(delay, func() {
		s.fire(tag, trigger)
	})
	return nil
}

func (s *TimerScheduler) CancelByTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[tag]; ok {
		t.Stop()
		delete(s.timers, tag)
	}
}

// Stop retracts every pending trigger.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tag, t := range s.timers {
		t.Stop()
		delete(s.timers, tag)
	}
}

func (s *TimerScheduler) fire(tag string, trigger Trigger) {
	s.mu.Lock()
	delete(s.timers, tag)
	s.mu.Unlock()

	n := notify.Notification{
		TaskID:     trigger.TaskID,
		Title:      trigger.Title,
		Message:    trigger.Message,
		IsPreAlarm: trigger.IsPreAlarm,
	}
	if err := s.notifier.Notify(n); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"task_id": trigger.TaskID,
			"tag":     tag,
		}).Error("deliver reminder")
	}
}
