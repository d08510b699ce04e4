package notify

import (
	log "github.com/sirupsen/logrus"
)

// Notification is a rendered reminder ready for delivery.
type Notification struct {
	TaskID     uint
	Title      string
	Message    string
	IsPreAlarm bool
}

// Notifier delivers a reminder to the user. Implementations render the
// alert; callers treat delivery as best effort.
type Notifier interface {
	Notify(n Notification) error
}

// LogNotifier writes reminders to the process log. It is the fallback
// sink when no external channel is configured.
type LogNotifier struct{}

func NewLog() *LogNotifier { return &LogNotifier{} }

func (*LogNotifier) Notify(n Notification) error {
	log.WithFields(log.Fields{
		"task_id":   n.TaskID,
		"pre_alarm": n.IsPreAlarm,
	}).Info(n.Message)
	return nil
}
