// Package notify is the notification sink: transient (severity, message)
// alerts shown to the operator.
package notify

import (
	"context"
	"sync"
)

type Severity string

const (
	Success Severity = "SUCCESS"
	Error   Severity = "ERROR"
	Info    Severity = "INFO"
	Warning Severity = "WARNING"
)

// Notification is a fire-and-forget value; it has no identity.
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier displays a notification. There is no return value and no
// rate limiting or de-duplication.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

// Multi fans every notification out to all of its notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, severity Severity, message string) {
	for _, n := range m {
		n.Notify(ctx, severity, message)
	}
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(_ context.Context, severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, Notification{Severity: severity, Message: message})
}

// Notifications returns a copy of what was recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}
