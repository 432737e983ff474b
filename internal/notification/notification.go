// Package notification delivers best-effort alerts without blocking the caller.
//
// A Dispatcher queues alerts on a buffered channel and a single worker hands
// them to every configured Notifier. Delivery failures are logged and counted,
// never returned to the code that pushed the alert.
package notification

import (
	"context"
	"time"
)

// Alert is one notification.
type Alert struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Text is the alert rendered as a single message.
func (a Alert) Text() string {
	if a.Title == "" {
		return a.Message
	}

	return a.Title + " " + a.Message
}

// Notifier is a delivery channel.
type Notifier interface {
	// Name identifies the notifier in logs
	Name() string
	// Send delivers the alert or returns why it could not
	Send(ctx context.Context, alert Alert) error
}
