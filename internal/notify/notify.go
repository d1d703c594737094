// Package notify carries user-facing outcome messages out of the service
// layer. Services emit structured notifications and never learn whether
// anything rendered them; delivery is best effort and must not fail the
// surrounding operation.
package notify

import (
	"context"
	"time"

	"github.com/hs2213/proelection/pkg/events"
	"github.com/hs2213/proelection/pkg/logger"
)

// Notification kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

type Notification struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Notifier is the outbound channel for user-facing outcome messages.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// EventNotifier publishes notifications on the event bus; the transport
// layer decides how or whether to render them.
type EventNotifier struct {
	bus events.Publisher
}

func NewEventNotifier(bus events.Publisher) *EventNotifier {
	return &EventNotifier{bus: bus}
}

func (e *EventNotifier) Notify(ctx context.Context, n Notification) {
	event := events.NotificationEvent{
		Kind:      n.Kind,
		Text:      n.Text,
		Timestamp: time.Now(),
	}

	if err := e.bus.Publish(ctx, events.NotifySend, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish notification", "error", err, "text", n.Text)
	}
}

// LogNotifier writes notifications to the structured log. Used in dev
// and as a fallback when no event bus is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	logger.InfoContext(ctx, "User notification", "kind", n.Kind, "text", n.Text)
}

var (
	_ Notifier = (*EventNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
)
