package ports

import "context"

// Notification is one fire-and-forget event addressed to a channel such as
// "session:<id>", "waiter:<id>" or "staff".
type Notification struct {
	Channel         string            `json:"channel"`
	EventType       string            `json:"eventType"`
	Title           string            `json:"title"`
	Message         string            `json:"message"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	RequiresRefresh bool              `json:"requiresRefresh"`
}

// Notifier delivers notifications. Implementations must not block on slow consumers.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
