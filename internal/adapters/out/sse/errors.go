package sse

import (
	"errors"
	"fmt"
)

var ErrSubscriberTooSlow = errors.New("subscriber too slow")

type SubscriberTooSlowError struct {
	Channel string
	Dropped int
}

// Error implements error.
func (e *SubscriberTooSlowError) Error() string {
	return fmt.Sprintf("%s: %d subscriber(s) of %q", ErrSubscriberTooSlow, e.Dropped, e.Channel)
}

// Unwrap returns ErrSubscriberTooSlow.
func (e *SubscriberTooSlowError) Unwrap() error {
	return ErrSubscriberTooSlow
}
