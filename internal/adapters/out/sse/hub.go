// Package sse fans notifications out to in-process subscribers, one stream per channel.
package sse

import (
	"context"
	"sync"

	"restaurant/internal/core/ports"
)

const defaultBuffer = 16

// Hub is a ports.Notifier for live clients. Delivery never blocks: a subscriber whose
// buffer is full misses the notification.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	buffer      int
}

type subscriber struct {
	ch chan ports.Notification
}

// NewHub creates a hub whose subscriber queues hold buffer notifications.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		buffer:      buffer,
	}
}

// Subscribe returns the stream of a channel and the function that ends the subscription.
// The stream is closed by cancel.
func (h *Hub) Subscribe(channel string) (<-chan ports.Notification, func()) {
	sub := &subscriber{ch: make(chan ports.Notification, h.buffer)}

	h.mu.Lock()
	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[*subscriber]struct{})
	}
	h.subscribers[channel][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[channel], sub)
			if len(h.subscribers[channel]) == 0 {
				delete(h.subscribers, channel)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Notify returns ErrSubscriberTooSlow when at least one subscriber missed n. Channels
// with no subscribers are not an error.
func (h *Hub) Notify(_ context.Context, n ports.Notification) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for sub := range h.subscribers[n.Channel] {
		select {
		case sub.ch <- n:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		return &SubscriberTooSlowError{Channel: n.Channel, Dropped: dropped}
	}
	return nil
}

// Subscribers counts the live subscriptions of channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}
