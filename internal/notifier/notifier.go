// Package notifier provides a latest-value broadcast for SSE updates.
package notifier

import "sync"

// Notifier broadcasts values to all subscribed listeners.
// Each listener holds at most one undelivered value: a newer broadcast
// replaces an older one that was not read yet, so slow listeners always
// catch up on the latest state rather than replaying history.
type Notifier[T any] struct {
	mu        sync.Mutex
	listeners map[chan T]struct{}
}

// New creates a new Notifier instance.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{
		listeners: make(map[chan T]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast values.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier[T]) Subscribe() <-chan T {
	ch := make(chan T, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
// Unknown channels are ignored.
func (n *Notifier[T]) Unsubscribe(sub <-chan T) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		if (<-chan T)(ch) == sub {
			delete(n.listeners, ch)
			close(ch)
			return
		}
	}
}

// Broadcast delivers v to every listener without blocking.
func (n *Notifier[T]) Broadcast(v T) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		// Drop the unread value, if any. Only broadcasters write and they
		// are serialized by mu, so the send below cannot block.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Len returns the number of subscribed listeners.
func (n *Notifier[T]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
