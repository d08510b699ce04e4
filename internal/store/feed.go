package store

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

const subscriberBuffer = 8

// Feed is an in-process snapshot feed: every subscriber receives the
// latest full snapshot once on subscribe and again after each mutation.
// Publishing never blocks; a subscriber that stops draining its channel
// misses intermediate snapshots but the next publish it receives is
// always the current state, so nothing is lost for good.
type Feed[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]chan []T
	last        []T
	hasLast     bool
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{
		subscribers: make(map[string]chan []T),
	}
}

// Subscribe registers a new subscriber and returns its handle and
// channel. If a snapshot has been published before, it is delivered
// immediately.
func (f *Feed[T]) Subscribe() (string, <-chan []T) {
	id := ulid.Make().String()
	ch := make(chan []T, subscriberBuffer)
	f.mu.Lock()
	f.subscribers[id] = ch
	if f.hasLast {
		ch <- f.last
	}
	f.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (f *Feed[T]) Unsubscribe(id string) {
	f.mu.Lock()
	if ch, ok := f.subscribers[id]; ok {
		close(ch)
		delete(f.subscribers, id)
	}
	f.mu.Unlock()
}

// Prime records snapshot as the latest state without fanning out, and
// only when nothing has been published yet. Used to seed the feed from
// a pre-existing database before the first subscriber attaches.
func (f *Feed[T]) Prime(snapshot []T) {
	f.mu.Lock()
	if !f.hasLast {
		f.last = snapshot
		f.hasLast = true
	}
	f.mu.Unlock()
}

// Publish records snapshot as the latest state and fans it out.
func (f *Feed[T]) Publish(snapshot []T) {
	f.mu.Lock()
	f.last = snapshot
	f.hasLast = true
	for _, ch := range f.subscribers {
		select {
		case ch <- snapshot:
		default:
			// buffer full, drop for this subscriber
		}
	}
	f.mu.Unlock()
}
