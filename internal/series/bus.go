package series

import (
	"sync"

	"github.com/google/uuid"
)

// Publisher receives every snapshot a Store produces.
type Publisher interface {
	Publish(snapshot Snapshot)
}

// Subscription identifies a registered subscriber.
type Subscription struct {
	ID uuid.UUID
}

type subscriber struct {
	id uuid.UUID
	fn func(Snapshot)
}

// Bus fans snapshots out to subscribers synchronously, in subscription
// order. Nothing is buffered: a subscriber only sees snapshots published
// after it subscribed.
type Bus struct {
	mu   sync.Mutex
	subs []subscriber
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn. A nil fn is ignored and yields a zero Subscription.
func (b *Bus) Subscribe(fn func(Snapshot)) Subscription {
	if b == nil || fn == nil {
		return Subscription{}
	}
	id := uuid.New()
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()
	return Subscription{ID: id}
}

// Unsubscribe removes the subscriber with id and reports whether it existed.
func (b *Bus) Unsubscribe(id uuid.UUID) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of subscribers.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers a private copy of snapshot to every subscriber before
// returning. Callbacks run outside the lock and may unsubscribe themselves.
func (b *Bus) Publish(snapshot Snapshot) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := append([]subscriber(nil), b.subs...)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot.Clone())
	}
}
