// Package completion carries "clip watched to its end" notifications from the
// player engine to any interested component without direct references between them.
package completion

import (
	"sync"

	"github.com/babua-dev/clipper/clip"
)

// Event announces that a clip reached its end boundary.
type Event struct {
	SourceID     string `json:"source_id"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
}

// EventFor builds the completion event of a window.
func EventFor(w clip.Window) Event {
	return Event{SourceID: w.SourceID, StartSeconds: w.StartSeconds, EndSeconds: w.EndSeconds}
}

// Key returns the subscription key, the same key the watched store uses.
func (e Event) Key() string {
	return clip.Key(e.SourceID, e.StartSeconds, e.EndSeconds)
}

// Listener receives published events.
type Listener func(Event)

type subscription struct {
	id  uint64
	key string // empty matches every event
	fn  Listener
}

// Bus is a publish/subscribe port. Delivery is synchronous, in subscription
// order, to the listeners registered when Publish is called. Publishing the
// same event twice delivers it twice.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every event. The returned function cancels the subscription.
func (b *Bus) Subscribe(fn Listener) (cancel func()) {
	return b.subscribe("", fn)
}

// SubscribeKey registers fn for events whose Key equals key.
func (b *Bus) SubscribeKey(key string, fn Listener) (cancel func()) {
	return b.subscribe(key, fn)
}

func (b *Bus) subscribe(key string, fn Listener) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, key: key, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to the matching listeners.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	targets := make([]Listener, 0, len(b.subs))
	k := ev.Key()
	for _, s := range b.subs {
		if s.key == "" || s.key == k {
			targets = append(targets, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range targets {
		fn(ev)
	}
}

// Len reports the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

var (
	defaultBus     *Bus
	defaultBusOnce sync.Once
)

// Default returns the process-wide bus.
func Default() *Bus {
	defaultBusOnce.Do(func() {
		defaultBus = NewBus()
	})
	return defaultBus
}
