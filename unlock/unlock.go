// Package unlock gates content behind watching a clip to its end.
package unlock

import (
	"sync"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/completion"
)

// Checker reports persisted completions. *watched.Store satisfies it.
type Checker interface {
	IsWatched(clip.Window) bool
}

// Subscriber delivers completion events by key. *completion.Bus satisfies it.
type Subscriber interface {
	SubscribeKey(key string, fn completion.Listener) (cancel func())
}

// Lock tracks whether the content tied to one window is unlocked.
// It starts unlocked when the window was already watched, and unlocks as soon
// as a completion event for the same window arrives.
type Lock struct {
	window   clip.Window
	onUnlock func()

	mu       sync.Mutex
	unlocked bool
	cancel   func()
}

// New returns a Lock for w. onUnlock, if not nil, is called once when the lock
// opens after construction.
func New(w clip.Window, store Checker, bus Subscriber, onUnlock func()) *Lock {
	l := &Lock{
		window:   w,
		onUnlock: onUnlock,
	}

	if store != nil && store.IsWatched(w) {
		l.unlocked = true
		return l
	}

	if bus != nil {
		cancel := bus.SubscribeKey(w.Key(), l.handle)
		l.mu.Lock()
		if l.unlocked {
			l.mu.Unlock()
			cancel()
			return l
		}
		l.cancel = cancel
		l.mu.Unlock()
	}

	return l
}

func (l *Lock) handle(ev completion.Event) {
	if ev.SourceID != l.window.SourceID ||
		ev.StartSeconds != l.window.StartSeconds ||
		ev.EndSeconds != l.window.EndSeconds {
		return
	}

	l.mu.Lock()
	if l.unlocked {
		l.mu.Unlock()
		return
	}
	l.unlocked = true
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if l.onUnlock != nil {
		l.onUnlock()
	}
}

// Window returns the window this lock is tied to.
func (l *Lock) Window() clip.Window {
	return l.window
}

// Unlocked reports whether the content may be shown.
func (l *Lock) Unlocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unlocked
}

// Close stops listening for completions. The current state is kept.
func (l *Lock) Close() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
