package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/player"
	"github.com/sirupsen/logrus"
)

// Controller plays one clip window. It is safe for concurrent use.
// A different window needs a new Controller.
type Controller struct {
	window clip.Window
	deps   Deps
	opts   options
	keymap Keymap

	mu     sync.Mutex
	state  State
	handle player.Player
	typing bool

	// gen changes on Close; callbacks and timers carry the value they were created with.
	gen    uint64
	closed bool

	// completed is set when the end boundary is crossed and cleared once the
	// player is observed back below it.
	completed bool
	stop      chan struct{}

	hideTimer *time.Timer
	hideSeq   uint64
}

// New returns an idle Controller for window. Nothing is loaded until Start.
func New(window clip.Window, deps Deps, opts ...Option) *Controller {
	c := &Controller{
		window: window,
		deps:   deps.withDefaults(),
		opts:   newOptions(opts),
		keymap: DefaultKeymap(),
	}
	c.state = c.initialState()
	return c
}

func (c *Controller) initialState() State {
	return State{
		Phase:           Idle,
		Volume:          c.opts.volume,
		Muted:           c.opts.volume == 0,
		Rate:            c.opts.rate,
		ControlsVisible: true,
	}
}

// Window returns the clip window this controller plays.
func (c *Controller) Window() clip.Window {
	return c.window
}

// Keymap returns the key bindings HandleKey understands.
func (c *Controller) Keymap() Keymap {
	return c.keymap
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start activates the controller: it waits for the player API, then constructs
// a player positioned at the window start. Readiness arrives asynchronously.
// Calling Start on an already started controller does nothing.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Phase != Idle {
		c.mu.Unlock()
		return nil
	}
	c.state.Active = true
	c.state.Ready = false
	c.state.Error = ""
	c.state.Phase = Acquiring
	gen := c.gen
	c.mu.Unlock()
	c.changed()

	if c.deps.Loader == nil {
		return c.fail(gen, fmt.Errorf("%w: no loader configured", ErrAPILoad))
	}

	api, err := c.deps.Loader.Load(ctx)
	if err != nil {
		return c.fail(gen, fmt.Errorf("%w: %v", ErrAPILoad, err))
	}

	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		return ErrClosed
	}

	handle, err := api.New(player.Config{
		VideoID:                c.window.SourceID,
		StartTime:              c.window.StartSeconds,
		Autoplay:               true,
		NativeControlsDisabled: true,
		RelatedDisabled:        true,
		Origin:                 c.opts.origin,
	}, c.events(gen))
	if err != nil {
		c.mu.Unlock()
		return c.fail(gen, fmt.Errorf("%w: %v", ErrAPILoad, err))
	}
	c.handle = handle
	c.mu.Unlock()

	c.deps.Observer.PlayerConstructed()
	c.logger().Info("player constructed")
	return nil
}

func (c *Controller) events(gen uint64) player.Events {
	return player.Events{
		OnReady: func() {
			c.onReady(gen)
		},
		OnStateChange: func(s player.State) {
			c.onStateChange(gen, s)
		},
		OnRateChange: func(rate float64) {
			c.onRateChange(gen, rate)
		},
		OnError: func(err error) {
			_ = c.fail(gen, fmt.Errorf("%w: %v", ErrPlayback, err))
		},
	}
}

func (c *Controller) onReady(gen uint64) {
	c.mu.Lock()
	if c.stale(gen) || c.handle == nil || c.state.Phase == Failed {
		c.mu.Unlock()
		return
	}

	h := c.handle
	c.try("seek", h.SeekTo(float64(c.window.StartSeconds), true))
	c.try("set volume", h.SetVolume(c.state.Volume))
	if c.state.Muted {
		c.try("mute", h.Mute())
	}
	c.try("set rate", h.SetPlaybackRate(c.state.Rate))
	c.try("play", h.Play())

	c.state.Ready = true
	c.state.Playing = true
	c.state.Phase = Playing
	c.state.Position = 0
	c.completed = false
	c.startMonitorLocked()
	c.mu.Unlock()

	c.changed()
}

func (c *Controller) onStateChange(gen uint64, s player.State) {
	c.mu.Lock()
	if c.stale(gen) || c.state.Phase == Failed {
		c.mu.Unlock()
		return
	}

	switch s {
	case player.Playing:
		c.state.Playing = true
		c.state.Ready = true
		c.state.Phase = Playing
	case player.Paused:
		c.state.Playing = false
		if c.state.Phase != Ended {
			c.state.Phase = Paused
		}
	case player.Buffering:
		c.state.Ready = true
	case player.Ended:
		c.state.Playing = false
		c.state.Phase = Paused
		if c.handle != nil {
			c.try("seek to start", c.handle.SeekTo(float64(c.window.StartSeconds), true))
		}
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.changed()
}

func (c *Controller) onRateChange(gen uint64, rate float64) {
	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		return
	}
	c.state.Rate = rate
	c.mu.Unlock()

	c.changed()
}

// fail moves the controller into the terminal error phase.
func (c *Controller) fail(gen uint64, err error) error {
	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		return err
	}
	c.state.Phase = Failed
	c.state.Error = ErrorMessage
	c.state.Ready = false
	c.state.Playing = false
	c.stopMonitorLocked()
	c.mu.Unlock()

	c.deps.Observer.PlaybackFailed()
	c.logger().Warn(err)
	c.changed()
	return err
}

// Close stops the monitor, cancels the controls timer and destroys the player.
// It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.gen++
	c.stopMonitorLocked()
	c.stopHideTimerLocked()
	h := c.handle
	c.handle = nil
	c.state = c.initialState()
	c.mu.Unlock()

	if h == nil {
		return nil
	}
	if err := h.Destroy(); err != nil {
		c.logger().Warnf("destroying player: %v", err)
		return err
	}
	return nil
}

func (c *Controller) stale(gen uint64) bool {
	return c.closed || c.gen != gen
}

func (c *Controller) changed() {
	if c.opts.notify != nil {
		c.opts.notify()
	}
}

func (c *Controller) try(op string, err error) {
	if err != nil {
		c.logger().Debugf("%s: %v", op, err)
	}
}

func (c *Controller) logger() *logrus.Entry {
	return log.WithFields(map[string]any{"clip": c.window.Key()})
}
