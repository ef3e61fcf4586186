package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/babua-dev/clipper/player"
	"github.com/babua-dev/clipper/util"
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampVolume(v int) int {
	return util.Clamp(v, 0, 100)
}

func rateIndex(rate float64) int {
	for i, r := range Rates {
		if r == rate {
			return i
		}
	}
	return -1
}

// do runs fn against the live player under the lock and notifies afterwards.
func (c *Controller) do(fn func(h player.Player) error) error {
	c.mu.Lock()
	h, err := c.playerLocked()
	if err == nil {
		err = fn(h)
	}
	c.mu.Unlock()

	c.changed()
	return err
}

func (c *Controller) playerLocked() (player.Player, error) {
	switch {
	case c.closed:
		return nil, ErrClosed
	case c.handle == nil:
		return nil, ErrNotStarted
	default:
		return c.handle, nil
	}
}

// seekLocked seeks to an absolute time clamped to [start, end-SeekGuard].
func (c *Controller) seekLocked(h player.Player, t float64) error {
	lo := float64(c.window.StartSeconds)
	hi := float64(c.window.EndSeconds) - SeekGuard
	return h.SeekTo(util.Clamp(t, lo, hi), true)
}

// SeekAbsolute seeks to t seconds into the source video, kept inside the window.
func (c *Controller) SeekAbsolute(t float64) error {
	if !finite(t) {
		return nil
	}
	return c.do(func(h player.Player) error {
		return c.seekLocked(h, t)
	})
}

// SeekRelative seeks to r seconds after the window start. The displayed
// position updates immediately.
func (c *Controller) SeekRelative(r float64) error {
	if !finite(r) {
		return nil
	}
	return c.do(func(h player.Player) error {
		r = util.Clamp(r, 0, util.Max(0, float64(c.window.Duration)-1))
		c.state.Position = r
		return c.seekLocked(h, float64(c.window.StartSeconds)+r)
	})
}

// JumpBy seeks delta seconds from the current playback position.
func (c *Controller) JumpBy(delta float64) error {
	if !finite(delta) {
		return nil
	}
	return c.do(func(h player.Player) error {
		t, err := h.CurrentTime()
		if err != nil {
			return err
		}
		return c.seekLocked(h, t+delta)
	})
}

// TogglePlayPause pauses a playing clip or resumes a paused one. Resuming at
// or past the end guard restarts from the window start.
func (c *Controller) TogglePlayPause() error {
	return c.do(func(h player.Player) error {
		if c.state.Playing {
			c.state.Playing = false
			if c.state.Phase != Ended {
				c.state.Phase = Paused
			}
			return h.Pause()
		}

		t, err := h.CurrentTime()
		if err == nil && t >= float64(c.window.EndSeconds)-SeekGuard {
			if err := c.seekLocked(h, float64(c.window.StartSeconds)); err != nil {
				return err
			}
			c.state.Position = 0
		}

		c.state.Playing = true
		c.state.Phase = Playing
		return h.Play()
	})
}

// ChangeVolume sets the volume, clamped to [0, 100]. Zero mutes; any other
// value unmutes. Before Start the value is kept and applied on ready.
func (c *Controller) ChangeVolume(v int) error {
	c.mu.Lock()
	err := c.setVolumeLocked(clampVolume(v))
	c.mu.Unlock()

	c.changed()
	return err
}

// StepVolume changes the volume by delta.
func (c *Controller) StepVolume(delta int) error {
	c.mu.Lock()
	err := c.setVolumeLocked(clampVolume(c.state.Volume + delta))
	c.mu.Unlock()

	c.changed()
	return err
}

func (c *Controller) setVolumeLocked(v int) error {
	c.state.Volume = v
	h := c.handle
	if c.closed {
		h = nil
	}

	var errs []error
	if h != nil {
		errs = append(errs, h.SetVolume(v))
	}

	switch {
	case v == 0:
		c.state.Muted = true
		if h != nil {
			errs = append(errs, h.Mute())
		}
	case c.state.Muted:
		c.state.Muted = false
		if h != nil {
			errs = append(errs, h.Unmute())
		}
	}

	return errors.Join(errs...)
}

// ToggleMute flips the mute state. Unmuting at volume 0 restores UnmuteVolume.
func (c *Controller) ToggleMute() error {
	c.mu.Lock()
	h := c.handle
	if c.closed {
		h = nil
	}

	var errs []error
	if c.state.Muted {
		c.state.Muted = false
		if h != nil {
			errs = append(errs, h.Unmute())
		}
		if c.state.Volume == 0 {
			c.state.Volume = UnmuteVolume
			if h != nil {
				errs = append(errs, h.SetVolume(UnmuteVolume))
			}
		}
	} else {
		c.state.Muted = true
		if h != nil {
			errs = append(errs, h.Mute())
		}
	}
	c.mu.Unlock()

	c.changed()
	return errors.Join(errs...)
}

// ChangePlaybackRate sets one of the allowed Rates and closes the settings menu.
func (c *Controller) ChangePlaybackRate(rate float64) error {
	if rateIndex(rate) < 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedRate, rate)
	}

	c.mu.Lock()
	c.state.Rate = rate
	c.state.SettingsOpen = false
	var err error
	if c.handle != nil && !c.closed {
		err = c.handle.SetPlaybackRate(rate)
	}
	c.mu.Unlock()

	c.changed()
	return err
}

// NextRate steps up to the next allowed rate. At the fastest rate it does nothing.
func (c *Controller) NextRate() error {
	c.mu.Lock()
	idx := rateIndex(c.state.Rate)
	c.mu.Unlock()

	if idx >= len(Rates)-1 {
		return nil
	}
	return c.ChangePlaybackRate(Rates[idx+1])
}

// ToggleFullscreen enters or leaves the host's fullscreen mode.
// Failures are logged and never returned.
func (c *Controller) ToggleFullscreen() error {
	fs := c.deps.Fullscreen
	if fs == nil {
		c.logger().Debug("fullscreen unavailable")
		return nil
	}

	var err error
	if fs.IsFullscreen() {
		err = fs.Exit()
	} else {
		err = fs.Request()
	}
	if err != nil {
		c.logger().Warnf("fullscreen: %v", err)
	}

	c.mu.Lock()
	c.state.Fullscreen = fs.IsFullscreen()
	c.mu.Unlock()

	c.ShowControls()
	return nil
}
