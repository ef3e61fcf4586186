package engine

import (
	"time"

	"github.com/babua-dev/clipper/util"
	"github.com/charmbracelet/bubbles/key"
)

// SetInputFocused tells the controller a text input owns the keyboard.
// While set, HandleKey ignores everything.
func (c *Controller) SetInputFocused(focused bool) {
	c.mu.Lock()
	c.typing = focused
	c.mu.Unlock()
}

// HandleKey runs the command bound to k, named as bubbletea names keys
// ("left", "k", " ", "esc"). It reports whether the key was consumed.
// Keys are ignored until Start and while a text input is focused.
func (c *Controller) HandleKey(k string) bool {
	c.mu.Lock()
	var (
		active   = c.state.Active && !c.closed
		typing   = c.typing
		playing  = c.state.Playing
		settings = c.state.SettingsOpen
	)
	c.mu.Unlock()

	if !active || typing {
		return false
	}
	defer c.ShowControls()

	var (
		km  = c.keymap
		msg = keyName(k)
		err error
	)

	switch {
	case key.Matches(msg, km.PlayPause):
		err = c.TogglePlayPause()
	case key.Matches(msg, km.Back):
		err = c.JumpBy(-5)
	case key.Matches(msg, km.Forward):
		err = c.JumpBy(5)
	case key.Matches(msg, km.JumpBack):
		err = c.JumpBy(-10)
	case key.Matches(msg, km.JumpForward):
		err = c.JumpBy(10)
	case key.Matches(msg, km.VolumeUp):
		err = c.StepVolume(VolumeStep)
	case key.Matches(msg, km.VolumeDown):
		err = c.StepVolume(-VolumeStep)
	case key.Matches(msg, km.Mute):
		err = c.ToggleMute()
	case key.Matches(msg, km.Fullscreen):
		err = c.ToggleFullscreen()
	case key.Matches(msg, km.Restart):
		err = c.SeekRelative(0)
	case key.Matches(msg, km.FrameBack):
		if playing {
			return false
		}
		err = c.JumpBy(-FrameStep)
	case key.Matches(msg, km.FrameForward):
		if playing {
			err = c.NextRate()
		} else {
			err = c.JumpBy(FrameStep)
		}
	case key.Matches(msg, km.Settings):
		c.ToggleSettings()
	case key.Matches(msg, km.Escape):
		if !settings {
			return false
		}
		c.CloseSettings()
	default:
		return false
	}

	if err != nil {
		c.logger().Debugf("key %q: %v", k, err)
	}
	return true
}

// ToggleSettings opens or closes the playback rate menu.
func (c *Controller) ToggleSettings() {
	c.mu.Lock()
	c.state.SettingsOpen = !c.state.SettingsOpen
	c.mu.Unlock()

	c.ShowControls()
}

// CloseSettings closes the playback rate menu.
func (c *Controller) CloseSettings() {
	c.mu.Lock()
	c.state.SettingsOpen = false
	c.mu.Unlock()

	c.ShowControls()
}

// ShowControls makes the control overlay visible. In fullscreen, while
// playing, not dragging and with the menu closed, it hides again after the
// configured delay unless shown again first.
func (c *Controller) ShowControls() {
	c.mu.Lock()
	c.state.ControlsVisible = true
	c.stopHideTimerLocked()
	if !c.closed && c.autoHideLocked() {
		gen, seq := c.gen, c.hideSeq
		c.hideTimer = time.AfterFunc(c.opts.hideDelay, func() {
			c.hideControls(gen, seq)
		})
	}
	c.mu.Unlock()

	c.changed()
}

// PointerLeave hides the controls at once when they would auto-hide anyway.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	if c.closed || !c.state.Fullscreen || !c.state.Playing {
		c.mu.Unlock()
		return
	}
	c.stopHideTimerLocked()
	c.state.ControlsVisible = false
	c.mu.Unlock()

	c.changed()
}

func (c *Controller) autoHideLocked() bool {
	s := c.state
	return s.Fullscreen && s.Playing && !s.Dragging && !s.SettingsOpen
}

func (c *Controller) hideControls(gen, seq uint64) {
	c.mu.Lock()
	if c.stale(gen) || seq != c.hideSeq {
		c.mu.Unlock()
		return
	}
	c.hideTimer = nil
	if !c.autoHideLocked() {
		c.mu.Unlock()
		return
	}
	c.state.ControlsVisible = false
	c.mu.Unlock()

	c.changed()
}

// stopHideTimerLocked cancels a pending hide. A timer that already fired and
// waits for the lock sees a newer sequence and does nothing.
func (c *Controller) stopHideTimerLocked() {
	c.hideSeq++
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

// Progress maps pointer positions on a progress bar of Width cells to clip positions.
type Progress struct {
	Width int
	c     *Controller
}

// Progress returns the pointer mapping for a bar width cells wide.
func (c *Controller) Progress(width int) Progress {
	return Progress{Width: width, c: c}
}

func (p Progress) position(x int) float64 {
	if p.Width <= 0 {
		return 0
	}
	fraction := util.Clamp(float64(x)/float64(p.Width), 0, 1)
	return fraction * float64(p.c.window.Duration)
}

// Click seeks to the position under x.
func (p Progress) Click(x int) error {
	return p.c.SeekRelative(p.position(x))
}

// Press starts a drag at x.
func (p Progress) Press(x int) {
	c := p.c
	c.mu.Lock()
	c.state.Dragging = true
	c.state.Position = p.position(x)
	c.mu.Unlock()

	c.ShowControls()
}

// Drag moves the displayed position without seeking.
func (p Progress) Drag(x int) {
	c := p.c
	c.mu.Lock()
	if !c.state.Dragging {
		c.mu.Unlock()
		return
	}
	c.state.Position = p.position(x)
	c.mu.Unlock()

	c.changed()
}

// Release ends a drag and commits the seek at x.
func (p Progress) Release(x int) error {
	c := p.c
	c.mu.Lock()
	if !c.state.Dragging {
		c.mu.Unlock()
		return nil
	}
	c.state.Dragging = false
	c.mu.Unlock()

	err := p.Click(x)
	c.ShowControls()
	return err
}
