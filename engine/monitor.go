package engine

import (
	"time"

	"github.com/babua-dev/clipper/completion"
	"github.com/babua-dev/clipper/util"
)

func (c *Controller) startMonitorLocked() {
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	go c.monitor(c.gen, stop)
}

func (c *Controller) stopMonitorLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Controller) monitor(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick(gen)
		}
	}
}

// tick runs one sampling step. Nothing escapes it: failures are counted and
// the next tick proceeds normally.
func (c *Controller) tick(gen uint64) {
	defer func() {
		if r := recover(); r != nil {
			c.deps.Observer.SampleFailed()
			c.logger().Warnf("position monitor recovered: %v", r)
		}
	}()

	completed, changed := c.sample(gen)
	if completed {
		c.complete()
	}
	if changed {
		c.changed()
	}
}

// sample reads the player position and enforces both window boundaries.
func (c *Controller) sample(gen uint64) (completed, changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(gen) || c.handle == nil {
		return false, false
	}
	h := c.handle

	t, err := h.CurrentTime()
	if err != nil {
		c.deps.Observer.SampleFailed()
		c.logger().Debugf("sampling position: %v", err)
		return false, false
	}
	if !finite(t) {
		return false, false
	}

	var (
		start    = float64(c.window.StartSeconds)
		end      = float64(c.window.EndSeconds)
		duration = float64(c.window.Duration)
	)

	if !c.state.Dragging {
		c.state.Position = util.Clamp(t-start, 0, duration)
	}
	if f, err := h.BufferedFraction(); err == nil && finite(f) {
		c.state.Buffered = util.Clamp(f*duration, 0, duration)
	}

	if t < start-LowerGuard {
		c.try("corrective seek", h.SeekTo(start, true))
		c.deps.Observer.CorrectiveSeek()
	}

	if t >= end-UpperGuard {
		if !c.state.Dragging {
			c.state.Position = duration
		}
		if c.completed {
			return false, true
		}
		c.completed = true
		c.try("pause at end", h.Pause())
		c.state.Playing = false
		c.state.Phase = Ended
		return true, true
	}

	if c.completed {
		c.completed = false
		if c.state.Phase == Ended {
			c.state.Phase = Paused
		}
	}
	return false, true
}

// complete records and announces a crossing of the end boundary.
func (c *Controller) complete() {
	w := c.window
	if !c.deps.Store.Mark(w) {
		c.logger().Debug("watched record not persisted")
	}
	c.deps.Bus.Publish(completion.EventFor(w))
	c.deps.Observer.Completed(w)
	c.logger().Info("clip completed")
}
