package tui

import (
	"fmt"
	"sync/atomic"
)

const minTheaterWidth = 40

// theater is the fullscreen capability of the terminal: it hides everything
// but the video controls and stretches the progress bar across the screen.
type theater struct {
	width atomic.Int64
	on    atomic.Bool
}

func (t *theater) resize(width int) {
	t.width.Store(int64(width))
}

func (t *theater) IsFullscreen() bool {
	return t.on.Load()
}

func (t *theater) Request() error {
	if w := t.width.Load(); w < minTheaterWidth {
		return fmt.Errorf("terminal too narrow for theater mode: %d < %d columns", w, minTheaterWidth)
	}
	t.on.Store(true)
	return nil
}

func (t *theater) Exit() error {
	t.on.Store(false)
	return nil
}
