package tui

import (
	"strings"

	"github.com/babua-dev/clipper/style"
	"github.com/babua-dev/clipper/util"
)

const (
	playedCell   = "━"
	remainCell   = "─"
	knobCell     = "●"
	defaultWidth = 60
	minBarWidth  = 10
)

// renderBar draws a width cells wide progress bar: the played part, a knob,
// the buffered part ahead of it and the rest.
func renderBar(width int, position, buffered, duration float64) string {
	if width <= 0 {
		return ""
	}

	knob := util.Min(cells(width, position, duration), width-1)
	loaded := util.Clamp(cells(width, buffered, duration)-knob-1, 0, width-knob-1)
	rest := width - knob - 1 - loaded

	return style.Fg(style.AccentColor)(strings.Repeat(playedCell, knob)) +
		style.Fg(style.Text)(knobCell) +
		style.Fg(style.Subtext)(strings.Repeat(playedCell, loaded)) +
		style.Fg(style.Overlay)(strings.Repeat(remainCell, rest))
}

func cells(width int, value, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(util.Clamp(value/total, 0, 1) * float64(width))
}
