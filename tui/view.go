package tui

import (
	"fmt"
	"strings"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

const (
	paddingTop  = 1
	paddingLeft = 2
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case idleState:
		output = b.viewIdle()
	case playerState:
		lines, _ := b.playerLines()
		output = b.renderLines(!b.snapshot.Fullscreen, lines)
	case errorState:
		output = b.viewError()
	case fallbackState:
		output = b.viewFallback()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) title() string {
	if b.options.Title != "" {
		return b.options.Title
	}
	if entry, ok := b.options.Entry.Get(); ok {
		return entry.DisplayTitle()
	}
	return b.options.Window.SourceID
}

func (b *statefulBubble) contentWidth() int {
	if b.width <= 0 {
		return defaultWidth
	}
	return max(minBarWidth, b.width-2*paddingLeft)
}

func (b *statefulBubble) viewIdle() string {
	w := b.options.Window
	lines := []string{
		style.Title(truncate.StringWithTail(b.title(), uint(b.contentWidth()), "…")),
		"",
		fmt.Sprintf("%s %s  %s", icon.Get(icon.Play), clip.FormatTime(float64(w.Duration)), style.Faint(w.String())),
		style.Faint("Thumbnail " + w.ThumbnailURL()),
	}

	if b.lock != nil && b.lock.Unlocked() {
		lines = append(lines, style.Fg(style.SuccessColor)(icon.Get(icon.Watched)+" Watched"))
	}

	lines = append(lines, "", "Press "+style.Bold("enter")+" to play")
	return b.renderLines(true, lines)
}

// playerLines renders the player and reports which line holds the progress bar.
func (b *statefulBubble) playerLines() (lines []string, barLine int) {
	s := b.snapshot
	w := b.options.Window
	width := b.contentWidth()

	if !s.Fullscreen {
		lines = append(lines,
			style.Title(truncate.StringWithTail(b.title(), uint(width), "…")),
			style.Faint(w.String()),
			"",
		)
	}

	if !s.Ready {
		lines = append(lines, b.spinnerC.View()+" Loading player")
	} else if s.ControlsVisible || !s.Fullscreen {
		lines = append(lines, b.statusLine())
	} else {
		lines = append(lines, "")
	}

	barLine = len(lines)
	lines = append(lines, renderBar(width, s.Position, s.Buffered, float64(w.Duration)))

	if s.ControlsVisible || !s.Fullscreen {
		lines = append(lines, fmt.Sprintf("%s / %s", clip.FormatTime(s.Position), clip.FormatTime(float64(w.Duration))))
	}

	if s.SettingsOpen {
		lines = append(lines, "", b.viewRateMenu())
	}

	if !s.Fullscreen {
		if panel := b.viewSolution(width); panel != "" {
			lines = append(lines, "", panel)
		}
	}

	return lines, barLine
}

// barGeometry locates the progress bar on screen.
func (b *statefulBubble) barGeometry() (row, col, width int) {
	_, line := b.playerLines()
	return paddingTop + line, paddingLeft, b.contentWidth()
}

func (b *statefulBubble) statusLine() string {
	s := b.snapshot

	state := icon.Get(icon.Pause) + " Paused"
	switch {
	case s.Playing:
		state = icon.Get(icon.Play) + " Playing"
	case s.Phase == engine.Ended:
		state = icon.Get(icon.Success) + " Finished"
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), s.Volume)
	if s.Muted {
		volume = icon.Get(icon.Mute) + " muted"
	}

	speed := fmt.Sprintf("%s %gx", icon.Get(icon.Speed), s.Rate)

	return strings.Join([]string{state, style.Faint(volume), style.Faint(speed)}, "   ")
}

func (b *statefulBubble) viewRateMenu() string {
	lines := []string{style.Bold("Playback speed")}
	for i, rate := range engine.Rates {
		label := fmt.Sprintf("%gx", rate)
		if rate == 1 {
			label += " (normal)"
		}

		switch {
		case i == b.rateCursor:
			label = style.Fg(style.AccentColor)("> " + label)
		case rate == b.snapshot.Rate:
			label = "* " + label
		default:
			label = "  " + label
		}
		lines = append(lines, label)
	}

	help := make([]string, 0, 4)
	for _, binding := range b.keymap.menuHelp() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	lines = append(lines, style.Faint(strings.Join(help, " • ")))
	return strings.Join(lines, "\n")
}

func (b *statefulBubble) viewError() string {
	message := b.snapshot.Error
	if message == "" {
		message = engine.ErrorMessage
	}

	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + wrap.String(message, b.contentWidth()),
		"",
		"Watch on YouTube instead:",
		style.Fg(style.SecondaryColor)(b.options.Window.WatchURL()),
	})
}

func (b *statefulBubble) viewFallback() string {
	lines := []string{
		style.Title(truncate.StringWithTail(b.title(), uint(b.contentWidth()), "…")),
		"",
		icon.Get(icon.Progress) + " Video explanation coming soon",
	}
	if err := b.options.WindowErr; err != nil {
		lines = append(lines, "", style.Faint(wrap.String(err.Error(), b.contentWidth())))
	}
	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		// leave room for padding and the help line
		if free := b.height - 2*paddingTop - 1; free > h {
			l += strings.Repeat("\n", free-h)
		} else {
			l += "\n\n"
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
