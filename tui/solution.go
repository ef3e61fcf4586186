package tui

import (
	"strings"

	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(style.Subtext).Padding(0, 1)
	codeStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(style.BorderColor).
				Padding(0, 1)
)

type codeTab struct {
	name string
	code string
}

func (b *statefulBubble) codeTabs() []codeTab {
	entry, ok := b.options.Entry.Get()
	if !ok {
		return nil
	}

	var tabs []codeTab
	if entry.JavaCode != "" {
		tabs = append(tabs, codeTab{name: "Java", code: entry.JavaCode})
	}
	if entry.CppCode != "" {
		tabs = append(tabs, codeTab{name: "C++", code: entry.CppCode})
	}
	return tabs
}

// viewSolution renders the gated panel: a locked notice until the clip has
// been watched, then the intuition and code tabs.
func (b *statefulBubble) viewSolution(width int) string {
	entry, ok := b.options.Entry.Get()
	if !ok || !entry.HasSolution() {
		return ""
	}

	if b.lock == nil || !b.lock.Unlocked() {
		return strings.Join([]string{
			style.Tag(style.Base, style.WarningColor)(icon.Get(icon.Lock) + " Solution locked"),
			style.Faint("Watch the clip to the end to unlock the code."),
		}, "\n")
	}

	lines := []string{style.Tag(style.Base, style.SuccessColor)(icon.Get(icon.Unlock) + " Solution")}

	if entry.Intuition != "" {
		lines = append(lines, "", style.Bold("Intuition"), wrap.String(entry.Intuition, width))
	}

	tabs := b.codeTabs()
	if len(tabs) == 0 {
		return strings.Join(lines, "\n")
	}

	selected := b.tab % len(tabs)
	header := make([]string, len(tabs))
	for i, tab := range tabs {
		if i == selected {
			header[i] = activeTabStyle.Render(tab.name)
		} else {
			header[i] = inactiveTabStyle.Render(tab.name)
		}
	}

	// border and padding take four columns
	code := wrap.String(tabs[selected].code, max(1, width-4))
	lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top, header...), codeStyle.Render(code))
	return strings.Join(lines, "\n")
}
