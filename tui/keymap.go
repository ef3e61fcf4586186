package tui

import (
	"github.com/babua-dev/clipper/engine"
	"github.com/charmbracelet/bubbles/key"
)

type statefulKeymap struct {
	state  state
	player engine.Keymap

	quit, forceQuit,
	start,
	openURL,
	showHelp,
	nextTab,
	copyCode,
	up, down, confirm key.Binding
}

func newStatefulKeymap(player engine.Keymap) *statefulKeymap {
	return &statefulKeymap{
		player: player,
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		start: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "play"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch language"),
		),
		copyCode: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy code"),
		),
		up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case idleState:
		return to2(h(k.start, k.openURL, k.quit))
	case playerState:
		short := append(k.player.ShortHelp(), k.showHelp, k.quit)
		var full []key.Binding
		for _, group := range k.player.FullHelp() {
			full = append(full, group...)
		}
		full = append(full, k.nextTab, k.copyCode, k.openURL, k.quit)
		return short, full
	case errorState:
		return to2(h(k.openURL, k.quit))
	case fallbackState:
		return to2(h(k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

// menuHelp lists the bindings active while the speed menu is open.
func (k *statefulKeymap) menuHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.confirm, k.player.Escape}
}
