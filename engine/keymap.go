package engine

import "github.com/charmbracelet/bubbles/key"

// Keymap binds keys to player commands. It implements help.KeyMap.
type Keymap struct {
	PlayPause,
	Back, Forward,
	JumpBack, JumpForward,
	VolumeUp, VolumeDown,
	Mute,
	Fullscreen,
	Restart,
	FrameBack, FrameForward,
	Settings,
	Escape key.Binding
}

// DefaultKeymap returns the standard player bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space", "k"),
			key.WithHelp("space/k", "play/pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back 5s"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "forward 5s"),
		),
		JumpBack: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "back 10s"),
		),
		JumpForward: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "forward 10s"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		Restart: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "restart"),
		),
		FrameBack: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "previous frame"),
		),
		FrameForward: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "next frame / faster"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speed"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
	}
}

func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Back, k.Forward, k.Mute, k.Fullscreen, k.Settings}
}

func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Restart, k.Back, k.Forward, k.JumpBack, k.JumpForward},
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.FrameBack, k.FrameForward, k.Settings, k.Fullscreen, k.Escape},
	}
}

// keyName adapts a key string for key.Matches.
type keyName string

func (k keyName) String() string {
	return string(k)
}
