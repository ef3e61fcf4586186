// Package tui provides the terminal clip player.
package tui

import (
	"github.com/babua-dev/clipper/catalog"
	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/unlock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Title string

	// Window is the clip to play. When WindowErr is set the player shows a
	// placeholder instead.
	Window    clip.Window
	WindowErr error

	// Entry carries the gated solution content, if the clip came from the catalog.
	Entry mo.Option[catalog.Entry]

	Deps        engine.Deps
	Watched     unlock.Checker
	Completions unlock.Subscriber
	Engine      []engine.Option

	// Autoplay starts the player without waiting for enter.
	Autoplay bool
}

// Run initializes and executes the player loop. It returns when the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	_, err := tea.NewProgram(
		bubble,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	).Run()
	return err
}
