package tui

import (
	"context"

	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/internal/ui"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/unlock"
	"github.com/babua-dev/clipper/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

type statefulBubble struct {
	state   state
	options *Options
	keymap  *statefulKeymap

	ctl     *engine.Controller
	lock    *unlock.Lock
	theater *theater

	ctx    context.Context
	cancel context.CancelFunc

	// engine and lock callbacks run on their own goroutines; these wake the
	// bubbletea loop.
	changes  chan struct{}
	unlocked chan struct{}

	snapshot   engine.State
	rateCursor int
	tab        int

	width, height int

	spinnerC spinner.Model
	helpC    help.Model
	notifier *ui.Model
}

func newBubble(options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	bubble := &statefulBubble{
		options:  options,
		theater:  &theater{},
		ctx:      ctx,
		cancel:   cancel,
		changes:  make(chan struct{}, 1),
		unlocked: make(chan struct{}, 1),
		notifier: &ui.Model{},
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if options.WindowErr != nil {
		bubble.keymap = newStatefulKeymap(engine.DefaultKeymap())
		bubble.setState(fallbackState)
		return bubble
	}

	deps := options.Deps
	if deps.Fullscreen == nil {
		deps.Fullscreen = bubble.theater
	}

	opts := append(append([]engine.Option{}, options.Engine...), engine.WithNotify(bubble.wake))
	bubble.ctl = engine.New(options.Window, deps, opts...)
	bubble.lock = unlock.New(options.Window, options.Watched, options.Completions, func() {
		signal(bubble.unlocked)
	})
	bubble.keymap = newStatefulKeymap(bubble.ctl.Keymap())
	bubble.snapshot = bubble.ctl.Snapshot()
	bubble.setState(idleState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}

func (b *statefulBubble) wake() {
	signal(b.changes)
}

// signal never blocks: one pending wake-up is enough since the receiver
// re-reads the whole state.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.state = s
}

func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width
	b.theater.resize(width)
}

// sync pulls the controller snapshot and moves between idle, player and error.
func (b *statefulBubble) sync() {
	if b.ctl == nil {
		return
	}

	b.snapshot = b.ctl.Snapshot()

	switch b.snapshot.Phase {
	case engine.Idle:
		b.setState(idleState)
	case engine.Failed:
		b.setState(errorState)
	default:
		b.setState(playerState)
	}

	if !b.snapshot.SettingsOpen {
		b.rateCursor = max(0, lo.IndexOf(engine.Rates, b.snapshot.Rate))
	}
}

func (b *statefulBubble) close() {
	b.cancel()
	if b.lock != nil {
		b.lock.Close()
	}
	if b.ctl != nil {
		if err := b.ctl.Close(); err != nil {
			log.Warnf("closing player: %v", err)
		}
	}
}
