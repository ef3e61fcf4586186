package tui

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/icon"
	"github.com/babua-dev/clipper/internal/ui"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/open"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case changedMsg:
		b.sync()
		cmds = append(cmds, b.waitForChange())
	case unlockedMsg:
		cmds = append(cmds, ui.Notify(icon.Get(icon.Unlock)+" Solution unlocked"), b.waitForUnlock())
	case startedMsg:
		if msg.err != nil && !errors.Is(msg.err, engine.ErrClosed) {
			log.Warnf("starting player: %v", msg.err)
		}
		b.sync()
	case spinner.TickMsg:
		if b.state == playerState && !b.snapshot.Ready {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.BlurMsg:
		if b.ctl != nil {
			b.ctl.PointerLeave()
		}
	case tea.KeyMsg:
		cmds = append(cmds, b.handleKey(msg))
	case tea.MouseMsg:
		b.handleMouse(msg)
	}

	return b, tea.Batch(cmds...)
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	case key.Matches(msg, b.keymap.openURL) && b.ctl != nil:
		return b.openWatchURL()
	}

	switch b.state {
	case idleState:
		if key.Matches(msg, b.keymap.start) {
			b.setState(playerState)
			return b.start()
		}
	case playerState:
		return b.handlePlayerKey(msg)
	}

	return nil
}

func (b *statefulBubble) handlePlayerKey(msg tea.KeyMsg) tea.Cmd {
	if b.snapshot.SettingsOpen {
		switch {
		case key.Matches(msg, b.keymap.up):
			b.rateCursor = max(0, b.rateCursor-1)
			return nil
		case key.Matches(msg, b.keymap.down):
			b.rateCursor = min(len(engine.Rates)-1, b.rateCursor+1)
			return nil
		case key.Matches(msg, b.keymap.confirm):
			if err := b.ctl.ChangePlaybackRate(engine.Rates[b.rateCursor]); err != nil {
				log.Warnf("changing rate: %v", err)
			}
			b.sync()
			return nil
		}
	}

	switch {
	case key.Matches(msg, b.keymap.nextTab):
		if tabs := b.codeTabs(); len(tabs) > 0 {
			b.tab = (b.tab + 1) % len(tabs)
		}
		return nil
	case key.Matches(msg, b.keymap.copyCode):
		return b.copyCode()
	}

	if b.ctl.HandleKey(msg.String()) {
		b.sync()
	}
	return nil
}

func (b *statefulBubble) handleMouse(msg tea.MouseMsg) {
	if b.state != playerState {
		return
	}

	row, col, width := b.barGeometry()
	progress := b.ctl.Progress(width)
	x := msg.X - col

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y == row && x >= 0 && x < width {
			progress.Press(x)
		}
	case tea.MouseActionMotion:
		b.ctl.ShowControls()
		progress.Drag(x)
	case tea.MouseActionRelease:
		if err := progress.Release(x); err != nil {
			log.Warnf("seeking: %v", err)
		}
	}

	b.sync()
}

func (b *statefulBubble) openWatchURL() tea.Cmd {
	url := b.options.Window.WatchURL()
	return func() tea.Msg {
		if err := open.Start(url); err != nil {
			return ui.NotificationMsg(icon.Get(icon.Fail) + " " + err.Error())
		}
		return ui.NotificationMsg(icon.Get(icon.Link) + " Opened in browser")
	}
}

func (b *statefulBubble) copyCode() tea.Cmd {
	if b.lock == nil || !b.lock.Unlocked() {
		return ui.Notify(icon.Get(icon.Lock) + " Watch the clip to unlock the code")
	}

	tabs := b.codeTabs()
	if len(tabs) == 0 {
		return nil
	}

	tab := tabs[b.tab%len(tabs)]
	if err := clipboard.WriteAll(tab.code); err != nil {
		return ui.Notify(icon.Get(icon.Fail) + " " + err.Error())
	}
	return ui.Notify(icon.Get(icon.Success) + " Copied " + tab.name)
}
