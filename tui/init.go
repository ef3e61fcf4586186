package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type (
	changedMsg  struct{}
	unlockedMsg struct{}
	startedMsg  struct{ err error }
)

// Init starts listening for engine updates and, with autoplay, the player.
func (b *statefulBubble) Init() tea.Cmd {
	if b.ctl == nil {
		return nil
	}

	cmds := []tea.Cmd{b.waitForChange(), b.waitForUnlock()}
	if b.options.Autoplay {
		cmds = append(cmds, b.start())
	}
	return tea.Batch(cmds...)
}

func (b *statefulBubble) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.changes:
			return changedMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) waitForUnlock() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.unlocked:
			return unlockedMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) start() tea.Cmd {
	ctl, ctx := b.ctl, b.ctx
	return tea.Batch(
		b.spinnerC.Tick,
		func() tea.Msg {
			return startedMsg{err: ctl.Start(ctx)}
		},
	)
}
