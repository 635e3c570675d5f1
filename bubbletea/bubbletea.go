// Package bubbletea provides a Bubble Tea TUI that collects a content brief,
// follows a generation run and shows the finished content package.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studio"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits and returns the final model. Runs started by the model derive from
// ctx, and cancelling ctx quits the program. A run still in progress when the
// program exits is cancelled and closed before Run returns.
func Run(ctx context.Context, m Model) (Model, error) {
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m.Shutdown(), err
}

// SnapshotMsg delivers one snapshot from the active run.
type SnapshotMsg struct {
	State studio.State
}

// RunDoneMsg signals that the active run has no more snapshots. Err is nil
// when the run reached a terminal state normally.
type RunDoneMsg struct {
	Err error
}

// startMsg asks the model to submit the current brief.
type startMsg struct{}
