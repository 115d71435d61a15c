// Package bubbletea provides the Bubble Tea TUI for econstats.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/econstats/econstats"
)

// SearchFunc runs one search. The onUpdate callback is called with a
// result snapshot after every applied event. The function blocks until
// the search reaches a terminal state or the context is cancelled.
type SearchFunc func(ctx context.Context, req econstats.SearchRequest, onUpdate func(econstats.Result)) (econstats.Result, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. Cancelling ctx quits the program, so it can be wired to
// OS signals for graceful shutdown.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SnapshotMsg delivers an in-flight result snapshot to the model. Seq
// names the search it belongs to; snapshots from a superseded search are
// dropped.
type SnapshotMsg struct {
	Seq      int
	Snapshot econstats.Result
}

// SearchDoneMsg signals that a search has finished.
type SearchDoneMsg struct {
	Seq    int
	Result econstats.Result
	Err    error
}
