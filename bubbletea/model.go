package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/econstats/econstats"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the econstats TUI.
type Model struct {
	// Input is the query input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable result area. Exported for test access.
	Viewport viewport.Model

	search  SearchFunc
	session *econstats.Session
	theme   econstats.Theme
	styles  Styles

	// result is the latest snapshot of the current or previous search.
	// It stays on screen while the next search connects, so the answer
	// never flashes away before new data arrives.
	result  econstats.Result
	summary *summaryView

	// seq identifies the active search. Messages tagged with an older
	// seq belong to a superseded search and are dropped.
	seq          int
	pendingQuery string
	running      bool
	cancel       context.CancelFunc
	snapshotCh   chan econstats.Result
	doneCh       chan searchOutcome
	err          error
	ready        bool
}

type searchOutcome struct {
	result econstats.Result
	err    error
}

// New creates a TUI Model with the given search function, session and
// theme.
func New(search SearchFunc, session *econstats.Session, theme econstats.Theme) Model {
	styles := NewStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "Ask about inflation, jobs, rates, recession odds..."
	ti.Prompt = "> "
	ti.PromptStyle = styles.Query
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:   ti,
		search:  search,
		session: session,
		theme:   theme,
		styles:  styles,
		summary: newSummaryView(theme),
	}
}

// Running reports whether a search is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last search error, if any.
func (m Model) Err() error { return m.err }

// Result returns the latest applied snapshot.
func (m Model) Result() econstats.Result { return m.result }

// SetRunning is a test helper that puts the model in a running state.
func SetRunning(m Model) (Model, tea.Cmd) {
	m.running = true
	return m, nil
}

// SetRunningWithCancel is a test helper that puts the model in a running
// state with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m = m.applySnapshot(msg.Snapshot)
		if m.snapshotCh != nil {
			return m, listenForUpdate(m.snapshotCh, m.doneCh, m.seq)
		}
		return m, nil

	case SearchDoneMsg:
		return m.handleDone(msg)
	}

	// Pass remaining messages to sub-components. The viewport always
	// receives them for scrolling (keyboard and mouse).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputHeight := 1
	statusHeight := 1
	gapHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputHeight - statusHeight - gapHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitQuery(text)

	case tea.KeyTab:
		if !m.running && m.Input.Value() == "" && len(m.result.Suggestions) > 0 {
			m.Input.SetValue(m.result.Suggestions[0])
			m.Input.CursorEnd()
		}
		return m, nil
	}

	// Forward non-character keys to the viewport for scrolling; character
	// keys belong to the input only.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submitQuery starts a search. A search already in flight is cancelled
// and superseded; its remaining messages carry a stale seq and are
// dropped.
func (m Model) submitQuery(text string) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.seq++
	m.err = nil
	m.pendingQuery = text
	m.Input.SetValue("")

	req := econstats.SearchRequest{Query: text}
	if m.session != nil {
		req.History = m.session.History()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.snapshotCh = make(chan econstats.Result, 256)
	m.doneCh = make(chan searchOutcome, 1)
	m.running = true

	return m, tea.Batch(
		startSearch(m.search, ctx, req, m.snapshotCh, m.doneCh),
		listenForUpdate(m.snapshotCh, m.doneCh, m.seq),
	)
}

func (m Model) applySnapshot(snap econstats.Result) Model {
	m.result = snap
	m.summary.SetText(snap.Summary)
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleDone(msg SearchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}
	m.running = false
	m.cancel = nil
	m.snapshotCh = nil
	m.doneCh = nil

	if msg.Err != nil && errors.Is(msg.Err, context.Canceled) {
		// Cancelled by the user; keep whatever was on screen.
		return m, nil
	}

	m.err = msg.Err
	m = m.applySnapshot(msg.Result)
	if m.session != nil && econstats.Recordable(msg.Result) {
		m.session.Append(m.pendingQuery, time.Now())
	}
	return m, nil
}

// renderContent lays out the current result top to bottom. Sections with
// nothing to show are skipped.
func (m Model) renderContent() string {
	width := m.Viewport.Width
	if width <= 0 {
		width = 80
	}
	if !m.result.Renderable() {
		return m.styles.Muted.Render("Ask about US economic data. Try: cpi, unemployment since 2020, fed rate odds.")
	}

	sections := make([]string, 0, 8)
	add := func(s string) {
		if s != "" {
			sections = append(sections, s)
		}
	}
	add(renderQuery(m.result.Query, m.styles, width))
	add(renderTemporal(m.result.TemporalContext, m.styles, width))
	add(renderCharts(m.result.Charts, m.styles, width))
	add(renderMetrics(m.result.Metrics, m.styles, width))
	add(renderFragments(m.result.Fragments, m.styles, width))
	add(m.summary.View(width))
	add(renderSources(m.result.Sources, m.styles, width))
	add(renderSuggestions(m.result.Suggestions, m.styles, width))
	if m.result.State == econstats.StreamStateFailed {
		add(renderError(m.result.ErrorMessage, m.styles, width))
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	if width <= 0 {
		width = 80
	}
	if m.err != nil {
		return m.styles.Error.Render(truncateLine(fmt.Sprintf("Error: %v", m.err), width))
	}
	if m.running {
		return m.styles.Muted.Render(truncateLine("Searching: "+m.pendingQuery, width))
	}
	if len(m.result.Suggestions) > 0 && m.Input.Value() == "" {
		return m.styles.Muted.Render(truncateLine("Tab for a related query, Enter to search, Ctrl+C to quit", width))
	}
	return m.styles.Muted.Render(truncateLine("Enter to search, Ctrl+C to quit", width))
}

// startSearch runs the search in a goroutine, forwarding snapshots to
// snapshotCh and the outcome to doneCh.
func startSearch(search SearchFunc, ctx context.Context, req econstats.SearchRequest, snapshotCh chan<- econstats.Result, doneCh chan<- searchOutcome) tea.Cmd {
	return func() tea.Msg {
		result, err := search(ctx, req, func(r econstats.Result) {
			select {
			case snapshotCh <- r:
			case <-ctx.Done():
			}
		})
		close(snapshotCh)
		doneCh <- searchOutcome{result: result, err: err}
		return nil
	}
}

// listenForUpdate waits for the next snapshot from the channel. When the
// channel closes, it reads the outcome from doneCh and returns a
// SearchDoneMsg.
func listenForUpdate(ch <-chan econstats.Result, doneCh <-chan searchOutcome, seq int) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			out := <-doneCh
			return SearchDoneMsg{Seq: seq, Result: out.result, Err: out.err}
		}
		return SnapshotMsg{Seq: seq, Snapshot: snap}
	}
}
