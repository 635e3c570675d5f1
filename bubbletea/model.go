package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studio"
)

var _ tea.Model = Model{}

type phase int

const (
	phaseForm phase = iota
	phaseRunning
	phaseDone
)

const (
	fieldTopic = iota
	fieldAudience
	fieldTone
	fieldKeywords
	fieldCount
)

// chromeHeight is the number of lines around the body: title, stage strip,
// a blank line and the status line.
const chromeHeight = 4

var fieldLabels = [fieldCount]string{"Topic", "Audience", "Tone", "Keywords"}

var fieldPlaceholders = [fieldCount]string{
	"AI in healthcare",
	"healthcare professionals",
	"professional, informative",
	"AI, diagnostics, patient care",
}

// Model is the Bubble Tea model for the studio TUI.
type Model struct {
	// Viewport is the scrollable progress and result area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while a run is in progress.
	Spinner spinner.Model

	ctx    context.Context
	gen    studio.Generator
	theme  studio.Theme
	styles Styles

	inputs    [fieldCount]textinput.Model
	focus     int
	autostart bool
	sessionID string

	phase     phase
	state     studio.State
	run       studio.Run
	cancel    context.CancelFunc
	cancelled   bool
	interrupted bool
	err         error
	ready     bool
}

// Option configures a [Model].
type Option func(*Model)

// WithBrief fills the form from b and submits it as soon as the program
// starts.
func WithBrief(b studio.Brief) Option {
	return func(m *Model) {
		m.inputs[fieldTopic].SetValue(b.Topic)
		m.inputs[fieldAudience].SetValue(b.TargetAudience)
		m.inputs[fieldTone].SetValue(b.Tone)
		m.inputs[fieldKeywords].SetValue(b.Keywords)
		m.sessionID = b.SessionID
		m.autostart = true
	}
}

// WithContext sets the parent context of every run the model starts.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New creates a TUI Model that starts runs with gen.
func New(gen studio.Generator, theme studio.Theme, opts ...Option) Model {
	styles := NewStyles(theme)
	m := Model{
		ctx:    context.Background(),
		gen:    gen,
		theme:  theme,
		styles: styles,
		state:  studio.NewState(),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Status),
		),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 0
		m.inputs[i] = ti
	}
	m.inputs[fieldTopic].Focus()
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running reports whether a run is in progress.
func (m Model) Running() bool { return m.phase == phaseRunning }

// State returns the latest snapshot of the current or last run.
func (m Model) State() studio.State { return m.state }

// Interrupted reports whether the program exited while a run was still in
// progress and the user had not cancelled it.
func (m Model) Interrupted() bool { return m.interrupted }

// Shutdown cancels and closes a run that is still in progress. [Run] calls it
// once the program has exited; it is a no-op otherwise.
func (m Model) Shutdown() Model {
	if m.phase != phaseRunning {
		return m
	}
	m.interrupted = !m.cancelled
	if m.cancel != nil {
		m.cancel()
	}
	if m.run != nil {
		_ = m.run.Close()
	}
	m.run, m.cancel = nil, nil
	m.phase = phaseDone
	return m
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Brief returns the brief described by the form.
func (m Model) Brief() studio.Brief {
	return studio.Brief{
		Topic:          strings.TrimSpace(m.inputs[fieldTopic].Value()),
		TargetAudience: strings.TrimSpace(m.inputs[fieldAudience].Value()),
		Tone:           strings.TrimSpace(m.inputs[fieldTone].Value()),
		Keywords:       strings.TrimSpace(m.inputs[fieldKeywords].Value()),
		SessionID:      m.sessionID,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.autostart {
		return func() tea.Msg { return startMsg{} }
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startMsg:
		return m.start()

	case SnapshotMsg:
		if m.run == nil {
			return m, nil
		}
		m.state = msg.State
		if msg.State.SessionID != "" {
			m.sessionID = msg.State.SessionID
		}
		m = m.refresh()
		return m, next(m.run)

	case RunDoneMsg:
		return m.finish(msg.Err), nil

	case spinner.TickMsg:
		if m.phase != phaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.phase == phaseForm {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")
	b.WriteString(m.stageStrip())
	b.WriteString("\n\n")
	if m.phase == phaseForm {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := max(msg.Height-chromeHeight, 1)
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	labelWidth := 10
	for i := range m.inputs {
		m.inputs[i].Width = max(msg.Width-labelWidth-1, 10)
	}
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.phase == phaseRunning {
			m.cancelled = true
			m.cancel()
			_ = m.run.Close()
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseForm:
		return m.handleFormKey(msg)
	case phaseDone:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			return m.edit()
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m.focusField((m.focus + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		if m.focus < fieldCount-1 {
			return m.focusField(m.focus + 1)
		}
		return m.start()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[m.focus].Focus()
}

// start validates the form's brief and begins a run.
func (m Model) start() (tea.Model, tea.Cmd) {
	b := m.Brief()
	if err := b.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	run, err := m.gen.Generate(ctx, b)
	if err != nil {
		cancel()
		m.err = err
		return m, nil
	}
	m.inputs[m.focus].Blur()
	m.run, m.cancel = run, cancel
	m.state = studio.NewState()
	m.phase = phaseRunning
	m.cancelled = false
	m.interrupted = false
	m.err = nil
	m = m.refresh()
	return m, tea.Batch(m.Spinner.Tick, next(run))
}

func (m Model) finish(err error) Model {
	if m.run != nil {
		_ = m.run.Close()
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.run, m.cancel = nil, nil
	m.phase = phaseDone
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, studio.ErrRunClosed) {
		m.err = err
	}
	return m.refresh()
}

// edit returns to the form, keeping the previous brief and session.
func (m Model) edit() (tea.Model, tea.Cmd) {
	m.phase = phaseForm
	m.state = studio.NewState()
	m.cancelled = false
	m.err = nil
	m.focus = fieldTopic
	return m, m.inputs[m.focus].Focus()
}

// refresh re-renders the viewport from the current state. While running the
// view follows the newest entry; a completed run scrolls to the result.
func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	log, result := m.renderBody(m.Viewport.Width)
	if result == "" {
		m.Viewport.SetContent(log)
		m.Viewport.GotoBottom()
		return m
	}
	if log == "" {
		m.Viewport.SetContent(result)
		return m
	}
	m.Viewport.SetContent(log + "\n\n" + result)
	if m.state.Outcome == studio.OutcomeCompleted {
		m.Viewport.SetYOffset(strings.Count(log, "\n") + 2)
	} else {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	switch m.phase {
	case phaseRunning:
		msg := "Generating..."
		if last := lastStatus(m.state); last != "" {
			msg = last
		}
		return m.Spinner.View() + " " + m.styles.Muted.Render(msg+" · Ctrl+C to cancel")
	case phaseDone:
		return m.styles.Muted.Render("Enter for a new brief, q to quit")
	default:
		return m.styles.Muted.Render("Tab next field, Enter submit, Ctrl+C quit")
	}
}

// next pulls one snapshot from run.
func next(run studio.Run) tea.Cmd {
	return func() tea.Msg {
		s, err := run.Next()
		if errors.Is(err, io.EOF) {
			return RunDoneMsg{}
		}
		if err != nil {
			return RunDoneMsg{Err: err}
		}
		return SnapshotMsg{State: s}
	}
}

func lastStatus(s studio.State) string {
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].Kind == studio.EntryStatus {
			return s.Log[i].Message
		}
	}
	return ""
}
