package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studio"
	"github.com/fwojciec/studio/goldmark"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	closedNotice    = "! Server closed the stream before completing"
	cancelledNotice = "! Cancelled"
	readyBanner     = "✓ Content package ready"
)

func (m Model) titleLine() string {
	title := m.styles.Title.Render("Content Creation Studio")
	if m.sessionID == "" {
		return title
	}
	return title + "  " + m.styles.Muted.Render("session "+m.sessionID)
}

// stageStrip renders the workflow stages with the furthest reached stage
// highlighted while running.
func (m Model) stageStrip() string {
	reached := m.state.Stage()
	done := m.state.Outcome == studio.OutcomeCompleted
	parts := make([]string, len(studio.Stages))
	for i, st := range studio.Stages {
		name := st.String()
		switch {
		case done || st < reached:
			parts[i] = m.styles.StageDone.Render("✓ " + name)
		case st == reached && m.state.Outcome == studio.OutcomeFailed:
			parts[i] = m.styles.Error.Render("✗ " + name)
		case st == reached && m.phase == phaseRunning:
			parts[i] = m.styles.StageNow.Render(name)
		default:
			parts[i] = m.styles.Muted.Render(name)
		}
	}
	return strings.Join(parts, m.styles.Muted.Render(" → "))
}

func (m Model) formView() string {
	lines := make([]string, fieldCount)
	for i, in := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = m.styles.Title.Render("› ")
		}
		label := m.styles.Label.Render(padRight(fieldLabels[i], 8))
		lines[i] = marker + label + in.View()
	}
	return strings.Join(lines, "\n")
}

// renderBody returns the progress log and the outcome section for the
// current state. Either may be empty.
func (m Model) renderBody(width int) (log, result string) {
	lines := make([]string, 0, len(m.state.Log))
	for _, e := range m.state.Log {
		lines = append(lines, m.renderEntry(e, width))
	}
	log = strings.Join(lines, "\n")

	switch m.state.Outcome {
	case studio.OutcomeCompleted:
		body := goldmark.Render(m.state.Content, width, m.theme)
		if body == "" {
			body = m.styles.Muted.Render("(no content)")
		}
		result = m.styles.Success.Render(readyBanner) + "\n\n" + body
	case studio.OutcomeFailed:
		result = m.wrap(m.styles.Error.Render("✗ Generation failed: "+m.state.Message), width)
	case studio.OutcomeClosed:
		result = m.styles.Notice.Render(closedNotice)
	default:
		if m.cancelled && m.phase == phaseDone {
			result = m.styles.Notice.Render(cancelledNotice)
		}
	}
	return log, result
}

func (m Model) renderEntry(e studio.ProgressEntry, width int) string {
	if e.Kind == studio.EntryStatus {
		return m.wrap(m.styles.Status.Render("● "+e.Message), width)
	}
	author := m.styles.Activity.Render(e.Author)
	if e.Preview == "" {
		return author
	}
	room := width - lipgloss.Width(author) - 2
	return author + "  " + m.styles.Preview.Render(truncate(e.Preview, room))
}

func (m Model) wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// truncate collapses whitespace in s and cuts it to at most width terminal
// cells, never splitting a grapheme cluster. An ellipsis marks the cut.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > width-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return strings.TrimRight(b.String(), " ") + "…"
}

func padRight(s string, n int) string {
	if w := runewidth.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s + " "
}
