package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studio"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Status    lipgloss.Style
	Activity  lipgloss.Style
	Preview   lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Notice    lipgloss.Style
	Muted     lipgloss.Style
	StageDone lipgloss.Style
	StageNow  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t studio.Theme) Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Label:     lipgloss.NewStyle().Bold(true),
		Status:    lipgloss.NewStyle().Foreground(ansiColor(t.Status)),
		Activity:  lipgloss.NewStyle().Foreground(ansiColor(t.Activity)).Bold(true),
		Preview:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:   lipgloss.NewStyle().Foreground(ansiColor(t.Success)).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(ansiColor(t.Notice)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		StageDone: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		StageNow:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
