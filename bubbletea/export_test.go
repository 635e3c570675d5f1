package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// Truncate exports truncate for testing.
func Truncate(s string, width int) string {
	return truncate(s, width)
}

// Focus returns the index of the focused form field.
func Focus(m Model) int {
	return m.focus
}

// Start submits the form as Init does for a preset brief.
func Start(m Model) (Model, tea.Cmd) {
	updated, cmd := m.Update(startMsg{})
	return updated.(Model), cmd
}
