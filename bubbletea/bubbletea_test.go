package bubbletea_test

import (
	"context"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studio"
	bt "github.com/fwojciec/studio/bubbletea"
	"github.com/fwojciec/studio/mock"
	"github.com/stretchr/testify/require"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func validBrief() studio.Brief {
	return studio.Brief{
		Topic:          "AI in healthcare",
		TargetAudience: "clinicians",
		Tone:           "informative",
		Keywords:       "AI, diagnostics",
	}
}

// replayGen returns a generator whose runs replay states.
func replayGen(states ...studio.State) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(_ context.Context, _ studio.Brief) (studio.Run, error) {
			return mock.Replay(states...), nil
		},
	}
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, gen studio.Generator, opts ...bt.Option) bt.Model {
	t.Helper()
	return initModelWithSize(t, gen, 80, 24, opts...)
}

func initModelWithSize(t *testing.T, gen studio.Generator, width, height int, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(gen, studio.DefaultTheme(), opts...)
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

func typeText(t *testing.T, m bt.Model, s string) bt.Model {
	t.Helper()
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// completedState builds the snapshots of a short successful run.
func completedStates() []studio.State {
	s0 := studio.Apply(studio.NewState(), studio.EventStatus{Message: "Starting content creation workflow...", SessionID: "sess-1"})
	s1 := studio.Apply(s0, studio.EventAgentActivity{Author: "intake_agent", Preview: "Parsed brief"})
	s2 := studio.Apply(s1, studio.EventAgentActivity{Author: "topic_research_agent", Preview: "Found five trends"})
	s3 := studio.Apply(s2, studio.EventCompletion{Content: "# Launch\n\nBig news #AI"})
	return []studio.State{s0, s1, s2, s3}
}
