package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/studio"
	studiojson "github.com/fwojciec/studio/json"
	"github.com/fwojciec/studio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var happyStream = []string{
	`{"type":"status","message":"Starting content creation workflow...","session_id":"sess-1"}`,
	`{"type":"event","author":"intake_agent","content_preview":"Parsed brief"}`,
	`{"type":"event","author":"topic_research_agent","content_preview":"Found\nfive trends"}`,
	`{"type":"complete","content":"# Package\n\nBig news #AI","session_id":"sess-1"}`,
}

func briefArgs(topic string) []string {
	return []string{"--topic", topic, "--audience", "clinicians", "--tone", "informative", "--keywords", "AI, care"}
}

func TestGenerate_Plain(t *testing.T) {
	t.Parallel()

	t.Run("completed run prints package and saves files", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": happyStream}}.start(t)
		dir := t.TempDir()
		out := filepath.Join(dir, "pkg", "package.md")
		rec := filepath.Join(dir, "runs", "run.json")

		args := append([]string{"generate", "--plain", "--url", srv.URL, "--out", out, "--record", rec}, briefArgs("AI")...)
		res := execute(t, nil, "", args...)
		require.NoError(t, res.err)

		assert.Equal(t, "# Package\n\nBig news #AI\n", res.stdout)
		assert.Contains(t, res.stderr, "• Starting content creation workflow...\n")
		assert.Contains(t, res.stderr, "[Intake] intake_agent: Parsed brief\n")
		assert.Contains(t, res.stderr, "[Research] topic_research_agent: Found five trends\n")
		assert.Equal(t, "# Package\n\nBig news #AI", readFile(t, out))

		got, err := studiojson.Load(rec)
		require.NoError(t, err)
		assert.Equal(t, studio.OutcomeCompleted, got.State.Outcome)
		assert.Equal(t, "sess-1", got.State.SessionID)
		assert.Equal(t, "AI", got.Brief.Topic)
		assert.Len(t, got.State.Log, 3)
		assert.False(t, got.FinishedAt.Before(got.StartedAt))
	})

	t.Run("render flag styles the package", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": happyStream}}.start(t)
		args := append([]string{"generate", "--plain", "--render", "--url", srv.URL}, briefArgs("AI")...)
		res := execute(t, nil, "", args...)
		require.NoError(t, res.err)
		assert.NotContains(t, res.stdout, "# Package")
		assert.Contains(t, res.stdout, "Package")
	})

	t.Run("url defaults to STUDIO_URL", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": happyStream}}.start(t)
		args := append([]string{"generate", "--plain"}, briefArgs("AI")...)
		res := execute(t, map[string]string{"STUDIO_URL": srv.URL}, "", args...)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Big news")
	})

	t.Run("failed run exits with error", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": {
			`{"type":"status","message":"Starting"}`,
			`{"type":"error","message":"quota exceeded"}`,
		}}}.start(t)
		dir := t.TempDir()
		out := filepath.Join(dir, "package.md")
		args := append([]string{"generate", "--plain", "--url", srv.URL, "--out", out}, briefArgs("AI")...)
		res := execute(t, nil, "", args...)

		require.EqualError(t, res.err, "generation failed: quota exceeded")
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "✗ generation failed: quota exceeded")
		assert.NoFileExists(t, out)
	})

	t.Run("closed stream exits with error", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": {
			`{"type":"event","author":"content_drafter_agent"}`,
		}}}.start(t)
		args := append([]string{"generate", "--plain", "--url", srv.URL}, briefArgs("AI")...)
		res := execute(t, nil, "", args...)

		require.EqualError(t, res.err, "server closed the stream before completing")
		assert.Contains(t, res.stderr, "[Draft] content_drafter_agent\n")
		assert.Contains(t, res.stderr, "! server closed the stream before completing")
	})

	t.Run("incomplete brief is rejected", func(t *testing.T) {
		t.Parallel()
		res := execute(t, nil, "", "generate", "--plain", "--url", "http://127.0.0.1:1", "--topic", "AI")
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, studio.ErrValidation)
		assert.Contains(t, res.err.Error(), "target_audience is required")
	})

	t.Run("no brief at all", func(t *testing.T) {
		t.Parallel()
		res := execute(t, nil, "", "generate", "--plain")
		assert.ErrorIs(t, res.err, studio.ErrValidation)
	})

	t.Run("log file receives debug logs", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{"AI": happyStream}}.start(t)
		logPath := filepath.Join(t.TempDir(), "studio.log")
		args := append([]string{"generate", "--plain", "-v", "--log-file", logPath, "--url", srv.URL}, briefArgs("AI")...)
		res := execute(t, nil, "", args...)
		require.NoError(t, res.err)
		logs := readFile(t, logPath)
		assert.Contains(t, logs, `"msg":"stream opened"`)
		assert.Contains(t, logs, `"topic":"AI"`)
	})
}

func TestGenerate_BriefFiles(t *testing.T) {
	t.Parallel()

	brief := func(topic string) string {
		return "topic: " + topic + "\ntarget_audience: clinicians\ntone: informative\nkeywords: [AI, care]\n"
	}

	t.Run("every matching brief runs in order", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{
			"Alpha": {`{"type":"complete","content":"alpha package"}`},
			"Beta":  {`{"type":"complete","content":"beta package"}`},
		}}.start(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "briefs", "a.yaml"), brief("Alpha"))
		writeFile(t, filepath.Join(dir, "briefs", "nested", "b.yaml"), brief("Beta"))
		out := filepath.Join(dir, "out", "package.md")

		res := execute(t, nil, "", "generate", "--url", srv.URL, "--out", out,
			"--brief", filepath.Join(dir, "briefs", "**", "*.yaml"))
		require.NoError(t, res.err)

		assert.Equal(t, "alpha package\nbeta package\n", res.stdout)
		assert.Contains(t, res.stderr, "==> [1/2] Alpha")
		assert.Contains(t, res.stderr, "==> [2/2] Beta")
		assert.Equal(t, "alpha package", readFile(t, filepath.Join(dir, "out", "package-1.md")))
		assert.Equal(t, "beta package", readFile(t, filepath.Join(dir, "out", "package-2.md")))
	})

	t.Run("one failed brief fails the batch but the rest still run", func(t *testing.T) {
		t.Parallel()
		srv := fakeStudio{streams: map[string][]string{
			"Beta": {`{"type":"complete","content":"beta package"}`},
		}}.start(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "briefs.yaml"), brief("Alpha")+"---\n"+brief("Beta"))

		res := execute(t, nil, "", "generate", "--url", srv.URL, "--brief", filepath.Join(dir, "briefs.yaml"))
		require.EqualError(t, res.err, "1 of 2 briefs did not complete")
		assert.Equal(t, "beta package\n", res.stdout)
		assert.Contains(t, res.stderr, "✗ generation failed: unknown topic")
	})

	t.Run("invalid brief file stops before any run", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "bad.yaml"), "topic: only\n")
		res := execute(t, nil, "", "generate", "--url", "http://127.0.0.1:1", "--brief", filepath.Join(dir, "*.yaml"))
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, studio.ErrValidation)
		assert.Contains(t, res.err.Error(), "bad.yaml")
	})
}

func TestFollow(t *testing.T) {
	t.Parallel()

	s0 := studio.Apply(studio.NewState(), studio.EventStatus{Message: "one"})
	s1 := studio.Apply(s0, studio.EventAgentActivity{Author: "seo_metadata_agent", Preview: "Meta title"})
	s2 := studio.Apply(s1, studio.EventCompletion{Content: "done"})

	var buf strings.Builder
	got, err := follow(mock.Replay(s0, s1, s2), &buf)
	require.NoError(t, err)
	assert.Equal(t, s2, got)
	assert.Equal(t, "• one\n[Multi-Channel] seo_metadata_agent: Meta title\n", buf.String())

	t.Run("run error returns the last snapshot", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		calls := 0
		run := &mock.Run{NextFn: func() (studio.State, error) {
			calls++
			if calls == 1 {
				return s0, nil
			}
			return studio.State{}, boom
		}}
		var buf strings.Builder
		got, err := follow(run, &buf)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, s0, got)
	})
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry studio.ProgressEntry
		want  string
	}{
		{"status", studio.ProgressEntry{Kind: studio.EntryStatus, Message: "Starting"}, "• Starting"},
		{"activity without preview", studio.ProgressEntry{Kind: studio.EntryActivity, Author: "final_packager_agent"}, "[Package] final_packager_agent"},
		{"unknown agent has no stage", studio.ProgressEntry{Kind: studio.EntryActivity, Author: "master_orchestrator_agent", Preview: "Delegating"}, "master_orchestrator_agent: Delegating"},
		{
			"long preview is truncated",
			studio.ProgressEntry{Kind: studio.EntryActivity, Author: "content_drafter_agent", Preview: strings.Repeat("word ", 40)},
			"[Draft] content_drafter_agent: " + strings.TrimSpace(strings.Repeat("word ", 16)) + "…",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatEntry(tt.entry))
		})
	}
}

func TestNumbered(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "out/pkg.md", numbered("out/pkg.md", 0, 1))
	assert.Equal(t, "out/pkg-1.md", numbered("out/pkg.md", 0, 3))
	assert.Equal(t, "out/pkg-3.md", numbered("out/pkg.md", 2, 3))
	assert.Equal(t, "record-2", numbered("record", 1, 2))
}

func TestOutcomeError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, outcomeError(studio.Apply(studio.NewState(), studio.EventCompletion{})))
	assert.EqualError(t, outcomeError(studio.NewState().Fail("x")), "generation failed: x")
	assert.EqualError(t, outcomeError(studio.NewState().Close()), "server closed the stream before completing")
	assert.EqualError(t, outcomeError(studio.NewState()), "generation cancelled")
}
