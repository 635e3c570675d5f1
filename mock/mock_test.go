package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/studio"
	"github.com/fwojciec/studio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("delegates to GenerateFn", func(t *testing.T) {
		t.Parallel()
		var r mock.Run
		g := mock.Generator{
			GenerateFn: func(ctx context.Context, b studio.Brief) (studio.Run, error) {
				assert.Equal(t, "topic", b.Topic)
				return &r, nil
			},
		}
		got, err := g.Generate(context.Background(), studio.Brief{Topic: "topic"})
		require.NoError(t, err)
		assert.Equal(t, &r, got)
	})

	t.Run("panics when GenerateFn not set", func(t *testing.T) {
		t.Parallel()
		g := mock.Generator{}
		assert.Panics(t, func() {
			_, _ = g.Generate(context.Background(), studio.Brief{})
		})
	})
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("boom")
	a := mock.Analyzer{
		AnalyzeFn: func(ctx context.Context, text string) (string, error) {
			return "", wantErr
		},
	}
	_, err := a.Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, wantErr)
}

func TestRun_NilSafeDefaults(t *testing.T) {
	t.Parallel()
	r := mock.Run{}
	assert.Equal(t, studio.NewState(), r.State())
	assert.NoError(t, r.Close())
	assert.Panics(t, func() { _, _ = r.Next() })
}

func TestReplay(t *testing.T) {
	t.Parallel()

	running := studio.Apply(studio.NewState(), studio.EventStatus{Message: "working"})
	done := studio.Apply(running, studio.EventCompletion{Content: "FINAL"})

	t.Run("publishes in order then EOF", func(t *testing.T) {
		t.Parallel()
		r := mock.Replay(running, done)

		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, running, got)
		assert.Equal(t, running, r.State())

		got, err = r.Next()
		require.NoError(t, err)
		assert.Equal(t, done, got)

		_, err = r.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("close stops publishing", func(t *testing.T) {
		t.Parallel()
		r := mock.Replay(running, done)
		_, err := r.Next()
		require.NoError(t, err)
		require.NoError(t, r.Close())

		_, err = r.Next()
		assert.ErrorIs(t, err, studio.ErrRunClosed)
		assert.Equal(t, running, r.State())
	})
}
