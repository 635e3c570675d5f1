package studio_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBrief() studio.Brief {
	return studio.Brief{
		Topic:          "AI in healthcare",
		TargetAudience: "hospital administrators",
		Tone:           "professional",
		Keywords:       "AI, diagnostics, efficiency",
	}
}

func TestBrief_Validate_Valid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validBrief().Validate())
}

func TestBrief_Validate_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*studio.Brief)
		field  string
	}{
		{"empty topic", func(b *studio.Brief) { b.Topic = "" }, "topic"},
		{"blank audience", func(b *studio.Brief) { b.TargetAudience = "   " }, "target_audience"},
		{"empty tone", func(b *studio.Brief) { b.Tone = "" }, "tone"},
		{"empty keywords", func(b *studio.Brief) { b.Keywords = "" }, "keywords"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := validBrief()
			tt.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, studio.ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestBrief_Validate_KeywordsOnlyCommas(t *testing.T) {
	t.Parallel()
	b := validBrief()
	b.Keywords = " , ,"
	err := b.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, studio.ErrValidation))
}

func TestBrief_Validate_SessionIDOptional(t *testing.T) {
	t.Parallel()
	b := validBrief()
	b.SessionID = "sess-42"
	assert.NoError(t, b.Validate())
}

func TestBrief_KeywordList(t *testing.T) {
	t.Parallel()

	t.Run("trims and drops empties", func(t *testing.T) {
		t.Parallel()
		b := studio.Brief{Keywords: " AI ,, diagnostics,efficiency , "}
		assert.Equal(t, []string{"AI", "diagnostics", "efficiency"}, b.KeywordList())
	})

	t.Run("single keyword", func(t *testing.T) {
		t.Parallel()
		b := studio.Brief{Keywords: "marketing"}
		assert.Equal(t, []string{"marketing"}, b.KeywordList())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, studio.Brief{}.KeywordList())
	})
}

func TestValidateText(t *testing.T) {
	t.Parallel()
	assert.NoError(t, studio.ValidateText("Some text"))

	err := studio.ValidateText(" \n\t")
	require.Error(t, err)
	assert.True(t, errors.Is(err, studio.ErrValidation))
}
