package studio

import "context"

// Generator starts a content generation workflow for a brief.
// Implementations validate the brief and return a wrapped ErrValidation for an
// invalid one; all transport failures are reported through the returned Run.
type Generator interface {
	Generate(ctx context.Context, b Brief) (Run, error)
}

// Analyzer runs a one-shot analysis of a text snippet.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}
