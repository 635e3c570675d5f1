// Package mock provides test doubles for studio interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/studio"
)

// Interface compliance checks.
var (
	_ studio.Generator = (*Generator)(nil)
	_ studio.Analyzer  = (*Analyzer)(nil)
)

// Generator is a test double for studio.Generator.
// Set GenerateFn before calling Generate.
type Generator struct {
	GenerateFn func(ctx context.Context, b studio.Brief) (studio.Run, error)
}

// Generate delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, b studio.Brief) (studio.Run, error) {
	return g.GenerateFn(ctx, b)
}

// Analyzer is a test double for studio.Analyzer.
// Set AnalyzeFn before calling Analyze.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, text string) (string, error)
}

// Analyze delegates to AnalyzeFn.
func (a *Analyzer) Analyze(ctx context.Context, text string) (string, error) {
	return a.AnalyzeFn(ctx, text)
}
