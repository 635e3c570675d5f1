package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/studio"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ studio.Analyzer = (*Analyzer)(nil)

// Analyzer implements [studio.Analyzer] for the Google Gemini API.
type Analyzer struct {
	client  *genai.Client
	model   string
	baseURL string
}

// Option configures an [Analyzer].
type Option func(*Analyzer)

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(a *Analyzer) { a.model = model }
}

// WithBaseURL overrides the API endpoint. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(a *Analyzer) { a.baseURL = url }
}

// New creates a new Gemini [Analyzer] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{model: defaultModel}
	for _, o := range opts {
		o(a)
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if a.baseURL != "" {
		cfg.HTTPOptions.BaseURL = a.baseURL
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	a.client = gc
	return a, nil
}

// Analyze asks the model for an analysis report of text.
func (a *Analyzer) Analyze(ctx context.Context, text string) (string, error) {
	if err := studio.ValidateText(text); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(promptPrefix+text), config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	out := responseText(resp)
	if out == "" {
		return "", errors.New("gemini: no analysis received")
	}
	return out, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
