// Package gemini implements [studio.Analyzer] directly against the Google
// Gemini API, bypassing the studio service.
//
// It wraps the google.golang.org/genai SDK with the same instruction the
// service's analysis agent uses.
package gemini

const (
	defaultModel = "gemini-2.5-flash"

	systemInstruction = `You are a content analysis expert. Analyze the provided text.

Report:
1. Word count
2. Readability
3. Five relevant hashtags

Provide a clear analysis report.`

	promptPrefix = "Can you analyze this text snippet:\n\n"
)
