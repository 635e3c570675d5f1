package studio

import (
	"fmt"
	"strings"
)

// Validate checks that every required field of the brief is non-blank.
func (b Brief) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"topic", b.Topic},
		{"target_audience", b.TargetAudience},
		{"tone", b.Tone},
		{"keywords", b.Keywords},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required: %w", f.name, ErrValidation)
		}
	}
	if len(b.KeywordList()) == 0 {
		return fmt.Errorf("keywords must contain at least one keyword, got %q: %w", b.Keywords, ErrValidation)
	}
	return nil
}

// ValidateText checks text submitted for one-shot analysis.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required: %w", ErrValidation)
	}
	return nil
}
