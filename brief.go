package studio

import "strings"

// Brief is the content brief submitted to start a generation workflow.
type Brief struct {
	Topic          string
	TargetAudience string
	Tone           string
	// Keywords is a comma-separated list, transmitted as one string.
	Keywords string
	// SessionID resumes an existing server-side session. Empty starts a new one.
	SessionID string
}

// KeywordList splits Keywords on commas, trimming whitespace and dropping
// empty items.
func (b Brief) KeywordList() []string {
	var out []string
	for _, k := range strings.Split(b.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
