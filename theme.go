package studio

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	Status   int // Status entries in the progress log
	Activity int // Agent names in the progress log
	Error    int // Failure messages
	Success  int // Completion banner
	Notice   int // Closed-without-result notice
	Muted    int // Previews, hints, status bar
	CodeBg   int // Code block background
	Accent   int // Headings, links, active stage
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Status:   6,
		Activity: 4,
		Error:    1,
		Success:  2,
		Notice:   3,
		Muted:    8,
		CodeBg:   0,
		Accent:   5,
	}
}
