// Package goldmark renders the studio's markdown content package to
// ANSI-styled terminal output. Parsing is done by goldmark, styling by
// lipgloss.
package goldmark

import (
	"strings"

	"github.com/fwojciec/studio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, headings and list items are word-wrapped to width; code blocks
// keep their lines as written. Top-level blocks are separated by one blank
// line. Hashtags in running text are highlighted.
func Render(source string, width int, theme studio.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	r := &renderer{src: src, st: newStyles(theme)}
	return r.blocks(doc, width, "\n\n")
}
