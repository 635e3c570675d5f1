package goldmark

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studio"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// hashtag matches a social-media tag at the start of text or after
// whitespace or an opening parenthesis.
var hashtag = regexp.MustCompile(`(^|[\s(])(#[\p{L}\p{N}_]+)`)

type styles struct {
	title  lipgloss.Style
	head   lipgloss.Style
	rule   lipgloss.Style
	bold   lipgloss.Style
	italic lipgloss.Style
	strike lipgloss.Style
	code   lipgloss.Style
	link   lipgloss.Style
	muted  lipgloss.Style
	tag    lipgloss.Style
}

func newStyles(t studio.Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Foreground(termColor(t.Accent)).Bold(true),
		head:   lipgloss.NewStyle().Foreground(termColor(t.Accent)),
		rule:   lipgloss.NewStyle().Foreground(termColor(t.Muted)),
		bold:   lipgloss.NewStyle().Bold(true),
		italic: lipgloss.NewStyle().Italic(true),
		strike: lipgloss.NewStyle().Strikethrough(true),
		code:   lipgloss.NewStyle().Background(termColor(t.CodeBg)).Foreground(termColor(t.Accent)),
		link:   lipgloss.NewStyle().Underline(true),
		muted:  lipgloss.NewStyle().Foreground(termColor(t.Muted)).Faint(true),
		tag:    lipgloss.NewStyle().Foreground(termColor(t.Activity)).Bold(true),
	}
}

func termColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

type renderer struct {
	src []byte
	st  styles
}

// blocks renders the block children of n and joins the non-empty results.
func (r *renderer) blocks(n ast.Node, width int, sep string) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (r *renderer) block(n ast.Node, width int) string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n), width)
	case *ast.Heading:
		return r.heading(n, width)
	case *ast.FencedCodeBlock:
		body := r.code(n)
		if lang := string(n.Language(r.src)); lang != "" {
			return r.st.muted.Render(lang) + "\n" + body
		}
		return body
	case *ast.CodeBlock:
		return r.code(n)
	case *ast.Blockquote:
		return r.quote(n, width)
	case *ast.List:
		return r.list(n, width)
	case *ast.ThematicBreak:
		return r.st.rule.Render(strings.Repeat("─", width))
	case *ast.HTMLBlock:
		return strings.TrimRight(r.lines(n), "\n")
	default:
		return r.blocks(n, width, "\n\n")
	}
}

// heading underlines the first two levels so the package's title and
// section headings stand apart from deeper ones.
func (r *renderer) heading(n *ast.Heading, width int) string {
	txt := wrap(r.inline(n), width)
	switch n.Level {
	case 1:
		return r.st.title.Render(txt) + "\n" + r.st.rule.Render(strings.Repeat("═", min(width, lipgloss.Width(txt))))
	case 2:
		return r.st.head.Bold(true).Render(txt) + "\n" + r.st.rule.Render(strings.Repeat("─", min(width, lipgloss.Width(txt))))
	default:
		return r.st.head.Render(txt)
	}
}

func (r *renderer) code(n ast.Node) string {
	gutter := r.st.muted.Render("│") + " "
	raw := strings.TrimRight(r.lines(n), "\n")
	out := strings.Split(raw, "\n")
	for i, l := range out {
		out[i] = gutter + l
	}
	return strings.Join(out, "\n")
}

func (r *renderer) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(r.src))
	}
	return b.String()
}

func (r *renderer) quote(n *ast.Blockquote, width int) string {
	bar := r.st.muted.Render("▎") + " "
	inner := r.blocks(n, max(width-2, 10), "\n\n")
	out := strings.Split(inner, "\n")
	for i, l := range out {
		out[i] = bar + l
	}
	return strings.Join(out, "\n")
}

// list renders items with a marker on the first line and continuation lines
// indented to the marker's width. Nested lists are rendered through block and
// pick up the same indentation.
func (r *renderer) list(n *ast.List, width int) string {
	var items []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		pad := strings.Repeat(" ", len(marker))
		body := r.blocks(c, max(width-len(marker), 10), "\n")
		out := strings.Split(body, "\n")
		for i, l := range out {
			switch {
			case i == 0:
				out[i] = marker + l
			case l != "":
				out[i] = pad + l
			}
		}
		items = append(items, strings.Join(out, "\n"))
	}
	return strings.Join(items, "\n")
}

func (r *renderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &b)
	}
	return b.String()
}

func (r *renderer) span(n ast.Node, b *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		b.WriteString(r.tags(string(n.Segment.Value(r.src))))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.WriteString(r.tags(string(n.Value)))
	case *ast.Emphasis:
		if n.Level == 1 {
			b.WriteString(r.st.italic.Render(r.inline(n)))
		} else {
			b.WriteString(r.st.bold.Render(r.inline(n)))
		}
	case *east.Strikethrough:
		b.WriteString(r.st.strike.Render(r.inline(n)))
	case *ast.CodeSpan:
		b.WriteString(r.st.code.Render(r.plain(n)))
	case *ast.Link:
		label := r.inline(n)
		dest := string(n.Destination)
		b.WriteString(r.st.link.Render(label))
		if r.plain(n) != dest {
			b.WriteString(" " + r.st.muted.Render("("+dest+")"))
		}
	case *ast.AutoLink:
		b.WriteString(r.st.link.Render(string(n.URL(r.src))))
	case *ast.Image:
		b.WriteString(r.st.muted.Render("[image: " + r.plain(n) + "] (" + string(n.Destination) + ")"))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, b)
		}
	}
}

// plain returns the unstyled text under n.
func (r *renderer) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.src))
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(r.plain(c))
		}
	}
	return b.String()
}

func (r *renderer) tags(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}
	return hashtag.ReplaceAllStringFunc(s, func(m string) string {
		i := strings.IndexByte(m, '#')
		return m[:i] + r.st.tag.Render(m[i:])
	})
}

// wrap word-wraps s to width and drops the padding lipgloss adds to short
// lines.
func wrap(s string, width int) string {
	out := strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(out, "\n")
}
