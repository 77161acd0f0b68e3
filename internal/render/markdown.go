package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Options controls terminal rendering.
type Options struct {
	NoColor bool
	Width   int
	// Style is a glamour standard style name such as "dark" or "light".
	Style string
}

const DefaultStyle = "dark"

var (
	renderers   = map[Options]*glamour.TermRenderer{}
	renderersMu sync.Mutex
)

// Markdown renders cards for the terminal. When the markdown cannot be
// rendered the plain markdown source is returned.
func Markdown(cards []*Node, opts Options) string {
	source := MarkdownSource(cards)

	r, err := renderer(opts)
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return normalizeSpacing(out)
}

func normalizeSpacing(s string) string {
	trimmed := strings.Trim(s, "\n")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

func renderer(opts Options) (*glamour.TermRenderer, error) {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[opts]; ok {
		return r, nil
	}

	options := []glamour.TermRendererOption{}
	if opts.NoColor {
		options = append(options,
			glamour.WithStandardStyle("notty"),
			glamour.WithColorProfile(termenv.Ascii),
		)
	} else {
		options = append(options,
			glamour.WithStandardStyle(opts.Style),
			glamour.WithColorProfile(termenv.TrueColor),
		)
	}
	if opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(opts.Width))
	}

	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, err
	}
	renderers[opts] = r
	return r, nil
}

// MarkdownSource is the markdown document Markdown renders.
func MarkdownSource(cards []*Node) string {
	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		writeCard(&b, card)
	}
	return b.String()
}

func writeCard(b *strings.Builder, card *Node) {
	b.WriteString("## ")
	b.WriteString(escapeMarkdown(card.Title))
	b.WriteString("\n\n")

	for _, field := range card.Children {
		b.WriteString("**")
		b.WriteString(escapeMarkdown(field.Title))
		b.WriteString("**\n\n")
		if len(field.Children) == 0 {
			continue
		}
		writeBlock(b, field.Children[0], "")
		b.WriteString("\n")
	}
}

// writeBlock writes a value that starts on its own line.
func writeBlock(b *strings.Builder, n *Node, indent string) {
	switch n.Kind {
	case NodeText:
		if n.Text != "" {
			b.WriteString(indent)
			b.WriteString(escapeMarkdown(n.Text))
			b.WriteString("\n")
		}
	case NodeCode:
		writeCode(b, n, indent)
	case NodeList:
		writeList(b, n, indent)
	case NodeMapping:
		b.WriteString(indent)
		b.WriteString("*")
		b.WriteString(escapeMarkdown(n.Title))
		b.WriteString("*\n\n")
		writeEntries(b, n, indent)
	}
}

func writeList(b *strings.Builder, n *Node, indent string) {
	for _, item := range n.Children {
		switch item.Kind {
		case NodeText:
			b.WriteString(indent + "- " + escapeMarkdown(item.Text) + "\n")
		case NodeMapping:
			b.WriteString(indent + "- *" + escapeMarkdown(item.Title) + "*\n")
			writeEntries(b, item, indent+"  ")
		default:
			b.WriteString(indent + "-\n")
			writeBlock(b, item, indent+"  ")
		}
	}
}

func writeEntries(b *strings.Builder, n *Node, indent string) {
	for _, e := range n.Children {
		if len(e.Children) == 0 {
			continue
		}
		child := e.Children[0]
		b.WriteString(indent + "- **" + escapeMarkdown(e.Title) + ":**")
		if child.Kind == NodeText {
			b.WriteString(" " + escapeMarkdown(child.Text) + "\n")
			continue
		}
		b.WriteString("\n")
		if child.Kind == NodeMapping {
			writeEntries(b, child, indent+"  ")
			continue
		}
		writeBlock(b, child, indent+"  ")
	}
}

func writeCode(b *strings.Builder, n *Node, indent string) {
	fence := "```"
	if strings.Contains(n.Text, "```") {
		fence = "~~~~"
	}
	b.WriteString("\n")
	b.WriteString(indent + fence + n.Language + "\n")
	for _, line := range strings.Split(strings.TrimRight(n.Text, "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indent + line + "\n")
	}
	b.WriteString(indent + fence + "\n\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
