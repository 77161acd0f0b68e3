package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const DefaultHTMLStyle = "github"

// HTMLOptions controls the HTML export.
type HTMLOptions struct {
	Title string
	// Style is a chroma style name used for code blocks.
	Style string
	// Plain disables syntax highlighting; code is emitted escaped only.
	Plain bool
}

// HTMLDocument is the data rendered into the export page.
type HTMLDocument struct {
	Title   string
	Summary string
	Cards   []template.HTML
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; background: #f6f8fa; color: #24292f; }
.summary { margin-bottom: 1.5rem; color: #57606a; }
.data-card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; margin-bottom: 1.5rem; padding: 1rem; }
.data-row { display: flex; gap: 1rem; border-bottom: 1px solid #eaeef2; padding: .5rem 0; }
.data-label { font-weight: 600; min-width: 12rem; }
.data-value { flex: 1; overflow-x: auto; white-space: pre-wrap; }
.dict-title { font-style: italic; margin-bottom: .25rem; }
.dict-item { margin-left: 1rem; }
.dict-key { font-weight: 600; }
.array-item { margin-left: 1rem; border-left: 2px solid #eaeef2; padding-left: .5rem; }
pre.code-block { background: #f6f8fa; padding: .75rem; border-radius: 6px; overflow-x: auto; white-space: pre; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
{{- if .Summary }}
<div class="summary">{{ .Summary }}</div>
{{- end }}
<div class="cards-container">
{{- range .Cards }}
{{ . }}
{{- end }}
</div>
</body>
</html>
`))

// HTML writes a standalone page with one card per row.
func HTML(w io.Writer, cards []*Node, summary string, opts HTMLOptions) error {
	doc := HTMLDocument{Title: opts.Title, Summary: summary}
	for _, card := range cards {
		var b strings.Builder
		if err := writeHTMLCard(&b, card, opts); err != nil {
			return err
		}
		doc.Cards = append(doc.Cards, template.HTML(b.String())) //nolint:gosec // built from escaped parts
	}
	return documentTemplate.Execute(w, doc)
}

func writeHTMLCard(b *strings.Builder, card *Node, opts HTMLOptions) error {
	b.WriteString(`<div class="data-card">`)
	fmt.Fprintf(b, `<div class="data-row"><div class="data-label">%s</div></div>`, EscapeHTML(card.Title))
	for _, field := range card.Children {
		fmt.Fprintf(b, `<div class="data-row"><div class="data-label">%s</div><div class="data-value">`,
			EscapeHTML(field.Title))
		for _, child := range field.Children {
			if err := writeHTMLValue(b, child, opts); err != nil {
				return err
			}
		}
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
	return nil
}

func writeHTMLValue(b *strings.Builder, n *Node, opts HTMLOptions) error {
	switch n.Kind {
	case NodeText:
		b.WriteString(EscapeHTML(n.Text))
	case NodeCode:
		return writeHTMLCode(b, n, opts)
	case NodeList:
		b.WriteString(`<div class="array-container">`)
		for _, item := range n.Children {
			b.WriteString(`<div class="array-item">`)
			if err := writeHTMLValue(b, item, opts); err != nil {
				return err
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	case NodeMapping:
		fmt.Fprintf(b, `<div class="dict-display"><div class="dict-title">%s</div><div class="dict-content">`,
			EscapeHTML(n.Title))
		for _, e := range n.Children {
			fmt.Fprintf(b, `<div class="dict-item"><span class="dict-key">%s: </span><span class="dict-value">`,
				EscapeHTML(e.Title))
			for _, child := range e.Children {
				if err := writeHTMLValue(b, child, opts); err != nil {
					return err
				}
			}
			b.WriteString(`</span></div>`)
		}
		b.WriteString(`</div></div>`)
	}
	return nil
}

func writeHTMLCode(b *strings.Builder, n *Node, opts HTMLOptions) error {
	if opts.Plain {
		fmt.Fprintf(b, `<pre class="code-block"><code class="language-%s">%s</code></pre>`, n.Language, n.Escaped)
		return nil
	}
	highlighted, err := HighlightHTML(n.Text, n.Language, opts.Style)
	if err != nil {
		fmt.Fprintf(b, `<pre class="code-block"><code class="language-%s">%s</code></pre>`, n.Language, n.Escaped)
		return nil
	}
	b.WriteString(highlighted)
	return nil
}

// HighlightHTML renders code as a <pre> block with inline chroma styles.
func HighlightHTML(code, language, styleName string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil || styleName == "" {
		style = styles.Get(DefaultHTMLStyle)
	}
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise code: %w", err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.TabWidth(4),
	)
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("failed to format code: %w", err)
	}
	return buf.String(), nil
}
