package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dsview/dsview/internal/dataset"
	"github.com/stretchr/testify/require"
)

func rowsOf(rows ...dataset.Row) []dataset.Row { return rows }

func TestHTMLPlainUsesEscapedCode(t *testing.T) {
	row := mustRow(t, `{"prompt": "import os\nx = '<b>'", "label": "<script>", "_index": 1}`)

	var buf bytes.Buffer
	err := HTML(&buf, RenderPage(rowsOf(row), 0), "Showing rows 1", HTMLOptions{Title: "a/b", Plain: true})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "<title>a/b</title>")
	require.Contains(t, out, `<div class="summary">Showing rows 1</div>`)
	require.Contains(t, out, `<div class="data-label">Row 1</div>`)
	require.Contains(t, out,
		`<pre class="code-block"><code class="language-python">import os`+"\n"+`x = &#039;&lt;b&gt;&#039;</code></pre>`)
	require.Contains(t, out, "&lt;script&gt;")
	require.NotContains(t, out, "<script>")
}

func TestHTMLHighlightsCode(t *testing.T) {
	row := mustRow(t, `{"prompt": "def f():\n    return 1"}`)

	var buf bytes.Buffer
	err := HTML(&buf, RenderPage(rowsOf(row), 0), "", HTMLOptions{Title: "a/b"})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "<pre")
	require.Contains(t, out, "style=")
	require.Contains(t, out, "return")
	require.NotContains(t, out, `class="summary"`)
}

func TestHTMLNestedStructures(t *testing.T) {
	row := mustRow(t, `{"meta": {"a": [1, {"b": "c"}]}}`)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, RenderPage(rowsOf(row), 0), "", HTMLOptions{Plain: true}))

	out := buf.String()
	require.Contains(t, out, `<div class="dict-title">meta</div>`)
	require.Contains(t, out, `<span class="dict-key">a: </span>`)
	require.Contains(t, out, `<div class="dict-title">Item 2</div>`)
	require.Contains(t, out, "&quot;c&quot;")
	require.Equal(t, 2, strings.Count(out, `class="array-item"`))
}

func TestHighlightHTMLFallsBackToDefaultStyle(t *testing.T) {
	out, err := HighlightHTML("x = 1", "python", "no-such-style")
	require.NoError(t, err)
	require.Contains(t, out, "<pre")
}
