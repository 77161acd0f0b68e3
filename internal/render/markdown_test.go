package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdownSource(t *testing.T) {
	row := mustRow(t, `{"task_id": "HumanEval/0", "prompt": "def f():\n    return 1\n", "meta": {"tags": ["a_b", 2]}, "_index": 0}`)

	got := MarkdownSource(RenderPage(rowsOf(row), 0))
	want := "## Row 0\n\n" +
		"**task\\_id**\n\n" +
		"HumanEval/0\n\n" +
		"**prompt**\n\n" +
		"\n```python\ndef f():\n    return 1\n```\n\n\n" +
		"**meta**\n\n" +
		"*meta*\n\n" +
		"- **tags:**\n" +
		"  - \"a\\_b\"\n" +
		"  - 2\n" +
		"\n"
	require.Equal(t, want, got)
}

func TestMarkdownSourceSeparatesCards(t *testing.T) {
	cards := RenderPage(rowsOf(mustRow(t, `{"a": 1}`), mustRow(t, `{"a": 2}`)), 0)
	got := MarkdownSource(cards)
	require.Contains(t, got, "## Row 0\n\n**a**\n\n1\n\n---\n\n## Row 1")
}

func TestMarkdownRendersWithoutColor(t *testing.T) {
	row := mustRow(t, `{"greeting": "hello", "_index": 3}`)

	out := Markdown(RenderPage(rowsOf(row), 0), Options{NoColor: true, Width: 80})
	require.Contains(t, out, "Row 3")
	require.Contains(t, out, "greeting")
	require.Contains(t, out, "hello")
	require.NotContains(t, out, "\x1b[")
}

func TestMarkdownFenceAvoidsBackticks(t *testing.T) {
	row := mustRow(t, "{\"doc\": \"```\\ncode\\n```\"}")
	got := MarkdownSource(RenderPage(rowsOf(row), 0))
	require.Contains(t, got, "~~~~python\n```\ncode\n```\n~~~~")
}
