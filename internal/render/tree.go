// Package render turns dataset rows into a display tree and draws that tree
// for the terminal or as HTML.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dsview/dsview/internal/dataset"
)

// MaxDepth bounds how far nested values are unfolded. Anything deeper is shown
// as a single line of JSON.
const MaxDepth = 50

// CodeLanguage is the highlighting language assumed for code-like text.
const CodeLanguage = "python"

type NodeKind int

const (
	// NodeCard is one row. Title is "Row N"; children are NodeField.
	NodeCard NodeKind = iota
	// NodeField is a top-level column. Title is the column name; it has one child.
	NodeField
	// NodeText is plain text.
	NodeText
	// NodeCode is a block of source code.
	NodeCode
	// NodeList is a sequence; each child is one item.
	NodeList
	// NodeMapping is a titled group of NodeEntry children.
	NodeMapping
	// NodeEntry is one key of a mapping. Title is the key; it has one child.
	NodeEntry
)

func (k NodeKind) String() string {
	switch k {
	case NodeCard:
		return "card"
	case NodeField:
		return "field"
	case NodeText:
		return "text"
	case NodeCode:
		return "code"
	case NodeList:
		return "list"
	case NodeMapping:
		return "mapping"
	case NodeEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Node is an element of the display tree.
type Node struct {
	Kind     NodeKind
	Title    string
	Text     string
	Language string
	// Escaped is Text with HTML-sensitive characters replaced, for code blocks.
	Escaped  string
	Children []*Node
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces & < > " and ' with their HTML entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// IsCodeLike reports whether text should be shown as a code block: it spans
// several lines or looks like a Python definition or import.
func IsCodeLike(s string) bool {
	return strings.Contains(s, "\n") ||
		strings.Contains(s, "def ") ||
		strings.Contains(s, "import ")
}

// RowTitle is the card title for a row number.
func RowTitle(number int) string {
	return "Row " + strconv.Itoa(number)
}

// RenderRow builds the card for one row. The reserved index is not shown as
// a field.
func RenderRow(row dataset.Row, number int) *Node {
	card := &Node{Kind: NodeCard, Title: RowTitle(number)}
	for _, field := range row.Fields {
		if field.Key == dataset.IndexField {
			continue
		}
		card.Children = append(card.Children, &Node{
			Kind:     NodeField,
			Title:    field.Key,
			Children: []*Node{fieldValue(field.Key, field.Value)},
		})
	}
	return card
}

// RenderPage builds one card per row. pageStart numbers rows that carry no
// index of their own.
func RenderPage(rows []dataset.Row, pageStart int) []*Node {
	cards := make([]*Node, 0, len(rows))
	for i, row := range rows {
		cards = append(cards, RenderRow(row, row.Number(pageStart, i)))
	}
	return cards
}

// fieldValue renders the value of a top-level column. Unlike nested values,
// scalars here are shown as raw text rather than JSON.
func fieldValue(key string, v dataset.Value) *Node {
	switch v.Kind() {
	case dataset.KindSequence:
		return list(v, 1)
	case dataset.KindMapping:
		return mapping(key, v, 1)
	case dataset.KindString:
		if IsCodeLike(v.Str()) {
			return code(v.Str())
		}
		return text(v.Str())
	case dataset.KindNull:
		return text("")
	default:
		return text(v.Text())
	}
}

// nested renders a scalar inside a list or mapping.
func nested(v dataset.Value) *Node {
	if v.Kind() == dataset.KindString && IsCodeLike(v.Str()) {
		return code(v.Str())
	}
	return text(v.JSON())
}

func list(v dataset.Value, depth int) *Node {
	if depth > MaxDepth {
		return text(v.JSON())
	}
	node := &Node{Kind: NodeList}
	for i, item := range v.Items() {
		var child *Node
		switch item.Kind() {
		case dataset.KindMapping:
			child = mapping(fmt.Sprintf("Item %d", i+1), item, depth+1)
		case dataset.KindSequence:
			child = indexedMapping(fmt.Sprintf("Item %d", i+1), item, depth+1)
		default:
			child = nested(item)
		}
		node.Children = append(node.Children, child)
	}
	return node
}

func mapping(title string, v dataset.Value, depth int) *Node {
	if depth > MaxDepth {
		return text(v.JSON())
	}
	node := &Node{Kind: NodeMapping, Title: title}
	for _, e := range v.Entries() {
		node.Children = append(node.Children, entry(e.Key, e.Value, depth))
	}
	return node
}

// indexedMapping shows a sequence nested directly in a sequence as a mapping
// keyed by position.
func indexedMapping(title string, v dataset.Value, depth int) *Node {
	if depth > MaxDepth {
		return text(v.JSON())
	}
	node := &Node{Kind: NodeMapping, Title: title}
	for i, item := range v.Items() {
		node.Children = append(node.Children, entry(strconv.Itoa(i), item, depth))
	}
	return node
}

func entry(key string, v dataset.Value, depth int) *Node {
	var child *Node
	switch v.Kind() {
	case dataset.KindSequence:
		child = list(v, depth+1)
	case dataset.KindMapping:
		child = mapping(key, v, depth+1)
	default:
		child = nested(v)
	}
	return &Node{Kind: NodeEntry, Title: key, Children: []*Node{child}}
}

func text(s string) *Node {
	return &Node{Kind: NodeText, Text: s}
}

func code(s string) *Node {
	return &Node{Kind: NodeCode, Language: CodeLanguage, Text: s, Escaped: EscapeHTML(s)}
}
