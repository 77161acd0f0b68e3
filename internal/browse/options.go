package browse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dsview/dsview/internal/dataset"
	"github.com/mattn/go-runewidth"
)

const (
	// MaxOptionLabelWidth is the widest option label, in terminal cells.
	MaxOptionLabelWidth = 50
	optionLabelTail     = "..."
)

type OptionKind int

const (
	// OptionAll clears the column filter.
	OptionAll OptionKind = iota
	// OptionCustom asks the user for free text.
	OptionCustom
	// OptionValue filters on one of the column's known values.
	OptionValue
)

type Option struct {
	Kind  OptionKind
	Label string
	Value string
}

// ColumnOptions are the choices offered for filtering one column.
type ColumnOptions struct {
	Column  string
	Options []Option
}

// DefaultColumnOptions returns the two choices every column has.
func DefaultColumnOptions(column string) ColumnOptions {
	return ColumnOptions{
		Column: column,
		Options: []Option{
			{Kind: OptionAll, Label: fmt.Sprintf("All %s", column)},
			{Kind: OptionCustom, Label: "Custom Filter..."},
		},
	}
}

// BuildColumnOptions adds the column's scalar values to the defaults. Nulls,
// nested values and blank text are dropped, the rest sorted by text.
func BuildColumnOptions(column string, values []dataset.Value) ColumnOptions {
	opts := DefaultColumnOptions(column)

	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v.Kind() == dataset.KindNull || !v.IsScalar() {
			continue
		}
		if text := v.Text(); strings.TrimSpace(text) != "" {
			kept = append(kept, text)
		}
	}
	slices.Sort(kept)

	for _, v := range kept {
		opts.Options = append(opts.Options, Option{Kind: OptionValue, Label: OptionLabel(v), Value: v})
	}
	return opts
}

// OptionLabel shortens s to MaxOptionLabelWidth cells, ending in "...".
func OptionLabel(s string) string {
	if runewidth.StringWidth(s) <= MaxOptionLabelWidth {
		return s
	}
	return runewidth.Truncate(s, MaxOptionLabelWidth, optionLabelTail)
}

// Values returns only the value options.
func (c ColumnOptions) Values() []Option {
	out := make([]Option, 0, len(c.Options))
	for _, o := range c.Options {
		if o.Kind == OptionValue {
			out = append(out, o)
		}
	}
	return out
}
