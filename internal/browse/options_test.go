package browse

import (
	"context"
	"strings"
	"testing"

	"github.com/dsview/dsview/internal/dataset"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestDefaultColumnOptions(t *testing.T) {
	opts := DefaultColumnOptions("lang")
	require.Equal(t, []Option{
		{Kind: OptionAll, Label: "All lang"},
		{Kind: OptionCustom, Label: "Custom Filter..."},
	}, opts.Options)
	require.Empty(t, opts.Values())
}

func TestBuildColumnOptionsSortsAndDropsBlanks(t *testing.T) {
	opts := BuildColumnOptions("lang", stringValues("rust", " ", "", "go", "python"))

	values := opts.Values()
	require.Len(t, opts.Options, 5)
	require.Equal(t, []string{"go", "python", "rust"}, []string{values[0].Value, values[1].Value, values[2].Value})
}

func TestBuildColumnOptionsSkipsNullAndNestedValues(t *testing.T) {
	values := []dataset.Value{
		dataset.Null(),
		dataset.String("a"),
		dataset.Mapping(dataset.Entry{Key: "k", Value: dataset.Int(1)}),
		dataset.Sequence(dataset.String("x")),
		dataset.String(" "),
		dataset.Int(3),
		dataset.Bool(true),
	}

	opts := BuildColumnOptions("c", values)

	var got []string
	for _, o := range opts.Values() {
		got = append(got, o.Value)
	}
	require.Equal(t, []string{"3", "a", "true"}, got)
}

type valuesFetcher struct {
	fakeFetcher
	values []dataset.Value
}

func (f *valuesFetcher) UniqueValues(context.Context, string, string, bool) ([]dataset.Value, error) {
	return f.values, nil
}

func TestLoadFilterOptionsOmitsNullValues(t *testing.T) {
	fetcher := &valuesFetcher{values: []dataset.Value{
		dataset.Null(),
		dataset.String("a"),
		dataset.Mapping(dataset.Entry{Key: "k", Value: dataset.Int(1)}),
		dataset.String(" "),
	}}

	res := LoadFilterOptions(context.Background(), fetcher, DatasetKey{Path: "a/b"}, []string{"c"}, 1)

	opts := res.Options["c"]
	require.Len(t, opts.Options, 3)
	require.Equal(t, []Option{{Kind: OptionValue, Label: "a", Value: "a"}}, opts.Values())
}

func stringValues(values ...string) []dataset.Value {
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		out[i] = dataset.String(v)
	}
	return out
}

func TestOptionLabelTruncates(t *testing.T) {
	short := strings.Repeat("a", 50)
	require.Equal(t, short, OptionLabel(short))

	long := strings.Repeat("b", 60)
	label := OptionLabel(long)
	require.Equal(t, strings.Repeat("b", 47)+"...", label)

	wide := strings.Repeat("界", 30)
	label = OptionLabel(wide)
	require.True(t, strings.HasSuffix(label, "..."))
	require.LessOrEqual(t, runewidth.StringWidth(label), MaxOptionLabelWidth)

	opts := BuildColumnOptions("c", stringValues(long))
	require.Equal(t, long, opts.Values()[0].Value)
}
