package get

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/cmd/root/verbs"
	"github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/meta"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.Get
)

var (
	getUse = Verb.String()

	getShort = "Retrieve dataset columns, filter values or rows"

	getLong = normalizers.LongDesc(`
		Use get to retrieve information about a dataset from the dataset API.

		The dataset argument is optional and defaults to the configured dataset.
		Hugging Face dataset URLs are normalized to their repository id.
		Output can be formatted as text, JSON or YAML.`)

	getExamples = normalizers.Examples(fmt.Sprintf(`
		# List the columns of the default dataset
		{{cli}} get columns
		# List the distinct values of one column
		{{cli}} get values openai/openai_humaneval --column entry_point
		# Retrieve the second page of rows as JSON
		{{cli}} get rows openai/openai_humaneval --page 2 -o json
		# Extract one field with jq
		{{cli}} get rows %s --jq '.data[].task_id' -r -o json`, meta.DefaultDatasetPath))
)

// NewGetCmd builds the get verb and its subcommands.
func NewGetCmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     getUse,
		Short:   getShort,
		Long:    getLong,
		Example: getExamples,
		Aliases: []string{"g", "G"},
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			ctx := context.WithValue(c.Context(), verbs.Verb, Verb)
			ctx = log.WithHTTPLogContext(ctx, log.HTTPLogContext{
				CommandPath: c.CommandPath(),
				CommandVerb: Verb.String(),
			})
			c.SetContext(ctx)
		},
	}

	c.AddCommand(newColumnsCmd(), newValuesCmd(), newRowsCmd())
	return c, nil
}

// runE wires the bind/validate/run steps every get subcommand follows.
func runE(run func(cmd.Helper) error) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		helper := cmd.BuildHelper(c, args)
		if err := cmd.BindDatasetFlags(helper); err != nil {
			return err
		}
		return run(helper)
	}
}

func requestContext(helper cmd.Helper, logger *slog.Logger, path, operation string) context.Context {
	ctx := log.WithHTTPLogContext(helper.GetContext(), log.HTTPLogContext{
		DatasetPath: path,
		Operation:   operation,
	})
	return log.WithLogger(ctx, logger)
}

func printStructured(out io.Writer, outType common.OutputFormat, v any) error {
	p, err := cli.Format(outType.String(), out)
	if err != nil {
		return err
	}
	defer p.Flush()
	p.Print(v)
	return nil
}

func newTable(out io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}
