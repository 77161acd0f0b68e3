package get

import (
	"fmt"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const columnFlagName = "column"

var (
	valuesLong = normalizers.LongDesc(`
		List the distinct values of dataset columns, as offered by the browser's
		column filters. Blank values are dropped and the rest sorted.

		With --column only the named columns are queried and any failure is
		reported. Without it every column is queried concurrently and columns
		whose values cannot be fetched are listed without values.`)

	valuesExamples = normalizers.Examples(`
		# Distinct values of two columns
		{{cli}} get values --column entry_point --column task_id
		# Distinct values of every column, as YAML
		{{cli}} get values openai/openai_humaneval -o yaml`)
)

type columnValues struct {
	Column string   `json:"column" yaml:"column"`
	Values []string `json:"values" yaml:"values"`
}

type valuesOutput struct {
	Dataset string         `json:"dataset" yaml:"dataset"`
	Columns []columnValues `json:"columns" yaml:"columns"`
}

func newValuesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "values [dataset]",
		Short:   "List the distinct values of dataset columns",
		Long:    valuesLong,
		Example: valuesExamples,
		Aliases: []string{"value", "unique-values"},
		Args:    cobra.MaximumNArgs(1),
		RunE:    runE(runValues),
	}
	cmd.AddDatasetFlags(c, false)
	c.Flags().StringSliceP(columnFlagName, "c", nil, "Column to list values for. May be repeated.")
	cmd.AddWorkersFlag(c)
	return c
}

func runValues(helper cmd.Helper) error {
	key, err := cmd.ResolveDataset(helper)
	if err != nil {
		return err
	}
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	workers, err := cmd.ResolveWorkers(helper)
	if err != nil {
		return err
	}
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	api, err := helper.GetDatasetAPI(cfg, logger)
	if err != nil {
		return err
	}

	requested, err := helper.GetCmd().Flags().GetStringSlice(columnFlagName)
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	var options []browse.ColumnOptions
	if len(requested) > 0 {
		for _, column := range requested {
			ctx := requestContext(helper, logger, key.Path, "unique-values")
			values, err := api.UniqueValues(ctx, key.Path, column, key.IsLocal)
			if err != nil {
				return cmd.PrepareExecutionErrorFromErr(helper, err)
			}
			options = append(options, browse.BuildColumnOptions(column, values))
		}
	} else {
		ctx := requestContext(helper, logger, key.Path, "columns")
		columns, err := api.Columns(ctx, key.Path, key.IsLocal)
		if err != nil {
			return cmd.PrepareExecutionErrorFromErr(helper, err)
		}
		loaded := browse.LoadFilterOptions(ctx, api, key, columns, workers)
		for _, column := range columns {
			options = append(options, loaded.Options[column])
		}
	}

	result := valuesOutput{Dataset: key.Path, Columns: make([]columnValues, 0, len(options))}
	for _, opts := range options {
		entry := columnValues{Column: opts.Column, Values: []string{}}
		for _, o := range opts.Values() {
			entry.Values = append(entry.Values, o.Value)
		}
		result.Columns = append(result.Columns, entry)
	}

	out := helper.GetStreams().Out
	if outType != common.TEXT {
		return printStructured(out, outType, result)
	}

	t := newTable(out, "COLUMN", "VALUE")
	for _, opts := range options {
		labels := opts.Values()
		if len(labels) == 0 {
			t.AppendRow([]any{opts.Column, "(none)"})
			continue
		}
		for i, o := range labels {
			column := ""
			if i == 0 {
				column = opts.Column
			}
			t.AppendRow([]any{column, o.Label})
		}
		t.AppendSeparator()
	}
	t.Render()

	total := 0
	for _, c := range result.Columns {
		total += len(c.Values)
	}
	_, err = fmt.Fprintf(out, "(%d values in %d columns)\n", total, len(result.Columns))
	return err
}
