package get

import (
	"fmt"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/cmd/output/jq"
	"github.com/dsview/dsview/internal/render"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	rowsLong = normalizers.LongDesc(`
		Retrieve one page of dataset rows.

		Text output renders every row as a card: scalar fields as text, nested
		values as structured blocks and code-like text as highlighted code.
		JSON and YAML output keep the column order of the dataset and can be
		filtered with --jq.`)

	rowsExamples = normalizers.Examples(`
		# First ten rows of the default dataset
		{{cli}} get rows
		# Rows whose entry_point is exactly has_close_elements
		{{cli}} get rows --filter entry_point=has_close_elements
		# Rows whose prompt matches a regular expression, 25 per page
		{{cli}} get rows --regex 'prompt=^def sum' --page-size 25
		# Every task id on page 3
		{{cli}} get rows --page 3 -o json --jq '.data[].task_id' -r`)
)

func newRowsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "rows [dataset]",
		Short:   "Retrieve a page of dataset rows",
		Long:    rowsLong,
		Example: rowsExamples,
		Aliases: []string{"row", "page"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			if err := cmd.BindDatasetFlags(helper); err != nil {
				return err
			}
			cfg, err := helper.GetConfig()
			if err != nil {
				return err
			}
			if err := jq.BindFlags(cfg, c.Flags()); err != nil {
				return err
			}
			return runRows(helper)
		},
	}
	cmd.AddPageFlags(c)
	jq.AddFlags(c.Flags())
	return c
}

func runRows(helper cmd.Helper) error {
	key, err := cmd.ResolveDataset(helper)
	if err != nil {
		return err
	}
	req, err := cmd.ResolvePageRequest(helper, key)
	if err != nil {
		return err
	}
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	settings, err := jq.ResolveSettings(helper.GetCmd(), cfg)
	if err != nil {
		return err
	}
	if err := jq.ValidateOutputFormat(outType, settings); err != nil {
		return err
	}
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}
	api, err := helper.GetDatasetAPI(cfg, logger)
	if err != nil {
		return err
	}

	result, err := api.Page(requestContext(helper, logger, key.Path, "page"), req)
	if err != nil {
		return cmd.PrepareExecutionErrorFromErr(helper, err)
	}

	out := helper.GetStreams().Out
	if outType != common.TEXT {
		payload, handled, err := jq.Apply(result, outType, settings, out)
		if err != nil || handled {
			return err
		}
		return printStructured(out, outType, payload)
	}

	start := (result.CurrentPage - 1) * req.PageSize
	stats := browse.ComputeStats(result, start)
	if stats == nil {
		_, err := fmt.Fprintln(out, "No rows found.")
		return err
	}

	opts, err := cmd.MarkdownOptions(helper)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n\n%s\n", stats.Summary(), render.Markdown(render.RenderPage(result.Rows, start), opts))
	return err
}
