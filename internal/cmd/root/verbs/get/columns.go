package get

import (
	"fmt"

	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var columnsLong = normalizers.LongDesc(`
	List the columns of a dataset in the order the API reports them.`)

type columnsOutput struct {
	Dataset string   `json:"dataset" yaml:"dataset"`
	IsLocal bool     `json:"is_local" yaml:"is_local"`
	Columns []string `json:"columns" yaml:"columns"`
}

func newColumnsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "columns [dataset]",
		Short:   "List the columns of a dataset",
		Long:    columnsLong,
		Aliases: []string{"column", "cols"},
		Args:    cobra.MaximumNArgs(1),
		RunE:    runE(runColumns),
	}
	cmd.AddDatasetFlags(c, false)
	return c
}

func runColumns(helper cmd.Helper) error {
	key, err := cmd.ResolveDataset(helper)
	if err != nil {
		return err
	}
	cfg, err := helper.GetConfig()
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

	ctx := requestContext(helper, logger, key.Path, "columns")
	columns, err := api.Columns(ctx, key.Path, key.IsLocal)
	if err != nil {
		return cmd.PrepareExecutionErrorFromErr(helper, err)
	}

	out := helper.GetStreams().Out
	if outType != common.TEXT {
		return printStructured(out, outType, columnsOutput{Dataset: key.Path, IsLocal: key.IsLocal, Columns: columns})
	}

	if len(columns) == 0 {
		_, err := fmt.Fprintln(out, "(0 columns)")
		return err
	}
	t := newTable(out, "#", "COLUMN")
	for i, column := range columns {
		t.AppendRow([]any{i + 1, column})
	}
	t.Render()
	_, err = fmt.Fprintf(out, "(%d columns)\n", len(columns))
	return err
}
