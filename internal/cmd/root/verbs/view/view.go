package view

import (
	"context"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/browse/tui"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/cmd/root/verbs"
	"github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/theme"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.View
)

var (
	viewUse = Verb.String() + " [dataset]"

	viewShort = "Browse a dataset interactively"

	viewLong = normalizers.LongDesc(`
		Open an interactive browser over a dataset.

		Rows are shown one page at a time as cards. Use the arrow keys to page,
		":" to jump to a page, "f" to edit column filters and "s" to change the
		page size. Press "?" inside the browser for every key binding.

		The dataset argument is optional and defaults to the configured dataset.`)

	viewExamples = normalizers.Examples(`
		# Browse the default dataset
		{{cli}} view
		# Browse a Hugging Face dataset, 25 rows per page
		{{cli}} view https://huggingface.co/datasets/openai/openai_humaneval --page-size 25
		# Browse a file on the API host
		{{cli}} view /data/samples.parquet --local`)
)

var runBrowser = tui.Run

// NewViewCmd builds the view verb, which launches the interactive browser.
func NewViewCmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     viewUse,
		Short:   viewShort,
		Long:    viewLong,
		Example: viewExamples,
		Aliases: []string{"v", "V", "browse"},
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			ctx := context.WithValue(c.Context(), verbs.Verb, Verb)
			ctx = log.WithHTTPLogContext(ctx, log.HTTPLogContext{
				CommandPath: c.CommandPath(),
				CommandVerb: Verb.String(),
			})
			c.SetContext(ctx)
		},
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			if err := cmd.BindDatasetFlags(helper); err != nil {
				return err
			}
			return run(helper)
		},
	}

	cmd.AddDatasetFlags(c, true)
	cmd.AddWorkersFlag(c)
	return c, nil
}

func run(helper cmd.Helper) error {
	key, err := cmd.ResolveDataset(helper)
	if err != nil {
		return err
	}
	pageSize, err := cmd.ResolvePageSize(helper)
	if err != nil {
		return err
	}
	workers, err := cmd.ResolveWorkers(helper)
	if err != nil {
		return err
	}
	useColor, err := cmd.UseColor(helper)
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
	api, err := helper.GetDatasetAPI(cfg, logger)
	if err != nil {
		return err
	}

	session, err := browse.NewSession(browse.SessionConfig{
		Path:     key.Path,
		IsLocal:  key.IsLocal,
		PageSize: pageSize,
	})
	if err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	ctx := log.WithLogger(helper.GetContext(), logger)
	err = runBrowser(ctx, helper.GetStreams(), tui.Options{
		Session:   session,
		Fetcher:   api,
		PageSizes: common.PageSizeChoices,
		Workers:   workers,
		UseColor:  useColor,
		Theme:     theme.FromContext(ctx),
	})
	if err != nil {
		return cmd.PrepareExecutionError("dataset browser failed", err, helper.GetCmd())
	}
	return nil
}
