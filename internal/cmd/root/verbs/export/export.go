package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/root/verbs"
	"github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/render"
	"github.com/dsview/dsview/internal/util"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	Verb = verbs.Export

	fileFlagName      = "file"
	fileFlagShort     = "f"
	titleFlagName     = "title"
	plainFlagName     = "plain"
	codeStyleFlagName = "code-style"
)

var (
	exportUse = Verb.String() + " [dataset]"

	exportShort = "Export a page of dataset rows as an HTML document"

	exportLong = normalizers.LongDesc(`
		Export one page of dataset rows as a standalone HTML document.

		Each row becomes a card. Nested values are rendered as structured
		blocks and code-like text is syntax highlighted unless --plain is set.
		The page, page size and filter flags select rows as for "get rows".`)

	exportExamples = normalizers.Examples(`
		# Write the first page of the default dataset to stdout
		{{cli}} export
		# Write page 4, 50 rows per page, to a file
		{{cli}} export openai/openai_humaneval --page 4 --page-size 50 -f humaneval.html
		# Export without syntax highlighting
		{{cli}} export --plain -f rows.html`)
)

// NewExportCmd builds the export verb.
func NewExportCmd() (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     exportUse,
		Short:   exportShort,
		Long:    exportLong,
		Example: exportExamples,
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

	cmd.AddPageFlags(c)
	c.Flags().StringP(fileFlagName, fileFlagShort, "", "File to write the document to. Defaults to stdout.")
	c.Flags().String(titleFlagName, "", "Document title. Defaults to the dataset path.")
	c.Flags().Bool(plainFlagName, false, "Do not syntax highlight code blocks.")
	c.Flags().String(codeStyleFlagName, render.DefaultHTMLStyle, "Chroma style used to highlight code blocks.")

	return c, nil
}

func run(helper cmd.Helper) error {
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
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}
	api, err := helper.GetDatasetAPI(cfg, logger)
	if err != nil {
		return err
	}

	flags := helper.GetCmd().Flags()
	file, _ := flags.GetString(fileFlagName)
	title, _ := flags.GetString(titleFlagName)
	plain, _ := flags.GetBool(plainFlagName)
	style, _ := flags.GetString(codeStyleFlagName)
	if strings.TrimSpace(title) == "" {
		title = key.Path
	}

	ctx := log.WithHTTPLogContext(helper.GetContext(), log.HTTPLogContext{
		DatasetPath: key.Path,
		Operation:   "export",
	})
	result, err := api.Page(log.WithLogger(ctx, logger), req)
	if err != nil {
		return cmd.PrepareExecutionErrorFromErr(helper, err)
	}

	start := (result.CurrentPage - 1) * req.PageSize
	cards := render.RenderPage(result.Rows, start)
	opts := render.HTMLOptions{Title: title, Style: style, Plain: plain}

	var out io.Writer = helper.GetStreams().Out
	if file != "" {
		if err := util.InitDir(file, 0o755); err != nil {
			return cmd.PrepareExecutionErrorFromErr(helper, err)
		}
		f, err := os.Create(os.ExpandEnv(file))
		if err != nil {
			return cmd.PrepareExecutionErrorFromErr(helper, err)
		}
		defer f.Close()
		out = f
	}

	if err := render.HTML(out, cards, browse.ComputeStats(result, start).Summary(), opts); err != nil {
		return cmd.PrepareExecutionError("failed to write HTML export", err, helper.GetCmd())
	}

	if file != "" {
		logger.Info("dataset page exported",
			"dataset_path", key.Path, "page", result.CurrentPage, "rows", len(result.Rows), "file", file)
		_, err := fmt.Fprintf(helper.GetStreams().ErrOut, "Exported %d rows to %s\n", len(result.Rows), file)
		return err
	}
	return nil
}
