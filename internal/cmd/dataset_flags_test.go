package cmd_test

import (
	"testing"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/cmdtest"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestResolvePageRequestBuildsFilters(t *testing.T) {
	c := &cobra.Command{Use: "rows"}
	cmd.AddPageFlags(c)
	require.NoError(t, c.Flags().Set(cmd.PageFlagName, "2"))
	require.NoError(t, c.Flags().Set(cmd.FilterFlagName, "lang=go"))
	require.NoError(t, c.Flags().Set(cmd.RegexFlagName, "task_id=^Human"))

	helper := &cmdtest.MockHelper{Cmd: c, Config: cmdtest.NewConfig(nil)}
	req, err := cmd.ResolvePageRequest(helper, browse.DatasetKey{Path: "a/b"})
	require.NoError(t, err)
	require.Equal(t, 2, req.Page)
	require.Equal(t, dataset.Filters{"lang": "go", "task_id_regex": "^Human"}, req.Filters)
}

func TestResolvePageRequestReportsMissingFilterFlags(t *testing.T) {
	c := &cobra.Command{Use: "rows"}
	c.Flags().Int(cmd.PageFlagName, 1, "")

	helper := &cmdtest.MockHelper{Cmd: c, Config: cmdtest.NewConfig(nil)}
	_, err := cmd.ResolvePageRequest(helper, browse.DatasetKey{Path: "a/b"})

	var cfgErr *cmd.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
