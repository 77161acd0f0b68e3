package version

import (
	"bytes"
	"testing"

	"github.com/dsview/dsview/internal/build"
	"github.com/dsview/dsview/internal/cmd/cmdtest"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/iostreams"
	"github.com/stretchr/testify/require"
)

func newHelper(values map[string]any) (*cmdtest.MockHelper, *bytes.Buffer) {
	streams, _, out, _ := iostreams.NewTestIOStreams()
	return &cmdtest.MockHelper{
		Streams:   &streams,
		Config:    cmdtest.NewConfig(values),
		BuildInfo: &build.Info{Version: "1.2.0", Commit: "abc123", Date: "2026-10-01"},
	}, out
}

func TestVersionText(t *testing.T) {
	helper, out := newHelper(nil)
	require.NoError(t, run(helper))
	require.Equal(t, "1.2.0\n", out.String())
}

func TestVersionTextWithCommit(t *testing.T) {
	helper, out := newHelper(map[string]any{ShowCommitConfigPath: true})
	require.NoError(t, run(helper))
	require.Equal(t, "1.2.0 (abc123, 2026-10-01)\n", out.String())
}

func TestVersionJSON(t *testing.T) {
	helper, out := newHelper(map[string]any{common.OutputConfigPath: "json"})
	require.NoError(t, run(helper))
	require.JSONEq(t, `{"version":"1.2.0"}`, out.String())
}
