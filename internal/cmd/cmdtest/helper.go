// Package cmdtest provides a cmd.Helper for command tests.
package cmdtest

import (
	"context"
	"log/slog"

	"github.com/dsview/dsview/internal/build"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/cmd/root/verbs"
	"github.com/dsview/dsview/internal/config"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/iostreams"
	utilviper "github.com/dsview/dsview/internal/util/viper"
	"github.com/spf13/cobra"
)

// MockHelper is a cmd.Helper backed by plain fields. Nil fields fall back to
// harmless defaults.
type MockHelper struct {
	Cmd       *cobra.Command
	Args      []string
	Verb      verbs.VerbValue
	Streams   *iostreams.IOStreams
	Config    config.Hook
	Logger    *slog.Logger
	BuildInfo *build.Info
	Context   context.Context
	API       dataset.API
	APIErr    error
}

var _ cmd.Helper = (*MockHelper)(nil)

// NewConfig returns a profiled config holding values under the default profile.
func NewConfig(values map[string]any) config.Hook {
	v := utilviper.NewViper("nonexistent.yaml")
	v.Set(config.DefaultProfile, map[string]any{})
	cfg := config.BuildProfiledConfig(config.DefaultProfile, "nonexistent.yaml", v)
	for k, val := range values {
		cfg.Set(k, val)
	}
	return cfg
}

func (m *MockHelper) GetCmd() *cobra.Command {
	if m.Cmd == nil {
		m.Cmd = &cobra.Command{Use: "test"}
		m.Cmd.SetContext(m.GetContext())
	}
	return m.Cmd
}

func (m *MockHelper) GetArgs() []string { return m.Args }

func (m *MockHelper) GetVerb() (verbs.VerbValue, error) { return m.Verb, nil }

func (m *MockHelper) GetStreams() *iostreams.IOStreams {
	if m.Streams == nil {
		s, _, _, _ := iostreams.NewTestIOStreams()
		m.Streams = &s
	}
	return m.Streams
}

func (m *MockHelper) GetConfig() (config.Hook, error) {
	if m.Config == nil {
		m.Config = NewConfig(nil)
	}
	return m.Config, nil
}

func (m *MockHelper) GetOutputFormat() (common.OutputFormat, error) {
	cfg, _ := m.GetConfig()
	return common.OutputFormatStringToIota(cfg.GetString(common.OutputConfigPath))
}

func (m *MockHelper) GetLogger() (*slog.Logger, error) {
	if m.Logger == nil {
		m.Logger = slog.New(slog.DiscardHandler)
	}
	return m.Logger, nil
}

func (m *MockHelper) GetBuildInfo() (*build.Info, error) {
	if m.BuildInfo == nil {
		m.BuildInfo = &build.Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	}
	return m.BuildInfo, nil
}

func (m *MockHelper) GetContext() context.Context {
	if m.Context == nil {
		m.Context = context.Background()
	}
	return m.Context
}

func (m *MockHelper) GetDatasetAPI(config.Hook, *slog.Logger) (dataset.API, error) {
	return m.API, m.APIErr
}
