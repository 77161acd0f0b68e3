package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dsview/dsview/internal/build"
	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/cmd/root/verbs/export"
	"github.com/dsview/dsview/internal/cmd/root/verbs/get"
	"github.com/dsview/dsview/internal/cmd/root/verbs/view"
	"github.com/dsview/dsview/internal/cmd/root/version"
	"github.com/dsview/dsview/internal/config"
	"github.com/dsview/dsview/internal/iostreams"
	"github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/meta"
	"github.com/dsview/dsview/internal/theme"
	"github.com/dsview/dsview/internal/util"
	"github.com/dsview/dsview/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

var (
	rootLong = normalizers.LongDesc(`
		{{cli}} browses tabular datasets served by a dataset API.

		Datasets are named by a path on the API host (with --local) or by a
		Hugging Face dataset id or URL. Rows can be paged and filtered
		interactively with "view", printed with "get" or exported with "export".`)

	rootShort = fmt.Sprintf("%s browses datasets from the command line", meta.CLIName)

	rootCmd *cobra.Command

	// Stores the global runtime value for the Configuration file path,
	configFilePath = config.ExpandDefaultConfigFilePath()
	currProfile    = config.DefaultProfile

	currConfig   config.Hook
	streams      *iostreams.IOStreams
	logger       *slog.Logger
	closeLog     = func() error { return nil }
	outputFormat = cmd.NewEnum([]string{"json", "yaml", "text"}, common.DefaultOutputFormat)
	colorMode    = cmd.NewEnum([]string{"auto", "always", "never"}, common.DefaultColorMode)
	logLevel     = cmd.NewEnum([]string{"trace", "debug", "info", "warn", "error"}, common.DefaultLogLevel)

	buildInfo *build.Info
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   meta.CLIName,
		Short: rootShort,
		Long:  rootLong,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if err := applyTheme(); err != nil {
				return err
			}
			if err := initLogger(); err != nil {
				return err
			}
			ctx := context.WithValue(c.Context(), config.ConfigKey, currConfig)
			ctx = context.WithValue(ctx, iostreams.StreamsKey, streams)
			ctx = context.WithValue(ctx, build.InfoKey, buildInfo)
			ctx = context.WithValue(ctx, cmd.DatasetAPIFactoryKey, cmd.DatasetAPIFactory(cmd.NewDatasetAPI))
			ctx = theme.ContextWithPalette(ctx, theme.Current())
			ctx = log.WithLogger(ctx, logger)
			c.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLog()
		},
	}

	// parses all flags not just the target command
	rootCmd.TraverseChildren = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFilePath, common.ConfigFilePathFlagName,
		config.ExpandDefaultConfigFilePath(),
		"Path to the configuration file to load.")

	flags.StringVarP(&currProfile, common.ProfileFlagName, common.ProfileFlagShort,
		config.DefaultProfile,
		"Specify the profile to use for this command.")

	flags.VarP(outputFormat, common.OutputFlagName, common.OutputFlagShort,
		fmt.Sprintf(`Configures the output format.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.OutputConfigPath, outputFormat.Usage()))

	flags.Var(logLevel, common.LogLevelFlagName,
		fmt.Sprintf(`Configures the logging level. Execution logs are written to the log file.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.LogLevelConfigPath, logLevel.Usage()))

	flags.String(common.LogFileFlagName, "",
		fmt.Sprintf(`Write execution logs to the specified file.
- Config path: [ %s ]`, common.LogFileConfigPath))

	flags.Var(colorMode, common.ColorFlagName,
		fmt.Sprintf(`Controls colorized output.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.ColorConfigPath, colorMode.Usage()))

	flags.String(common.ColorThemeFlagName, common.DefaultColorTheme,
		fmt.Sprintf(`Color theme for terminal output.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.ColorThemeConfigPath, strings.Join(theme.Available(), "|")))

	flags.String(common.BaseURLFlagName, common.BaseURLDefault,
		fmt.Sprintf(`Base URL of the dataset API.
- Config path: [ %s ]`, common.BaseURLConfigPath))

	flags.Duration(common.TimeoutFlagName, common.TimeoutDefault,
		fmt.Sprintf(`Deadline for each dataset API request. 0 disables it.
- Config path: [ %s ]`, common.TimeoutConfigPath))

	return rootCmd
}

// addCommands adds the root subcommands to the command.
func addCommands() error {
	rootCmd.AddCommand(version.NewVersionCmd())

	builders := []func() (*cobra.Command, error){
		get.NewGetCmd,
		view.NewViewCmd,
		export.NewExportCmd,
	}
	for _, newCmd := range builders {
		c, err := newCmd()
		if err != nil {
			return err
		}
		rootCmd.AddCommand(c)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
	err := addCommands()
	util.CheckError(err)

	// Because the profile is not part of the configuration, we can't use viper
	// to read it following it's built in priorities.  So here we look for a well known
	// profile variable and set our package level variable if it's set before
	// continuing to process the command run.  This creates a ENV_VAR < CLI_FLAG priority
	profileEnvVar, found := os.LookupEnv(fmt.Sprintf("%s_PROFILE", strings.ToUpper(meta.CLIName)))
	if found {
		currProfile = profileEnvVar
	}
}

func initConfig() {
	cfg, e1 := config.GetConfig(configFilePath, currProfile, config.ExpandDefaultConfigFilePath())
	util.CheckError(e1)
	currConfig = cfg

	bindings := []struct{ flag, path string }{
		{common.OutputFlagName, common.OutputConfigPath},
		{common.LogLevelFlagName, common.LogLevelConfigPath},
		{common.LogFileFlagName, common.LogFileConfigPath},
		{common.ColorFlagName, common.ColorConfigPath},
		{common.ColorThemeFlagName, common.ColorThemeConfigPath},
		{common.BaseURLFlagName, common.BaseURLConfigPath},
		{common.TimeoutFlagName, common.TimeoutConfigPath},
	}
	for _, b := range bindings {
		f := rootCmd.PersistentFlags().Lookup(b.flag)
		util.CheckError(cfg.BindFlag(b.path, f))
	}
}

func applyTheme() error {
	name := currConfig.GetString(common.ColorThemeConfigPath)
	if err := theme.SetCurrent(name); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	return nil
}

func initLogger() error {
	l, closer, err := log.New(log.Options{
		Level:  currConfig.GetString(common.LogLevelConfigPath),
		File:   currConfig.GetString(common.LogFileConfigPath),
		ErrOut: streams.ErrOut,
	})
	if err != nil {
		return &cmd.ConfigurationError{Err: fmt.Errorf("failed to open log file: %w", err)}
	}
	logger, closeLog = l, closer
	logger.Debug("configuration loaded",
		"config_file", currConfig.GetPath(),
		"profile", currConfig.GetProfile())
	return nil
}

func Execute(ctx context.Context, s *iostreams.IOStreams, bi *build.Info) {
	buildInfo = bi
	cobra.EnableTraverseRunHooks = true
	streams = s
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var executionError *cmd.ExecutionError
	if errors.As(err, &executionError) {
		reportError(s, executionError)
	}
	_ = closeLog()
	os.Exit(1)
}

// reportError logs err and writes it to stderr. Text output relies on the
// logger's friendly stderr rendering; other formats print a document.
func reportError(s *iostreams.IOStreams, err *cmd.ExecutionError) {
	attrs := append([]any{"error", err.Err}, err.Attrs...)
	format := outputFormat.String()
	if currConfig != nil {
		format = currConfig.GetString(common.OutputConfigPath)
	}

	if format == common.DefaultOutputFormat || format == "" {
		if logger != nil {
			logger.Error(err.Error(), attrs...)
			return
		}
		fmt.Fprintf(s.ErrOut, "Error: %s\n", err.Error())
		return
	}

	if logger != nil {
		restore := log.SuspendErrorMirroring()
		logger.Error(err.Error(), attrs...)
		restore()
	}
	printer, perr := cli.Format(format, s.ErrOut)
	if perr != nil {
		fmt.Fprintf(s.ErrOut, "Error: %s\n", err.Error())
		return
	}
	defer printer.Flush()
	printer.Print(struct {
		Error string `json:"error" yaml:"error"`
	}{Error: err.Error()})
}
