package cmd

import (
	"fmt"
	"strings"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/meta"
	"github.com/spf13/cobra"
)

// AddDatasetFlags adds --local to a command that takes a dataset argument.
// With withPageSize it also adds --page-size.
func AddDatasetFlags(c *cobra.Command, withPageSize bool) {
	c.Flags().Bool(common.LocalFlagName, false,
		fmt.Sprintf(`Treat the dataset argument as a path on the API host.
- Config path: [ %s ]`, common.LocalConfigPath))

	if withPageSize {
		pageSize := NewEnum(common.PageSizeChoices, common.PageSizeDefault)
		c.Flags().Var(pageSize, common.PageSizeFlagName,
			fmt.Sprintf(`Rows per page.
- Config path: [ %s ]
- Allowed    : [ %s ]`, common.PageSizeConfigPath, pageSize.Usage()))
	}
}

// BindDatasetFlags binds the flags added by AddDatasetFlags to the config.
func BindDatasetFlags(helper Helper) error {
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	bindings := map[string]string{
		common.LocalFlagName:    common.LocalConfigPath,
		common.PageSizeFlagName: common.PageSizeConfigPath,
	}
	for flagName, path := range bindings {
		f := helper.GetCmd().Flags().Lookup(flagName)
		if f == nil {
			continue
		}
		if err := cfg.BindFlag(path, f); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDataset picks the dataset from the first argument, falling back to
// the configured default, and normalizes its path.
func ResolveDataset(helper Helper) (browse.DatasetKey, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return browse.DatasetKey{}, err
	}

	path := ""
	if args := helper.GetArgs(); len(args) > 0 {
		path = args[0]
	}
	if strings.TrimSpace(path) == "" {
		path = cfg.GetString(common.DatasetPathConfigPath)
	}
	if strings.TrimSpace(path) == "" {
		path = meta.DefaultDatasetPath
	}

	path = strings.TrimSpace(dataset.NormalizePath(path))
	if path == "" {
		return browse.DatasetKey{}, &ConfigurationError{Err: fmt.Errorf("dataset path cannot be empty")}
	}
	return browse.DatasetKey{Path: path, IsLocal: cfg.GetBool(common.LocalConfigPath)}, nil
}

// ResolvePageSize reads the configured page size.
func ResolvePageSize(helper Helper) (int, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return 0, err
	}
	choice := cfg.GetString(common.PageSizeConfigPath)
	if choice == "" {
		choice = common.PageSizeDefault
	}
	size, err := dataset.ParsePageSize(choice)
	if err != nil {
		return 0, &ConfigurationError{Err: err}
	}
	return size, nil
}

const (
	PageFlagName   = "page"
	FilterFlagName = "filter"
	RegexFlagName  = "regex"
)

// AddPageFlags adds the flags selecting one filtered page of rows.
func AddPageFlags(c *cobra.Command) {
	AddDatasetFlags(c, true)
	c.Flags().Int(PageFlagName, 1, "Page number to retrieve, starting at 1.")
	c.Flags().StringArray(FilterFlagName, nil,
		"Exact match filter as column=value. May be repeated.")
	c.Flags().String(RegexFlagName, "",
		"Regular expression filter as column=pattern. At most one column.")
}

// ResolvePageRequest builds the page request described by the page flags.
func ResolvePageRequest(helper Helper, key browse.DatasetKey) (dataset.PageRequest, error) {
	pageSize, err := ResolvePageSize(helper)
	if err != nil {
		return dataset.PageRequest{}, err
	}
	flags := helper.GetCmd().Flags()

	page, err := flags.GetInt(PageFlagName)
	if err != nil {
		return dataset.PageRequest{}, &ConfigurationError{Err: err}
	}
	if page < 1 {
		return dataset.PageRequest{}, &ConfigurationError{
			Err: fmt.Errorf("invalid value %d for --%s: must be at least 1", page, PageFlagName),
		}
	}

	filters := browse.NewFilterState()
	exact, err := flags.GetStringArray(FilterFlagName)
	if err != nil {
		return dataset.PageRequest{}, &ConfigurationError{Err: err}
	}
	for _, f := range exact {
		column, value, err := splitFilter(f, FilterFlagName)
		if err != nil {
			return dataset.PageRequest{}, err
		}
		filters.SetColumnFilter(column, value)
	}
	regex, err := flags.GetString(RegexFlagName)
	if err != nil {
		return dataset.PageRequest{}, &ConfigurationError{Err: err}
	}
	if strings.TrimSpace(regex) != "" {
		column, pattern, err := splitFilter(regex, RegexFlagName)
		if err != nil {
			return dataset.PageRequest{}, err
		}
		filters.SetRegexFilter(column, pattern)
	}

	return dataset.PageRequest{
		Path:     key.Path,
		IsLocal:  key.IsLocal,
		Page:     page,
		PageSize: pageSize,
		Filters:  filters.RequestFilters(),
	}, nil
}

func splitFilter(raw, flagName string) (string, string, error) {
	column, value, ok := strings.Cut(raw, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" || value == "" {
		return "", "", &ConfigurationError{
			Err: fmt.Errorf("invalid value %q for --%s: expected column=value", raw, flagName),
		}
	}
	return column, value, nil
}

// AddWorkersFlag adds --workers, the bound on concurrent unique-values requests.
func AddWorkersFlag(c *cobra.Command) {
	c.Flags().Int(common.WorkersFlagName, browse.DefaultOptionWorkers,
		fmt.Sprintf(`Concurrent requests when loading the values of every column.
- Config path: [ %s ]`, common.WorkersConfigPath))
}

// ResolveWorkers binds --workers and reads the configured worker count.
func ResolveWorkers(helper Helper) (int, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return 0, err
	}
	if f := helper.GetCmd().Flags().Lookup(common.WorkersFlagName); f != nil {
		if err := cfg.BindFlag(common.WorkersConfigPath, f); err != nil {
			return 0, err
		}
	}
	workers := cfg.GetIntOrElse(common.WorkersConfigPath, browse.DefaultOptionWorkers)
	if workers < 1 {
		return 0, &ConfigurationError{
			Err: fmt.Errorf("invalid value %d for %s: must be at least 1", workers, common.WorkersConfigPath),
		}
	}
	return workers, nil
}
