package cmd

import (
	"log/slog"

	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/config"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/dataset/httpclient"
)

// DatasetAPIFactory builds the dataset backend client for a command.
type DatasetAPIFactory func(cfg config.Hook, logger *slog.Logger) (dataset.API, error)

type datasetAPIFactoryKey struct{}

// DatasetAPIFactoryKey is the context key holding a DatasetAPIFactory.
var DatasetAPIFactoryKey = datasetAPIFactoryKey{}

// NewDatasetAPI is the default DatasetAPIFactory. Requests go through the
// logging transport and carry the configured timeout.
func NewDatasetAPI(cfg config.Hook, logger *slog.Logger) (dataset.API, error) {
	timeout := cfg.GetDurationOrElse(common.TimeoutConfigPath, common.TimeoutDefault)
	baseURL := cfg.GetString(common.BaseURLConfigPath)
	if baseURL == "" {
		baseURL = common.BaseURLDefault
	}

	client, err := dataset.NewClient(baseURL,
		dataset.WithHTTPClient(httpclient.NewLoggingHTTPClient(logger, 0)),
		dataset.WithTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset API client ready",
		"base_url", client.BaseURL(),
		"timeout", timeout.String())
	return client, nil
}
