package browse

import (
	"context"
	"log/slog"
	"sync"

	applog "github.com/dsview/dsview/internal/log"
	"golang.org/x/sync/errgroup"
)

// DefaultOptionWorkers bounds concurrent unique-values requests.
const DefaultOptionWorkers = 4

// OptionsResult carries the filter choices loaded for one dataset.
type OptionsResult struct {
	Dataset DatasetKey
	Options map[string]ColumnOptions
}

// LoadFilterOptions fetches the distinct values of every column concurrently.
// A column whose values cannot be fetched gets the default choices; this never
// fails as a whole.
func LoadFilterOptions(
	ctx context.Context,
	fetcher Fetcher,
	key DatasetKey,
	columns []string,
	workers int,
) OptionsResult {
	if workers < 1 {
		workers = DefaultOptionWorkers
	}

	var (
		mu      sync.Mutex
		options = make(map[string]ColumnOptions, len(columns))
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, column := range columns {
		group.Go(func() error {
			opCtx := applog.WithHTTPLogContext(groupCtx, applog.HTTPLogContext{
				DatasetPath: key.Path,
				Operation:   "unique-values",
				Column:      column,
			})

			opts := DefaultColumnOptions(column)
			values, err := fetcher.UniqueValues(opCtx, key.Path, column, key.IsLocal)
			if err != nil {
				applog.FromContext(opCtx).LogAttrs(opCtx, slog.LevelDebug,
					"unique values unavailable, using default filter options",
					slog.String("column", column),
					slog.String("error", err.Error()))
			} else {
				opts = BuildColumnOptions(column, values)
			}

			mu.Lock()
			options[column] = opts
			mu.Unlock()
			return nil
		})
	}
	group.Wait()

	return OptionsResult{Dataset: key, Options: options}
}
