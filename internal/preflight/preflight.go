package preflight

import (
	"context"
	"fmt"

	"qrpayload/internal/config"
	"qrpayload/internal/history"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// State directory (always checked)
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Lock directory", cfg.LockDir()))

	if cfg.Logging.File != "" {
		results = append(results, CheckOutputPath("Log file", cfg.Logging.File))
	}

	if cfg.History.Enabled {
		results = append(results, CheckHistory(ctx, cfg))
	}

	return results
}

// CheckHistory opens the run history database and reports its row count.
func CheckHistory(ctx context.Context, cfg *config.Config) Result {
	const name = "Run history"

	store, err := history.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.HistoryPath(), err)}
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.HistoryPath(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d runs)", cfg.HistoryPath(), count)}
}
