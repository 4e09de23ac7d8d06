// Package summary handles display of scan results and statistics
package summary

import (
	"io"
	"sort"
	"time"

	"github.com/bethropolis/dir-concat/internal/walker"
	"github.com/olekukonko/tablewriter"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults shows the end results of a run
func DisplayResults(
	logger Logger,
	fileCount int,
	warnings int64,
	duration time.Duration,
	quiet bool,
) {
	if quiet {
		return
	}
	logger.Info("Selected %d files.", fileCount)
	if warnings > 0 {
		logger.Info("Completed with %d warnings.", warnings)
	}
	logger.Info("Run complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems renders the skipped items as a table sorted by path.
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) == 0 {
		infoLog("No items were skipped.")
		return
	}

	items := make([]walker.SkippedItem, len(skippedItems))
	copy(items, skippedItems)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"Type", "Path", "Reason"})
	table.SetAutoWrapText(false)
	for _, item := range items {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR"
		}
		table.Append([]string{typeStr, item.Path, string(item.Reason)})
	}
	table.Render()
}
