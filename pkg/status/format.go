package status

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/run"
)

// Summarize prints the final counters
func (r *ConsoleReporter) Summarize(ctx context.Context, stats run.Stats, dryRun bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dirLabel := "Directories renamed"
	updateLabel := "Files with updated content"
	renameLabel := "Files renamed"
	if dryRun {
		dirLabel = "Directories that would be renamed"
		updateLabel = "Files that would have updated content"
		renameLabel = "Files that would be renamed"
	}

	fmt.Println()
	color.New(color.Bold).Println("SUMMARY:")
	printCount(dirLabel, stats.DirsRenamed, color.FgGreen)
	printCount(updateLabel, stats.FilesUpdated, color.FgGreen)
	printCount(renameLabel, stats.FilesRenamed, color.FgGreen)
	printCount("Files skipped", stats.FilesSkipped, color.FgYellow)

	zerolog.Ctx(ctx).Info().
		Int("dirs_renamed", stats.DirsRenamed).
		Int("files_updated", stats.FilesUpdated).
		Int("files_renamed", stats.FilesRenamed).
		Int("files_skipped", stats.FilesSkipped).
		Bool("dry_run", dryRun).
		Msg("run complete")
}

// printCount prints one counter line, colored only when the count is nonzero
func printCount(label string, count int, attr color.Attribute) {
	valueColor := color.New(color.Faint)
	if count > 0 {
		valueColor = color.New(attr)
	}
	fmt.Printf("  %s: %s\n", label, valueColor.Sprintf("%d", count))
}
