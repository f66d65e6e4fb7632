// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package run drives the two-phase rename-and-replace execution: directories
// deepest-first, then files across a bounded worker pool.
package run

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/rename"
	"github.com/walteh/renamerc/pkg/rewrite"
	"github.com/walteh/renamerc/pkg/scan"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📊 Stats holds the aggregate counters for one run. It is written only by
// the runner's single aggregation path, never by workers.
type Stats struct {
	DirsRenamed  int
	FilesUpdated int
	FilesRenamed int
	FilesSkipped int
}

// 📢 Reporter receives presentation callbacks as the run progresses.
// Implementations render them for the user; the runner never prints.
type Reporter interface {
	// StartRun is called once before any scanning happens
	StartRun(ctx context.Context, cfg *config.Config)
	// StartPhase is called when a phase begins, with the unit count
	StartPhase(ctx context.Context, name string, total int)
	// FinishPhase is called when the current phase ends
	FinishPhase(ctx context.Context)
	// OnDir is called for every directory outcome, in processing order
	OnDir(ctx context.Context, outcome rename.Outcome)
	// OnFile is called for every file outcome, one at a time
	OnFile(ctx context.Context, outcome rewrite.Outcome)
	// Summarize is called once with the final counters
	Summarize(ctx context.Context, stats Stats, dryRun bool)
}

// 🏃 Runner executes one rename-and-replace run
type Runner struct {
	cfg      *config.Config
	reporter Reporter
}

// 🏭 New creates a runner. A nil reporter is replaced with a no-op one.
func New(cfg *config.Config, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Runner{cfg: cfg, reporter: reporter}
}

// 🏃 Run executes the full run: scan, rename directories deepest-first,
// rescan files if any directory moved, process files, summarize. Per-unit
// failures are logged and counted but never abort the run; only context
// cancellation and scan failures are fatal.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	logger := zerolog.Ctx(ctx)
	stats := Stats{}

	// Replacing the placeholder with itself would be a no-op pass over the
	// whole tree; refuse before scanning anything.
	if r.cfg.Replacement == config.Placeholder {
		logger.Warn().
			Str("replacement", r.cfg.Replacement).
			Msg("replacement equals the placeholder, nothing to do")
		return stats, nil
	}

	r.reporter.StartRun(ctx, r.cfg)

	result, err := scan.Collect(ctx, r.cfg.Root, r.cfg.Ignore)
	if err != nil {
		return stats, errors.Errorf("scanning %s: %w", r.cfg.Root, err)
	}

	if err := r.renameDirs(ctx, result.Dirs, &stats); err != nil {
		return stats, err
	}

	// Directory renames invalidate the collected file paths. Dry-run never
	// mutates, so the original list stays valid there.
	files := result.Files
	if !r.cfg.DryRun && stats.DirsRenamed > 0 {
		logger.Debug().Int("dirs_renamed", stats.DirsRenamed).Msg("rescanning files after directory renames")
		rescan, err := scan.Collect(ctx, r.cfg.Root, r.cfg.Ignore)
		if err != nil {
			return stats, errors.Errorf("rescanning %s: %w", r.cfg.Root, err)
		}
		files = rescan.Files
	}

	if err := r.processFiles(ctx, files, &stats); err != nil {
		return stats, err
	}

	r.reporter.Summarize(ctx, stats, r.cfg.DryRun)
	return stats, nil
}

// 📁 renameDirs processes the deepest-first directory list strictly
// sequentially. Renaming a child before its parent keeps every not-yet-
// processed path valid.
func (r *Runner) renameDirs(ctx context.Context, dirs []string, stats *Stats) error {
	r.reporter.StartPhase(ctx, "Renaming directories", len(dirs))
	defer r.reporter.FinishPhase(ctx)

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("run cancelled: %w", err)
		}

		outcome := rename.IfNeeded(dir, config.Placeholder, r.cfg.Replacement, true, r.cfg.DryRun)
		if outcome.Renamed {
			stats.DirsRenamed++
		}
		r.reporter.OnDir(ctx, outcome)
	}

	return nil
}

// 📄 processFiles dispatches file work. Dry-run evaluates sequentially so
// output stays ordered; apply mode fans out across a bounded worker pool and
// merges outcomes one at a time.
func (r *Runner) processFiles(ctx context.Context, files []string, stats *Stats) error {
	r.reporter.StartPhase(ctx, "Processing files", len(files))
	defer r.reporter.FinishPhase(ctx)

	if r.cfg.DryRun {
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("run cancelled: %w", err)
			}
			outcome := rewrite.EvaluateFile(ctx, file, r.cfg)
			r.merge(ctx, stats, outcome)
		}
		return nil
	}

	// Workers return immutable outcomes over this channel; the aggregator
	// below is the only writer of the shared counters.
	results := make(chan rewrite.Outcome)
	aggregated := make(chan struct{})
	go func() {
		defer close(aggregated)
		for outcome := range results {
			r.merge(ctx, stats, outcome)
		}
	}()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workers())
	for _, file := range files {
		// Cancellation stops submission; in-flight work finishes
		if gctx.Err() != nil {
			break
		}
		file := file
		group.Go(func() error {
			results <- rewrite.ProcessFile(gctx, file, r.cfg)
			return nil
		})
	}

	_ = group.Wait()
	close(results)
	<-aggregated

	if err := ctx.Err(); err != nil {
		return errors.Errorf("run cancelled: %w", err)
	}
	return nil
}

// merge folds one file outcome into the counters and hands it to the
// reporter. Updated, renamed, and skipped are independent axes; a file that
// neither changed content nor moved counts as skipped.
func (r *Runner) merge(ctx context.Context, stats *Stats, outcome rewrite.Outcome) {
	if outcome.ContentUpdated {
		stats.FilesUpdated++
	}
	if outcome.Renamed {
		stats.FilesRenamed++
	}
	if !outcome.Changed() {
		stats.FilesSkipped++
	}
	r.reporter.OnFile(ctx, outcome)
}

// nopReporter discards all callbacks
type nopReporter struct{}

func (nopReporter) StartRun(context.Context, *config.Config) {}
func (nopReporter) StartPhase(context.Context, string, int)  {}
func (nopReporter) FinishPhase(context.Context)              {}
func (nopReporter) OnDir(context.Context, rename.Outcome)    {}
func (nopReporter) OnFile(context.Context, rewrite.Outcome)  {}
func (nopReporter) Summarize(context.Context, Stats, bool)   {}
