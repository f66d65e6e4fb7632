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

// Package status renders run progress and outcomes for the user. Everything
// printed here is also mirrored into zerolog for debugging.
package status

import (
	"context"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/rename"
	"github.com/walteh/renamerc/pkg/rewrite"
	"github.com/walteh/renamerc/pkg/run"
)

func init() {
	// Skipped-file lines go through the Debug printer; keep them visible
	pterm.EnableDebugMessages()
}

// 📢 ConsoleReporter implements run.Reporter with pterm printers and a
// progress bar per phase.
type ConsoleReporter struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// 🏭 NewConsoleReporter creates a console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

var _ run.Reporter = (*ConsoleReporter)(nil)

// 🎬 StartRun prints the intro banner
func (r *ConsoleReporter) StartRun(ctx context.Context, cfg *config.Config) {
	title := "Project Renamer"
	if cfg.DryRun {
		title += " (DRY RUN)"
	}
	pterm.DefaultSection.Println(title)
	pterm.Info.Printfln("Processing directory: %s", cfg.Root)
	pterm.Info.Printfln("Replacing all instances of %q with %q", config.Placeholder, cfg.Replacement)

	zerolog.Ctx(ctx).Info().
		Str("root", cfg.Root).
		Str("replacement", cfg.Replacement).
		Bool("dry_run", cfg.DryRun).
		Msg("starting run")
}

// ⏳ StartPhase opens a new phase section with a progress bar
func (r *ConsoleReporter) StartPhase(ctx context.Context, name string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.DefaultSection.WithLevel(2).Println(name)
	if total > 0 {
		bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle(name).Start()
		if err == nil {
			r.bar = bar
		}
	}

	zerolog.Ctx(ctx).Debug().Str("phase", name).Int("total", total).Msg("phase started")
}

// 🏁 FinishPhase stops the current progress bar, if any
func (r *ConsoleReporter) FinishPhase(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar != nil {
		_, _ = r.bar.Stop()
		r.bar = nil
	}
}

// 📁 OnDir reports one directory outcome
func (r *ConsoleReporter) OnDir(ctx context.Context, outcome rename.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if outcome.Log != "" {
		printLine(outcome.Log)
	}
	if r.bar != nil {
		r.bar.Increment()
	}

	if outcome.Err != nil {
		zerolog.Ctx(ctx).Error().Err(outcome.Err).Msg("directory rename failed")
	} else if outcome.Log != "" {
		zerolog.Ctx(ctx).Info().Str("path", outcome.NewPath).Bool("renamed", outcome.Renamed).Msg(outcome.Log)
	}
}

// 📄 OnFile reports one file outcome
func (r *ConsoleReporter) OnFile(ctx context.Context, outcome rewrite.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, line := range outcome.Logs {
		printLine(line)
	}
	if r.bar != nil {
		r.bar.Increment()
	}

	logger := zerolog.Ctx(ctx)
	if outcome.Err != nil {
		logger.Error().Str("file", outcome.Path).Err(outcome.Err).Msg("file processing failed")
	} else {
		logger.Debug().
			Str("file", outcome.Path).
			Bool("updated", outcome.ContentUpdated).
			Bool("renamed", outcome.Renamed).
			Bool("skipped", outcome.Skipped).
			Msg("file processed")
	}
}

// printLine picks a printer by the action line's category
func printLine(line string) {
	switch {
	case strings.HasPrefix(line, "Error"):
		pterm.Error.Println(line)
	case strings.HasPrefix(line, "Skipping"):
		pterm.Warning.Println(line)
	case strings.HasPrefix(line, "Skipped"):
		pterm.Debug.Println(line)
	case strings.HasPrefix(line, "Would"):
		pterm.Info.Println(line)
	default:
		pterm.Success.Println(line)
	}
}
