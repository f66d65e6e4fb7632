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

package status

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/rename"
	"github.com/walteh/renamerc/pkg/rewrite"
	"github.com/walteh/renamerc/pkg/run"
)

// captureOutput redirects pterm output for the duration of fn
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	color.NoColor = true
	defer pterm.SetDefaultOutput(os.Stdout)
	fn()
	return buf.String()
}

func TestConsoleReporter_FullRunOutput(t *testing.T) {
	ctx := context.Background()
	reporter := NewConsoleReporter()

	cfg := config.Default()
	cfg.Root = "/tmp/demo"
	cfg.Replacement = "acme"
	cfg.DryRun = true

	out := captureOutput(t, func() {
		reporter.StartRun(ctx, cfg)
		reporter.StartPhase(ctx, "Renaming directories", 0)
		reporter.OnDir(ctx, rename.Outcome{
			Renamed: true,
			NewPath: "/tmp/demo/acme_svc",
			Log:     `Would rename directory: "/tmp/demo/PROJECT_svc" -> "/tmp/demo/acme_svc"`,
		})
		reporter.FinishPhase(ctx)
		reporter.StartPhase(ctx, "Processing files", 0)
		reporter.OnFile(ctx, rewrite.Outcome{
			Path:           "/tmp/demo/readme.md",
			ContentUpdated: true,
			Logs:           []string{`Would update content in: "/tmp/demo/readme.md"`},
		})
		reporter.FinishPhase(ctx)
	})

	assert.Contains(t, out, "DRY RUN")
	assert.Contains(t, out, "Would rename directory")
	assert.Contains(t, out, "Would update content in")
}

func TestConsoleReporter_SummarizeCounts(t *testing.T) {
	reporter := NewConsoleReporter()
	// Summarize writes the counters straight to stdout; this only checks it
	// tolerates zero and nonzero stats without a bar running
	reporter.Summarize(context.Background(), run.Stats{}, false)
	reporter.Summarize(context.Background(), run.Stats{
		DirsRenamed:  1,
		FilesUpdated: 2,
		FilesRenamed: 3,
		FilesSkipped: 4,
	}, true)
}
