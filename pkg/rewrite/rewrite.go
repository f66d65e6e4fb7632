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

// Package rewrite loads, substitutes, and persists text content for a single
// file, then attempts the companion rename.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/classify"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/rename"
)

// 📄 Outcome is the combined per-file result of the content and rename steps.
// The updated, renamed, and skipped axes are independent: a file can have its
// content updated while its rename is collision-skipped.
type Outcome struct {
	// Path is the file path as it was dispatched
	Path string
	// ContentUpdated is true when the content was (or would be) rewritten
	ContentUpdated bool
	// Renamed is true when the file was (or would be) renamed
	Renamed bool
	// Skipped is true when the file was gated out before any substitution
	// (too large, binary, unreadable)
	Skipped bool
	// Logs holds the human-readable action lines, in order
	Logs []string
	// Err is the first recoverable error hit while processing, if any
	Err error
}

// Changed reports whether anything happened (or would happen) to the file
func (o Outcome) Changed() bool {
	return o.ContentUpdated || o.Renamed
}

// 🔁 ReplaceContent performs literal, non-overlapping substitution of every
// placeholder occurrence. Content is treated as raw bytes: sequences the
// binary sniff let through pass byte-for-byte unmodified, which keeps the
// result deterministic across platforms. No regex semantics.
func ReplaceContent(content, placeholder, replacement string) (string, bool) {
	updated := strings.ReplaceAll(content, placeholder, replacement)
	return updated, updated != content
}

// ⚙️ ProcessFile rewrites one file's content and then attempts its rename.
// Gate order: size, binary sniff, read. A write failure reverts the updated
// flag; the in-memory substitution is not retried. The rename attempt runs
// regardless of whether content changed.
func ProcessFile(ctx context.Context, path string, cfg *config.Config) Outcome {
	logger := zerolog.Ctx(ctx)
	outcome := Outcome{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		outcome.Skipped = true
		outcome.Err = err
		outcome.Logs = append(outcome.Logs, fmt.Sprintf("Error reading file: %s", path))
		return outcome
	}
	if info.Size() > cfg.MaxFileSize {
		outcome.Skipped = true
		outcome.Logs = append(outcome.Logs, fmt.Sprintf("Skipped (too large): %s", path))
		return outcome
	}

	if classify.IsBinary(path, classify.DefaultSampleSize) {
		outcome.Skipped = true
		outcome.Logs = append(outcome.Logs, fmt.Sprintf("Skipped (binary): %s", path))
		return outcome
	}

	raw, err := os.ReadFile(path)
	if err != nil || len(raw) == 0 {
		outcome.Skipped = true
		outcome.Err = err
		outcome.Logs = append(outcome.Logs, fmt.Sprintf("Error reading file: %s", path))
		return outcome
	}

	updated, changed := ReplaceContent(string(raw), config.Placeholder, cfg.Replacement)
	if changed {
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			outcome.Err = err
			outcome.Logs = append(outcome.Logs, fmt.Sprintf("Error updating content in %q: %v", path, err))
			logger.Debug().Str("file", path).Err(err).Msg("content write failed")
		} else {
			outcome.ContentUpdated = true
			outcome.Logs = append(outcome.Logs, fmt.Sprintf("Updated content in: %q", path))
		}
	}

	res := rename.IfNeeded(path, config.Placeholder, cfg.Replacement, false, false)
	if res.Log != "" {
		outcome.Logs = append(outcome.Logs, res.Log)
	}
	if res.Err != nil && outcome.Err == nil {
		outcome.Err = res.Err
	}
	outcome.Renamed = res.Renamed

	return outcome
}

// 🔍 EvaluateFile is the dry-run twin of ProcessFile: same size and binary
// gates, substring presence checks instead of mutation. The filesystem is
// never touched.
func EvaluateFile(ctx context.Context, path string, cfg *config.Config) Outcome {
	outcome := Outcome{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		outcome.Skipped = true
		outcome.Err = err
		return outcome
	}
	if info.Size() > cfg.MaxFileSize || classify.IsBinary(path, classify.DefaultSampleSize) {
		outcome.Skipped = true
		return outcome
	}

	raw, err := os.ReadFile(path)
	if err != nil || len(raw) == 0 {
		outcome.Skipped = true
		outcome.Err = err
		return outcome
	}

	if strings.Contains(string(raw), config.Placeholder) {
		outcome.ContentUpdated = true
		outcome.Logs = append(outcome.Logs, fmt.Sprintf("Would update content in: %q", path))
	}

	// Same collision check apply mode performs, so the reported rename
	// count matches what an apply run would do
	res := rename.IfNeeded(path, config.Placeholder, cfg.Replacement, false, true)
	if res.Log != "" {
		outcome.Logs = append(outcome.Logs, res.Log)
	}
	outcome.Renamed = res.Renamed

	return outcome
}
