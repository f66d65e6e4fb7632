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

// Package scan walks the directory tree and produces the ordered work lists
// consumed by the run orchestrator.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/classify"
	"github.com/walteh/renamerc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📋 Result holds the outcome of one tree walk. Dirs is sorted deepest-first
// so directory renames can proceed bottom-up; Files is in walk order.
type Result struct {
	Dirs  []string
	Files []string
}

// 🌲 Collect walks root top-down, pruning ignored directories before
// descending into them, and returns the directory and file work lists.
// Ignored subtrees are never visited, regardless of size.
func Collect(ctx context.Context, root string, spec config.IgnoreSpec) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return errors.Errorf("relativizing %s: %w", path, relErr)
		}

		if d.IsDir() {
			if classify.ShouldIgnore(rel, classify.KindDir, spec) {
				logger.Debug().Str("dir", rel).Msg("pruning ignored directory")
				return fs.SkipDir
			}
			result.Dirs = append(result.Dirs, path)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if classify.ShouldIgnore(rel, classify.KindFile, spec) {
			logger.Debug().Str("file", rel).Msg("skipping ignored file")
			return nil
		}
		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	// Deepest directories first so a child is always renamed before its
	// parent path changes underneath it
	sort.SliceStable(result.Dirs, func(i, j int) bool {
		return depth(result.Dirs[i]) > depth(result.Dirs[j])
	})

	logger.Debug().
		Int("dirs", len(result.Dirs)).
		Int("files", len(result.Files)).
		Msg("collected paths")

	return result, nil
}

// depth counts path separators; more separators means deeper in the tree
func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}
