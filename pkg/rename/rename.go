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

// Package rename computes and performs single placeholder renames for files
// and directories, with collision avoidance.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 Outcome is the result of one rename attempt. The zero value means the
// name did not contain the placeholder and nothing happened.
type Outcome struct {
	// Renamed is true when the entry was renamed (or would be, in dry-run)
	Renamed bool
	// NewPath is the entry's path after the rename; equal to the original
	// path when no rename happened
	NewPath string
	// Log is the human-readable line describing what happened, if anything
	Log string
	// Err is set when the OS refused the rename
	Err error
}

// 🔀 IfNeeded renames the entry at path when its base name contains the
// placeholder. The target is a sibling path with the placeholder substituted.
// An existing entry at the target is never overwritten or merged: the rename
// is skipped with a log line. OS-level failures are reported in the outcome,
// never propagated, so one bad entry cannot abort the run.
//
// The existence check and the rename are not an atomic pair; a concurrent
// external writer can still race us to the target. That race is accepted.
func IfNeeded(path, placeholder, replacement string, isDir bool, dryRun bool) Outcome {
	parent, base := filepath.Split(path)
	kind := "file"
	if isDir {
		kind = "directory"
	}

	if !strings.Contains(base, placeholder) {
		return Outcome{NewPath: path}
	}

	newBase := strings.ReplaceAll(base, placeholder, replacement)
	newPath := filepath.Join(parent, newBase)

	if _, err := os.Lstat(newPath); err == nil {
		return Outcome{
			NewPath: path,
			Log:     fmt.Sprintf("Skipping %s rename: target %q already exists", kind, newPath),
		}
	}

	if dryRun {
		return Outcome{
			Renamed: true,
			NewPath: newPath,
			Log:     fmt.Sprintf("Would rename %s: %q -> %q", kind, path, newPath),
		}
	}

	if err := os.Rename(path, newPath); err != nil {
		return Outcome{
			NewPath: path,
			Log:     fmt.Sprintf("Error renaming %s %q: %v", kind, path, err),
			Err:     errors.Errorf("renaming %s %q to %q: %w", kind, path, newPath, err),
		}
	}

	return Outcome{
		Renamed: true,
		NewPath: newPath,
		Log:     fmt.Sprintf("Renamed %s: %q -> %q", kind, path, newPath),
	}
}
