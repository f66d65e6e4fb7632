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

package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfNeeded_File(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		replacement string
		setup       func(t *testing.T, dir string)
		wantRenamed bool
		wantBase    string
		wantLogPart string
	}{
		{
			name:        "name_contains_placeholder",
			fileName:    "PROJECT_readme.md",
			replacement: "acme",
			wantRenamed: true,
			wantBase:    "acme_readme.md",
			wantLogPart: "Renamed file",
		},
		{
			name:        "name_without_placeholder_is_noop",
			fileName:    "readme.md",
			replacement: "acme",
			wantRenamed: false,
			wantBase:    "readme.md",
		},
		{
			name:        "multiple_occurrences_in_name",
			fileName:    "PROJECT_PROJECT.txt",
			replacement: "x",
			wantRenamed: true,
			wantBase:    "x_x.txt",
			wantLogPart: "Renamed file",
		},
		{
			name:        "target_exists_is_skipped",
			fileName:    "PROJECT.txt",
			replacement: "acme",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.txt"), []byte("other"), 0644))
			},
			wantRenamed: false,
			wantBase:    "PROJECT.txt",
			wantLogPart: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			outcome := IfNeeded(path, "PROJECT", tt.replacement, false, false)

			assert.Equal(t, tt.wantRenamed, outcome.Renamed)
			assert.NoError(t, outcome.Err)
			assert.Equal(t, filepath.Join(dir, tt.wantBase), outcome.NewPath)
			if tt.wantLogPart != "" {
				assert.Contains(t, outcome.Log, tt.wantLogPart)
			} else {
				assert.Empty(t, outcome.Log)
			}

			// The entry the outcome points at must exist
			_, err := os.Stat(outcome.NewPath)
			assert.NoError(t, err, "outcome path should exist on disk")
		})
	}
}

func TestIfNeeded_Directory(t *testing.T) {
	dir := t.TempDir()
	child := filepath.Join(dir, "PROJECT_service")
	require.NoError(t, os.MkdirAll(filepath.Join(child, "inner"), 0755))

	outcome := IfNeeded(child, "PROJECT", "billing", true, false)

	require.True(t, outcome.Renamed)
	require.NoError(t, outcome.Err)
	assert.Equal(t, filepath.Join(dir, "billing_service"), outcome.NewPath)
	assert.Contains(t, outcome.Log, "Renamed directory")

	// Contents move with the directory
	_, err := os.Stat(filepath.Join(outcome.NewPath, "inner"))
	assert.NoError(t, err)
	_, err = os.Stat(child)
	assert.True(t, os.IsNotExist(err), "old directory path should be gone")
}

func TestIfNeeded_DirectoryCollision(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "PROJECT_api")
	target := filepath.Join(dir, "core_api")
	require.NoError(t, os.Mkdir(source, 0755))
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "keep.txt"), []byte("keep"), 0644))

	outcome := IfNeeded(source, "PROJECT", "core", true, false)

	assert.False(t, outcome.Renamed, "collision must never overwrite or merge")
	assert.Contains(t, outcome.Log, "already exists")

	// Source stays intact
	data, err := os.ReadFile(filepath.Join(source, "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestIfNeeded_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PROJECT.cfg")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	outcome := IfNeeded(path, "PROJECT", "acme", false, true)

	assert.True(t, outcome.Renamed)
	assert.Contains(t, outcome.Log, "Would rename")
	assert.Equal(t, filepath.Join(dir, "acme.cfg"), outcome.NewPath)

	// Dry-run never mutates
	_, err := os.Stat(path)
	assert.NoError(t, err, "original file must still exist")
	_, err = os.Stat(outcome.NewPath)
	assert.True(t, os.IsNotExist(err), "target must not be created")
}
