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

// Package config defines the run configuration for renamerc
package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Placeholder is the exact token replaced throughout the tree
const Placeholder = "PROJECT"

// 📏 DefaultMaxFileSize is the largest file we will rewrite (10 MiB)
const DefaultMaxFileSize = 10 * 1024 * 1024

// DefaultIgnoreDirs lists directory names that are never descended into
var DefaultIgnoreDirs = []string{
	".git", ".svn", ".hg", "__pycache__", "node_modules", "venv", ".venv",
}

// DefaultIgnoreFiles lists file name patterns that are never rewritten
var DefaultIgnoreFiles = []string{
	"*.pyc", "*.pyo", "*.so", "*.dll", "*.exe", "*.bin", "*.jpg", "*.png", "*.gif",
}

// 🚫 IgnoreSpec holds the glob pattern sets excluded from processing.
// It is immutable for the duration of one run.
type IgnoreSpec struct {
	Dirs  []string `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty"`
	Files []string `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty"`
}

// 🔧 Config is the full configuration for one run. It is constructed once
// from caller input and read-only thereafter.
type Config struct {
	// Root is the directory tree to process (made absolute by Validate)
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// Replacement is the string substituted for the placeholder
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	// MaxFileSize is the largest file size in bytes we will rewrite
	MaxFileSize int64 `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty"`
	// DryRun reports would-be changes without mutating the filesystem
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	// Jobs bounds the file-processing worker pool (0 = NumCPU)
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	// Ignore holds the directory and file exclusion patterns
	Ignore IgnoreSpec `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	location string // path the config was loaded from, if any
}

// 🏭 Default returns a config populated with the stock defaults
func Default() *Config {
	return &Config{
		Root:        ".",
		MaxFileSize: DefaultMaxFileSize,
		Ignore: IgnoreSpec{
			Dirs:  append([]string(nil), DefaultIgnoreDirs...),
			Files: append([]string(nil), DefaultIgnoreFiles...),
		},
	}
}

// Location returns the path the config was loaded from, or "" for defaults
func (c *Config) Location() string {
	return c.location
}

// Workers resolves the worker pool size for apply mode
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}

// ✅ Validate normalizes the config and checks its preconditions.
// The root is resolved to an absolute path and must be an existing directory.
func Validate(ctx context.Context, cfg *Config) error {
	if cfg.Replacement == "" {
		return errors.Errorf("replacement is required")
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return errors.Errorf("resolving root path: %w", err)
	}
	cfg.Root = absRoot

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return errors.Errorf("checking root directory: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("root %q is not a directory", cfg.Root)
	}

	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative")
	}

	return nil
}
