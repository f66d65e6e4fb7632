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

// Package classify provides the stateless predicates that decide which
// filesystem entries are eligible for rewriting.
package classify

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/renamerc/pkg/config"
)

// 📏 DefaultSampleSize is how many bytes we read to sniff binary content
const DefaultSampleSize = 8000

// 🗂️ EntryKind is the filesystem entry kind, resolved once during traversal
// and passed down so ignore evaluation never re-stats the path.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// 🔍 IsBinary reports whether the file at path looks binary. It reads up to
// sampleSize bytes: a null byte or an invalid UTF-8 sample means binary.
// Zero-byte files are text. Any read error counts as binary, so unreadable
// content is never corrupted by a rewrite.
func IsBinary(path string, sampleSize int) bool {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	if info.Size() == 0 {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return true
	}
	sample = sample[:n]

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	// A sample cut mid-rune must not count against the file. Trim up to
	// three trailing bytes that form an incomplete sequence before the
	// strict validity check.
	if n == sampleSize {
		sample = trimPartialRune(sample)
	}

	return !utf8.Valid(sample)
}

// trimPartialRune drops a trailing incomplete UTF-8 sequence from the sample
func trimPartialRune(sample []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(sample) > 0; i++ {
		r, size := utf8.DecodeLastRune(sample)
		if r != utf8.RuneError || size != 1 {
			return sample
		}
		sample = sample[:len(sample)-1]
	}
	return sample
}

// 🎯 MatchesAny reports whether name matches any of the glob patterns.
// Matching is case sensitive, per shell semantics.
func MatchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			// Bad pattern: skip it rather than failing the run
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// 🚫 ShouldIgnore reports whether the path (relative to the scan root) is
// excluded by the ignore spec. Any path segment matching a directory pattern
// excludes the entry; a file additionally matches against its base name.
func ShouldIgnore(rel string, kind EntryKind, spec config.IgnoreSpec) bool {
	segments := strings.Split(rel, string(os.PathSeparator))
	for _, segment := range segments {
		if MatchesAny(segment, spec.Dirs) {
			return true
		}
	}

	if kind == KindFile {
		base := segments[len(segments)-1]
		if MatchesAny(base, spec.Files) {
			return true
		}
	}

	return false
}
