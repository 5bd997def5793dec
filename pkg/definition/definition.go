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

// Package definition parses license header definition files.
//
// A definition file is a sequence of sections. Each section starts with an
// "extensions:" line listing the extensions it applies to; every following line
// up to the next "extensions:" line (or EOF) is the header template, verbatim.
//
//	extensions: .go .rs
//	// Copyright %CurrentYear% walteh LLC
//	extensions: .designer.cs
//	extensions: .cs
//	// Copyright %CurrentYear% walteh LLC
//
// A section without body lines ("extensions: .designer.cs" above) means the
// header is removed from those files instead of inserted.
package definition

import (
	"context"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/pkg/lineend"
	"github.com/walteh/headerrc/pkg/syntax"
	"gitlab.com/tozd/go/errors"
)

// FileExtension is the conventional extension of definition files
const FileExtension = ".licenseheader"

const sectionKeyword = "extensions:"

var (
	// ErrDefinitionFileNotFound is returned when the definition path does not exist
	ErrDefinitionFileNotFound = errors.Base("definition file not found")

	// ErrMalformedDefinition is returned when content appears before the first section
	ErrMalformedDefinition = errors.Base("malformed definition file")
)

// 📜 Definition maps a normalized extension to its header template lines.
// A nil entry means "remove the header, do not insert one".
type Definition map[string][]string

// 📝 Parse parses definition text
func Parse(text string) (Definition, error) {
	def := Definition{}

	var (
		current []string // extensions of the open section
		body    []string
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		var lines []string
		if len(body) > 0 {
			lines = append([]string(nil), body...)
		}
		for _, ext := range current {
			def[ext] = lines
		}
	}

	for i, line := range lineend.Split(text) {
		if exts, ok := parseSectionLine(line); ok {
			flush()
			current = exts
			body = nil
			open = true
			continue
		}

		if !open {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, errors.Errorf("%w: line %d: content before first %q line", ErrMalformedDefinition, i+1, sectionKeyword)
		}
		body = append(body, line)
	}
	flush()

	return def, nil
}

// 📂 ParseFile reads and parses the definition file at path
func ParseFile(ctx context.Context, path string) (Definition, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading header definition")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", ErrDefinitionFileNotFound, path)
		}
		return nil, errors.Errorf("reading definition file: %w", err)
	}

	def, err := Parse(string(data))
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Strs("extensions", def.Extensions()).Msg("loaded header definition")
	return def, nil
}

// parseSectionLine recognizes an "extensions:" line and returns its extensions
func parseSectionLine(line string) ([]string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < len(sectionKeyword) || !strings.EqualFold(trimmed[:len(sectionKeyword)], sectionKeyword) {
		return nil, false
	}

	var exts []string
	for _, field := range strings.Fields(trimmed[len(sectionKeyword):]) {
		if ext := syntax.NormalizeExtension(field); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts, true
}

// 🔍 Lookup returns the template for the file at path, preferring the longest
// matching extension. found is false when no section covers the file; lines is
// nil with found true for an explicit removal section.
func (d Definition) Lookup(path string) (lines []string, found bool) {
	for _, ext := range syntax.ExtensionCandidates(path) {
		if lines, ok := d[ext]; ok {
			return lines, true
		}
	}
	return nil, false
}

// Extensions returns the covered extensions in sorted order
func (d Definition) Extensions() []string {
	out := make([]string, 0, len(d))
	for ext := range d {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IsDefinitionFile reports whether path names a definition file
func IsDefinitionFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), FileExtension)
}
