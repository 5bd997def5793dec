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

package commands

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ExpandFiles turns command line arguments into an ordered, de-duplicated
// file list. Literal paths are always kept so that problems with them are
// reported. Glob matches and directory contents are filtered through accept
// and skip.
func ExpandFiles(args []string, accept func(path string) bool, skip func(path string) bool) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, path)
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil {
			if !info.IsDir() {
				add(arg)
				continue
			}
			matches, err := doublestar.FilepathGlob(filepath.Join(arg, "**", "*"), doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Errorf("walking %s: %w", arg, err)
			}
			for _, m := range filter(matches, accept, skip) {
				add(m)
			}
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, errors.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %s: %w", arg, err)
		}
		if len(matches) == 0 {
			// keep it so the missing file shows up as a failure
			add(arg)
			continue
		}
		for _, m := range filter(matches, accept, skip) {
			add(m)
		}
	}

	return out, nil
}

func filter(paths []string, accept func(string) bool, skip func(string) bool) []string {
	sort.Strings(paths)
	out := paths[:0]
	for _, p := range paths {
		if skip != nil && skip(p) {
			continue
		}
		if accept != nil && !accept(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
