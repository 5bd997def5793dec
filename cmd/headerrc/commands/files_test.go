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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "sub/c.go", "sub/d.txt", "vendor/e.go"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating dir")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644), "writing %s", name)
	}

	onlyGo := func(p string) bool { return strings.HasSuffix(p, ".go") }
	vendor := func(p string) bool { return strings.Contains(filepath.ToSlash(p), "/vendor/") }
	join := func(names ...string) []string {
		out := make([]string, len(names))
		for i, n := range names {
			out[i] = filepath.Join(dir, n)
		}
		return out
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "directory_is_walked",
			args: []string{dir},
			want: join("a.go", "b.go", "sub/c.go"),
		},
		{
			name: "glob_is_filtered",
			args: []string{filepath.Join(dir, "**", "*")},
			want: join("a.go", "b.go", "sub/c.go"),
		},
		{
			name: "literal_file_kept_even_if_rejected",
			args: []string{filepath.Join(dir, "sub", "d.txt")},
			want: join("sub/d.txt"),
		},
		{
			name: "missing_literal_kept",
			args: []string{filepath.Join(dir, "missing.go")},
			want: join("missing.go"),
		},
		{
			name: "duplicates_removed_in_order",
			args: []string{filepath.Join(dir, "b.go"), filepath.Join(dir, "*.go")},
			want: join("b.go", "a.go"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandFiles(tt.args, onlyGo, vendor)
			require.NoError(t, err, "expanding files")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandFilesInvalidPattern(t *testing.T) {
	_, err := ExpandFiles([]string{"[unclosed"}, nil, nil)
	assert.Error(t, err, "bad pattern should fail")
}

func TestRenderDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "insert",
			before: "package x\n",
			after:  "// Copyright\npackage x\n",
			want:   "{+// Copyright\n+}package x\n",
		},
		{
			name:   "delete",
			before: "// Copyright\npackage x\n",
			after:  "package x\n",
			want:   "[-// Copyright\n-]package x\n",
		},
		{
			name:   "same",
			before: "package x\n",
			after:  "package x\n",
			want:   "package x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDiff(tt.before, tt.after, false))
		})
	}
}
