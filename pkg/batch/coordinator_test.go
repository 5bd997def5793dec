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

package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/headerrc/pkg/definition"
	"github.com/walteh/headerrc/pkg/header"
	"github.com/walteh/headerrc/pkg/status"
	"github.com/walteh/headerrc/pkg/syntax"
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// 🔧 mockSink is a mock implementation of ProgressSink
type mockSink struct {
	mock.Mock
}

func (m *mockSink) Report(ctx context.Context, p Progress) {
	m.Called(ctx, p)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func fixedClock() time.Time {
	return time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)
}

func goHeaders() definition.Definition {
	return definition.Definition{
		".go": {"// Copyright %CurrentYear% %Company%"},
	}
}

func newCoordinator(opts ...Option) *Coordinator {
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return New(syntax.NewDefaultRegistry(), header.DefaultPolicy(), opts...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s should succeed", name)
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s should succeed", path)
	return string(data)
}

func TestRunAggregatesPerFileFailures(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	first := writeFile(t, dir, "a.go", "package a\n")
	missing := filepath.Join(dir, "b.go")
	third := writeFile(t, dir, "c.go", "package c\n")

	additional := []token.Additional{{Token: "%Company%", Value: "walteh LLC"}}
	inputs := []Input{
		PathInput{Path: first, Headers: goHeaders(), Additional: additional},
		PathInput{Path: missing, Headers: goHeaders(), Additional: additional},
		PathInput{Path: third, Headers: goHeaders(), Additional: additional},
	}

	sink := &mockSink{}
	for i, path := range []string{first, missing, third} {
		processed, p := i+1, path
		sink.On("Report", mock.Anything, mock.MatchedBy(func(got Progress) bool {
			return got.Processed == processed && got.Total == 3 && got.Path == p && got.Content == nil
		})).Once()
	}

	res, err := newCoordinator().Run(ctx, inputs, sink)
	require.NoError(t, err, "per-file failures should not fail the run")
	sink.AssertExpectations(t)

	require.Len(t, res.Outcomes, 3, "every file should have an outcome")
	assert.False(t, res.Success(), "batch should fail")
	assert.Equal(t, StatusFailed, res.Status(), "status should be failed")
	assert.False(t, res.Cancelled, "batch should not be cancelled")

	assert.True(t, res.Outcomes[0].Success(), "first file should succeed")
	assert.True(t, res.Outcomes[0].Written, "first file should be written")
	assert.Equal(t, header.ActionInserted, res.Outcomes[0].Action, "first file should get a header")

	assert.True(t, errors.Is(res.Outcomes[1].Err, ErrIO), "second file should fail with an io error, got %v", res.Outcomes[1].Err)
	assert.False(t, res.Outcomes[1].Written, "failed file should not be written")

	assert.True(t, res.Outcomes[2].Success(), "third file should succeed")
	assert.Len(t, res.Failed(), 1, "one outcome should be failed")

	assert.Equal(t, "// Copyright 2025 walteh LLC\npackage a\n", readFile(t, first), "first file content should match")
	assert.Equal(t, "// Copyright 2025 walteh LLC\npackage c\n", readFile(t, third), "third file content should match")
}

func TestRunContentInput(t *testing.T) {
	ctx := testContext(t)

	var got []Progress
	sink := SinkFunc(func(_ context.Context, p Progress) { got = append(got, p) })

	inputs := []Input{
		ContentInput{
			Path:       "/nowhere/main.go",
			Content:    "package main\n",
			Headers:    goHeaders(),
			Additional: []token.Additional{{Token: "%Company%", Value: "walteh LLC"}},
		},
	}

	res, err := newCoordinator().Run(ctx, inputs, sink)
	require.NoError(t, err, "run should succeed")
	require.Len(t, res.Outcomes, 1, "one outcome expected")

	out := res.Outcomes[0]
	want := "// Copyright 2025 walteh LLC\npackage main\n"
	assert.Equal(t, want, out.Content, "new content should be returned")
	assert.True(t, out.Changed, "content should be changed")
	assert.False(t, out.Written, "content inputs are never written")
	assert.Equal(t, StatusChanged, res.Status(), "status should be changed")

	require.Len(t, got, 1, "one progress event expected")
	require.NotNil(t, got[0].Content, "progress should carry content")
	assert.Equal(t, want, *got[0].Content, "progress content should match")
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantErr    error
		wantAction header.Action
		wantOut    string
	}{
		{
			name:       "remove_when_headers_nil",
			input:      ContentInput{Path: "a.go", Content: "// Copyright 2019\npackage a\n"},
			wantAction: header.ActionRemoved,
			wantOut:    "package a\n",
		},
		{
			name: "remove_when_section_is_empty",
			input: ContentInput{
				Path:    "Form.designer.cs",
				Content: "// Copyright 2019\nclass A {}\n",
				Headers: definition.Definition{".cs": {"// Copyright"}, ".designer.cs": nil},
			},
			wantAction: header.ActionRemoved,
			wantOut:    "class A {}\n",
		},
		{
			name:       "unchanged_is_success",
			input:      ContentInput{Path: "a.go", Content: "package a\n"},
			wantAction: header.ActionUnchanged,
			wantOut:    "package a\n",
		},
		{
			name:       "definition_file_skipped",
			input:      ContentInput{Path: "project.licenseheader", Content: "extensions: .go\n// x\n", Headers: goHeaders()},
			wantAction: header.ActionSkipped,
		},
		{
			name:    "unsupported_extension",
			input:   ContentInput{Path: "data.unknownext", Content: "x", Headers: goHeaders()},
			wantErr: syntax.ErrUnsupportedExtension,
		},
		{
			name:    "no_header_definition",
			input:   ContentInput{Path: "a.c", Content: "int x;\n", Headers: goHeaders()},
			wantErr: ErrNoHeaderDefinition,
		},
		{
			name: "non_comment_template",
			input: ContentInput{
				Path:    "a.go",
				Content: "package a\n",
				Headers: definition.Definition{".go": {"Copyright 2025"}},
			},
			wantErr: header.ErrNonCommentText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newCoordinator().Run(testContext(t), []Input{tt.input}, nil)
			require.NoError(t, err, "run should succeed")
			require.Len(t, res.Outcomes, 1, "one outcome expected")

			out := res.Outcomes[0]
			if tt.wantErr != nil {
				assert.True(t, errors.Is(out.Err, tt.wantErr), "error should be %v, got %v", tt.wantErr, out.Err)
				assert.False(t, res.Success(), "batch should fail")
				return
			}
			require.NoError(t, out.Err, "file should succeed")
			assert.Equal(t, tt.wantAction, out.Action, "action should match")
			assert.Equal(t, tt.wantOut, out.Content, "content should match")
			assert.True(t, res.Success(), "batch should succeed")
		})
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	inputs := []Input{
		ContentInput{Path: "a.go", Content: "package a\n"},
		ContentInput{Path: "b.go", Content: "package b\n"},
		ContentInput{Path: "c.go", Content: "package c\n"},
	}

	sink := SinkFunc(func(_ context.Context, p Progress) {
		if p.Processed == 1 {
			cancel()
		}
	})

	res, err := newCoordinator().Run(ctx, inputs, sink)
	require.Error(t, err, "cancelled run should return an error")
	assert.True(t, errors.Is(err, ErrCancelled), "error should be ErrCancelled, got %v", err)
	require.NotNil(t, res, "partial result should be returned")
	assert.True(t, res.Cancelled, "result should be marked cancelled")
	assert.Len(t, res.Outcomes, 1, "files after cancellation should not be attempted")
	assert.True(t, res.Success(), "attempted files all succeeded")
}

func TestRunPreservesModeAndTracks(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	script := writeFile(t, dir, "run.sh", "#!/bin/sh\necho hi\n")
	require.NoError(t, os.Chmod(script, 0755), "chmod should succeed")
	unchanged := writeFile(t, dir, "keep.go", "package keep\n")

	mgr := status.New("")
	coord := newCoordinator(WithFileManager(mgr), WithTracker(mgr))

	defs := definition.Definition{".sh": {"# Copyright %CurrentYear%"}, ".go": nil}
	res, err := coord.Run(ctx, []Input{
		PathInput{Path: script, Headers: defs},
		PathInput{Path: unchanged, Headers: defs},
	}, nil)
	require.NoError(t, err, "run should succeed")
	assert.True(t, res.Success(), "batch should succeed")

	assert.Equal(t, "#!/bin/sh\n# Copyright 2025\necho hi\n", readFile(t, script), "header should follow the shebang")
	info, err := os.Stat(script)
	require.NoError(t, err, "stat should succeed")
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "file mode should be preserved")

	assert.False(t, res.Outcomes[1].Written, "unchanged file should not be rewritten")

	files := mgr.ListFiles()
	require.Len(t, files, 2, "both files should be tracked")
	assert.Equal(t, header.ActionInserted, files[0].Action, "script should be tracked as inserted")
	assert.Equal(t, header.ActionUnchanged, files[1].Action, "go file should be tracked as unchanged")

	for i, path := range []string{script, unchanged} {
		raw, err := os.ReadFile(path)
		require.NoError(t, err, "reading %s should succeed", path)
		assert.Equal(t, status.Checksum(raw), files[i].Checksum, "checksum should match the file on disk for %s", path)
	}
	assert.Equal(t, os.FileMode(0755), files[0].Mode, "script mode should be tracked")
	assert.Equal(t, os.FileMode(0644), files[1].Mode, "go file mode should be tracked")
}

func TestContentInputTracksChecksum(t *testing.T) {
	mgr := status.New("")
	coord := newCoordinator(WithTracker(mgr))

	res, err := coord.Run(testContext(t), []Input{
		ContentInput{Path: "a.go", Content: "package a\n", Headers: definition.Definition{".go": {"// Copyright"}}},
	}, nil)
	require.NoError(t, err, "run should succeed")

	files := mgr.ListFiles()
	require.Len(t, files, 1, "content input should be tracked")
	assert.Equal(t, status.Checksum([]byte(res.Outcomes[0].Content)), files[0].Checksum, "checksum should match the rewritten content")
	assert.Zero(t, files[0].Mode, "content inputs have no file mode")
}

// a property listed first takes precedence over the built-in of the same token
func TestWithProperties(t *testing.T) {
	props := append([]token.Property{
		token.NewProperty("%CurrentYear%", nil, func(*token.Context) string { return "2001-2025" }),
		token.NewProperty("%Company%", nil, func(*token.Context) string { return "walteh LLC" }),
	}, token.Builtins()...)

	res, err := newCoordinator(WithProperties(props)).Run(testContext(t), []Input{
		ContentInput{Path: "a.go", Content: "package a\n", Headers: goHeaders()},
	}, nil)
	require.NoError(t, err, "run should succeed")
	require.True(t, res.Success(), "batch should succeed")
	assert.Equal(t, "// Copyright 2001-2025 walteh LLC\npackage a\n", res.Outcomes[0].Content, "custom properties should be rendered")
}

func TestRegistryIsCloned(t *testing.T) {
	reg := syntax.NewDefaultRegistry()
	coord := New(reg, header.DefaultPolicy(), WithClock(fixedClock))

	require.NoError(t, reg.Add(syntax.Language{Extensions: []string{".foo"}, LineComment: "//"}), "adding language should succeed")

	res, err := coord.Run(testContext(t), []Input{ContentInput{Path: "a.foo", Content: "x\n"}}, nil)
	require.NoError(t, err, "run should succeed")
	assert.True(t, errors.Is(res.Outcomes[0].Err, syntax.ErrUnsupportedExtension), "later registry changes should not leak into the coordinator")
}

func TestChannelSink(t *testing.T) {
	ctx := testContext(t)
	ch := make(chan Progress, 2)

	inputs := []Input{
		ContentInput{Path: "a.go", Content: "package a\n"},
		ContentInput{Path: "b.go", Content: "package b\n"},
	}
	_, err := newCoordinator().Run(ctx, inputs, NewChannelSink(ch))
	require.NoError(t, err, "run should succeed")
	close(ch)

	var paths []string
	for p := range ch {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{"a.go", "b.go"}, paths, "events should arrive in input order")
}

func TestChannelSinkStopsOnDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// unbuffered and never read: Report must return because ctx is done
	NewChannelSink(make(chan Progress)).Report(ctx, Progress{Path: "a.go"})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "nothing changed", StatusNothingChanged.String(), "nothing changed should render")
	assert.Equal(t, "changed", StatusChanged.String(), "changed should render")
	assert.Equal(t, "failed", StatusFailed.String(), "failed should render")
}
