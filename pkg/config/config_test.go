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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/headerrc/pkg/syntax"
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config file should succeed")
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HEADERRC_TEST_COMPANY", "walteh LLC")

	tests := []struct {
		name     string
		filename string
		config   string
		wantErr  error
		errText  string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml",
			filename: "headerrc.yaml",
			config: `
definition: LICENSE.licenseheader
require_keywords: true
keywords: copyright, license
default_line_ending: crlf
properties:
  - token: "%Company%"
    value: walteh LLC
ignore_patterns:
  - "vendor/**"
languages:
  - extensions: [".foo"]
    line_comment: "//"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "LICENSE.licenseheader", cfg.Definition, "definition should match")
				assert.Equal(t, []string{"copyright", "license"}, cfg.Policy().Keywords, "keywords should be split")
				assert.Equal(t, "\r\n", cfg.Policy().DefaultLineEnding, "line ending should be parsed")
				require.Len(t, cfg.Properties, 1, "one property expected")
				assert.Equal(t, "walteh LLC", cfg.Properties[0].Value, "property value should match")
				assert.Equal(t, []string{"vendor/**"}, cfg.IgnorePatterns, "ignore patterns should match")
			},
		},
		{
			name:     "yaml_defaults",
			filename: "headerrc.yml",
			config:   "definition: x.licenseheader\n",
			check: func(t *testing.T, cfg *Config) {
				policy := cfg.Policy()
				assert.True(t, policy.RequireKeywords, "keywords should be required by default")
				assert.Equal(t, []string{"license", "copyright", "(c)", "©"}, policy.Keywords, "default keywords should be used")
				assert.Equal(t, "\n", policy.DefaultLineEnding, "default line ending should be lf")
			},
		},
		{
			name:     "empty_yaml",
			filename: "headerrc.yaml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Definition, "definition should be empty")
				assert.True(t, cfg.Policy().RequireKeywords, "defaults should still apply")
			},
		},
		{
			name:     "hcl",
			filename: "headerrc.hcl",
			config: `
definition          = "LICENSE.licenseheader"
require_keywords    = false
default_line_ending = "cr"
ignore_patterns     = ["vendor/**"]

language {
  extensions   = [".foo"]
  line_comment = "#"
}

property {
  token = "%Company%"
  value = env.HEADERRC_TEST_COMPANY
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Policy().RequireKeywords, "require_keywords should be false")
				assert.Equal(t, "\r", cfg.Policy().DefaultLineEnding, "line ending should be cr")
				require.Len(t, cfg.Languages, 1, "one language expected")
				assert.Equal(t, "#", cfg.Languages[0].LineComment, "line comment should match")
				require.Len(t, cfg.Properties, 1, "one property expected")
				assert.Equal(t, "walteh LLC", cfg.Properties[0].Value, "env value should be resolved")
			},
		},
		{
			name:     "json",
			filename: "headerrc.json",
			config:   `{"definition": "a.licenseheader", "replace_languages": true, "languages": [{"extensions": [".go"], "line_comment": "//"}]}`,
			check: func(t *testing.T, cfg *Config) {
				reg, err := cfg.Registry()
				require.NoError(t, err, "registry should build")
				assert.Equal(t, 1, reg.Len(), "replace_languages should drop the defaults")
			},
		},
		{
			name:     "dotfile_yaml",
			filename: ".headerrc",
			config:   "definition: LICENSE.licenseheader\nkeywords: copyright\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"copyright"}, cfg.Policy().Keywords, "keywords should match")
			},
		},
		{
			name:     "dotfile_hcl",
			filename: ".headerrc",
			config:   "definition = \"LICENSE.licenseheader\"\nkeywords = \"copyright\"\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "LICENSE.licenseheader", cfg.Definition, "definition should match")
			},
		},
		{
			name:     "yaml_unknown_field",
			filename: "headerrc.yaml",
			config:   "definition: a\nunknown: true\n",
			errText:  "parsing YAML",
		},
		{
			name:     "json_unknown_field",
			filename: "headerrc.json",
			config:   `{"unknown": true}`,
			errText:  "parsing JSON",
		},
		{
			name:     "hcl_unknown_field",
			filename: "headerrc.hcl",
			config:   `unknown = true`,
			errText:  "decoding HCL",
		},
		{
			name:     "bad_skip_expression",
			filename: "headerrc.yaml",
			config:   "languages:\n  - extensions: [\".foo\"]\n    line_comment: \"//\"\n    skip_expression: \"(\"\n",
			wantErr:  syntax.ErrMalformedSkipExpression,
		},
		{
			name:     "bad_syntax_table",
			filename: "headerrc.yaml",
			config:   "languages:\n  - extensions: [\".foo\"]\n    begin_comment: \"/*\"\n",
			wantErr:  syntax.ErrMalformedSyntax,
		},
		{
			name:     "bad_line_ending",
			filename: "headerrc.yaml",
			config:   "default_line_ending: unix\n",
			errText:  "invalid default_line_ending",
		},
		{
			name:     "bad_ignore_pattern",
			filename: "headerrc.yaml",
			config:   "ignore_patterns: [\"[\"]\n",
			errText:  "invalid ignore pattern",
		},
		{
			name:     "property_without_token",
			filename: "headerrc.yaml",
			config:   "properties:\n  - value: x\n",
			errText:  "token is required",
		},
		{
			name:     "unsupported_extension",
			filename: "headerrc.toml",
			config:   "definition = 'x'",
			errText:  "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)

			cfg, err := LoadConfig(testContext(t), path)
			if tt.wantErr != nil || tt.errText != "" {
				require.Error(t, err, "LoadConfig should fail")
				if tt.wantErr != nil {
					assert.True(t, errors.Is(err, tt.wantErr), "error should be %v, got %v", tt.wantErr, err)
				}
				if tt.errText != "" {
					assert.Contains(t, err.Error(), tt.errText, "error should contain expected message")
				}
				return
			}

			require.NoError(t, err, "LoadConfig should succeed")
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(testContext(t), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "missing file should fail")
	assert.True(t, errors.Is(err, os.ErrNotExist), "error should wrap not-exist")
}

func TestConfiguredLanguageOverridesDefault(t *testing.T) {
	cfg := &Config{Languages: []syntax.Language{{Extensions: []string{".go"}, LineComment: "#"}}}
	require.NoError(t, cfg.Validate(testContext(t)), "validate should succeed")

	reg, err := cfg.Registry()
	require.NoError(t, err, "registry should build")
	lang, ok := reg.Resolve(".go")
	require.True(t, ok, ".go should resolve")
	assert.Equal(t, "#", lang.LineComment, "configured language should win over the default")
	assert.Greater(t, reg.Len(), 1, "defaults should be kept")
}

func TestTokenProperties(t *testing.T) {
	cfg := &Config{Properties: []token.Additional{
		{Token: token.CurrentYear, Value: "2001-2025"},
		{Token: "%Team%", Value: "platform"},
	}}

	got := token.Expand(cfg.TokenProperties(), &token.Context{
		Path: "a.go",
		Now:  time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, "2001-2025", got[token.CurrentYear], "configured value should override the built-in")
	assert.Equal(t, "platform", got["%Team%"], "custom token should be expanded")
	assert.Equal(t, "a.go", got[token.FileName], "built-in tokens should be kept")
}

func TestDefinitionPath(t *testing.T) {
	cfg := &Config{Definition: "LICENSE.licenseheader", location: filepath.Join("repo", ".headerrc")}
	assert.Equal(t, filepath.Join("repo", "LICENSE.licenseheader"), cfg.DefinitionPath(), "relative definition should resolve next to the config")

	abs := filepath.Join(t.TempDir(), "x.licenseheader")
	cfg.Definition = abs
	assert.Equal(t, abs, cfg.DefinitionPath(), "absolute definition should be kept")

	cfg = &Config{Definition: "a.licenseheader"}
	assert.Equal(t, "a.licenseheader", cfg.DefinitionPath(), "without location the path is kept")
}

func TestIsIgnored(t *testing.T) {
	cfg := &Config{IgnorePatterns: []string{"vendor/**", "*.pb.go", "**/testdata/**"}}

	tests := []struct {
		path string
		want bool
	}{
		{path: "vendor/github.com/x/y.go", want: true},
		{path: "pkg/api/api.pb.go", want: true},
		{path: "pkg/header/testdata/a.go", want: true},
		{path: "pkg/header/engine.go", want: false},
		{path: "main.go", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsIgnored(tt.path), "ignore result should match")
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755), "creating dirs should succeed")

	path, err := Find(nested)
	require.NoError(t, err, "find should succeed")
	assert.Empty(t, path, "no config should be found yet")

	want := filepath.Join(root, "a", DotFile+".yaml")
	require.NoError(t, os.WriteFile(want, []byte("keywords: copyright\n"), 0644), "writing config should succeed")

	path, err = Find(nested)
	require.NoError(t, err, "find should succeed")
	assert.Equal(t, want, path, "config in a parent directory should be found")
}
