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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/pkg/header"
	"github.com/walteh/headerrc/pkg/lineend"
	"github.com/walteh/headerrc/pkg/syntax"
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// DefaultKeywords is the keyword list used when none is configured
const DefaultKeywords = "license, copyright, (c), ©"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	// Definition is the path of the .licenseheader file, relative to the config file
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
	// RequireKeywords defaults to true when unset
	RequireKeywords *bool `json:"require_keywords,omitempty" yaml:"require_keywords,omitempty"`
	// Keywords is a comma separated list
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	// DefaultLineEnding is lf, crlf or cr; used for files without line endings
	DefaultLineEnding string `json:"default_line_ending,omitempty" yaml:"default_line_ending,omitempty"`
	// Languages extend (or with ReplaceLanguages replace) the built-in table
	Languages        []syntax.Language `json:"languages,omitempty" yaml:"languages,omitempty"`
	ReplaceLanguages bool              `json:"replace_languages,omitempty" yaml:"replace_languages,omitempty"`
	// Properties are extra tokens such as %Company%
	Properties     []token.Additional `json:"properties,omitempty" yaml:"properties,omitempty"`
	IgnorePatterns []string           `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`

	location string
	registry *syntax.Registry
}

// 🔍 Validate fills in defaults and checks every field, including building
// the language registry so a bad skip expression fails here
func (cfg *Config) Validate(ctx context.Context) error {
	if cfg.RequireKeywords == nil {
		t := true
		cfg.RequireKeywords = &t
	}
	if strings.TrimSpace(cfg.Keywords) == "" {
		cfg.Keywords = DefaultKeywords
	}
	if *cfg.RequireKeywords && len(header.ParseKeywords(cfg.Keywords)) == 0 {
		return errors.Errorf("keywords are required but none are configured")
	}

	if cfg.DefaultLineEnding == "" {
		cfg.DefaultLineEnding = "lf"
	}
	if _, ok := lineend.Parse(cfg.DefaultLineEnding); !ok {
		return errors.Errorf("invalid default_line_ending %q", cfg.DefaultLineEnding)
	}

	for _, p := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid ignore pattern %q", p)
		}
	}

	for i, p := range cfg.Properties {
		if p.Token == "" {
			return errors.Errorf("property %d: token is required", i)
		}
	}

	languages := cfg.Languages
	if !cfg.ReplaceLanguages {
		languages = append(syntax.DefaultLanguages(), cfg.Languages...)
	}
	reg, err := syntax.NewRegistry(languages)
	if err != nil {
		return errors.Errorf("building language registry: %w", err)
	}
	cfg.registry = reg

	zerolog.Ctx(ctx).Debug().
		Str("definition", cfg.Definition).
		Int("languages", reg.Len()).
		Int("properties", len(cfg.Properties)).
		Msg("validated configuration")

	return nil
}

// Registry returns the language registry described by the config
func (cfg *Config) Registry() (*syntax.Registry, error) {
	if cfg.registry == nil {
		if err := cfg.Validate(context.Background()); err != nil {
			return nil, err
		}
	}
	return cfg.registry.Clone(), nil
}

// Policy returns the header recognition policy
func (cfg *Config) Policy() header.Policy {
	policy := header.DefaultPolicy()
	if cfg.RequireKeywords != nil {
		policy.RequireKeywords = *cfg.RequireKeywords
	}
	if cfg.Keywords != "" {
		policy.Keywords = header.ParseKeywords(cfg.Keywords)
	}
	if eol, ok := lineend.Parse(cfg.DefaultLineEnding); ok {
		policy.DefaultLineEnding = eol
	}
	return policy
}

// 🧩 TokenProperties returns the configured properties followed by the
// built-in ones. The first applicable property for a token wins, so a
// configured token such as %UserName% overrides the built-in value.
func (cfg *Config) TokenProperties() []token.Property {
	props := make([]token.Property, 0, len(cfg.Properties))
	for _, p := range cfg.Properties {
		if p.Token == "" {
			continue
		}
		value := p.Value
		props = append(props, token.NewProperty(p.Token, nil, func(*token.Context) string { return value }))
	}
	return append(props, token.Builtins()...)
}

// Location is the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// DefinitionPath resolves Definition against the config file's directory
func (cfg *Config) DefinitionPath() string {
	if cfg.Definition == "" || filepath.IsAbs(cfg.Definition) || cfg.location == "" {
		return cfg.Definition
	}
	return filepath.Join(filepath.Dir(cfg.location), cfg.Definition)
}

// 🙈 IsIgnored reports whether path matches one of the ignore patterns.
// Patterns are matched against the slash separated path and its base name.
func (cfg *Config) IsIgnored(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))
	if cfg.location != "" {
		if rel, err := filepath.Rel(filepath.Dir(cfg.location), path); err == nil && !strings.HasPrefix(rel, "..") {
			clean = filepath.ToSlash(rel)
		}
	}
	base := filepath.Base(clean)

	for _, pattern := range cfg.IgnorePatterns {
		if ok, _ := doublestar.Match(pattern, clean); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	def := cfg.Definition
	if def == "" {
		def = "<none>"
	}
	return fmt.Sprintf("definition=%s keywords=%q languages=+%d", def, cfg.Keywords, len(cfg.Languages))
}
