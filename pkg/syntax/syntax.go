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

package syntax

import (
	"path/filepath"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnsupportedExtension is returned when no language resolves for a file
	ErrUnsupportedExtension = errors.Base("unsupported extension")

	// ErrMalformedSkipExpression is returned when a configured skip expression does not compile
	ErrMalformedSkipExpression = errors.Base("malformed skip expression")

	// ErrMalformedSyntax is returned when a language entry cannot describe a comment
	ErrMalformedSyntax = errors.Base("malformed language syntax")
)

// 🔤 Language describes the comment dialect used by a set of file extensions
type Language struct {
	Extensions     []string `json:"extensions" yaml:"extensions" hcl:"extensions"`
	LineComment    string   `json:"line_comment,omitempty" yaml:"line_comment,omitempty" hcl:"line_comment,optional"`
	BeginComment   string   `json:"begin_comment,omitempty" yaml:"begin_comment,omitempty" hcl:"begin_comment,optional"`
	EndComment     string   `json:"end_comment,omitempty" yaml:"end_comment,omitempty" hcl:"end_comment,optional"`
	BeginRegion    string   `json:"begin_region,omitempty" yaml:"begin_region,omitempty" hcl:"begin_region,optional"`
	EndRegion      string   `json:"end_region,omitempty" yaml:"end_region,omitempty" hcl:"end_region,optional"`
	SkipExpression string   `json:"skip_expression,omitempty" yaml:"skip_expression,omitempty" hcl:"skip_expression,optional"`

	skip *regexp.Regexp
}

// HasBlockComment reports whether both block delimiters are set
func (l *Language) HasBlockComment() bool {
	return l.BeginComment != "" && l.EndComment != ""
}

// HasRegion reports whether both region markers are set
func (l *Language) HasRegion() bool {
	return l.BeginRegion != "" && l.EndRegion != ""
}

// 🦘 Skip returns the length of the skip expression match anchored at the start
// of content, or 0 when there is no expression or no match.
func (l *Language) Skip(content string) int {
	if l.skip == nil {
		return 0
	}
	loc := l.skip.FindStringIndex(content)
	if loc == nil {
		return 0
	}
	return loc[1]
}

// compile validates the entry and prepares the skip expression
func (l *Language) compile() error {
	if len(l.Extensions) == 0 {
		return errors.Errorf("%w: no extensions", ErrMalformedSyntax)
	}

	exts := make([]string, 0, len(l.Extensions))
	for _, ext := range l.Extensions {
		ext = NormalizeExtension(ext)
		if ext == "" {
			return errors.Errorf("%w: empty extension", ErrMalformedSyntax)
		}
		exts = append(exts, ext)
	}
	l.Extensions = exts

	if (l.BeginComment == "") != (l.EndComment == "") {
		return errors.Errorf("%w: %s: begin and end comment must be set together", ErrMalformedSyntax, strings.Join(l.Extensions, " "))
	}
	if (l.BeginRegion == "") != (l.EndRegion == "") {
		return errors.Errorf("%w: %s: begin and end region must be set together", ErrMalformedSyntax, strings.Join(l.Extensions, " "))
	}
	if l.LineComment == "" && !l.HasBlockComment() {
		return errors.Errorf("%w: %s: neither line nor block comment is set", ErrMalformedSyntax, strings.Join(l.Extensions, " "))
	}

	l.skip = nil
	if l.SkipExpression != "" {
		// anchor at the buffer start; \A also keeps (?m) expressions from matching mid-file
		re, err := regexp.Compile(`\A(?:` + l.SkipExpression + `)`)
		if err != nil {
			return errors.Errorf("%w: %q: %s", ErrMalformedSkipExpression, l.SkipExpression, err.Error())
		}
		l.skip = re
	}

	return nil
}

// Clone returns a deep copy of the language
func (l *Language) Clone() *Language {
	c := *l
	c.Extensions = append([]string(nil), l.Extensions...)
	return &c
}

// Matches reports whether the language handles ext
func (l *Language) Matches(ext string) bool {
	ext = NormalizeExtension(ext)
	for _, e := range l.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// NormalizeExtension lower-cases ext and makes sure it starts with a dot
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// 🧩 ExtensionCandidates returns every dotted suffix of the file name in path,
// longest first, e.g. "Form.designer.cs" yields ".designer.cs" then ".cs".
func ExtensionCandidates(path string) []string {
	name := strings.ToLower(filepath.Base(path))

	var out []string
	for i := 0; i < len(name); i++ {
		// a leading dot is a hidden file, not an extension
		if name[i] == '.' && i > 0 && i < len(name)-1 {
			out = append(out, name[i:])
		}
	}
	return out
}
