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

package header

import (
	"strings"

	"github.com/walteh/headerrc/pkg/lineend"
	"github.com/walteh/headerrc/pkg/syntax"
)

const bom = "\uFEFF"

// 📏 Span is a byte range [Start, End) inside a document. Blank lines in
// [Start, Comment) precede the header and are left in place when it is
// replaced or removed.
type Span struct {
	Start   int
	Comment int
	End     int
}

// 🔑 Policy controls header recognition and rendering
type Policy struct {
	// RequireKeywords rejects comment blocks that contain none of Keywords
	RequireKeywords bool
	// Keywords are matched case-insensitively as substrings
	Keywords []string
	// DefaultLineEnding is used when the document has no line ending yet
	DefaultLineEnding string
}

// DefaultKeywords are the keywords a license header is expected to carry
var DefaultKeywords = []string{"license", "copyright", "(c)", "©"}

// DefaultPolicy requires one of DefaultKeywords and defaults to LF
func DefaultPolicy() Policy {
	return Policy{
		RequireKeywords:   true,
		Keywords:          append([]string(nil), DefaultKeywords...),
		DefaultLineEnding: lineend.LF,
	}
}

// ParseKeywords splits a comma separated keyword list, dropping blanks
func ParseKeywords(list string) []string {
	var out []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// HasKeyword reports whether text contains one of the policy keywords
func (p Policy) HasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range p.Keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// insertionPoint returns where a header belongs: after a byte order mark and
// after the language's skip expression match.
func insertionPoint(content string, lang *syntax.Language) int {
	start := 0
	if strings.HasPrefix(content, bom) {
		start = len(bom)
	}
	return start + lang.Skip(content[start:])
}

// 🔍 Locate finds an existing header block at the top of content.
//
// The search starts after the skip expression match. Blank lines there are
// consumed as part of the span. The header itself is a contiguous run of
// comment units (line comments, block comments or a region wrapping them);
// the first blank or non-comment line ends it. The span ends at the last
// header character, excluding its line ending. With RequireKeywords the run
// must contain a keyword or no header is reported.
func Locate(content string, lang *syntax.Language, policy Policy) (Span, bool) {
	start := insertionPoint(content, lang)

	pos := skipBlankLines(content, start)
	end, ok := scanComments(content, pos, lang)
	if !ok {
		return Span{}, false
	}

	span := Span{Start: start, Comment: pos, End: end}
	if policy.RequireKeywords && !policy.HasKeyword(content[pos:end]) {
		return Span{}, false
	}
	return span, true
}

// scanComments consumes consecutive comment units starting at the line
// beginning at pos. It returns the end of the last unit's content.
func scanComments(content string, pos int, lang *syntax.Language) (int, bool) {
	end := pos
	found := false
	for pos < len(content) {
		unitEnd, ok := scanUnit(content, pos, lang)
		if !ok {
			break
		}
		found = true
		end = unitEnd

		le, ok := lineend.Next(content, unitEnd)
		if !ok || le.Index != unitEnd {
			break
		}
		pos = le.End()
	}
	return end, found
}

// scanUnit matches a single comment unit at the line beginning at pos and
// returns the end of its content (before the line ending).
func scanUnit(content string, pos int, lang *syntax.Language) (int, bool) {
	lineEnd := lineContentEnd(content, pos)
	line := content[pos:lineEnd]
	body := strings.TrimLeft(line, " \t")
	indent := len(line) - len(body)

	if lang.HasRegion() && strings.HasPrefix(body, lang.BeginRegion) {
		if end, ok := scanRegion(content, lineEnd, lang); ok {
			return end, true
		}
		// an unterminated region marker may still be a plain line comment
	}

	if lang.HasBlockComment() && strings.HasPrefix(body, lang.BeginComment) {
		if end, ok := scanBlock(content, pos+indent, lang); ok {
			return end, true
		}
	}

	if lang.LineComment != "" && strings.HasPrefix(body, lang.LineComment) {
		return lineEnd, true
	}

	return 0, false
}

// scanBlock matches a block comment starting exactly at pos. Nested opening
// delimiters are not supported; text after the closing delimiter on the same
// line must be blank.
func scanBlock(content string, pos int, lang *syntax.Language) (int, bool) {
	inner := pos + len(lang.BeginComment)
	idx := strings.Index(content[inner:], lang.EndComment)
	if idx < 0 {
		return 0, false
	}
	closeEnd := inner + idx + len(lang.EndComment)

	lineEnd := lineContentEnd(content, closeEnd)
	if strings.TrimSpace(content[closeEnd:lineEnd]) != "" {
		return 0, false
	}
	return lineEnd, true
}

// scanRegion matches the body of a region that opened on the line ending at
// openLineEnd, up to and including the line carrying the end marker. The body
// may only hold comments and blank lines.
func scanRegion(content string, openLineEnd int, lang *syntax.Language) (int, bool) {
	le, ok := lineend.Next(content, openLineEnd)
	if !ok || le.Index != openLineEnd {
		return 0, false
	}

	pos := le.End()
	for pos <= len(content) {
		lineEnd := lineContentEnd(content, pos)
		body := strings.TrimLeft(content[pos:lineEnd], " \t")

		switch {
		case strings.HasPrefix(body, lang.EndRegion):
			return lineEnd, true
		case strings.TrimSpace(body) == "":
			// blank lines are fine inside a region
		default:
			unitEnd, ok := scanUnit(content, pos, lang)
			if !ok {
				return 0, false
			}
			lineEnd = unitEnd
		}

		next, ok := lineend.Next(content, lineEnd)
		if !ok {
			return 0, false
		}
		pos = next.End()
	}
	return 0, false
}

// skipBlankLines advances past whitespace-only lines starting at pos, which
// must be a line start.
func skipBlankLines(content string, pos int) int {
	for pos < len(content) {
		lineEnd := lineContentEnd(content, pos)
		if strings.TrimSpace(content[pos:lineEnd]) != "" {
			return pos
		}
		le, ok := lineend.Next(content, lineEnd)
		if !ok {
			return pos
		}
		pos = le.End()
	}
	return pos
}

// lineContentEnd returns the offset of the line ending after pos, or len(content)
func lineContentEnd(content string, pos int) int {
	if le, ok := lineend.Next(content, pos); ok {
		return le.Index
	}
	return len(content)
}

// startsWithComment reports whether the line at pos opens a comment unit
func startsWithComment(content string, pos int, lang *syntax.Language) bool {
	lineEnd := lineContentEnd(content, pos)
	body := strings.TrimLeft(content[pos:lineEnd], " \t")
	if body == "" {
		return false
	}
	if lang.LineComment != "" && strings.HasPrefix(body, lang.LineComment) {
		return true
	}
	if lang.HasBlockComment() && strings.HasPrefix(body, lang.BeginComment) {
		return true
	}
	return lang.HasRegion() && strings.HasPrefix(body, lang.BeginRegion)
}
