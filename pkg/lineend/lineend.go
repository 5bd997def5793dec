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

// Package lineend detects and rewrites line endings without disturbing the
// convention a buffer already uses.
package lineend

import (
	"strings"
)

// Line ending literals
const (
	CRLF = "\r\n"
	LF   = "\n"
	CR   = "\r"
)

// 📍 LineEnd records one line ending occurrence inside a buffer
type LineEnd struct {
	Index  int    // byte offset of the first terminator byte
	Ending string // CRLF, LF or CR
}

// End returns the offset directly after the terminator
func (l LineEnd) End() int {
	return l.Index + len(l.Ending)
}

// 🔄 Normalize replaces every line ending in text with target.
//
// The rewrite is a cascade (CRLF→LF, CR→LF, LF→target) so mixed input always
// converges to a single convention.
func Normalize(text, target string) string {
	text = strings.ReplaceAll(text, CRLF, LF)
	text = strings.ReplaceAll(text, CR, LF)
	if target == LF {
		return text
	}
	return strings.ReplaceAll(text, LF, target)
}

// 🔍 Next finds the nearest line ending at or after offset.
//
// CR, LF and CRLF are searched simultaneously; when two candidates start at the
// same offset the longer one wins, so the CR of a CRLF pair is never reported as
// a lone CR.
func Next(text string, offset int) (LineEnd, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(text) {
		return LineEnd{}, false
	}

	i := strings.IndexAny(text[offset:], "\r\n")
	if i < 0 {
		return LineEnd{}, false
	}
	i += offset

	if text[i] == '\r' {
		if strings.HasPrefix(text[i:], CRLF) {
			return LineEnd{Index: i, Ending: CRLF}, true
		}
		return LineEnd{Index: i, Ending: CR}, true
	}
	return LineEnd{Index: i, Ending: LF}, true
}

// 📊 Detect returns the dominant line ending of text.
//
// CRLF pairs are counted first and stripped before LF and CR are counted, so a
// CRLF never also counts as one LF and one CR. Ties prefer the longer ending.
// ok is false when text contains no line ending at all.
func Detect(text string) (ending string, ok bool) {
	crlf := strings.Count(text, CRLF)
	stripped := strings.ReplaceAll(text, CRLF, "")
	lf := strings.Count(stripped, LF)
	cr := strings.Count(stripped, CR)

	if crlf == 0 && lf == 0 && cr == 0 {
		return "", false
	}

	// ordered longest first so a tie keeps the earlier (longer) candidate
	candidates := []struct {
		ending string
		count  int
	}{
		{CRLF, crlf},
		{LF, lf},
		{CR, cr},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.count > best.count {
			best = c
		}
	}
	return best.ending, true
}

// DetectOr is Detect with a fallback for buffers without line endings
func DetectOr(text, fallback string) string {
	if ending, ok := Detect(text); ok {
		return ending
	}
	return fallback
}

// ✂️ Split breaks text into lines on any line ending, dropping terminators.
// A trailing terminator does not produce an extra empty line.
func Split(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for {
		le, ok := Next(text, start)
		if !ok {
			break
		}
		lines = append(lines, text[start:le.Index])
		start = le.End()
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// Parse maps a configured line ending name to its literal.
// Accepted names are lf, crlf and cr (any case) or the literal itself.
func Parse(name string) (string, bool) {
	switch name {
	case LF, CRLF, CR:
		return name, true
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lf", `\n`:
		return LF, true
	case "crlf", `\r\n`:
		return CRLF, true
	case "cr", `\r`:
		return CR, true
	}
	return "", false
}

// Name returns the display name of a line ending literal
func Name(ending string) string {
	switch ending {
	case CRLF:
		return "crlf"
	case LF:
		return "lf"
	case CR:
		return "cr"
	}
	return "none"
}
