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
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// ErrNonCommentText is returned when a rendered header is not a single comment
// block in the target language and could never be recognized again.
var ErrNonCommentText = errors.Base("header is not comment text")

// ErrMissingKeyword is returned when keywords are required but the rendered
// header carries none, so it would not be recognized on the next run.
var ErrMissingKeyword = errors.Base("header does not contain a required keyword")

// 🎬 Action is what Apply did to a document
type Action int

const (
	ActionUnchanged Action = iota
	ActionRemoved
	ActionReplaced
	ActionInserted
	ActionSkipped
)

// String returns a string representation of the Action
func (a Action) String() string {
	switch a {
	case ActionRemoved:
		return "removed"
	case ActionReplaced:
		return "replaced"
	case ActionInserted:
		return "inserted"
	case ActionSkipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// 📦 Result is the outcome of rewriting one document
type Result struct {
	Content string // new document content (the input when unchanged)
	Changed bool   // false when the output is byte-identical to the input
	Action  Action
	Found   bool // an existing header was located
	Span    Span // location of the existing header when Found
}

// ✍️ Apply adds, replaces or removes the header of content.
//
// A nil lines slice removes an existing header. Otherwise lines are rendered
// with tokens, joined with the document's dominant line ending and either
// replace the located header or get inserted after the skip expression match.
// Text outside the touched span is never modified.
func Apply(content string, lang *syntax.Language, lines []string, tokens map[string]string, policy Policy) (*Result, error) {
	span, found := Locate(content, lang, policy)

	var rendered []string
	if lines != nil {
		// leading blank lines would sit above the header and never be matched
		rendered = trimLeadingBlank(token.Render(lines, tokens))
		if len(rendered) == 0 {
			rendered = nil
		}
	}

	if rendered == nil {
		return remove(content, span, found), nil
	}

	eol := lineend.DetectOr(content, policy.DefaultLineEnding)
	if eol == "" {
		eol = lineend.LF
	}
	text := lineend.Normalize(strings.Join(rendered, lineend.LF), eol)
	if err := validateComment(text, lang); err != nil {
		return nil, err
	}
	if policy.RequireKeywords && !policy.HasKeyword(text) {
		return nil, errors.Errorf("%w: %s", ErrMissingKeyword, strings.Join(policy.Keywords, ", "))
	}
	trailing := trailingBlankLines(rendered)

	var out string
	action := ActionInserted
	if found {
		action = ActionReplaced
		out = content[:span.Comment] + text + content[absorbBlankLines(content, span.End, trailing):]
	} else {
		at := insertionPoint(content, lang)
		prefix := ""
		if atLineStart(content, at) {
			// blank lines already at the insertion point stay above the header,
			// so every blank line below it belongs to the header
			at = skipBlankLines(content, at)
		} else {
			// the skip expression ended mid-line
			prefix = eol
		}
		sep := eol
		if trailing == 0 && startsWithComment(content, at, lang) {
			// keep the new header from merging with a following comment
			sep += eol
		}
		out = content[:at] + prefix + text + sep + content[at:]
	}

	res := &Result{
		Content: out,
		Changed: out != content,
		Action:  action,
		Found:   found,
		Span:    span,
	}
	if !res.Changed {
		res.Action = ActionUnchanged
	}
	return res, nil
}

// 🗑️ remove deletes the header, its line ending and the blank lines below it.
// Blank lines above the header stay. This mirrors insertion, which puts the
// header after existing blank lines and adds its trailing blank lines and
// separator below it, so removing an inserted header restores the document.
func remove(content string, span Span, found bool) *Result {
	if !found {
		return &Result{Content: content, Action: ActionUnchanged}
	}

	end := span.End
	if le, ok := lineend.Next(content, end); ok && le.Index == end {
		end = skipBlankLines(content, le.End())
	}

	out := content[:span.Comment] + content[end:]
	res := &Result{
		Content: out,
		Changed: out != content,
		Action:  ActionRemoved,
		Found:   true,
		Span:    span,
	}
	if !res.Changed {
		res.Action = ActionUnchanged
	}
	return res
}

// absorbBlankLines skips up to n blank lines after the header ending at pos,
// always leaving the line ending of the last skipped line in place.
func absorbBlankLines(content string, pos, n int) int {
	for i := 0; i < n; i++ {
		first, ok := lineend.Next(content, pos)
		if !ok || first.Index != pos {
			break
		}
		lineEnd := lineContentEnd(content, first.End())
		if lineEnd == len(content) || strings.TrimSpace(content[first.End():lineEnd]) != "" {
			break
		}
		pos = lineEnd
	}
	return pos
}

// validateComment makes sure text is one contiguous comment block
func validateComment(text string, lang *syntax.Language) error {
	pos := skipBlankLines(text, 0)
	end, ok := scanComments(text, pos, lang)
	if !ok || strings.TrimSpace(text[end:]) != "" {
		return errors.Errorf("%w: %s", ErrNonCommentText, firstLine(text[pos:]))
	}
	return nil
}

func atLineStart(content string, at int) bool {
	if at == 0 || content[:at] == bom {
		return true
	}
	c := content[at-1]
	return c == '\n' || c == '\r'
}

func trailingBlankLines(lines []string) int {
	n := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			break
		}
		n++
	}
	return n
}

func trimLeadingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}

func firstLine(text string) string {
	if le, ok := lineend.Next(text, 0); ok {
		return text[:le.Index]
	}
	return text
}
