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

package status

import (
	"fmt"
	"strings"

	"github.com/walteh/headerrc/pkg/header"
)

// FileFormatter defines how file operations and progress should be formatted
type FileFormatter interface {
	// FormatFileOperation formats what happened to a single file
	FormatFileOperation(path string, action header.Action, err error) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string

	// FormatSummary formats the totals of a batch
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file operation status message with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, action header.Action, err error) string {
	if err != nil {
		return fmt.Sprintf("❌ Failed %s", path)
	}
	switch action {
	case header.ActionInserted:
		return fmt.Sprintf("✨ Added header to %s", path)
	case header.ActionReplaced:
		return fmt.Sprintf("📝 Replaced header in %s", path)
	case header.ActionRemoved:
		return fmt.Sprintf("🗑️  Removed header from %s", path)
	case header.ActionSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}
	if percentage > 100 {
		percentage = 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// FormatSummary lists the non-zero counters of s
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	var parts []string
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(s.Inserted, "added")
	add(s.Replaced, "replaced")
	add(s.Removed, "removed")
	add(s.Unchanged, "unchanged")
	add(s.Skipped, "skipped")
	add(s.Failed, "failed")

	if len(parts) == 0 {
		return "no files processed"
	}
	return strings.Join(parts, ", ")
}

// 📊 Summary counts file outcomes
type Summary struct {
	Inserted  int
	Replaced  int
	Removed   int
	Unchanged int
	Skipped   int
	Failed    int
}

// Add counts one file outcome
func (s *Summary) Add(action header.Action, err error) {
	if err != nil {
		s.Failed++
		return
	}
	switch action {
	case header.ActionInserted:
		s.Inserted++
	case header.ActionReplaced:
		s.Replaced++
	case header.ActionRemoved:
		s.Removed++
	case header.ActionSkipped:
		s.Skipped++
	default:
		s.Unchanged++
	}
}

// Changed is the number of files whose content changed
func (s Summary) Changed() int {
	return s.Inserted + s.Replaced + s.Removed
}

// Total is the number of files counted
func (s Summary) Total() int {
	return s.Changed() + s.Unchanged + s.Skipped + s.Failed
}
