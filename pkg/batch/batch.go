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

// Package batch runs the header engine over an ordered list of files.
//
// Every file gets its own Outcome; a failing file never stops the batch.
// Cancellation is checked between files only, so a file is never left
// half-written.
package batch

import (
	"io/fs"

	"github.com/walteh/headerrc/pkg/definition"
	"github.com/walteh/headerrc/pkg/header"
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrIO is attached to outcomes whose file could not be read or written
	ErrIO = errors.Base("file i/o failed")

	// ErrNoHeaderDefinition is attached to outcomes whose extension has no
	// section in the header definition
	ErrNoHeaderDefinition = errors.Base("no header definition for extension")

	// ErrCancelled is returned by Run when the context ends mid-batch
	ErrCancelled = errors.Base("batch cancelled")
)

// 📥 Input is one file to process: either a PathInput or a ContentInput
type Input interface {
	path() string
	headers() definition.Definition
	additional() []token.Additional
}

// 📂 PathInput reads and writes the file at Path directly.
// A nil Headers removes existing headers.
type PathInput struct {
	Path       string
	Headers    definition.Definition
	Additional []token.Additional
}

func (p PathInput) path() string { return p.Path }
func (p PathInput) headers() definition.Definition { return p.Headers }
func (p PathInput) additional() []token.Additional { return p.Additional }

// 📝 ContentInput rewrites caller-held text. Path is only used to pick the
// language and fill file name tokens; nothing is read from or written to disk.
type ContentInput struct {
	Path       string
	Content    string
	Headers    definition.Definition
	Additional []token.Additional
}

func (c ContentInput) path() string { return c.Path }
func (c ContentInput) headers() definition.Definition { return c.Headers }
func (c ContentInput) additional() []token.Additional { return c.Additional }

// 📄 Outcome is the result for a single file
type Outcome struct {
	Path    string
	Content string // new content; only filled for content inputs
	Changed bool
	Action  header.Action
	Written bool // the file on disk was rewritten
	Err     error

	mode     fs.FileMode // permissions of a path input
	checksum string      // hash of the content after the rewrite
}

// Success reports whether the file was processed without error
func (o Outcome) Success() bool {
	return o.Err == nil
}

// 📊 Status summarizes a batch for callers that want more than pass/fail
type Status int

const (
	StatusNothingChanged Status = iota
	StatusChanged
	StatusFailed
)

// String returns a string representation of the Status
func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusFailed:
		return "failed"
	default:
		return "nothing changed"
	}
}

// 📦 Result aggregates the outcomes of all attempted files, in input order.
// Files not attempted because of cancellation have no outcome.
type Result struct {
	Outcomes  []Outcome
	Cancelled bool
}

// Success is true iff every attempted file succeeded
func (r *Result) Success() bool {
	for _, o := range r.Outcomes {
		if !o.Success() {
			return false
		}
	}
	return true
}

// Status distinguishes nothing-to-do from changes from failures
func (r *Result) Status() Status {
	status := StatusNothingChanged
	for _, o := range r.Outcomes {
		if !o.Success() {
			return StatusFailed
		}
		if o.Changed {
			status = StatusChanged
		}
	}
	return status
}

// Failed returns the outcomes that carry an error
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Success() {
			out = append(out, o)
		}
	}
	return out
}
