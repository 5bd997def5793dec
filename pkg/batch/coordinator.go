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
	"io/fs"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/pkg/definition"
	"github.com/walteh/headerrc/pkg/header"
	"github.com/walteh/headerrc/pkg/status"
	"github.com/walteh/headerrc/pkg/syntax"
	"github.com/walteh/headerrc/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// Tracker records per-file outcomes, see status.Manager
type Tracker interface {
	TrackFile(ctx context.Context, info status.FileInfo)
}

// 🎛️ Coordinator runs the header engine over many files
type Coordinator struct {
	registry   *syntax.Registry
	policy     header.Policy
	properties []token.Property
	files      status.FileManager
	tracker    Tracker
	now        func() time.Time
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithProperties replaces the built-in token properties
func WithProperties(props []token.Property) Option {
	return func(c *Coordinator) { c.properties = props }
}

// WithFileManager sets how path inputs are read and written
func WithFileManager(fm status.FileManager) Option {
	return func(c *Coordinator) { c.files = fm }
}

// WithTracker records every outcome in t
func WithTracker(t Tracker) Option {
	return func(c *Coordinator) { c.tracker = t }
}

// WithClock sets the time source for date tokens
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// 🏭 New creates a coordinator. The registry is cloned so later changes to it
// cannot race with a running batch.
func New(registry *syntax.Registry, policy header.Policy, opts ...Option) *Coordinator {
	c := &Coordinator{
		registry:   registry.Clone(),
		policy:     policy,
		properties: token.Builtins(),
		files:      status.New(""),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// 🚀 Run processes inputs in order and reports progress to sink after each
// file. Per-file failures are recorded on their outcome. If ctx ends, the
// remaining files are not attempted and the partial result is returned with
// ErrCancelled.
func (c *Coordinator) Run(ctx context.Context, inputs []Input, sink ProgressSink) (*Result, error) {
	if sink == nil {
		sink = nopSink{}
	}

	logger := zerolog.Ctx(ctx)
	res := &Result{Outcomes: make([]Outcome, 0, len(inputs))}

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			res.Cancelled = true
			logger.Debug().Int("processed", i).Int("total", len(inputs)).Msg("batch cancelled")
			return res, errors.Errorf("%w after %d of %d files: %s", ErrCancelled, i, len(inputs), err.Error())
		}

		out := c.process(ctx, in)
		res.Outcomes = append(res.Outcomes, out)

		if c.tracker != nil {
			c.tracker.TrackFile(ctx, status.FileInfo{
				Path:     out.Path,
				Action:   out.Action,
				Mode:     out.mode,
				Checksum: out.checksum,
				Error:    out.Err,
			})
		}

		p := Progress{Processed: i + 1, Total: len(inputs), Path: out.Path, Outcome: out}
		if _, ok := in.(ContentInput); ok && out.Success() {
			content := out.Content
			p.Content = &content
		}
		sink.Report(ctx, p)
	}

	logger.Debug().Int("total", len(inputs)).Str("status", res.Status().String()).Msg("batch complete")
	return res, nil
}

func (c *Coordinator) process(ctx context.Context, in Input) Outcome {
	path := in.path()
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	out := Outcome{Path: path}

	if definition.IsDefinitionFile(path) {
		out.Action = header.ActionSkipped
		logger.Debug().Msg("skipping definition file")
		return out
	}

	lang, err := c.registry.ResolvePath(path)
	if err != nil {
		out.Err = err
		return out
	}

	var lines []string
	if defs := in.headers(); defs != nil {
		var found bool
		if lines, found = defs.Lookup(path); !found {
			out.Err = errors.Errorf("%w: %s", ErrNoHeaderDefinition, path)
			return out
		}
	}

	var (
		content string
		info    fs.FileInfo
	)
	switch v := in.(type) {
	case PathInput:
		raw, fi, err := c.files.ReadFile(ctx, path)
		if err != nil {
			out.Err = errors.Errorf("%w: %s", ErrIO, err.Error())
			return out
		}
		content, info = string(raw), fi
	case ContentInput:
		content = v.Content
	default:
		out.Err = errors.Errorf("unknown input type %T", in)
		return out
	}

	tokens := token.Expand(c.properties, &token.Context{
		Path:       path,
		Language:   lang,
		Info:       info,
		Now:        c.now(),
		Additional: in.additional(),
	})

	applied, err := header.Apply(content, lang, lines, tokens, c.policy)
	if err != nil {
		out.Err = errors.Errorf("applying header to %s: %w", path, err)
		return out
	}
	out.Changed = applied.Changed
	out.Action = applied.Action
	out.checksum = status.Checksum([]byte(applied.Content))
	if info != nil {
		out.mode = info.Mode().Perm()
	}

	if _, ok := in.(ContentInput); ok {
		out.Content = applied.Content
		logger.Debug().Str("action", out.Action.String()).Msg("rewrote content")
		return out
	}

	if applied.Changed {
		if err := c.files.WriteFileAtomic(ctx, path, []byte(applied.Content), info.Mode().Perm()); err != nil {
			out.Err = errors.Errorf("%w: %s", ErrIO, err.Error())
			return out
		}
		out.Written = true
	}

	logger.Debug().Str("action", out.Action.String()).Bool("written", out.Written).Msg("processed file")
	return out
}
