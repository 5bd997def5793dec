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

package commands

import (
	"context"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/cmd/headerrc/opts"
	"github.com/walteh/headerrc/pkg/batch"
	"github.com/walteh/headerrc/pkg/definition"
	"github.com/walteh/headerrc/pkg/log"
	"github.com/walteh/headerrc/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrFilesFailed is returned when at least one file could not be processed
	ErrFilesFailed = errors.Base("files failed")

	// ErrHeadersOutOfDate is returned by check when a file would change
	ErrHeadersOutOfDate = errors.Base("headers out of date")
)

// runner drives one batch for a command
type runner struct {
	opts     *opts.RootOpts
	command  string
	remove   bool
	dryRun   bool
	showDiff bool
}

// report is what a finished run hands back to its command
type report struct {
	result  *batch.Result
	changes []string // paths that changed or would change
}

func (r *runner) run(ctx context.Context, args []string) (*report, error) {
	logger := r.opts.Logger
	cfg := r.opts.Config

	reg, err := cfg.Registry()
	if err != nil {
		return nil, errors.Errorf("building registry: %w", err)
	}

	var defs definition.Definition
	if !r.remove {
		// a bad definition file aborts before any file is touched
		if defs, err = r.opts.Definition(ctx); err != nil {
			return nil, errors.Errorf("loading header definition: %w", err)
		}
	}

	accept := func(path string) bool {
		if definition.IsDefinitionFile(path) {
			return false
		}
		if _, err := reg.ResolvePath(path); err != nil {
			return false
		}
		if defs != nil {
			_, found := defs.Lookup(path)
			return found
		}
		return true
	}

	files, err := ExpandFiles(args, accept, cfg.IsIgnored)
	if err != nil {
		return nil, errors.Errorf("expanding files: %w", err)
	}

	rep := &report{result: &batch.Result{}}
	if len(files) == 0 {
		logger.Warning("no files matched")
		return rep, nil
	}

	inputs := make([]batch.Input, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, batch.PathInput{Path: f, Headers: defs})
	}

	var fm status.FileManager = r.opts.Files
	var dry *dryRunFiles
	if r.dryRun {
		dry = newDryRunFiles(r.opts.Files)
		fm = dry
	}

	coord := batch.New(reg, cfg.Policy(),
		batch.WithProperties(cfg.TokenProperties()),
		batch.WithFileManager(fm),
		batch.WithTracker(r.opts.Files),
	)

	logger.StartBatch(ctx, log.BatchOperation{
		Command:    r.command,
		Definition: r.opts.DefinitionPath(),
		Files:      len(inputs),
		DryRun:     r.dryRun,
	})

	ch := make(chan batch.Progress)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		res, err := coord.Run(gctx, inputs, batch.NewChannelSink(ch))
		if res != nil {
			rep.result = res
		}
		return err
	})

	g.Go(func() error {
		return r.consume(gctx, ch, len(inputs))
	})

	runErr := g.Wait()
	logger.EndBatch(ctx)

	for _, o := range rep.result.Outcomes {
		if !o.Success() || !o.Changed {
			continue
		}
		rep.changes = append(rep.changes, o.Path)
		if dry != nil && r.showDiff {
			if before, after, ok := dry.change(o.Path); ok {
				logger.Diff(o.Path, RenderDiff(before, after, !color.NoColor))
			}
		}
	}

	if runErr != nil {
		return rep, errors.Errorf("running %s: %w", r.command, runErr)
	}
	return rep, nil
}

// consume logs every progress event. On a terminal the lines are held back
// while a progress bar is drawn and printed once the bar is gone.
func (r *runner) consume(ctx context.Context, ch <-chan batch.Progress, total int) error {
	logger := r.opts.Logger

	var bar *pterm.ProgressbarPrinter
	if r.opts.Progress && !color.NoColor && total > 1 {
		started, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle(r.command).
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("progress bar unavailable")
		} else {
			bar = started
		}
	}

	var held []log.FileOperation
	for p := range ch {
		op := log.FileOperation{
			Path:     p.Path,
			Language: filepath.Ext(p.Path),
			Action:   p.Outcome.Action,
			Written:  p.Outcome.Written && !r.dryRun,
			Err:      p.Outcome.Err,
		}
		if bar == nil {
			logger.LogFileOperation(ctx, op)
			continue
		}
		held = append(held, op)
		bar.UpdateTitle(p.Path)
		bar.Increment()
	}

	if bar != nil {
		if _, err := bar.Stop(); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("stopping progress bar")
		}
		for _, op := range held {
			logger.LogFileOperation(ctx, op)
		}
	}

	return nil
}

// failure turns failed outcomes into a command error naming the first one
func failure(rep *report) error {
	failed := rep.result.Failed()
	if len(failed) == 0 {
		return nil
	}
	return errors.Errorf("%w: %d of %d, first %s: %s",
		ErrFilesFailed, len(failed), len(rep.result.Outcomes), failed[0].Path, failed[0].Err.Error())
}
