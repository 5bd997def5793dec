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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/pkg/header"
	"github.com/walteh/headerrc/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	langWidth    = 10 // Width for the language column
	statusWidth  = 15 // Width for status text
	failedStatus = "failed"
)

// 🎯 FileOperation is one processed file
type FileOperation struct {
	Path     string        // File path
	Language string        // Matched extension, e.g. ".go"
	Action   header.Action // What the engine did
	Written  bool          // Whether the file on disk was rewritten
	Err      error         // Failure, if any
}

// 📦 BatchOperation describes a whole command run
type BatchOperation struct {
	Command    string // add, remove or check
	Definition string // Definition file in use
	Files      int    // Number of inputs
	DryRun     bool   // Nothing is written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *BatchOperation
	operations []FileOperation
}

// 🏭 New creates a new logger; structured events go to stderr
func New(console io.Writer, level zerolog.Level) *Logger {
	cw := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })
	zlog := zerolog.New(cw).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context, along with its zerolog logger
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Action == header.ActionRemoved:
		symbol = '-'
		symbolColor = color.FgRed
	case op.Action == header.ActionInserted:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.Action == header.ActionReplaced:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.Action == header.ActionSkipped:
		symbol = '~'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	statusText := op.Action.String()
	if op.Err != nil {
		statusText = failedStatus
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", langWidth, op.Language)),
		fmt.Sprintf("%-*s", statusWidth, statusText))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))
	if op.Err != nil {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent+2, "", color.New(color.FgRed).Sprint(op.Err.Error()))
	}

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.Str("file", op.Path).
		Str("language", op.Language).
		Str("action", op.Action.String()).
		Bool("written", op.Written).
		Msg("file operation")
}

// 📝 StartBatch starts a new batch operation
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	mode := "write"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Command),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d files (%s)", op.Files, mode))

	l.zlog.Info().
		Str("command", op.Command).
		Str("definition", op.Definition).
		Int("files", op.Files).
		Bool("dry_run", op.DryRun).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch and prints a summary line
func (l *Logger) EndBatch(ctx context.Context) status.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var summary status.Summary
	if l.currentOp == nil {
		return summary
	}

	for _, op := range l.operations {
		summary.Add(op.Action, op.Err)
	}

	line := status.NewDefaultFileFormatter().FormatSummary(summary)
	if summary.Failed > 0 {
		fmt.Fprintf(l.console, "\n❌ %s\n", color.New(color.FgRed).Sprint(line))
	} else {
		fmt.Fprintf(l.console, "\n✅ %s\n", color.New(color.FgGreen).Sprint(line))
	}

	l.zlog.Info().
		Str("command", l.currentOp.Command).
		Int("files", len(l.operations)).
		Int("changed", summary.Changed()).
		Int("failed", summary.Failed).
		Msg("batch complete")

	l.currentOp = nil
	l.operations = nil
	return summary
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("headerrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Diff prints a pre-rendered diff block
func (l *Logger) Diff(path, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n%s\n", color.New(color.Bold).Sprint("---"), path, diff)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
