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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/headerrc/pkg/header"
	"gitlab.com/tozd/go/errors"
)

// defaultMode is used for files that do not exist yet
const defaultMode fs.FileMode = 0644

// 📄 FileInfo records what happened to one file
type FileInfo struct {
	Path     string        // Path as given to the manager
	Action   header.Action // What the rewrite did
	Mode     fs.FileMode   // File permissions
	Checksum string        // Content hash after the rewrite
	Error    error         // Any error associated with this file
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, fs.FileInfo, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error
}

// 🔧 Manager reads and atomically writes files and keeps track of what was
// done to each of them
type Manager struct {
	baseDir   string        // Base directory for relative paths
	formatter FileFormatter // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo
	order []string
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new status manager. Relative paths are resolved against
// baseDir; an empty baseDir leaves them relative to the working directory.
func New(baseDir string) *Manager {
	if baseDir != "" {
		baseDir = filepath.Clean(baseDir)
	}
	return &Manager{
		baseDir:   baseDir,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 🔒 getAbsPath returns the path used on disk
func (m *Manager) getAbsPath(path string) string {
	if m.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, fs.FileInfo, error) {
	absPath := m.getAbsPath(path)

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, nil, errors.Errorf("reading file info: %w", err)
	}
	if info.IsDir() {
		return nil, nil, errors.Errorf("reading file: %s is a directory", path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, nil, errors.Errorf("reading file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read file")
	return content, info, nil
}

// WriteFileAtomic writes content to a temporary file next to path and renames
// it into place. A zero mode keeps the permissions of the existing file.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	absPath := m.getAbsPath(path)

	if mode == 0 {
		mode = defaultMode
		if info, err := os.Stat(absPath); err == nil {
			mode = info.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tempPath)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// rename is atomic on the same file system
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("mode", mode.String()).Msg("wrote file")
	return nil
}

// TrackFile records info for a file and logs a formatted line for it
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[info.Path]; !ok {
		m.order = append(m.order, info.Path)
	}
	m.files[info.Path] = info

	zerolog.Ctx(ctx).Debug().
		Str("path", info.Path).
		Str("action", info.Action.String()).
		Err(info.Error).
		Msg(m.formatter.FormatFileOperation(info.Path, info.Action, info.Error))
}

// ListFiles returns tracked files in the order they were first seen
func (m *Manager) ListFiles() []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, p := range m.order {
		files = append(files, m.files[p])
	}
	return files
}

// Summary counts tracked files per outcome
func (m *Manager) Summary() Summary {
	var s Summary
	for _, f := range m.ListFiles() {
		s.Add(f.Action, f.Error)
	}
	return s
}
