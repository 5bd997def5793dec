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
	"io/fs"
	"sync"

	"github.com/walteh/headerrc/pkg/status"
)

// dryRunFiles reads through to the real file manager but keeps writes in
// memory, remembering the original content of every file it read
type dryRunFiles struct {
	status.FileManager

	mu       sync.Mutex
	original map[string][]byte
	written  map[string][]byte
}

func newDryRunFiles(fm status.FileManager) *dryRunFiles {
	return &dryRunFiles{
		FileManager: fm,
		original:    map[string][]byte{},
		written:     map[string][]byte{},
	}
}

func (d *dryRunFiles) ReadFile(ctx context.Context, path string) ([]byte, fs.FileInfo, error) {
	content, info, err := d.FileManager.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	d.mu.Lock()
	d.original[path] = content
	d.mu.Unlock()
	return content, info, nil
}

func (d *dryRunFiles) WriteFileAtomic(_ context.Context, path string, content []byte, _ fs.FileMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.written[path] = content
	return nil
}

// change returns the before and after content of a file that would be rewritten
func (d *dryRunFiles) change(path string) (before, after string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.written[path]
	if !ok {
		return "", "", false
	}
	return string(d.original[path]), string(w), true
}
