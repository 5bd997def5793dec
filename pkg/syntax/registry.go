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

package syntax

import (
	"gitlab.com/tozd/go/errors"
)

// 📚 Registry maps file extensions to comment syntax.
//
// Entries may share extensions; lookups return the last matching entry so
// configuration can override earlier defaults. A Registry is built once and
// only read while a batch is running.
type Registry struct {
	languages []*Language
}

// 🏭 NewRegistry validates and compiles every language up front so a bad
// table fails at build time instead of on first use.
func NewRegistry(languages []Language) (*Registry, error) {
	r := &Registry{
		languages: make([]*Language, 0, len(languages)),
	}

	for i := range languages {
		l := languages[i].Clone()
		if err := l.compile(); err != nil {
			return nil, errors.Errorf("language %d: %w", i, err)
		}
		r.languages = append(r.languages, l)
	}

	return r, nil
}

// NewDefaultRegistry builds a registry from DefaultLanguages
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultLanguages())
	if err != nil {
		panic("default language table is invalid: " + err.Error())
	}
	return r
}

// 🔍 Resolve returns the language for ext (case-insensitive, dot optional)
func (r *Registry) Resolve(ext string) (*Language, bool) {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return nil, false
	}

	for i := len(r.languages) - 1; i >= 0; i-- {
		if r.languages[i].Matches(ext) {
			return r.languages[i], true
		}
	}
	return nil, false
}

// 🔍 ResolvePath resolves the language for a file path, trying multi-dot
// extensions before the plain one.
func (r *Registry) ResolvePath(path string) (*Language, error) {
	for _, ext := range ExtensionCandidates(path) {
		if l, ok := r.Resolve(ext); ok {
			return l, nil
		}
	}
	return nil, errors.Errorf("%w: %s", ErrUnsupportedExtension, path)
}

// Languages returns a deep copy of the configured entries in order
func (r *Registry) Languages() []Language {
	out := make([]Language, 0, len(r.languages))
	for _, l := range r.languages {
		out = append(out, *l.Clone())
	}
	return out
}

// Add appends a language; it takes precedence over earlier entries
func (r *Registry) Add(l Language) error {
	c := l.Clone()
	if err := c.compile(); err != nil {
		return errors.Errorf("adding language: %w", err)
	}
	r.languages = append(r.languages, c)
	return nil
}

// 🧬 Clone returns a fully independent copy of the registry
func (r *Registry) Clone() *Registry {
	c := &Registry{
		languages: make([]*Language, 0, len(r.languages)),
	}
	for _, l := range r.languages {
		c.languages = append(c.languages, l.Clone())
	}
	return c
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.languages)
}
