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

// Package token expands placeholders such as %CurrentYear% inside header templates.
package token

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/walteh/headerrc/pkg/syntax"
)

// 📄 Context is what a property may inspect to decide and compute its value
type Context struct {
	Path       string           // path of the document, may be a hint only
	Language   *syntax.Language // resolved comment syntax
	Info       os.FileInfo      // nil when the document is not on disk
	Now        time.Time        // evaluation time
	Additional []Additional     // caller-supplied values, never predicate-gated
}

// Additional is a raw caller-supplied token value
type Additional struct {
	Token string `json:"token" yaml:"token" hcl:"token"`
	Value string `json:"value" yaml:"value" hcl:"value"`
}

// 🧩 Property is a named token with an applicability predicate
type Property interface {
	Token() string
	Applies(ctx *Context) bool
	Value(ctx *Context) string
}

// funcProperty adapts a predicate and value function pair to Property
type funcProperty struct {
	token   string
	applies func(*Context) bool
	value   func(*Context) string
}

// NewProperty builds a Property from functions; a nil predicate always applies
func NewProperty(token string, applies func(*Context) bool, value func(*Context) string) Property {
	if applies == nil {
		applies = func(*Context) bool { return true }
	}
	return &funcProperty{token: token, applies: applies, value: value}
}

func (p *funcProperty) Token() string             { return p.token }
func (p *funcProperty) Applies(ctx *Context) bool { return p.applies(ctx) }
func (p *funcProperty) Value(ctx *Context) string { return p.value(ctx) }

// 🔄 Expand resolves token values for ctx.
//
// Additional values are taken first and always win. Properties are then
// evaluated in order; the first applicable property for a token wins and a
// token whose predicates all fail is left out, so its placeholder stays literal.
func Expand(props []Property, ctx *Context) map[string]string {
	out := make(map[string]string, len(props)+len(ctx.Additional))

	for _, a := range ctx.Additional {
		if a.Token == "" {
			continue
		}
		out[a.Token] = a.Value
	}

	for _, p := range props {
		if _, done := out[p.Token()]; done {
			continue
		}
		if !p.Applies(ctx) {
			continue
		}
		out[p.Token()] = p.Value(ctx)
	}

	return out
}

// 🖋️ Render substitutes tokens into every template line. Longer tokens are
// replaced first so a token that prefixes another cannot clobber it.
func Render(lines []string, tokens map[string]string) []string {
	if lines == nil {
		return nil
	}

	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, tokens[k])
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = r.Replace(line)
	}
	return out
}
