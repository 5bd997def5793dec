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

package token

import (
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
)

// Built-in token names
const (
	FullFileName             = "%FullFileName%"
	FileName                 = "%FileName%"
	FileNameWithoutExtension = "%FileNameWithoutExtension%"
	FileDirectory            = "%FileDirectory%"
	CurrentYear              = "%CurrentYear%"
	CurrentMonth             = "%CurrentMonth%"
	CurrentDay               = "%CurrentDay%"
	CurrentTime              = "%CurrentTime%"
	CreationYear             = "%CreationYear%"
	CreationMonth            = "%CreationMonth%"
	CreationDay              = "%CreationDay%"
	CreationTime             = "%CreationTime%"
	UserName                 = "%UserName%"
	UserDisplayName          = "%UserDisplayName%"
)

const timeLayout = "15:04:05"

// UserLookup resolves the current OS user; tests replace it
var UserLookup = user.Current

func currentUser() *user.User {
	u, err := UserLookup()
	if err != nil {
		return nil
	}
	return u
}

func hasPath(ctx *Context) bool { return ctx.Path != "" }
func hasInfo(ctx *Context) bool { return ctx.Info != nil }

// 🧰 Builtins returns the default properties in evaluation order
func Builtins() []Property {
	return []Property{
		NewProperty(FullFileName, hasPath, func(ctx *Context) string {
			if abs, err := filepath.Abs(ctx.Path); err == nil {
				return abs
			}
			return ctx.Path
		}),
		NewProperty(FileName, hasPath, func(ctx *Context) string {
			return filepath.Base(ctx.Path)
		}),
		NewProperty(FileNameWithoutExtension, hasPath, func(ctx *Context) string {
			base := filepath.Base(ctx.Path)
			return strings.TrimSuffix(base, filepath.Ext(base))
		}),
		NewProperty(FileDirectory, hasPath, func(ctx *Context) string {
			return filepath.Base(filepath.Dir(ctx.Path))
		}),

		NewProperty(CurrentYear, nil, func(ctx *Context) string {
			return strconv.Itoa(ctx.Now.Year())
		}),
		NewProperty(CurrentMonth, nil, func(ctx *Context) string {
			return strconv.Itoa(int(ctx.Now.Month()))
		}),
		NewProperty(CurrentDay, nil, func(ctx *Context) string {
			return strconv.Itoa(ctx.Now.Day())
		}),
		NewProperty(CurrentTime, nil, func(ctx *Context) string {
			return ctx.Now.Format(timeLayout)
		}),

		// modification time stands in for creation time, which the os package does not expose
		NewProperty(CreationYear, hasInfo, func(ctx *Context) string {
			return strconv.Itoa(ctx.Info.ModTime().Year())
		}),
		NewProperty(CreationMonth, hasInfo, func(ctx *Context) string {
			return strconv.Itoa(int(ctx.Info.ModTime().Month()))
		}),
		NewProperty(CreationDay, hasInfo, func(ctx *Context) string {
			return strconv.Itoa(ctx.Info.ModTime().Day())
		}),
		NewProperty(CreationTime, hasInfo, func(ctx *Context) string {
			return ctx.Info.ModTime().Format(timeLayout)
		}),

		NewProperty(UserName, func(*Context) bool {
			u := currentUser()
			return u != nil && u.Username != ""
		}, func(*Context) string {
			return currentUser().Username
		}),
		NewProperty(UserDisplayName, func(*Context) bool {
			u := currentUser()
			return u != nil && u.Name != ""
		}, func(*Context) string {
			return currentUser().Name
		}),
	}
}
