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

package opts

import (
	"context"
	"os"

	"github.com/walteh/headerrc/pkg/config"
	"github.com/walteh/headerrc/pkg/definition"
	"github.com/walteh/headerrc/pkg/log"
	"github.com/walteh/headerrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// set from flags
	ConfigFile     string
	DefinitionFile string
	Debug          bool
	Progress       bool

	// set by Load
	Config *config.Config
	Logger *log.Logger
	Files  *status.Manager
}

// 🔧 Load resolves and validates the configuration. Without an explicit
// --config the nearest .headerrc is used, and the built-in defaults apply when
// none exists.
func (o *RootOpts) Load(ctx context.Context) error {
	path := o.ConfigFile
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("getting working directory: %w", err)
		}
		if path, err = config.Find(wd); err != nil {
			return errors.Errorf("finding config: %w", err)
		}
	}

	if path == "" {
		cfg := &config.Config{}
		if err := cfg.Validate(ctx); err != nil {
			return errors.Errorf("validating default config: %w", err)
		}
		o.Config = cfg
	} else {
		cfg, err := config.LoadConfig(ctx, path)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		o.Config = cfg
	}

	if o.Files == nil {
		o.Files = status.New("")
	}

	return nil
}

// DefinitionPath is the --definition flag, falling back to the config
func (o *RootOpts) DefinitionPath() string {
	if o.DefinitionFile != "" {
		return o.DefinitionFile
	}
	if o.Config == nil {
		return ""
	}
	return o.Config.DefinitionPath()
}

// 📜 Definition loads the header definition file
func (o *RootOpts) Definition(ctx context.Context) (definition.Definition, error) {
	path := o.DefinitionPath()
	if path == "" {
		return nil, errors.Errorf("%w: set definition in the config or pass --definition", definition.ErrDefinitionFileNotFound)
	}
	return definition.ParseFile(ctx, path)
}
