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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DotFile is the conventional config file name; it may hold YAML or HCL
const DotFile = ".headerrc"

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .headerrc will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, data, path)
	if err != nil {
		return nil, err
	}

	cfg.location = path
	if err := cfg.Validate(ctx); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func parse(ctx context.Context, data []byte, path string) (*Config, error) {
	if isDotFile(path) {
		cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data, path)
		if yamlErr == nil {
			return cfg, nil
		}

		cfg, hclErr := (&HCLParser{}).Parse(ctx, data, path)
		if hclErr == nil {
			return cfg, nil
		}

		return nil, errors.Errorf("parsing %s as YAML (%s) or HCL: %w", DotFile, yamlErr.Error(), hclErr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
	return p.Parse(ctx, data, path)
}

func isDotFile(path string) bool {
	base := filepath.Base(path)
	return base == DotFile || strings.EqualFold(filepath.Ext(base), DotFile)
}

// 🔍 Find walks up from dir looking for a config file. It returns an empty
// string when none exists.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving directory: %w", err)
	}

	candidates := []string{DotFile, DotFile + ".yaml", DotFile + ".yml", DotFile + ".hcl", DotFile + ".json"}
	for {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
