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
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/headerrc/pkg/syntax"
	"github.com/walteh/headerrc/pkg/token"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".hcl")
}

// 📝 Parse parses the config from HCL.
//
//	definition = "LICENSE.licenseheader"
//	keywords   = "copyright"
//
//	language {
//	  extensions   = [".foo"]
//	  line_comment = "//"
//	}
//
//	property {
//	  token = "%Company%"
//	  value = "walteh LLC"
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// env.NAME exposes environment variables to expressions such as
	// value = env.COMPANY
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Definition        string             `hcl:"definition,optional"`
		RequireKeywords   *bool              `hcl:"require_keywords,optional"`
		Keywords          string             `hcl:"keywords,optional"`
		DefaultLineEnding string             `hcl:"default_line_ending,optional"`
		ReplaceLanguages  bool               `hcl:"replace_languages,optional"`
		IgnorePatterns    []string           `hcl:"ignore_patterns,optional"`
		Languages         []syntax.Language  `hcl:"language,block"`
		Properties        []token.Additional `hcl:"property,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &Config{
		Definition:        hclCfg.Definition,
		RequireKeywords:   hclCfg.RequireKeywords,
		Keywords:          hclCfg.Keywords,
		DefaultLineEnding: hclCfg.DefaultLineEnding,
		ReplaceLanguages:  hclCfg.ReplaceLanguages,
		IgnorePatterns:    hclCfg.IgnorePatterns,
		Languages:         hclCfg.Languages,
		Properties:        hclCfg.Properties,
	}, nil
}
