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
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/headerrc/cmd/headerrc/opts"
	"github.com/walteh/headerrc/pkg/syntax"
	"gitlab.com/tozd/go/errors"
)

// NewLanguagesCmd creates a command listing the effective comment syntax table
func NewLanguagesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the comment syntax used per extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.Config.Registry()
			if err != nil {
				return errors.Errorf("building registry: %w", err)
			}

			table, err := pterm.DefaultTable.
				WithHasHeader().
				WithData(LanguageTable(reg.Languages())).
				Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

// LanguageTable lays out languages as rows with a header row
func LanguageTable(langs []syntax.Language) pterm.TableData {
	data := pterm.TableData{{"extensions", "line", "block", "region", "skip"}}
	for _, l := range langs {
		block := ""
		if l.HasBlockComment() {
			block = l.BeginComment + " " + l.EndComment
		}
		region := ""
		if l.HasRegion() {
			region = l.BeginRegion + " / " + l.EndRegion
		}
		skip := ""
		if l.SkipExpression != "" {
			skip = "yes"
		}
		data = append(data, []string{strings.Join(l.Extensions, " "), l.LineComment, block, region, skip})
	}
	return data
}
