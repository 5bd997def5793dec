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
	"github.com/spf13/cobra"
	"github.com/walteh/headerrc/cmd/headerrc/opts"
)

// NewAddCmd creates a new add command
func NewAddCmd(opts *opts.RootOpts) *cobra.Command {
	r := &runner{opts: opts, command: "add"}

	cmd := &cobra.Command{
		Use:   "add [files or patterns...]",
		Short: "Add or replace license headers",
		Long: `Add writes the header template for each file's extension, replacing an
existing header when one is found. Patterns support ** and directories are
walked recursively. Files without a template are left out of globs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := r.run(cmd.Context(), args)
			if err != nil {
				return err
			}
			return failure(rep)
		},
	}

	cmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().BoolVar(&r.showDiff, "diff", false, "print a diff for each changed file (with --dry-run)")

	return cmd
}
