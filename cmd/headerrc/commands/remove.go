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

// NewRemoveCmd creates a new remove command
func NewRemoveCmd(opts *opts.RootOpts) *cobra.Command {
	r := &runner{opts: opts, command: "remove", remove: true}

	cmd := &cobra.Command{
		Use:   "remove [files or patterns...]",
		Short: "Remove license headers",
		Long: `Remove deletes the leading comment header of each file when it contains one
of the configured keywords. No definition file is needed.`,
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
