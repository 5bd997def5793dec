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
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	r := &runner{opts: opts, command: "check", dryRun: true, showDiff: true}

	cmd := &cobra.Command{
		Use:   "check [files or patterns...]",
		Short: "Check that license headers are up to date",
		Long: `Check runs add (or remove with --remove) without writing anything, prints
a diff for every file that would change and fails if there is one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := r.run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := failure(rep); err != nil {
				return err
			}
			if len(rep.changes) > 0 {
				return errors.Errorf("%w: %d files", ErrHeadersOutOfDate, len(rep.changes))
			}
			opts.Logger.Success("all headers up to date")
			return nil
		},
	}

	cmd.Flags().BoolVar(&r.remove, "remove", false, "check that headers are absent instead")
	cmd.Flags().BoolVar(&r.showDiff, "diff", true, "print a diff for each file that would change")

	return cmd
}
