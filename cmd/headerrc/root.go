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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/headerrc/cmd/headerrc/commands"
	"github.com/walteh/headerrc/cmd/headerrc/opts"
	"github.com/walteh/headerrc/pkg/log"
)

// newRootCmd builds the command tree around one shared RootOpts
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "headerrc",
		Short: "Add, replace and remove license headers",
		Long: `headerrc keeps license headers in source files in sync with a
.licenseheader definition file. The comment syntax for each extension comes
from a built-in table that can be extended in .headerrc.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.Logger = log.New(cmd.OutOrStdout(), logLevel(o.Debug))
			ctx := log.NewContext(cmd.Context(), o.Logger)
			cmd.SetContext(ctx)
			return o.Load(ctx)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewAddCmd(o),
		commands.NewRemoveCmd(o),
		commands.NewCheckCmd(o),
		commands.NewLanguagesCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: nearest .headerrc)")
	cmd.PersistentFlags().StringVar(&o.DefinitionFile, "definition", "", "header definition file, overrides the config")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Progress, "progress", true, "show a progress bar on terminals")
}

// logLevel picks the structured log level; console output is unaffected
func logLevel(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
