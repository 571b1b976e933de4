// Copyright 2025 Supabase, Inc.
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

// Package command implements the nwlex command tree.
package command

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nwtrees/nwtrees/go/servenv"
)

// NwlexCommand holds the state shared by nwlex subcommands: the resolved
// configuration, the process logger, and the filesystem the scanner reads
// from (swapped for an in-memory one in tests).
type NwlexCommand struct {
	cfg    *Config
	logger *servenv.Logger
	fs     afero.Fs
}

func newNwlexCommand() *NwlexCommand {
	return &NwlexCommand{
		cfg:    NewConfig(),
		logger: servenv.NewLogger(),
		fs:     afero.NewOsFs(),
	}
}

// GetRootCommand creates and returns the root command for nwlex with all
// subcommands attached.
func GetRootCommand() *cobra.Command {
	return newNwlexCommand().buildRoot()
}

func (nc *NwlexCommand) buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "nwlex",
		Short: "Batch lexer for NWScript source files",
		Long: `nwlex tokenizes NWScript (.nss) source files and reports what it finds.

Subcommands:
  nwlex scan [paths...]   Lex every source file under the given paths and
                          report per-file diagnostics plus a summary.
  nwlex dump <file>       Print one file's token stream (text, json, yaml).
  nwlex watch [paths...]  Rescan source files as they change on disk.

Configuration:
  nwlex searches for a config file named 'nwlex' with a supported extension
  (.yaml, .yml, .json, .toml) in the directories given by --config-path,
  unless --config-file points at one directly. Flags override NWLEX_*
  environment variables, which override the config file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Silence usage for application errors, but allow it for
			// flag errors. This runs after flag parsing, so flag errors
			// still show usage.
			cmd.SilenceUsage = true

			if err := nc.cfg.Load(cmd); err != nil {
				return err
			}
			nc.logger.Init()
			return nil
		},
	}

	nc.cfg.RegisterFlags(root.PersistentFlags())
	nc.logger.RegisterFlags(root.PersistentFlags())

	AddScanCommand(root, nc)
	AddDumpCommand(root, nc)
	AddWatchCommand(root, nc)
	AddVersionCommand(root, nc)

	return root
}
