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

package command

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// AddVersionCommand adds the version command to the root command
func AddVersionCommand(root *cobra.Command, _ *NwlexCommand) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion(cmd)
			return nil
		},
	}

	root.AddCommand(versionCmd)
}

func printVersion(cmd *cobra.Command) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		cmd.Println("nwlex (no build info)")
		return
	}

	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}
	cmd.Printf("nwlex %s\n", version)
	cmd.Printf("  go: %s\n", info.GoVersion)
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			cmd.Printf("  commit: %s\n", setting.Value)
		case "vcs.time":
			cmd.Printf("  built: %s\n", setting.Value)
		}
	}
}
