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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nwtrees/nwtrees/go/parser/lexer"
)

// errStopScan aborts a walk after a failure when fail-fast is set.
var errStopScan = errors.New("scan stopped")

type scanStats struct {
	files  int
	tokens int
	failed int
}

// AddScanCommand adds the scan command to the root command
func AddScanCommand(root *cobra.Command, nc *NwlexCommand) {
	scanCmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Lex NWScript files and report diagnostics",
		Long: `Walk the given paths (default: the working directory), lex every file
with a configured source extension, print the diagnostics of files that
fail, and finish with a summary line. The exit status is non-zero if any
file failed to lex.

Paths that name a file directly are lexed regardless of extension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return nc.runScan(cmd, args)
		},
	}

	scanCmd.Flags().Bool("fail-fast", false, "Stop at the first file with lexer errors.")

	root.AddCommand(scanCmd)
}

func (nc *NwlexCommand) runScan(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	logger := nc.logger.Get()
	stats := scanStats{}
	start := time.Now()

	// One output is recycled across every file in the scan; steady-state
	// lexing stops allocating once the largest file has been seen.
	out := lexer.NewLexerOutput()

	for _, target := range paths {
		walkErr := afero.Walk(nc.fs, target, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			// Directory entries are filtered by extension; a path the
			// user named directly is always lexed.
			if path != target && !nc.cfg.MatchesExtension(path) {
				return nil
			}
			return nc.scanFile(cmd, logger, path, out, &stats)
		})
		if errors.Is(walkErr, errStopScan) {
			break
		}
		if walkErr != nil {
			return fmt.Errorf("walking %s: %w", target, walkErr)
		}
	}

	elapsed := time.Since(start)
	logger.Info("scan complete",
		"files", stats.files,
		"tokens", stats.tokens,
		"failed", stats.failed,
		"elapsed", elapsed,
	)
	cmd.Printf("%d files, %d tokens, %d failed (%s)\n",
		stats.files, stats.tokens, stats.failed, elapsed.Round(time.Millisecond))

	if stats.failed > 0 {
		return fmt.Errorf("%d of %d files failed to lex", stats.failed, stats.files)
	}
	return nil
}

func (nc *NwlexCommand) scanFile(cmd *cobra.Command, logger *slog.Logger, path string, out *lexer.LexerOutput, stats *scanStats) error {
	data, err := afero.ReadFile(nc.fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lexer.LexInto(string(data), out)
	stats.files++
	stats.tokens += len(out.Tokens)
	logger.Debug("lexed file", "path", path, "tokens", len(out.Tokens), "errors", len(out.Errors))

	if out.HasErrors() {
		stats.failed++
		for _, lexErr := range out.Errors {
			cmd.Printf("%s: %s\n", path, lexErr.Error())
		}
		if nc.cfg.FailFast {
			return errStopScan
		}
	}
	return nil
}
