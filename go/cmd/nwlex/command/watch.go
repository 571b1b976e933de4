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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nwtrees/nwtrees/go/parser/lexer"
	"github.com/nwtrees/nwtrees/go/tools/retry"
	"github.com/nwtrees/nwtrees/go/tools/timertools"
)

// AddWatchCommand adds the watch command to the root command
func AddWatchCommand(root *cobra.Command, nc *NwlexCommand) {
	watchCmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rescan NWScript files as they change",
		Long: `Watch the given paths (default: the working directory) for changes to
NWScript source files and re-lex each changed file, reporting diagnostics
as they appear. Event bursts are debounced so an editor save triggers one
rescan. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return nc.runWatch(cmd, args)
		},
	}

	watchCmd.Flags().Duration("debounce-interval", nc.cfg.DebounceInterval,
		"Quiet period after a change burst before rescanning.")

	root.AddCommand(watchCmd)
}

func (nc *NwlexCommand) runWatch(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	logger := nc.logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// If a config file is in play, pick up log-level changes while the
	// session runs.
	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(fsnotify.Event) {
			nc.logger.SetLevel(viper.GetString("log-level"))
		})
		viper.WatchConfig()
	}

	// The watcher is re-established with backoff if it dies, for example
	// when a watched directory tree is replaced wholesale.
	r := retry.New(500*time.Millisecond, 30*time.Second)
	for {
		if err := r.StartAttempt(ctx); err != nil {
			return nil
		}

		watcher, err := nc.newSourceWatcher(paths)
		if err != nil {
			logger.Warn("watcher setup failed, will retry", "err", err)
			continue
		}

		// A watcher that stays healthy for a while earns a fresh backoff.
		stable := time.AfterFunc(time.Minute, r.Reset)
		err = nc.watchLoop(ctx, cmd, watcher)
		stable.Stop()
		watcher.Close()

		if err == nil {
			logger.Info("watch stopped")
			return nil
		}
		logger.Warn("watcher stopped, re-establishing", "err", err)
	}
}

// newSourceWatcher builds an fsnotify watcher covering every directory
// under the given paths.
func (nc *NwlexCommand) newSourceWatcher(paths []string) (*fsnotify.Watcher, error) {
	dirs, err := collectWatchDirs(nc.fs, paths)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	nc.logger.Get().Info("watching for changes", "directories", len(dirs))
	return watcher, nil
}

// collectWatchDirs expands the given paths to the directories beneath
// them. A path naming a file contributes its containing directory.
func collectWatchDirs(fs afero.Fs, paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, target := range paths {
		info, err := fs.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", target, err)
		}
		if !info.IsDir() {
			seen[filepath.Dir(target)] = struct{}{}
			continue
		}

		walkErr := afero.Walk(fs, target, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				seen[path] = struct{}{}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking %s: %w", target, walkErr)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// watchLoop consumes watcher events until the context ends (returns nil)
// or the watcher dies (returns the cause so the caller re-establishes).
func (nc *NwlexCommand) watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher) error {
	logger := nc.logger.Get()

	deb := timertools.NewDebouncer(nc.cfg.DebounceInterval)
	defer deb.Stop()

	changed := make(map[string]struct{})
	out := lexer.NewLexerOutput()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("event channel closed")
			}
			nc.handleWatchEvent(watcher, ev, changed, deb)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("error channel closed")
			}
			logger.Warn("watcher error", "err", err)
		case <-deb.C:
			nc.rescanChanged(cmd, changed, out)
		}
	}
}

func (nc *NwlexCommand) handleWatchEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, changed map[string]struct{}, deb *timertools.Debouncer) {
	logger := nc.logger.Get()

	// New directories join the watch so files created inside them are
	// seen without restarting.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := nc.fs.Stat(ev.Name); err == nil && info.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				logger.Warn("failed to watch new directory", "path", ev.Name, "err", err)
			}
			return
		}
	}

	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return
	}
	if !nc.cfg.MatchesExtension(ev.Name) {
		return
	}

	logger.Debug("source file changed", "path", ev.Name, "op", ev.Op.String())
	changed[ev.Name] = struct{}{}
	deb.Trigger()
}

// rescanChanged lexes every file marked changed since the last tick.
func (nc *NwlexCommand) rescanChanged(cmd *cobra.Command, changed map[string]struct{}, out *lexer.LexerOutput) {
	logger := nc.logger.Get()

	paths := make([]string, 0, len(changed))
	for path := range changed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	clear(changed)

	for _, path := range paths {
		data, err := afero.ReadFile(nc.fs, path)
		if err != nil {
			// The file may have been deleted between the event and the
			// rescan tick.
			logger.Debug("skipping unreadable file", "path", path, "err", err)
			continue
		}

		lexer.LexInto(string(data), out)
		if out.HasErrors() {
			for _, lexErr := range out.Errors {
				cmd.Printf("%s: %s\n", path, lexErr.Error())
			}
			logger.Warn("lex failed", "path", path, "errors", len(out.Errors))
			continue
		}
		logger.Info("lexed file", "path", path, "tokens", len(out.Tokens))
	}
}
