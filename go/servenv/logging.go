// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package servenv holds the process-level environment shared by nwtrees
// binaries. Today that is structured logging: a slog logger configured
// from the log-level, log-format, and log-output flags, resolved through
// viper so config files and NWLEX_* environment variables participate.
package servenv

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultLogOutput = "stderr"
)

// Logger owns the process logger. The level is held in a slog.LevelVar so
// it can be adjusted after Init, for example when a config file reload
// changes log-level while a watch session is running.
type Logger struct {
	once  sync.Once
	mu    sync.Mutex
	level slog.LevelVar

	logger *slog.Logger
}

func NewLogger() *Logger {
	return &Logger{}
}

// RegisterFlags registers the logging flags. It must be called before the
// command line is parsed; the caller is responsible for binding the flag
// set into viper so Init sees the resolved values.
func (lg *Logger) RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-format", defaultLogFormat, "Log format (text, json)")
	fs.String("log-output", defaultLogOutput, "Log output (stderr, stdout, or a file path)")
}

// Init builds the logger from the resolved configuration, installs it as
// the slog default, and returns it. Only the first call does the work;
// later calls return the logger built by the first.
func (lg *Logger) Init() *slog.Logger {
	lg.once.Do(func() {
		levelStr := getOrDefault("log-level", defaultLogLevel)
		formatStr := getOrDefault("log-format", defaultLogFormat)
		outputStr := getOrDefault("log-output", defaultLogOutput)

		lg.level.Set(parseLevel(levelStr))
		output := openOutput(outputStr)

		opts := &slog.HandlerOptions{Level: &lg.level}
		var handler slog.Handler
		switch strings.ToLower(formatStr) {
		case "json":
			handler = slog.NewJSONHandler(output, opts)
		default:
			handler = slog.NewTextHandler(output, opts)
		}

		logger := slog.New(handler)
		slog.SetDefault(logger)

		lg.mu.Lock()
		lg.logger = logger
		lg.mu.Unlock()

		logger.Debug("logging initialized",
			"level", levelStr,
			"format", formatStr,
			"output", outputStr,
		)
	})

	return lg.Get()
}

// Get returns the configured logger, or the slog default if Init has not
// run yet.
func (lg *Logger) Get() *slog.Logger {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if lg.logger == nil {
		return slog.Default()
	}
	return lg.logger
}

// SetLevel adjusts the level of the running logger. Unknown names fall
// back to info, mirroring Init.
func (lg *Logger) SetLevel(levelStr string) {
	lg.level.Set(parseLevel(levelStr))
}

// Level reports the currently effective level.
func (lg *Logger) Level() slog.Level {
	return lg.level.Level()
}

func getOrDefault(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openOutput resolves the log destination. A file that cannot be opened
// falls back to stderr rather than failing process startup.
func openOutput(outputStr string) io.Writer {
	switch strings.ToLower(outputStr) {
	case "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	default:
		file, err := os.OpenFile(outputStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return os.Stderr
		}
		return file
	}
}
