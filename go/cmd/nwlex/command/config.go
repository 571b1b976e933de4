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
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved nwlex configuration. Values layer as
// flag > environment (NWLEX_*) > config file > default.
type Config struct {
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogOutput string `mapstructure:"log-output"`

	// Format selects the dump output encoding.
	Format OutputFormat `mapstructure:"format"`

	// Extensions lists the file extensions treated as NWScript source
	// when walking directories.
	Extensions []string `mapstructure:"ext"`

	// FailFast stops a scan at the first file with lexer errors.
	FailFast bool `mapstructure:"fail-fast"`

	// DebounceInterval is the quiet period watch mode waits after a
	// filesystem event burst before rescanning.
	DebounceInterval time.Duration `mapstructure:"debounce-interval"`
}

func NewConfig() *Config {
	return &Config{
		Format:           FormatText,
		Extensions:       []string{".nss"},
		DebounceInterval: 500 * time.Millisecond,
	}
}

// RegisterFlags installs the flags that control config-file loading and
// the shared scan settings. Logging flags are registered separately by
// servenv.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice("config-path", defaultConfigPaths(), "Paths to search for the config file in.")
	fs.String("config-name", "nwlex", "Name of the config file (without extension) to search for.")
	fs.String("config-file", "", "Full path of the config file (with extension) to use. If set, --config-path and --config-name are ignored.")

	h := IgnoreConfigFileNotFound
	fs.Var(&h, "config-file-not-found-handling", fmt.Sprintf("Behavior when no config file is found. (Options: %s)", strings.Join(handlingNames, ", ")))

	fs.StringSlice("ext", c.Extensions, "File extensions treated as NWScript source when walking directories.")
}

// defaultConfigPaths is the config search order: working directory first,
// then the user-level config directory.
func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nwlex"))
	}
	return paths
}

// Load binds the command's flags into viper, reads the config file if one
// can be found, and decodes the merged result into c.
//
// Config searching follows viper's behavior: --config-file (full path,
// including extension), if set, wins over the --config-path/--config-name
// search. The --config-file-not-found-handling flag decides whether a
// missing config file is ignored, warned about, or fatal; read errors in
// a file that does exist are always fatal.
func (c *Config) Load(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	viper.SetEnvPrefix("NWLEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	var err error
	switch file := viper.GetString("config-file"); file {
	case "":
		if name := viper.GetString("config-name"); name != "" {
			viper.SetConfigName(name)
			for _, path := range viper.GetStringSlice("config-path") {
				viper.AddConfigPath(path)
			}
			err = viper.ReadInConfig()
		}
	default:
		viper.SetConfigFile(file)
		err = viper.ReadInConfig()
	}

	if err != nil {
		if !isConfigFileNotFoundError(err) {
			return fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
		}

		handling := IgnoreConfigFileNotFound
		_ = handling.Set(viper.GetString("config-file-not-found-handling"))
		switch handling {
		case WarnOnConfigFileNotFound:
			slog.Warn("no config file found", "err", err)
		case ErrorOnConfigFileNotFound:
			return fmt.Errorf("reading config: %w", err)
		}
	}

	return c.decode()
}

func (c *Config) decode() error {
	err := viper.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		decodeOutputFormat,
	)))
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// MatchesExtension reports whether path has one of the configured source
// extensions. Extensions are compared case-insensitively and may be
// configured with or without the leading dot.
func (c *Config) MatchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Extensions {
		want = strings.ToLower(want)
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}

// isConfigFileNotFoundError checks if the error is caused because the file wasn't found.
func isConfigFileNotFoundError(err error) bool {
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// ConfigFileNotFoundHandling is an enum to control how Load treats a
// missing config file.
type ConfigFileNotFoundHandling int

const (
	// IgnoreConfigFileNotFound proceeds silently on defaults, flags, and
	// environment variables alone.
	IgnoreConfigFileNotFound ConfigFileNotFoundHandling = iota
	// WarnOnConfigFileNotFound logs a warning but otherwise proceeds.
	WarnOnConfigFileNotFound
	// ErrorOnConfigFileNotFound fails the command.
	ErrorOnConfigFileNotFound
)

var (
	handlingNames         []string
	handlingNamesToValues = map[string]int{
		"ignore": int(IgnoreConfigFileNotFound),
		"warn":   int(WarnOnConfigFileNotFound),
		"error":  int(ErrorOnConfigFileNotFound),
	}
	handlingValuesToNames map[int]string
)

func (h *ConfigFileNotFoundHandling) Set(arg string) error {
	if v, ok := handlingNamesToValues[strings.ToLower(arg)]; ok {
		*h = ConfigFileNotFoundHandling(v)
		return nil
	}
	return fmt.Errorf("unknown handling name %q", arg)
}

func (h *ConfigFileNotFoundHandling) String() string {
	if name, ok := handlingValuesToNames[int(*h)]; ok {
		return name
	}
	return "<UNKNOWN>"
}

func (h *ConfigFileNotFoundHandling) Type() string { return "ConfigFileNotFoundHandling" }

// OutputFormat is the encoding used by dump: text, json, or yaml. It
// implements pflag.Value so it works directly as a flag, and has a
// mapstructure hook so it decodes from config files.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
	FormatYAML
)

var (
	formatNames         []string
	formatNamesToValues = map[string]int{
		"text": int(FormatText),
		"json": int(FormatJSON),
		"yaml": int(FormatYAML),
	}
	formatValuesToNames map[int]string
)

func (f *OutputFormat) Set(arg string) error {
	if v, ok := formatNamesToValues[strings.ToLower(arg)]; ok {
		*f = OutputFormat(v)
		return nil
	}
	return fmt.Errorf("unknown output format %q (options: %s)", arg, strings.Join(formatNames, ", "))
}

func (f *OutputFormat) String() string {
	if name, ok := formatValuesToNames[int(*f)]; ok {
		return name
	}
	return "<UNKNOWN>"
}

func (f *OutputFormat) Type() string { return "OutputFormat" }

// decodeOutputFormat is the mapstructure hook that turns config-file
// strings (or ints) into OutputFormat values.
func decodeOutputFormat(from, to reflect.Type, data any) (any, error) {
	var f OutputFormat
	if to != reflect.TypeOf(f) {
		return data, nil
	}

	switch {
	case from == reflect.TypeOf(f):
		return data.(OutputFormat), nil
	case from.Kind() == reflect.Int:
		return OutputFormat(data.(int)), nil
	case from.Kind() == reflect.String:
		if err := f.Set(data.(string)); err != nil {
			return f, err
		}
		return f, nil
	}

	return data, fmt.Errorf("invalid value for OutputFormat: %v", data)
}

func init() {
	handlingNames = make([]string, 0, len(handlingNamesToValues))
	handlingValuesToNames = make(map[int]string, len(handlingNamesToValues))
	for name, val := range handlingNamesToValues {
		handlingValuesToNames[val] = name
		handlingNames = append(handlingNames, name)
	}
	sort.Strings(handlingNames)

	formatNames = make([]string, 0, len(formatNamesToValues))
	formatValuesToNames = make(map[int]string, len(formatNamesToValues))
	for name, val := range formatNamesToValues {
		formatValuesToNames[val] = name
		formatNames = append(formatNames, name)
	}
	sort.Strings(formatNames)
}
