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
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nwlex.yaml"), []byte(content), 0o644))
	return dir
}

func TestConfigPrecedence(t *testing.T) {
	t.Run("config file overrides defaults", func(t *testing.T) {
		nc, root := newTestCommand(t)
		dir := writeConfigFile(t, "log-level: error\nformat: yaml\n")

		_, err := executeCommand(t, root, "version", "--config-path", dir)
		require.NoError(t, err)
		assert.Equal(t, "error", nc.cfg.LogLevel)
		assert.Equal(t, FormatYAML, nc.cfg.Format)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		nc, root := newTestCommand(t)
		dir := writeConfigFile(t, "log-level: error\n")
		t.Setenv("NWLEX_LOG_LEVEL", "warn")

		_, err := executeCommand(t, root, "version", "--config-path", dir)
		require.NoError(t, err)
		assert.Equal(t, "warn", nc.cfg.LogLevel)
	})

	t.Run("flags override environment", func(t *testing.T) {
		nc, root := newTestCommand(t)
		dir := writeConfigFile(t, "log-level: error\n")
		t.Setenv("NWLEX_LOG_LEVEL", "warn")

		_, err := executeCommand(t, root, "version", "--config-path", dir, "--log-level", "debug")
		require.NoError(t, err)
		assert.Equal(t, "debug", nc.cfg.LogLevel)
	})
}

func TestConfigFileValuesDecode(t *testing.T) {
	nc, root := newTestCommand(t)
	dir := writeConfigFile(t, "ext:\n  - .nss\n  - .ncs\ndebounce-interval: 2s\nfail-fast: true\n")

	_, err := executeCommand(t, root, "version", "--config-path", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".nss", ".ncs"}, nc.cfg.Extensions)
	assert.Equal(t, 2*time.Second, nc.cfg.DebounceInterval)
	assert.True(t, nc.cfg.FailFast)
}

func TestExtensionListFromEnvironment(t *testing.T) {
	nc, root := newTestCommand(t)
	t.Setenv("NWLEX_EXT", ".nss,.ncs")

	_, err := executeCommand(t, root, "version")
	require.NoError(t, err)
	assert.Equal(t, []string{".nss", ".ncs"}, nc.cfg.Extensions)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Run("ignored by default", func(t *testing.T) {
		_, root := newTestCommand(t)

		out, err := executeCommand(t, root, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "nwlex")
	})

	t.Run("error handling fails the command", func(t *testing.T) {
		_, root := newTestCommand(t)

		_, err := executeCommand(t, root, "version", "--config-file-not-found-handling", "error")
		require.ErrorContains(t, err, "reading config")
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		_, root := newTestCommand(t)
		missing := filepath.Join(t.TempDir(), "missing.yaml")

		_, err := executeCommand(t, root, "version",
			"--config-file", missing, "--config-file-not-found-handling", "error")
		require.ErrorContains(t, err, "reading config")
	})
}

func TestLoadMalformedConfigFile(t *testing.T) {
	_, root := newTestCommand(t)
	dir := writeConfigFile(t, "format: [unclosed\n")

	_, err := executeCommand(t, root, "version", "--config-path", dir)
	require.ErrorContains(t, err, "reading config")
}

func TestLoadRejectsUnknownFormatInConfig(t *testing.T) {
	_, root := newTestCommand(t)
	dir := writeConfigFile(t, "format: xml\n")

	_, err := executeCommand(t, root, "version", "--config-path", dir)
	require.ErrorContains(t, err, "decoding config")
}

func TestMatchesExtension(t *testing.T) {
	cfg := NewConfig()
	assert.True(t, cfg.MatchesExtension("scripts/module.nss"))
	assert.True(t, cfg.MatchesExtension("MODULE.NSS"))
	assert.False(t, cfg.MatchesExtension("readme.txt"))
	assert.False(t, cfg.MatchesExtension("plain"))

	// The leading dot is optional in configured extensions.
	cfg.Extensions = []string{"nss", ".NWScript"}
	assert.True(t, cfg.MatchesExtension("a.nss"))
	assert.True(t, cfg.MatchesExtension("b.nwscript"))
	assert.False(t, cfg.MatchesExtension("c.txt"))
}

func TestDefaultConfigPaths(t *testing.T) {
	paths := defaultConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}

func TestOutputFormatValue(t *testing.T) {
	tests := []struct {
		arg     string
		want    OutputFormat
		wantErr bool
	}{
		{arg: "text", want: FormatText},
		{arg: "json", want: FormatJSON},
		{arg: "JSON", want: FormatJSON},
		{arg: "yaml", want: FormatYAML},
		{arg: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			var f OutputFormat
			err := f.Set(tt.arg)
			if tt.wantErr {
				require.ErrorContains(t, err, "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}

	f := FormatYAML
	assert.Equal(t, "yaml", f.String())
	assert.Equal(t, "OutputFormat", f.Type())

	f = OutputFormat(99)
	assert.Equal(t, "<UNKNOWN>", f.String())
}

func TestConfigFileNotFoundHandlingValue(t *testing.T) {
	tests := []struct {
		arg     string
		want    ConfigFileNotFoundHandling
		wantErr bool
	}{
		{arg: "ignore", want: IgnoreConfigFileNotFound},
		{arg: "warn", want: WarnOnConfigFileNotFound},
		{arg: "error", want: ErrorOnConfigFileNotFound},
		{arg: "explode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			var h ConfigFileNotFoundHandling
			err := h.Set(tt.arg)
			if tt.wantErr {
				require.ErrorContains(t, err, "unknown handling name")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}

	h := WarnOnConfigFileNotFound
	assert.Equal(t, "warn", h.String())
	assert.Equal(t, "ConfigFileNotFoundHandling", h.Type())
}

func TestDecodeOutputFormatHook(t *testing.T) {
	formatType := reflect.TypeOf(OutputFormat(0))
	stringType := reflect.TypeOf("")

	got, err := decodeOutputFormat(stringType, formatType, "yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, got)

	got, err = decodeOutputFormat(reflect.TypeOf(0), formatType, int(FormatJSON))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	// Values headed for any other target type pass through untouched.
	got, err = decodeOutputFormat(stringType, stringType, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", got)

	_, err = decodeOutputFormat(stringType, formatType, "xml")
	require.ErrorContains(t, err, "unknown output format")
}
