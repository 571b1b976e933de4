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
	"fmt"
	"io"
	"strconv"
	"strings"

	segjson "github.com/segmentio/encoding/json"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nwtrees/nwtrees/go/parser/lexer"
	"github.com/nwtrees/nwtrees/go/parser/token"
	"github.com/nwtrees/nwtrees/go/tools/fileutil"
)

// AddDumpCommand adds the dump command to the root command
func AddDumpCommand(root *cobra.Command, nc *NwlexCommand) {
	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print one file's token stream",
		Long: `Lex a single NWScript file and print its token stream with resolved
names and source positions. Pass "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return nc.runDump(cmd, args)
		},
	}

	dumpCmd.Flags().Var(&nc.cfg.Format, "format",
		fmt.Sprintf("Output format. (Options: %s)", strings.Join(formatNames, ", ")))
	dumpCmd.Flags().StringP("output", "o", "",
		"Write the dump to this file (atomically) instead of standard output.")

	root.AddCommand(dumpCmd)
}

func (nc *NwlexCommand) runDump(cmd *cobra.Command, args []string) error {
	source := args[0]
	label := source

	var data []byte
	var err error
	if source == "-" {
		label = "<stdin>"
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = afero.ReadFile(nc.fs, source)
		if err != nil {
			return fmt.Errorf("reading %s: %w", source, err)
		}
	}

	out := lexer.Lex(string(data))
	if out.HasErrors() {
		for _, lexErr := range out.Errors {
			cmd.Printf("%s: %s\n", label, lexErr.Error())
		}
		return fmt.Errorf("%s: lexing failed with %d errors", label, len(out.Errors))
	}

	rendered, err := renderTokens(out, nc.cfg.Format)
	if err != nil {
		return fmt.Errorf("rendering tokens: %w", err)
	}

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		if err := fileutil.AtomicWriteFile(outputPath, rendered, 0o644); err != nil {
			return err
		}
		nc.logger.Get().Info("token dump written",
			"path", outputPath,
			"tokens", len(out.Tokens),
			"format", nc.cfg.Format.String(),
		)
		return nil
	}

	cmd.Print(string(rendered))
	return nil
}

// tokenRecord is the serialized view of one token in a dump.
type tokenRecord struct {
	Kind        string `json:"kind" yaml:"kind"`
	Text        string `json:"text" yaml:"text"`
	Line        int    `json:"line" yaml:"line"`
	ColumnStart int    `json:"column_start" yaml:"column_start"`
	ColumnEnd   int    `json:"column_end" yaml:"column_end"`
}

func tokenRecords(out *lexer.LexerOutput) []tokenRecord {
	records := make([]tokenRecord, 0, len(out.Tokens))
	for _, tok := range out.Tokens {
		rec := tokenRecord{
			Line:        tok.Debug.Line,
			ColumnStart: tok.Debug.ColumnStart,
			ColumnEnd:   tok.Debug.ColumnEnd,
		}
		switch tok.Type {
		case token.TypeKeyword:
			rec.Kind = tok.Type.String()
			rec.Text = tok.Keyword.String()
		case token.TypeIdentifier:
			rec.Kind = tok.Type.String()
			rec.Text = out.NameText(tok.Name)
		case token.TypePunctuator:
			rec.Kind = tok.Type.String()
			rec.Text = tok.Punct.String()
		case token.TypeLiteral:
			// Literals dump as their concrete kind: string, int, float.
			rec.Kind = tok.Literal.String()
			switch tok.Literal {
			case token.LiteralString:
				rec.Text = out.NameText(tok.Name)
			case token.LiteralInt:
				rec.Text = strconv.FormatInt(int64(tok.Int), 10)
			case token.LiteralFloat:
				rec.Text = strconv.FormatFloat(float64(tok.Float), 'g', -1, 32)
			}
		}
		records = append(records, rec)
	}
	return records
}

func renderTokens(out *lexer.LexerOutput, format OutputFormat) ([]byte, error) {
	records := tokenRecords(out)

	switch format {
	case FormatJSON:
		data, err := segjson.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(records)
	default:
		var b strings.Builder
		for _, rec := range records {
			fmt.Fprintf(&b, "%d:%d-%d\t%s\t%s\n",
				rec.Line, rec.ColumnStart, rec.ColumnEnd, rec.Kind, rec.Text)
		}
		return []byte(b.String()), nil
	}
}
