/*
 * NWScript Lexer - Tokenization Pipeline
 *
 * One pass over one source buffer: the skip scanner finds the next token
 * start, all four classifiers attempt a match, the longest match wins
 * (ties break by classifier priority), and the winner is emitted with its
 * line and column attached. The first position where nothing matches
 * halts the pass; there is no resynchronization.
 */

// Package lexer tokenizes NWScript source text into a flat token stream
// with a compacted name buffer, per-line debug ranges and in-band
// diagnostics.
package lexer

import (
	"strings"

	"github.com/nwtrees/nwtrees/go/parser/token"
)

// match is one classifier candidate: the token it would produce and the
// number of source bytes it consumes. Identifier and string candidates
// also carry the source span their text is later compacted from.
type match struct {
	length int
	tok    token.Token
	src    srcSpan
}

// classifiers in disambiguation priority order. On equal match lengths
// the earlier entry wins: a keyword beats an identifier of the same
// spelling, and an identifier beats a literal. None of them move the
// shared cursor; only the emission step advances it.
var classifiers = [4]func(*cursor) (match, bool){
	classifyKeyword,
	classifyIdentifier,
	classifyLiteral,
	classifyPunctuator,
}

// Lex tokenizes input into a fresh output.
func Lex(input string) *LexerOutput {
	return LexInto(input, NewLexerOutput())
}

// LexInto clears out, refills it from input and returns it, reusing the
// previous backing allocations. Diagnostics are in-band: when the
// returned output has errors, its token stream is the truncated prefix
// produced before the failing position.
func LexInto(input string, out *LexerOutput) *LexerOutput {
	out.Reset()
	out.DebugRanges = buildDebugRanges(input, out.DebugRanges)

	c := &cursor{src: input}
	for {
		ch := seek(c)
		if ch == 0 {
			break
		}

		var best match
		found := false
		for _, classify := range classifiers {
			if m, ok := classify(c); ok && (!found || m.length > best.length) {
				best = m
				found = true
			}
		}
		if !found {
			r := findDebugRange(out.DebugRanges, c.off)
			snippet := input[r.IndexStart:r.IndexEnd]
			if len(snippet) > maxErrorSnippet {
				snippet = snippet[:maxErrorSnippet]
			}
			out.Errors = append(out.Errors, LexerError{
				Code:     ErrorUnknown,
				Messages: []string{errorUnknownLabel, strings.Clone(snippet)},
			})
			break
		}

		r := findDebugRange(out.DebugRanges, c.off)
		col := c.off - r.IndexStart
		best.tok.Debug = token.DebugData{Line: r.Line, ColumnStart: col, ColumnEnd: col + best.length}

		if best.tok.Type == token.TypeIdentifier || best.tok.IsLiteral(token.LiteralString) {
			out.pending = append(out.pending, pendingName{tok: len(out.Tokens), src: best.src})
		}
		out.Tokens = append(out.Tokens, best.tok)
		c.advance(best.length)
	}

	out.compact(input)
	out.mergeAdjacentStrings()
	return out
}

func classifyKeyword(c *cursor) (match, bool) {
	kw, n, ok := token.MatchKeyword(c.rest())
	if !ok {
		return match{}, false
	}
	return match{length: n, tok: token.KeywordToken(kw)}, true
}

func classifyIdentifier(c *cursor) (match, bool) {
	if !isIdentStart(c.read()) {
		return match{}, false
	}
	n := 1
	for isIdentCont(c.peek(n)) {
		n++
	}
	return match{
		length: n,
		tok:    token.Token{Type: token.TypeIdentifier},
		src:    srcSpan{off: c.off, len: n},
	}, true
}

func classifyPunctuator(c *cursor) (match, bool) {
	p, n, ok := token.MatchPunctuator(c.rest())
	if !ok {
		return match{}, false
	}
	return match{length: n, tok: token.PunctuatorToken(p)}, true
}
