/*
 * NWScript Lexer - Output Container
 *
 * LexerOutput is both the unit of result and the unit of reuse. A caller
 * scanning many files passes the previous output back in through LexInto
 * and the backing allocations are recycled instead of reallocated.
 */

package lexer

import "github.com/nwtrees/nwtrees/go/parser/token"

// LexerOutput holds everything one pass produces: the token stream, the
// name buffer backing identifier and string text, the diagnostics, and
// the per-line debug ranges. It owns all of it: once returned, nothing
// in it references the source text the pass consumed.
type LexerOutput struct {
	Tokens      []token.Token
	Names       []byte
	Errors      []LexerError
	DebugRanges []DebugRange

	// pending records, in emission order, the source span each
	// identifier and string literal still needs copied into Names.
	// Tokens never carry source-relative offsets; only this list does,
	// and compact drains it before the output is handed out.
	pending []pendingName
}

// srcSpan is a byte span of the source text being lexed. It exists only
// while a pass runs; nothing source-relative survives into the returned
// output.
type srcSpan struct {
	off int
	len int
}

// pendingName is the pre-compaction phase of a name reference: the source
// span belonging to the token at index tok.
type pendingName struct {
	tok int
	src srcSpan
}

// NewLexerOutput returns an empty output ready to be filled by LexInto.
func NewLexerOutput() *LexerOutput {
	return &LexerOutput{}
}

// Reset clears the output for reuse, keeping the backing allocations.
func (o *LexerOutput) Reset() {
	o.Tokens = o.Tokens[:0]
	o.Names = o.Names[:0]
	o.Errors = o.Errors[:0]
	o.DebugRanges = o.DebugRanges[:0]
	o.pending = o.pending[:0]
}

// HasErrors reports whether the pass halted early. When true, Tokens is a
// truncated prefix of the real token stream.
func (o *LexerOutput) HasErrors() bool {
	return len(o.Errors) > 0
}

// NameText resolves a name reference against the name buffer.
func (o *LexerOutput) NameText(ref token.NameRef) string {
	return string(o.Names[ref.Off : ref.Off+ref.Len])
}

// compact copies the text of every identifier and string literal out of
// the transient source into the owned name buffer and assigns the final
// buffer-relative references. It runs on the error path too: tokens of a
// truncated stream must not point into the caller's source either.
func (o *LexerOutput) compact(src string) {
	for _, p := range o.pending {
		o.Tokens[p.tok].Name = token.NameRef{Off: len(o.Names), Len: p.src.len}
		o.Names = append(o.Names, src[p.src.off:p.src.off+p.src.len]...)
	}
	o.pending = o.pending[:0]
}

// mergeAdjacentStrings collapses each run of consecutive string literal
// tokens into its first token. Compaction has already laid the runs'
// bytes down contiguously, so merging only extends the surviving token's
// name length; the survivor keeps its own debug span.
func (o *LexerOutput) mergeAdjacentStrings() {
	out := 0
	for i := 0; i < len(o.Tokens); i++ {
		t := o.Tokens[i]
		if out > 0 {
			prev := &o.Tokens[out-1]
			if prev.IsLiteral(token.LiteralString) && t.IsLiteral(token.LiteralString) {
				prev.Name.Len += t.Name.Len
				continue
			}
		}
		o.Tokens[out] = t
		out++
	}
	o.Tokens = o.Tokens[:out]
}
