package lexer

import "strings"

// ErrorCode classifies lexer diagnostics.
type ErrorCode int

const (
	// ErrorUnknown reports that no classifier produced a token at the
	// failing position. Every malformed-input case (an unterminated
	// string, a malformed numeric suffix, a digit-led identifier)
	// funnels into it: a classifier either fully succeeds or fully
	// fails, and a position where all four fail is indistinguishable
	// from any other.
	ErrorUnknown ErrorCode = iota
)

// maxErrorSnippet bounds the source-line excerpt attached to a
// diagnostic. The excerpt is display text: it is truncated bytewise and
// may split a line anywhere.
const maxErrorSnippet = 127

// errorUnknownLabel is the fixed first message of an ErrorUnknown.
const errorUnknownLabel = "Unknown Token"

// LexerError is one in-band diagnostic. The pass that produced it halted
// at the first error, so the token stream accompanying a non-empty error
// list is a truncated prefix.
type LexerError struct {
	Code     ErrorCode
	Messages []string
}

// Error joins the diagnostic messages.
func (e LexerError) Error() string {
	return strings.Join(e.Messages, ": ")
}
