/*
 * NWScript Lexer - Skip Scanner
 *
 * Advances the cursor past everything tokenization ignores: preprocessor
 * lines, line comments, block comments and whitespace. Preprocessor
 * directives are skipped wholesale up to the newline, never parsed.
 */

package lexer

// seek moves the cursor to the next semantically significant byte and
// returns it, or returns the zero sentinel at end of input. A bare '/'
// stops the scan so the punctuator classifier can claim it.
func seek(c *cursor) byte {
	for {
		ch := c.read()
		if ch == 0 {
			return 0
		}
		switch {
		case ch == '#':
			c.advance(skipUntil(c.rest(), '\n'))
		case ch == '/' && c.peek(1) == '/':
			c.advance(skipUntil(c.rest(), '\n'))
		case ch == '/' && c.peek(1) == '*':
			skipBlockComment(c)
		case isWhitespace(ch):
			c.advance(1)
		default:
			return ch
		}
	}
}

// skipBlockComment consumes a block comment, cursor on the opening '/'.
// The close scan looks for a '/' and checks that the preceding byte is a
// '*', which makes "/*/" a complete comment (the opening star doubles as
// the closing one). A comment with no close is silently consumed to end
// of input.
func skipBlockComment(c *cursor) {
	for c.read() != 0 {
		n := skipUntil(c.rest(), '/')
		if n < 1 {
			n = 1
		}
		c.advance(n)
		if c.peek(-1) == '*' {
			c.advance(1)
			return
		}
	}
}

// skipUntil returns the distance from the start of s to the first
// occurrence of any target byte or of a zero byte, or len(s) when none
// occur.
func skipUntil(s string, targets ...byte) int {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == 0 {
			return i
		}
		for _, t := range targets {
			if ch == t {
				return i
			}
		}
	}
	return len(s)
}
