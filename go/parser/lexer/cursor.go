/*
 * NWScript Lexer - Character Cursor
 *
 * A minimal byte cursor over the source text. The lexer operates on raw
 * bytes: NWScript source is ASCII and every token boundary falls on a
 * single-byte character, so no rune decoding is needed. A zero byte is
 * the end-of-input sentinel; an embedded NUL therefore ends the scan.
 */

package lexer

// cursor addresses one position in the source text. All classifiers and
// the skip scanner consume the source exclusively through it.
type cursor struct {
	src string
	off int
}

// read returns the byte at the cursor, or the zero sentinel at end of
// input.
func (c *cursor) read() byte {
	if c.off >= len(c.src) {
		return 0
	}
	return c.src[c.off]
}

// peek returns the byte n positions away from the cursor without moving
// it. n may be negative; out-of-range positions yield the zero sentinel.
func (c *cursor) peek(n int) byte {
	pos := c.off + n
	if pos < 0 || pos >= len(c.src) {
		return 0
	}
	return c.src[pos]
}

// rest returns the unconsumed tail of the source.
func (c *cursor) rest() string {
	if c.off >= len(c.src) {
		return ""
	}
	return c.src[c.off:]
}

// advance moves the cursor forward by n bytes.
func (c *cursor) advance(n int) {
	c.off += n
}

func isWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return isAlpha(ch) || ch == '_'
}

func isIdentCont(ch byte) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_'
}
