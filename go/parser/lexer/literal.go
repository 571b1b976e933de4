/*
 * NWScript Lexer - Literal Classifier
 *
 * String, integer and float literals, dispatched on the first character.
 * A leading '+', '-' or '.' is only a tentative numeric start: when no
 * digit ever turns up the classifier fails and the punctuator classifier
 * claims the character instead. Signed literals are single tokens, so
 * "-1" lexes as one Int of value -1.
 */

package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nwtrees/nwtrees/go/parser/token"
)

func classifyLiteral(c *cursor) (match, bool) {
	first := c.read()
	switch {
	case first == '"':
		return classifyString(c)
	case isDigit(first) || first == '.' || first == '+' || first == '-':
		return classifyNumber(c)
	}
	return match{}, false
}

// classifyString scans from an opening quote to the first unescaped
// closing quote. A backslash immediately before a quote turns that quote
// into content. A raw newline, or end of input, before the close
// invalidates the whole literal. The matched length covers both quotes;
// the recorded text is the raw interior, escape sequences untouched.
func classifyString(c *cursor) (match, bool) {
	t := *c
	t.advance(1)
	for {
		t.advance(skipUntil(t.rest(), '"', '\n'))
		stop := t.read()
		if stop == 0 || stop == '\n' {
			return match{}, false
		}
		if t.peek(-1) == '\\' {
			t.advance(1)
			continue
		}
		break
	}

	length := t.off - c.off + 1
	return match{
		length: length,
		tok:    token.Token{Type: token.TypeLiteral, Literal: token.LiteralString},
		src:    srcSpan{off: c.off + 1, len: length - 2},
	}, true
}

// classifyNumber scans a numeric literal. Hex literals ("0x"/"0X") admit
// hex digits only; decimal literals admit at most one '.', one 'e' and
// one 'f', each claimed on first sight. The scan stops at the first byte
// serving none of those roles, and that byte must begin a punctuator or
// be whitespace or the whole literal fails: "0c" is not an int followed
// by junk, it is no token at all.
func classifyNumber(c *cursor) (match, bool) {
	first := c.read()
	isHex := first == '0' && (c.peek(1) == 'x' || c.peek(1) == 'X')

	seenDigit := isDigit(first)
	seenDecimal := first == '.'
	seenExponent := false
	seenSuffix := false

	distance := 1
	if isHex {
		distance = 2
	}
scan:
	for {
		ch := c.peek(distance)
		if ch == 0 {
			break
		}
		switch {
		case !isHex && !seenDecimal && ch == '.':
			seenDecimal = true
		case !isHex && !seenExponent && ch == 'e':
			seenExponent = true
		case !isHex && !seenSuffix && ch == 'f':
			seenSuffix = true
		case isDigit(ch) || (isHex && isHexDigit(ch)):
			seenDigit = true
		default:
			if !token.IsPunctuatorStart(ch) && !isWhitespace(ch) {
				return match{}, false
			}
			break scan
		}
		distance++
	}

	// A sign or dot with no digit behind it is an operator, not a number.
	if !seenDigit {
		return match{}, false
	}

	span := c.src[c.off : c.off+distance]
	return match{length: distance, tok: parseNumber(span, isHex, seenDecimal || seenExponent || seenSuffix, seenSuffix)}, true
}

// parseNumber converts a scanned span into its token. The scan already
// decided how many bytes belong to the literal, so the value parser must
// consume exactly that span (minus a trailing 'f' suffix); any parse
// failure other than range overflow means the scanner and the parser
// disagree about the literal's length, which is a defect of this package
// and aborts. Overflow saturates for decimal and wraps through uint32 for
// hex, so flag constants like 0xFFFFFFFF land on -1.
func parseNumber(span string, isHex, isFloat, hasSuffix bool) token.Token {
	if isFloat {
		parseSpan := span
		if hasSuffix {
			parseSpan = span[:len(span)-1]
		}
		v, err := strconv.ParseFloat(parseSpan, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			panic(fmt.Sprintf("lexer: float scan of %q disagrees with its parse: %v", span, err))
		}
		return token.FloatToken(float32(v))
	}

	if isHex {
		v, err := strconv.ParseUint(span[2:], 16, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			panic(fmt.Sprintf("lexer: hex scan of %q disagrees with its parse: %v", span, err))
		}
		return token.IntToken(int32(uint32(v)))
	}

	v, err := strconv.ParseInt(span, 10, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(fmt.Sprintf("lexer: int scan of %q disagrees with its parse: %v", span, err))
	}
	return token.IntToken(int32(v))
}
