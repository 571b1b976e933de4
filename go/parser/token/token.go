// Package token defines the lexical vocabulary of NWScript source text:
// the four token classes, the reserved-word and punctuator tables, and the
// source-position metadata every token carries.
package token

import "fmt"

// Type identifies a token class. The declaration order doubles as the
// disambiguation priority: when two classifiers consume the same number of
// characters, the lower-valued Type wins, so a keyword beats an
// equal-length identifier and an identifier beats an equal-length literal.
type Type uint8

const (
	TypeKeyword Type = iota
	TypeIdentifier
	TypeLiteral
	TypePunctuator
)

// String returns a human-readable name for the token class.
func (t Type) String() string {
	switch t {
	case TypeKeyword:
		return "keyword"
	case TypeIdentifier:
		return "identifier"
	case TypeLiteral:
		return "literal"
	case TypePunctuator:
		return "punctuator"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// LiteralKind discriminates the payload of a literal token.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralInt
	LiteralFloat
)

// String returns a human-readable name for the literal kind.
func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	default:
		return fmt.Sprintf("LiteralKind(%d)", uint8(k))
	}
}

// NameRef locates the text of an identifier or string literal inside the
// name buffer of the lexer output it belongs to. Off and Len are byte
// counts. A NameRef stored on a Token always points into the name buffer,
// never into the source text; the lexer resolves source positions into
// buffer positions before any token is handed out.
type NameRef struct {
	Off int
	Len int
}

// DebugData records where in the source a token came from. Line and the
// columns are zero-based and ColumnEnd is exclusive, so ColumnEnd minus
// ColumnStart is the number of source bytes the token consumed. The
// columns are relative to the start of the owning line.
type DebugData struct {
	Line        int
	ColumnStart int
	ColumnEnd   int
}

// Token is one classified lexical unit. Type selects the meaningful
// payload field: Keyword for TypeKeyword, Punct for TypePunctuator, Name
// for TypeIdentifier, and for TypeLiteral the Literal kind selects among
// Name (strings), Int and Float. The remaining payload fields hold zero
// values. The constructors below build tokens with a consistent
// type/payload pairing; Debug is attached separately by the lexer.
type Token struct {
	Type    Type
	Keyword Keyword
	Punct   Punctuator
	Literal LiteralKind
	Int     int32
	Float   float32
	Name    NameRef
	Debug   DebugData
}

// KeywordToken builds a keyword token.
func KeywordToken(kw Keyword) Token {
	return Token{Type: TypeKeyword, Keyword: kw}
}

// IdentifierToken builds an identifier token referencing name-buffer text.
func IdentifierToken(name NameRef) Token {
	return Token{Type: TypeIdentifier, Name: name}
}

// StringToken builds a string literal token referencing name-buffer text.
func StringToken(name NameRef) Token {
	return Token{Type: TypeLiteral, Literal: LiteralString, Name: name}
}

// IntToken builds an integer literal token.
func IntToken(v int32) Token {
	return Token{Type: TypeLiteral, Literal: LiteralInt, Int: v}
}

// FloatToken builds a floating-point literal token.
func FloatToken(v float32) Token {
	return Token{Type: TypeLiteral, Literal: LiteralFloat, Float: v}
}

// PunctuatorToken builds a punctuator token.
func PunctuatorToken(p Punctuator) Token {
	return Token{Type: TypePunctuator, Punct: p}
}

// IsLiteral reports whether the token is a literal of the given kind.
func (t Token) IsLiteral(k LiteralKind) bool {
	return t.Type == TypeLiteral && t.Literal == k
}
