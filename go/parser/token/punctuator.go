package token

import (
	"fmt"
	"sort"
	"strings"
)

// Punctuator enumerates the operator and delimiter symbols, one to three
// characters each. As with Keyword, the values index the symbol table and
// init verifies the bijection.
type Punctuator uint8

const (
	PunctAmp Punctuator = iota // &
	PunctAmpAmp                // &&
	PunctAmpEq                 // &=
	PunctStar                  // *
	PunctStarEq                // *=
	PunctCaret                 // ^
	PunctCaretEq               // ^=
	PunctColon                 // :
	PunctColonColon            // ::
	PunctComma                 // ,
	PunctDot                   // .
	PunctEllipsis              // ...
	PunctEq                    // =
	PunctEqEq                  // ==
	PunctNot                   // !
	PunctNotEq                 // !=
	PunctGreater               // >
	PunctGreaterEq             // >=
	PunctShr                   // >>
	PunctShrEq                 // >>=
	PunctLBrace                // {
	PunctLParen                // (
	PunctLBracket              // [
	PunctLess                  // <
	PunctLessEq                // <=
	PunctShl                   // <<
	PunctShlEq                 // <<=
	PunctMinus                 // -
	PunctMinusEq               // -=
	PunctMinusMinus            // --
	PunctPercent               // %
	PunctPercentEq             // %=
	PunctPipe                  // |
	PunctPipeEq                // |=
	PunctPipePipe              // ||
	PunctPlus                  // +
	PunctPlusEq                // +=
	PunctPlusPlus              // ++
	PunctQuestion              // ?
	PunctRBrace                // }
	PunctRParen                // )
	PunctRBracket              // ]
	PunctSemicolon             // ;
	PunctSlash                 // /
	PunctSlashEq               // /=
	PunctTilde                 // ~
)

const numPunctuators = int(PunctTilde) + 1

type punctuatorEntry struct {
	text string
	p    Punctuator
}

// Must match the order of the Punctuator constants.
var punctuatorTable = [numPunctuators]punctuatorEntry{
	{"&", PunctAmp},
	{"&&", PunctAmpAmp},
	{"&=", PunctAmpEq},
	{"*", PunctStar},
	{"*=", PunctStarEq},
	{"^", PunctCaret},
	{"^=", PunctCaretEq},
	{":", PunctColon},
	{"::", PunctColonColon},
	{",", PunctComma},
	{".", PunctDot},
	{"...", PunctEllipsis},
	{"=", PunctEq},
	{"==", PunctEqEq},
	{"!", PunctNot},
	{"!=", PunctNotEq},
	{">", PunctGreater},
	{">=", PunctGreaterEq},
	{">>", PunctShr},
	{">>=", PunctShrEq},
	{"{", PunctLBrace},
	{"(", PunctLParen},
	{"[", PunctLBracket},
	{"<", PunctLess},
	{"<=", PunctLessEq},
	{"<<", PunctShl},
	{"<<=", PunctShlEq},
	{"-", PunctMinus},
	{"-=", PunctMinusEq},
	{"--", PunctMinusMinus},
	{"%", PunctPercent},
	{"%=", PunctPercentEq},
	{"|", PunctPipe},
	{"|=", PunctPipeEq},
	{"||", PunctPipePipe},
	{"+", PunctPlus},
	{"+=", PunctPlusEq},
	{"++", PunctPlusPlus},
	{"?", PunctQuestion},
	{"}", PunctRBrace},
	{")", PunctRParen},
	{"]", PunctRBracket},
	{";", PunctSemicolon},
	{"/", PunctSlash},
	{"/=", PunctSlashEq},
	{"~", PunctTilde},
}

// punctuatorBuckets groups table indexes by first byte, longest spelling
// first, so the first prefix match found is the longest possible one.
var punctuatorBuckets [256][]Punctuator

func init() {
	for i, e := range punctuatorTable {
		if e.p != Punctuator(i) {
			panic(fmt.Sprintf("token: punctuator table entry %d (%q) is out of order", i, e.text))
		}
		first := e.text[0]
		punctuatorBuckets[first] = append(punctuatorBuckets[first], e.p)
	}
	for _, bucket := range punctuatorBuckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return len(punctuatorTable[bucket[i]].text) > len(punctuatorTable[bucket[j]].text)
		})
	}
}

// MatchPunctuator finds the longest punctuator spelled out at the start of
// src. Returns the punctuator and the number of characters it consumes.
func MatchPunctuator(src string) (Punctuator, int, bool) {
	if len(src) == 0 {
		return 0, 0, false
	}
	for _, p := range punctuatorBuckets[src[0]] {
		text := punctuatorTable[p].text
		if strings.HasPrefix(src, text) {
			return p, len(text), true
		}
	}
	return 0, 0, false
}

// IsPunctuatorStart reports whether b begins at least one punctuator.
// Every multi-character punctuator shares its first byte with a
// single-character one, so this is equivalent to running a full match.
func IsPunctuatorStart(b byte) bool {
	return len(punctuatorBuckets[b]) > 0
}

// PunctuatorSpellings returns the symbol spellings in table order.
func PunctuatorSpellings() []string {
	out := make([]string, len(punctuatorTable))
	for i, e := range punctuatorTable {
		out[i] = e.text
	}
	return out
}

// String returns the symbol spelling of the punctuator.
func (p Punctuator) String() string {
	if int(p) < len(punctuatorTable) {
		return punctuatorTable[p].text
	}
	return fmt.Sprintf("Punctuator(%d)", uint8(p))
}
