package token

import (
	"fmt"
	"strings"
)

// Keyword enumerates the reserved words of the language. The values are
// indexes into the spelling table, which lists the same words in the same
// (alphabetical) order; init verifies the bijection.
type Keyword uint8

const (
	KeywordAction Keyword = iota
	KeywordBreak
	KeywordCase
	KeywordConst
	KeywordDefault
	KeywordDo
	KeywordEffect
	KeywordElse
	KeywordEvent
	KeywordFloat
	KeywordFor
	KeywordIf
	KeywordInt
	KeywordItemProperty
	KeywordLocation
	KeywordObject
	KeywordReturn
	KeywordString
	KeywordStruct
	KeywordSwitch
	KeywordTalent
	KeywordVector
	KeywordVoid
	KeywordWhile
)

const numKeywords = int(KeywordWhile) + 1

type keywordEntry struct {
	text string
	kw   Keyword
}

// Must match the order of the Keyword constants.
var keywordTable = [numKeywords]keywordEntry{
	{"action", KeywordAction},
	{"break", KeywordBreak},
	{"case", KeywordCase},
	{"const", KeywordConst},
	{"default", KeywordDefault},
	{"do", KeywordDo},
	{"effect", KeywordEffect},
	{"else", KeywordElse},
	{"event", KeywordEvent},
	{"float", KeywordFloat},
	{"for", KeywordFor},
	{"if", KeywordIf},
	{"int", KeywordInt},
	{"itemproperty", KeywordItemProperty},
	{"location", KeywordLocation},
	{"object", KeywordObject},
	{"return", KeywordReturn},
	{"string", KeywordString},
	{"struct", KeywordStruct},
	{"switch", KeywordSwitch},
	{"talent", KeywordTalent},
	{"vector", KeywordVector},
	{"void", KeywordVoid},
	{"while", KeywordWhile},
}

// keywordBuckets groups table indexes by first byte so a match attempt
// only compares against words that can possibly match.
var keywordBuckets [256][]Keyword

func init() {
	for i, e := range keywordTable {
		if e.kw != Keyword(i) {
			panic(fmt.Sprintf("token: keyword table entry %d (%q) is out of order", i, e.text))
		}
		first := e.text[0]
		keywordBuckets[first] = append(keywordBuckets[first], e.kw)
	}
}

// MatchKeyword attempts a literal prefix compare of one reserved word at
// the start of src. It deliberately ignores what follows the spelling:
// "integer" matches the keyword "int", and the disambiguation step
// resolves that against the longer identifier match. Returns the keyword
// and the spelling length consumed.
func MatchKeyword(src string) (Keyword, int, bool) {
	if len(src) == 0 {
		return 0, 0, false
	}
	for _, kw := range keywordBuckets[src[0]] {
		text := keywordTable[kw].text
		if strings.HasPrefix(src, text) {
			return kw, len(text), true
		}
	}
	return 0, 0, false
}

// KeywordSpellings returns the canonical spellings in table order.
func KeywordSpellings() []string {
	out := make([]string, len(keywordTable))
	for i, e := range keywordTable {
		out[i] = e.text
	}
	return out
}

// String returns the canonical spelling of the keyword.
func (k Keyword) String() string {
	if int(k) < len(keywordTable) {
		return keywordTable[k].text
	}
	return fmt.Sprintf("Keyword(%d)", uint8(k))
}
