package lexer

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nwtrees/nwtrees/go/parser/token"
)

func TestNameTextResolution(t *testing.T) {
	out := lexClean(t, `alpha beta "gamma"`)
	require.Len(t, out.Tokens, 3)

	assert.Equal(t, "alpha", out.NameText(out.Tokens[0].Name))
	assert.Equal(t, "beta", out.NameText(out.Tokens[1].Name))
	assert.Equal(t, "gamma", out.NameText(out.Tokens[2].Name))

	// Names are compacted back to back in token order.
	assert.Equal(t, []byte("alphabetagamma"), out.Names)
	assert.Equal(t, token.NameRef{Off: 0, Len: 5}, out.Tokens[0].Name)
	assert.Equal(t, token.NameRef{Off: 5, Len: 4}, out.Tokens[1].Name)
	assert.Equal(t, token.NameRef{Off: 9, Len: 5}, out.Tokens[2].Name)
}

func TestNamesCompactedOnErrorPath(t *testing.T) {
	// Identifiers lexed before the failure must still resolve.
	out := Lex("first second `")
	require.NotEmpty(t, out.Errors)
	require.Len(t, out.Tokens, 2)
	assert.Equal(t, "first", out.NameText(out.Tokens[0].Name))
	assert.Equal(t, "second", out.NameText(out.Tokens[1].Name))
}

// outputSnapshot normalizes a LexerOutput for comparison; a recycled
// output holds empty non-nil slices where a fresh one holds nil, and the
// two must count as equal.
type outputSnapshot struct {
	tokens []token.Token
	names  string
	errors []LexerError
	ranges []DebugRange
}

func snapshot(o *LexerOutput) outputSnapshot {
	s := outputSnapshot{names: string(o.Names)}
	s.tokens = append(s.tokens, o.Tokens...)
	s.errors = append(s.errors, o.Errors...)
	s.ranges = append(s.ranges, o.DebugRanges...)
	return s
}

// assertSameOutput compares every externally visible field of two outputs.
func assertSameOutput(t *testing.T, want, got *LexerOutput) {
	t.Helper()
	assert.Equal(t, snapshot(want), snapshot(got))
}

func TestLexIntoRecyclesOutput(t *testing.T) {
	first := `
void main()
{
    string s = "one" "two";
    int i = -42;
}
`
	second := "float f = .5e3;"

	out := Lex(first)
	require.NotEmpty(t, out.Tokens)

	// Reusing the output for a different source must be indistinguishable
	// from lexing into a fresh one.
	got := LexInto(second, out)
	assert.Same(t, out, got)
	assertSameOutput(t, Lex(second), got)
}

func TestLexIntoRecycleAfterError(t *testing.T) {
	out := Lex("broken ` input")
	require.True(t, out.HasErrors())

	LexInto("int ok;", out)
	assert.False(t, out.HasErrors())
	assertSameOutput(t, Lex("int ok;"), out)
}

func TestLexIntoKeepsCapacity(t *testing.T) {
	big := ""
	for i := 0; i < 64; i++ {
		big += fmt.Sprintf("int v%d = %d;\n", i, i)
	}

	out := Lex(big)
	grownTokens := cap(out.Tokens)
	grownNames := cap(out.Names)

	LexInto("int x;", out)
	assert.Len(t, out.Tokens, 3)
	assert.GreaterOrEqual(t, cap(out.Tokens), grownTokens)
	assert.GreaterOrEqual(t, cap(out.Names), grownNames)
}

func TestResetClearsState(t *testing.T) {
	out := Lex(`name "text" @`)
	require.NotEmpty(t, out.Tokens)
	require.NotEmpty(t, out.Names)
	require.NotEmpty(t, out.Errors)
	require.NotEmpty(t, out.DebugRanges)

	out.Reset()
	assert.Empty(t, out.Tokens)
	assert.Empty(t, out.Names)
	assert.Empty(t, out.Errors)
	assert.Empty(t, out.DebugRanges)
	assert.False(t, out.HasErrors())
}

func TestLexerOutputsAreIndependent(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := []string{
		"int a = 1;",
		`string s = "x" "y";`,
		"float f = 1.5;",
		"void fn();",
	}

	var wg sync.WaitGroup
	results := make([]*LexerOutput, len(sources))
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			results[i] = Lex(src)
		}(i, src)
	}
	wg.Wait()

	for i, src := range sources {
		assertSameOutput(t, Lex(src), results[i])
	}
}
