package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestBasicDeclaration(t *testing.T) {
	toks := allTokens(t, `var var x = 1!`)
	require.Equal(t, []Type{VAR, VAR, IDENT, ASSIGN, NUMBER, BANG, EOF}, typesOf(toks))
	require.Equal(t, float64(1), toks[4].Literal)
}

func typesOf(toks []Token) []Type {
	out := make([]Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestStarRunCollapsesToPower(t *testing.T) {
	toks := allTokens(t, `x****!`)
	require.Equal(t, []Type{IDENT, STAR_RUN, BANG, EOF}, typesOf(toks))
	require.Equal(t, 4, toks[1].Count)
}

func TestSingleStarIsMultiplication(t *testing.T) {
	toks := allTokens(t, `x * y`)
	require.Equal(t, []Type{IDENT, ASTERISK, IDENT, EOF}, typesOf(toks))
}

func TestEqualityTiers(t *testing.T) {
	toks := allTokens(t, `= == === ====`)
	require.Equal(t, []Type{ASSIGN, EQ, STRICT_EQ, VSTRICT_EQ, EOF}, typesOf(toks))
}

func TestColonRun(t *testing.T) {
	toks := allTokens(t, `: :: :::`)
	require.Equal(t, []Type{COLON, COLON, COLON, EOF}, typesOf(toks))
	require.Equal(t, 1, toks[0].Count)
	require.Equal(t, 2, toks[1].Count)
	require.Equal(t, 3, toks[2].Count)
}

func TestFlexibleStringQuoting(t *testing.T) {
	toks := allTokens(t, `'''hi 'there' friend'''`)
	require.Len(t, toks, 2)
	require.Equal(t, STRING, toks[0].Type)
	require.Equal(t, "hi 'there' friend", toks[0].Lexeme)
}

func TestStringEscapes(t *testing.T) {
	toks := allTokens(t, `"a\nb\"c"`)
	require.Equal(t, "a\nb\"c", toks[0].Lexeme)
}

func TestEmojiIdentifier(t *testing.T) {
	toks := allTokens(t, `var var 🚀 = 1!`)
	require.Equal(t, IDENT, toks[2].Type)
	require.Equal(t, "🚀", toks[2].Lexeme)
}

func TestLineComment(t *testing.T) {
	toks := allTokens(t, "x // trailing comment\ny")
	require.Equal(t, []Type{IDENT, IDENT, EOF}, typesOf(toks))
}

func TestNullishVsDebugMarkers(t *testing.T) {
	toks := allTokens(t, `x ?? y`)
	require.Equal(t, []Type{IDENT, QQ, IDENT, EOF}, typesOf(toks))

	toks = allTokens(t, `print x!?`)
	require.Equal(t, []Type{IDENT, IDENT, BANG, QUESTION, EOF}, typesOf(toks))
}

func TestRangeDots(t *testing.T) {
	toks := allTokens(t, `[1..5]`)
	require.Equal(t, []Type{LBRACK, NUMBER, DOTDOT, NUMBER, RBRACK, EOF}, typesOf(toks))
}

func TestIllegalCharacterRecorded(t *testing.T) {
	l := New("x # y")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	require.Len(t, l.Errors(), 1)
	require.Equal(t, 2, l.Errors()[0].Offset)
}

func TestKeywordsAndFunctionAliases(t *testing.T) {
	for _, kw := range []string{"function", "func", "fun", "fn", "functi", "f"} {
		toks := allTokens(t, kw+" greet => print 1!")
		require.Equal(t, FUNCTION, toks[0].Type, kw)
	}
}
