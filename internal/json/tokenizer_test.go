package json

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/mcncl/parson/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != TokenWhitespace {
			out = append(out, tok)
		}
	}
	return out
}

func TestTokenize_BracketsAndStrings(t *testing.T) {
	tokens, err := Tokenize(`[]{}"something""somethingelse"  `)
	require.NoError(t, err)
	require.Len(t, tokens, 8)

	assert.Equal(t, []TokenKind{
		TokenOpenBracket, TokenCloseBracket, TokenOpenBrace, TokenCloseBrace,
		TokenString, TokenString, TokenWhitespace, TokenWhitespace,
	}, kinds(tokens))
	assert.Equal(t, "something", tokens[4].Text)
	assert.Equal(t, "somethingelse", tokens[5].Text)
	assert.Equal(t, " ", tokens[6].Text)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`[]{}"something"somethingelse"  `)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnterminatedString))
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestTokenize_Booleans(t *testing.T) {
	tokens, err := Tokenize(`false,true, false, true`)
	require.NoError(t, err)
	require.Len(t, tokens, 9)

	assert.Equal(t, []TokenKind{
		TokenBoolean, TokenComma, TokenBoolean, TokenComma, TokenWhitespace,
		TokenBoolean, TokenComma, TokenWhitespace, TokenBoolean,
	}, kinds(tokens))
	assert.False(t, tokens[0].Bool)
	assert.True(t, tokens[2].Bool)
	assert.False(t, tokens[5].Bool)
	assert.True(t, tokens[8].Bool)
}

func TestTokenize_Null(t *testing.T) {
	tokens, err := Tokenize(`null,null, null`)
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenNull, TokenComma, TokenNull, TokenComma, TokenWhitespace, TokenNull,
	}, kinds(tokens))
}

func TestTokenize_MalformedLiterals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "misspelled false", input: `folse,true`, message: "failed to parse boolean value"},
		{name: "misspelled true", input: `[tru]`, message: "failed to parse boolean value"},
		{name: "truncated true", input: `tr`, message: "failed to parse boolean value"},
		{name: "misspelled null", input: `noll,null, null`, message: "failed to parse null value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidLiteral))
			assert.Equal(t, errors.KindLexical, errors.KindOf(err))
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tokens, err := Tokenize(`1.234234,  23, 4.4,-0.23,+23.43`)
	require.NoError(t, err)
	require.Len(t, tokens, 12)

	assert.Equal(t, []TokenKind{
		TokenNumber, TokenComma, TokenWhitespace, TokenWhitespace, TokenNumber,
		TokenComma, TokenWhitespace, TokenNumber, TokenComma, TokenNumber,
		TokenComma, TokenNumber,
	}, kinds(tokens))
	assert.Equal(t, 1.234234, tokens[0].Number)
	assert.Equal(t, 23.0, tokens[4].Number)
	assert.Equal(t, 4.4, tokens[7].Number)
	assert.Equal(t, -0.23, tokens[9].Number)
	assert.Equal(t, 23.43, tokens[11].Number)
}

func TestTokenize_NumberTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "closing brace", input: `{"a": 1}`, want: 1},
		{name: "closing bracket", input: `[2]`, want: 2},
		{name: "newline", input: "3\n", want: 3},
		{name: "exponent", input: `[1.5e3]`, want: 1500},
		{name: "signed exponent", input: `[2E-2]`, want: 0.02},
		{name: "overflow", input: `[1e400]`, want: math.Inf(1)},
		{name: "negative overflow", input: `[-1e400]`, want: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)

			var numbers []float64
			for _, tok := range tokens {
				if tok.Kind == TokenNumber {
					numbers = append(numbers, tok.Number)
				}
			}
			assert.Equal(t, []float64{tt.want}, numbers)
		})
	}
}

func TestTokenize_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "colon inside number", input: `34:22`, message: "character ':' is not allowed"},
		{name: "bare colon after number", input: `23:4`, message: "not allowed"},
		{name: "letter inside number", input: `12a`, message: "character 'a' is not allowed"},
		{name: "lone sign", input: `-`, message: "failed to parse number"},
		{name: "double dot", input: `1..2`, message: "failed to parse number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidNumber))
		})
	}
}

func TestTokenize_Document(t *testing.T) {
	input := `{"test": {"test_inner": 1, "test_inner2": null}, "test1":"test",
        "test_after_return": true
        }`
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	assert.Len(t, significant(tokens), 21)
}

func TestTokenize_DocumentWithBrokenKey(t *testing.T) {
	input := `{"test: {"test_inner": 1, "test_inner2": null}, "test1":"test",
        "test_after_return": true
        }`
	_, err := Tokenize(input)
	require.Error(t, err)

	var pe *errors.ParsingError
	assert.True(t, stderrors.As(err, &pe))
}

func TestTokenize_EscapedQuotePassThrough(t *testing.T) {
	tokens, err := Tokenize(`"test\"_something"`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, `test\"_something`, tokens[0].Text)
}

func TestTokenize_EscapedQuoteThenClosingQuote(t *testing.T) {
	tokens, err := Tokenize(`"a\""`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, `a\"`, tokens[0].Text)
}

func TestTokenize_EveryCharacterAccountedFor(t *testing.T) {
	input := "{ \"k\" :\t[1, true, null] }\r\n"
	tokens, err := Tokenize(input)
	require.NoError(t, err)

	var whitespace string
	for _, tok := range tokens {
		if tok.Kind == TokenWhitespace {
			whitespace += tok.Text
		}
	}
	assert.Equal(t, "  \t   \r\n", whitespace)
}

func TestTokenize_Offsets(t *testing.T) {
	tokens, err := Tokenize(`{"é": 10}`)
	require.NoError(t, err)

	offsets := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{0, 1, 5, 6, 7, 9}, offsets)
}

func TestTokenize_UnicodeStringCopiedVerbatim(t *testing.T) {
	tokens, err := Tokenize(`"héllo wörld é"`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, `héllo wörld é`, tokens[0].Text)
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "'{'", TokenOpenBrace.String())
	assert.Equal(t, "number", TokenNumber.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
}
