package csv

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/mcncl/parson/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) Token { return Token{Kind: TokenString, Text: s} }

func TestTokenize_Correctly(t *testing.T) {
	records, err := Tokenize("test1,test2,num1,num2\nval1,val2,2,3.4")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{str("test1"), str("test2"), str("num1"), str("num2")}, records[0])
	assert.Equal(t, Record{
		str("val1"),
		str("val2"),
		{Kind: TokenNumber, Text: "2", Number: Int(2)},
		{Kind: TokenNumber, Text: "3.4", Number: Float(3.4)},
	}, records[1])
}

func TestTokenize_UnevenColumns(t *testing.T) {
	_, err := Tokenize("test1,test2,num1,num2,additional,\nval1,val2,2,3.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not have the same number of columns")
	assert.Contains(t, err.Error(), "expected 6, found 4 on line 2")
	assert.True(t, stderrors.Is(err, errors.ErrColumnCount))

	var pe *errors.ParsingError
	require.True(t, stderrors.As(err, &pe))
	assert.Equal(t, 2, pe.Offset)
}

func TestTokenize_ColumnCountCheckedPerLine(t *testing.T) {
	_, err := Tokenize("a,b,c,d\n1,2,3,4\n1,2,3\n1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4, found 3 on line 3")
}

func TestTokenize_QuotedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Token
	}{
		{name: "plain quoted", input: "test1,test2,num1,num2\n\"val1\",val2,2,3.4", want: str("val1")},
		{name: "doubled quote", input: "test1,test2,num1,num2\n\"va\"\"l1\",val2,2,3.4", want: str(`va"l1`)},
		{name: "embedded comma", input: "a,b,c,d\n\"x,y\",1,2,3", want: str("x,y")},
		{name: "empty quoted", input: "a,b,c,d\n\"\",1,2,3", want: str("")},
		{name: "quoted number stays string", input: "a,b,c,d\n\"42\",1,2,3", want: str("42")},
		{name: "quoted boolean", input: "a,b,c,d\n\"true\",1,2,3", want: Token{Kind: TokenBoolean, Text: "true", Bool: true}},
		{name: "leading doubled quote", input: "a,b,c,d\n\"\"\"hi\"\"\",1,2,3", want: str(`"hi"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, records, 2)
			require.Len(t, records[1], 4)
			assert.Equal(t, tt.want, records[1][0])
		})
	}
}

func TestTokenize_Booleans(t *testing.T) {
	records, err := Tokenize("test1,test2,num1,num2,condition\n\"val1\",val2,2,3.4,true")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Token{Kind: TokenBoolean, Text: "true", Bool: true}, records[1][4])

	records, err = Tokenize("test1,test2,num1,num2,condition\n\"val1\",val2,2,3.4,\"true\"")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Token{Kind: TokenBoolean, Text: "true", Bool: true}, records[1][4])

	records, err = Tokenize("a\nfalse")
	require.NoError(t, err)
	assert.Equal(t, Token{Kind: TokenBoolean, Text: "false"}, records[1][0])
}

func TestTokenize_FieldInference(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  Token
	}{
		{name: "integer", field: "12", want: Token{Kind: TokenNumber, Text: "12", Number: Int(12)}},
		{name: "integral float text", field: "2.0", want: Token{Kind: TokenNumber, Text: "2.0", Number: Int(2)}},
		{name: "fraction", field: "2.5", want: Token{Kind: TokenNumber, Text: "2.5", Number: Float(2.5)}},
		{name: "exponent", field: "1e3", want: Token{Kind: TokenNumber, Text: "1e3", Number: Int(1000)}},
		{name: "beyond int64", field: "1e19", want: Token{Kind: TokenNumber, Text: "1e19", Number: Float(1e19)}},
		{name: "digit-leading text", field: "1test", want: str("1test")},
		{name: "digit separators are text", field: "1_000", want: str("1_000")},
		{name: "hex float is text", field: "0x1p4", want: str("0x1p4")},
		{name: "exponent without digits is text", field: "1e", want: str("1e")},
		{name: "trailing dot", field: "3.", want: Token{Kind: TokenNumber, Text: "3.", Number: Int(3)}},
		{name: "signed exponent", field: "25e-1", want: Token{Kind: TokenNumber, Text: "25e-1", Number: Float(2.5)}},
		{name: "overflow is infinite", field: "1e400", want: Token{Kind: TokenNumber, Text: "1e400", Number: Float(math.Inf(1))}},
		{name: "date-like text", field: "2024-01-02", want: str("2024-01-02")},
		{name: "negative number is not digit-leading", field: "-5", want: str("-5")},
		{name: "empty is null", field: "", want: Token{Kind: TokenNull}},
		{name: "literal null text", field: "null", want: str("null")},
		{name: "true", field: "true", want: Token{Kind: TokenBoolean, Text: "true", Bool: true}},
		{name: "capitalized true is text", field: "True", want: str("True")},
		{name: "spaces kept", field: " a b ", want: str(" a b ")},
		{name: "bare inner quote kept", field: `a"b`, want: str(`a"b`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Tokenize("col\n" + tt.field)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, Record{tt.want}, records[1])
		})
	}
}

func TestTokenize_EmptyFieldsAndTrailingComma(t *testing.T) {
	records, err := Tokenize("a,b,c\n,x,\n1,,")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{{Kind: TokenNull}, str("x"), {Kind: TokenNull}}, records[1])
	assert.Equal(t, Record{{Kind: TokenNumber, Text: "1", Number: Int(1)}, {Kind: TokenNull}, {Kind: TokenNull}}, records[2])
}

func TestTokenize_LineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rows  int
	}{
		{name: "crlf", input: "a,b\r\n1,2\r\n3,4", rows: 3},
		{name: "trailing newline", input: "a,b\n1,2\n", rows: 2},
		{name: "blank lines skipped", input: "a,b\n\n1,2\n\r\n3,4\n\n", rows: 3},
		{name: "empty input", input: "", rows: 0},
		{name: "header only", input: "a,b", rows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Len(t, records, tt.rows)
			for _, record := range records {
				for _, tok := range record {
					assert.NotContains(t, tok.Text, "\r")
				}
			}
		})
	}
}

func TestTokenize_BlankLinesKept(t *testing.T) {
	_, err := TokenizeWithOptions("a,b\n\n1,2", Options{SkipBlankLines: false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2, found 1 on line 2")

	records, err := TokenizeWithOptions("a\n\n1", Options{SkipBlankLines: false})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Record{{Kind: TokenNull}}, records[1])
}

func TestTokenize_MalformedQuotedFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "unterminated", input: "a,b\n\"open,1", message: "unterminated quoted field on line 2"},
		{name: "text after closing quote", input: "a,b\n\"ab\"cd,1", message: "unexpected character 'c' after closing quote on line 2"},
		{name: "quote spans lines", input: "a,b\n\"multi\nline\",1", message: "unterminated quoted field on line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, stderrors.Is(err, errors.ErrQuotedField))
			assert.Equal(t, errors.KindLexical, errors.KindOf(err))
		})
	}
}

func TestNumber_Helpers(t *testing.T) {
	assert.Equal(t, 3.0, Int(3).Float64())
	assert.Equal(t, 2.5, Float(2.5).Float64())
	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "2.5", Float(2.5).String())
	assert.Equal(t, "number", TokenNumber.String())
	assert.Equal(t, "TokenKind(9)", TokenKind(9).String())
}
