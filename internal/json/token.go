// Package json tokenizes JSON-like text and builds a Value tree from the tokens.
package json

import "fmt"

// TokenKind identifies a lexical unit.
type TokenKind uint8

const (
	TokenOpenBrace TokenKind = iota
	TokenCloseBrace
	TokenOpenBracket
	TokenCloseBracket
	TokenComma
	TokenColon
	TokenString
	TokenNumber
	TokenBoolean
	TokenNull
	TokenWhitespace
)

var tokenKindNames = [...]string{
	TokenOpenBrace:    "'{'",
	TokenCloseBrace:   "'}'",
	TokenOpenBracket:  "'['",
	TokenCloseBracket: "']'",
	TokenComma:        "','",
	TokenColon:        "':'",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenBoolean:      "boolean",
	TokenNull:         "null",
	TokenWhitespace:   "whitespace",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// Token is a single lexical unit. Only the field matching Kind is set:
// Text for strings and whitespace, Number for numbers, Bool for booleans.
type Token struct {
	Kind   TokenKind
	Text   string
	Number float64
	Bool   bool
	Offset int // byte offset of the token's first character
}

// IsScalar reports whether the token is a literal that forms a complete value.
func (t Token) IsScalar() bool {
	switch t.Kind {
	case TokenString, TokenNumber, TokenBoolean, TokenNull:
		return true
	}
	return false
}
