package json

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/parson/internal/errors"
)

// scanner walks the input one character at a time with a single character
// of lookahead.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) next() rune {
	r, width := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += width
	return r
}

func (s *scanner) peek() (rune, int, bool) {
	if s.pos >= len(s.input) {
		return 0, 0, false
	}
	r, width := utf8.DecodeRuneInString(s.input[s.pos:])
	return r, width, true
}

// Tokenize scans input into an ordered token sequence in a single left to
// right pass. No character is discarded: anything that is not part of a
// structural character or a literal becomes a whitespace token.
func Tokenize(input string) ([]Token, error) {
	s := &scanner{input: input}
	tokens := make([]Token, 0, len(input)/4+1)

	for s.pos < len(s.input) {
		start := s.pos
		r := s.next()

		var tok Token
		var err error
		switch {
		case r == '{':
			tok = Token{Kind: TokenOpenBrace}
		case r == '}':
			tok = Token{Kind: TokenCloseBrace}
		case r == '[':
			tok = Token{Kind: TokenOpenBracket}
		case r == ']':
			tok = Token{Kind: TokenCloseBracket}
		case r == ',':
			tok = Token{Kind: TokenComma}
		case r == ':':
			tok = Token{Kind: TokenColon}
		case r == '"':
			tok, err = s.scanString(start)
		case isDigit(r) || r == '-' || r == '+':
			tok, err = s.scanNumber(start)
		case r == 't':
			tok, err = s.scanLiteral(start, "rue", "boolean")
			tok.Kind, tok.Bool = TokenBoolean, true
		case r == 'f':
			tok, err = s.scanLiteral(start, "alse", "boolean")
			tok.Kind = TokenBoolean
		case r == 'n':
			tok, err = s.scanLiteral(start, "ull", "null")
			tok.Kind = TokenNull
		default:
			tok = Token{Kind: TokenWhitespace, Text: s.input[start:s.pos]}
		}
		if err != nil {
			return nil, err
		}

		tok.Offset = start
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// scanString copies the string body verbatim. A quote directly preceded by a
// backslash is kept, backslash included, and does not end the string.
func (s *scanner) scanString(start int) (Token, error) {
	bodyStart := s.pos
	var prev rune
	for s.pos < len(s.input) {
		r := s.next()
		if r == '"' && prev != '\\' {
			return Token{Kind: TokenString, Text: s.input[bodyStart : s.pos-1]}, nil
		}
		prev = r
	}

	return Token{}, errors.NewLexicalError(
		fmt.Sprintf("unterminated string starting at offset %d", start),
		start,
		errors.ErrUnterminatedString,
	)
}

// scanNumber consumes digits, '.', exponent markers and an exponent sign
// until a terminator (',', '}', ']' or whitespace) or the end of input.
func (s *scanner) scanNumber(start int) (Token, error) {
	prev := rune(s.input[start])
	for {
		r, width, ok := s.peek()
		if !ok || isNumberTerminator(r) {
			break
		}

		switch {
		case isDigit(r), r == '.', r == 'e', r == 'E':
		case (r == '-' || r == '+') && (prev == 'e' || prev == 'E'):
		default:
			return Token{}, errors.NewLexicalError(
				fmt.Sprintf("character %q is not allowed when parsing a number", r),
				s.pos,
				errors.ErrInvalidNumber,
			)
		}

		s.pos += width
		prev = r
	}

	text := s.input[start:s.pos]
	// Magnitudes beyond float64 become infinities.
	number, err := strconv.ParseFloat(text, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return Token{}, errors.NewLexicalError(
			fmt.Sprintf("failed to parse number %q", text),
			start,
			errors.ErrInvalidNumber,
		)
	}

	return Token{Kind: TokenNumber, Number: number}, nil
}

// scanLiteral matches the remaining characters of true, false or null
// exactly, character for character.
func (s *scanner) scanLiteral(start int, rest, what string) (Token, error) {
	for i := 0; i < len(rest); i++ {
		r, width, ok := s.peek()
		if !ok || r != rune(rest[i]) {
			return Token{}, errors.NewLexicalError(
				fmt.Sprintf("failed to parse %s value near %q", what, s.input[start:s.pos+width]),
				start,
				errors.ErrInvalidLiteral,
			)
		}
		s.pos += width
	}
	return Token{}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumberTerminator(r rune) bool {
	return r == ',' || r == '}' || r == ']' || unicode.IsSpace(r)
}
