package csv

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/parson/internal/errors"
)

// Tokenize splits input into records with default options.
func Tokenize(input string) ([]Record, error) {
	return TokenizeWithOptions(input, DefaultOptions())
}

// TokenizeWithOptions splits input on '\n' (a trailing '\r' is dropped) and
// each line into one token per comma-delimited field. The first line fixes
// the column count; every later line is checked against it as soon as it
// is tokenized.
func TokenizeWithOptions(input string, opts Options) ([]Record, error) {
	records := make([]Record, 0, strings.Count(input, "\n")+1)
	columns := -1
	lineNo := 0

	for len(input) > 0 {
		var line string
		if i := strings.IndexByte(input, '\n'); i >= 0 {
			line, input = input[:i], input[i+1:]
		} else {
			line, input = input, ""
		}
		lineNo++

		line = strings.TrimSuffix(line, "\r")
		if line == "" && opts.SkipBlankLines {
			continue
		}

		record, err := tokenizeLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		if columns < 0 {
			columns = len(record)
		} else if len(record) != columns {
			return nil, columnCountError(columns, len(record), lineNo)
		}
		records = append(records, record)
	}

	return records, nil
}

func columnCountError(expected, found, lineNo int) error {
	return errors.NewStructuralError(
		fmt.Sprintf("lines do not have the same number of columns: expected %d, found %d on line %d", expected, found, lineNo),
		lineNo,
		errors.ErrColumnCount,
	)
}

// tokenizeLine produces one token per field; n commas outside quotes give
// n+1 fields.
func tokenizeLine(line string, lineNo int) (Record, error) {
	record := make(Record, 0, strings.Count(line, ",")+1)
	pos := 0
	for {
		tok, end, err := scanField(line, pos, lineNo)
		if err != nil {
			return nil, err
		}
		record = append(record, tok)
		if end >= len(line) {
			return record, nil
		}
		pos = end + 1 // skip the comma
	}
}

// scanField reads the field starting at pos and returns its token and the
// index of the comma that ends it (or len(line)).
func scanField(line string, pos, lineNo int) (Token, int, error) {
	if pos < len(line) && line[pos] == '"' {
		return scanQuotedField(line, pos, lineNo)
	}

	end := len(line)
	if i := strings.IndexByte(line[pos:], ','); i >= 0 {
		end = pos + i
	}
	text := line[pos:end]

	if text != "" && isDigit(text[0]) {
		// Digit-leading text that does not parse, such as "1test", stays a string.
		if f, ok := parseDecimal(text); ok {
			return Token{Kind: TokenNumber, Text: text, Number: numberFromFloat(f)}, end, nil
		}
		return Token{Kind: TokenString, Text: text}, end, nil
	}

	switch text {
	case "":
		return Token{Kind: TokenNull}, end, nil
	case "true", "false":
		return Token{Kind: TokenBoolean, Text: text, Bool: text == "true"}, end, nil
	}
	return Token{Kind: TokenString, Text: text}, end, nil
}

// scanQuotedField reads a field enclosed in double quotes. Content is taken
// verbatim except that "" becomes a single ". The closing quote must be
// followed by a comma or the end of the line.
func scanQuotedField(line string, pos, lineNo int) (Token, int, error) {
	var sb strings.Builder
	i := pos + 1
	for {
		j := strings.IndexByte(line[i:], '"')
		if j < 0 {
			return Token{}, 0, errors.NewLexicalError(
				fmt.Sprintf("unterminated quoted field on line %d", lineNo),
				lineNo,
				errors.ErrQuotedField,
			)
		}
		sb.WriteString(line[i : i+j])
		i += j + 1
		if i < len(line) && line[i] == '"' {
			sb.WriteByte('"')
			i++
			continue
		}
		break
	}

	if i < len(line) && line[i] != ',' {
		return Token{}, 0, errors.NewLexicalError(
			fmt.Sprintf("unexpected character %q after closing quote on line %d", line[i], lineNo),
			lineNo,
			errors.ErrQuotedField,
		)
	}

	text := sb.String()
	if text == "true" || text == "false" {
		return Token{Kind: TokenBoolean, Text: text, Bool: text == "true"}, i, nil
	}
	return Token{Kind: TokenString, Text: text}, i, nil
}

// parseDecimal parses plain decimal notation: digits, an optional fraction
// and an optional exponent. Underscores, hex and special values are not
// numbers here. Magnitudes beyond float64 become infinities.
func parseDecimal(text string) (float64, bool) {
	if !isDecimal(text) {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func isDecimal(text string) bool {
	i := skipDigits(text, 0)
	if i == 0 {
		return false
	}
	if i < len(text) && text[i] == '.' {
		i = skipDigits(text, i+1)
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		exp := skipDigits(text, i)
		if exp == i {
			return false
		}
		i = exp
	}
	return i == len(text)
}

func skipDigits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
