package csv

import (
	"fmt"

	"github.com/mcncl/parson/internal/errors"
)

// Row maps column names to the cell values of one data line.
type Row map[string]Value

// Table is a parsed document: the header's column names in order and one
// Row per data line in input order. The header is never a Row.
type Table struct {
	Columns []string
	Rows    []Row
}

// Parse tokenizes input and builds its table with default options.
func Parse(input string) (Table, error) {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions tokenizes input and builds its table. Tokenization
// completes before building starts.
func ParseWithOptions(input string, opts Options) (Table, error) {
	records, err := TokenizeWithOptions(input, opts)
	if err != nil {
		return Table{}, err
	}
	return BuildWithOptions(records, opts)
}

// Build zips each record after the first against the header's column names.
func Build(records []Record) (Table, error) {
	return BuildWithOptions(records, DefaultOptions())
}

// BuildWithOptions is Build with custom options. Every header token must be a
// string. When two columns share a name the rightmost one wins.
func BuildWithOptions(records []Record, opts Options) (Table, error) {
	if len(records) == 0 {
		return Table{Columns: []string{}, Rows: []Row{}}, nil
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, tok := range header {
		if tok.Kind != TokenString {
			return Table{}, errors.NewStructuralError(
				fmt.Sprintf("header items must all be strings: column %d is %s", i+1, tok.Kind),
				1,
				errors.ErrHeaderType,
			)
		}
		columns[i] = opts.HeaderCase.Apply(tok.Text)
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) != len(columns) {
			return Table{}, columnCountError(len(columns), len(record), n+2)
		}
		row := make(Row, len(columns))
		for i, tok := range record {
			row[columns[i]] = valueFromToken(tok)
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}, nil
}
