// Package parson parses JSON-like text into a tree of typed values and
// comma-separated text into ordered rows of typed cells.
//
// Every failure is a *ParsingError. Calls share no state and are safe to
// use concurrently.
package parson

import (
	"github.com/mcncl/parson/internal/csv"
	"github.com/mcncl/parson/internal/errors"
	"github.com/mcncl/parson/internal/json"
	"github.com/mcncl/parson/internal/parq"
	"github.com/mcncl/parson/internal/textenc"
)

type (
	// Value is a node of a parsed JSON tree.
	Value = json.Value
	// Cell is one typed CSV field.
	Cell = csv.Value
	// Row maps column names to the cells of one CSV data line.
	Row = csv.Row
	// Number is a CSV number that keeps its integer or float subtype.
	Number = csv.Number
	// ParsingError is the only error type returned by this package.
	ParsingError = errors.ParsingError
	// ErrorKind categorizes a ParsingError.
	ErrorKind = errors.Kind
	// JSONOptions tunes the JSON value builder.
	JSONOptions = json.Options
	// CSVOptions tunes CSV tokenizing and header handling.
	CSVOptions = csv.Options
	// Footer is the located metadata block of a binary container.
	Footer = parq.Footer
)

// ParseJSON parses text into a Value tree.
func ParseJSON(text string) (Value, error) {
	return json.Parse(text)
}

// ParseJSONWithOptions is ParseJSON with a custom nesting limit.
func ParseJSONWithOptions(text string, opts JSONOptions) (Value, error) {
	return json.ParseWithOptions(text, opts)
}

// ParseJSONBytes parses a UTF-8 byte buffer into a Value tree. Invalid
// UTF-8 is a decoding error.
func ParseJSONBytes(b []byte) (Value, error) {
	text, err := textenc.Decode(b, textenc.DefaultEncoding)
	if err != nil {
		return Value{}, err
	}
	return json.Parse(text)
}

// ParseCSV parses text into rows keyed by the header's column names, in
// input order.
func ParseCSV(text string) ([]Row, error) {
	return ParseCSVWithOptions(text, csv.DefaultOptions())
}

// ParseCSVWithOptions is ParseCSV with custom options.
func ParseCSVWithOptions(text string, opts CSVOptions) ([]Row, error) {
	table, err := csv.ParseWithOptions(text, opts)
	if err != nil {
		return nil, err
	}
	return table.Rows, nil
}

// ParseCSVBytes parses a UTF-8 byte buffer into rows. Invalid UTF-8 is a
// decoding error.
func ParseCSVBytes(b []byte) ([]Row, error) {
	text, err := textenc.Decode(b, textenc.DefaultEncoding)
	if err != nil {
		return nil, err
	}
	return ParseCSV(text)
}

// OpenContainer locates the footer of a binary container held in b.
func OpenContainer(b []byte) (*Footer, error) {
	return parq.Open(b)
}
