package models

import (
	"github.com/mcncl/parson/internal/csv"
	"github.com/mcncl/parson/internal/json"
	"github.com/mcncl/parson/internal/parq"
)

// Format names an input format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Document is a parsed input. Exactly one of JSON, Table or Footer is
// meaningful, selected by Format.
type Document struct {
	Format Format
	JSON   json.Value
	Table  csv.Table
	Footer *parq.Footer
}

// Summary describes the shape of a JSON value tree.
type Summary struct {
	RootKind string
	// Depth is 0 for a scalar root; each container level adds one.
	Depth    int
	Objects  int
	Arrays   int
	Strings  int
	Numbers  int
	Booleans int
	Nulls    int
	// DistinctKeys lists every object key seen, sorted.
	DistinctKeys []string
}

// Column hints reported by a ColumnProfile.
const (
	HintUUID    = "uuid"
	HintTime    = "time"
	HintInteger = "integer"
	HintFloat   = "float"
	HintBoolean = "boolean"
	HintString  = "string"
	HintMixed   = "mixed"
	HintEmpty   = "empty"
)

// KindCount is how many cells of one kind a column holds.
type KindCount struct {
	Kind  string
	Count int
}

// ColumnProfile describes the values of one CSV column.
type ColumnProfile struct {
	Name  string
	Kinds []KindCount // ordered by first appearance
	Nulls int
	// Hint is uuid, time, integer, float, boolean, string, mixed or empty.
	Hint string
}

// TableProfile describes a CSV table.
type TableProfile struct {
	Rows    int
	Columns []ColumnProfile
}

// ContainerSummary describes a binary container footer.
type ContainerSummary struct {
	Size           int64
	DataLength     int64
	MetadataLength uint32
}

// Report is what the analyzer produces for one Document.
type Report struct {
	Source    string
	Format    Format
	JSON      *Summary
	Table     *TableProfile
	Container *ContainerSummary
}
