package csv

import (
	"github.com/iancoleman/strcase"
)

// HeaderCase selects how column names from the header row are normalized.
type HeaderCase string

const (
	HeaderCaseNone       HeaderCase = ""
	HeaderCaseSnake      HeaderCase = "snake"
	HeaderCaseCamel      HeaderCase = "camel"
	HeaderCaseLowerCamel HeaderCase = "lower_camel"
	HeaderCaseKebab      HeaderCase = "kebab"
)

// Valid reports whether c is a known header case.
func (c HeaderCase) Valid() bool {
	switch c {
	case HeaderCaseNone, HeaderCaseSnake, HeaderCaseCamel, HeaderCaseLowerCamel, HeaderCaseKebab:
		return true
	}
	return false
}

// Apply converts a column name to the header case. Unknown cases leave the
// name unchanged.
func (c HeaderCase) Apply(name string) string {
	switch c {
	case HeaderCaseSnake:
		return strcase.ToSnake(name)
	case HeaderCaseCamel:
		return strcase.ToCamel(name)
	case HeaderCaseLowerCamel:
		return strcase.ToLowerCamel(name)
	case HeaderCaseKebab:
		return strcase.ToKebab(name)
	}
	return name
}

// Options configures tokenizing and table building.
type Options struct {
	// SkipBlankLines drops empty lines instead of tokenizing them as a single null field.
	SkipBlankLines bool
	// HeaderCase normalizes column names. Default: HeaderCaseNone
	HeaderCase HeaderCase
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		SkipBlankLines: true,
		HeaderCase:     HeaderCaseNone,
	}
}
