package errors

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ParsingError
var (
	ErrEmptyInput          = errors.New("input is empty")
	ErrUnknownFormat       = errors.New("unknown input format")
	ErrInvalidEncoding     = errors.New("input is not valid in the configured encoding")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrInvalidLiteral      = errors.New("invalid literal")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrMaxDepth            = errors.New("maximum nesting depth exceeded")
	ErrQuotedField         = errors.New("malformed quoted field")
	ErrColumnCount         = errors.New("wrong number of columns")
	ErrHeaderType          = errors.New("header items must all be strings")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrNotContainer        = errors.New("not a container file")
)

// Kind categorizes errors
type Kind string

const (
	KindInput      Kind = "input"
	KindDecoding   Kind = "decoding"
	KindLexical    Kind = "lexical"
	KindStructural Kind = "structural"
	KindConversion Kind = "conversion"
)

// NoOffset marks an error without a known input position.
const NoOffset = -1

// ParsingError is the only error type surfaced by the parsers.
// Offset is a byte offset for JSON and decoding errors, a 1-based line
// number for CSV errors, or NoOffset.
type ParsingError struct {
	Kind    Kind
	Message string
	Offset  int
	Err     error
}

// Error implements error interface
func (e *ParsingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns wrapped error
func (e *ParsingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *ParsingError) Is(target error) bool {
	t, ok := target.(*ParsingError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewInputError creates a new error related to reading or routing input
func NewInputError(message string, err error) *ParsingError {
	return &ParsingError{Kind: KindInput, Message: message, Offset: NoOffset, Err: err}
}

// NewDecodingError creates a new error for a byte buffer that does not decode
func NewDecodingError(message string, offset int, err error) *ParsingError {
	return &ParsingError{Kind: KindDecoding, Message: message, Offset: offset, Err: err}
}

// NewLexicalError creates a new error raised while tokenizing
func NewLexicalError(message string, offset int, err error) *ParsingError {
	return &ParsingError{Kind: KindLexical, Message: message, Offset: offset, Err: err}
}

// NewStructuralError creates a new error raised while building values
func NewStructuralError(message string, offset int, err error) *ParsingError {
	return &ParsingError{Kind: KindStructural, Message: message, Offset: offset, Err: err}
}

// NewConversionError creates a new error for a failed typed projection
func NewConversionError(actual, requested string) *ParsingError {
	return &ParsingError{
		Kind:    KindConversion,
		Message: fmt.Sprintf("cannot convert %s to %s", actual, requested),
		Offset:  NoOffset,
		Err:     ErrTypeMismatch,
	}
}

// KindOf returns the Kind of err, or "" if err is not a ParsingError.
func KindOf(err error) Kind {
	var pe *ParsingError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var pe *ParsingError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindInput:
			return fmt.Sprintf("Input error: %s", pe.Message)
		case KindDecoding:
			return fmt.Sprintf("Decoding error: %s", pe.Message)
		case KindLexical:
			return fmt.Sprintf("Syntax error: %s", withPosition(pe))
		case KindStructural:
			return fmt.Sprintf("Structure error: %s", withPosition(pe))
		case KindConversion:
			return fmt.Sprintf("Conversion error: %s", pe.Message)
		default:
			return fmt.Sprintf("Error: %s", pe.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide JSON or CSV data."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Unknown input format. Use --format json or --format csv."
	}

	return fmt.Sprintf("Error: %v", err)
}

func withPosition(pe *ParsingError) string {
	if pe.Offset == NoOffset {
		return pe.Message
	}
	return fmt.Sprintf("%s (at %d)", pe.Message, pe.Offset)
}
