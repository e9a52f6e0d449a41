package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/parson/internal/csv"
	"github.com/mcncl/parson/internal/errors" // Custom errors package
	"github.com/mcncl/parson/internal/json"
	"github.com/mcncl/parson/internal/models"
	"github.com/mcncl/parson/internal/parq"
	"github.com/mcncl/parson/internal/textenc"
)

// Options controls decoding and the format specific parsers.
type Options struct {
	Encoding string
	JSON     json.Options
	CSV      csv.Options
}

// DefaultOptions returns UTF-8 decoding and each parser's defaults.
func DefaultOptions() Options {
	return Options{
		Encoding: textenc.DefaultEncoding,
		JSON:     json.DefaultOptions(),
		CSV:      csv.DefaultOptions(),
	}
}

// ParseFormat maps a format name onto a known Format.
func ParseFormat(name string) (models.Format, error) {
	switch f := models.Format(strings.ToLower(strings.TrimSpace(name))); f {
	case models.FormatJSON, models.FormatCSV, models.FormatParquet:
		return f, nil
	case "parq":
		return models.FormatParquet, nil
	}
	return "", errors.NewInputError(fmt.Sprintf("unknown format %q", name), errors.ErrUnknownFormat)
}

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (models.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return models.FormatJSON, nil
	case ".csv":
		return models.FormatCSV, nil
	case ".parquet", ".parq":
		return models.FormatParquet, nil
	}
	return "", errors.NewInputError(
		fmt.Sprintf("cannot detect the format of '%s' from its extension", path),
		errors.ErrUnknownFormat,
	)
}

// DetectFromContent guesses a format from the first bytes of the input.
// Container magic wins; otherwise text whose first significant character
// opens an object or array is JSON and anything else is CSV.
func DetectFromContent(b []byte) models.Format {
	if parq.IsContainer(b) {
		return models.FormatParquet
	}
	text := strings.TrimLeft(string(b[:min(len(b), 512)]), " \t\r\n\uFEFF")
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return models.FormatJSON
	}
	return models.FormatCSV
}

// ParseString parses already decoded text.
func ParseString(format models.Format, text string, opts Options) (models.Document, error) {
	switch format {
	case models.FormatJSON:
		v, err := json.ParseWithOptions(text, opts.JSON)
		if err != nil {
			return models.Document{}, err
		}
		return models.Document{Format: format, JSON: v}, nil
	case models.FormatCSV:
		table, err := csv.ParseWithOptions(text, opts.CSV)
		if err != nil {
			return models.Document{}, err
		}
		return models.Document{Format: format, Table: table}, nil
	case models.FormatParquet:
		return ParseBytes(format, []byte(text), opts)
	}
	return models.Document{}, errors.NewInputError(fmt.Sprintf("unknown format %q", format), errors.ErrUnknownFormat)
}

// ParseBytes decodes b with the configured encoding and parses it. Binary
// containers are read as is.
func ParseBytes(format models.Format, b []byte, opts Options) (models.Document, error) {
	if format == models.FormatParquet {
		footer, err := parq.Open(b)
		if err != nil {
			return models.Document{}, err
		}
		return models.Document{Format: format, Footer: footer}, nil
	}

	text, err := textenc.Decode(b, opts.Encoding)
	if err != nil {
		return models.Document{}, err
	}
	return ParseString(format, text, opts)
}

// Parse reads all of reader and parses it. An empty format is detected
// from the content.
func Parse(format models.Format, reader io.Reader, opts Options) (models.Document, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	if format == "" {
		format = DetectFromContent(b)
	}
	return ParseBytes(format, b, opts)
}

// ParseFile parses the file at filePath. An empty format is detected from
// the file extension.
func ParseFile(filePath string, format models.Format, opts Options) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrEmptyInput)
	}
	if format == "" {
		detected, err := DetectFormat(filePath)
		if err != nil {
			return models.Document{}, err
		}
		format = detected
	}

	b, err := os.ReadFile(filePath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return models.Document{}, errors.NewInputError(fmt.Sprintf("file '%s' not found", filePath), err)
		}
		return models.Document{}, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	if len(b) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrEmptyInput,
		)
	}

	return ParseBytes(format, b, opts)
}
