package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/parson/internal/analyzer"
	"github.com/mcncl/parson/internal/config"
	"github.com/mcncl/parson/internal/errors"
	"github.com/mcncl/parson/internal/formatter"
	"github.com/mcncl/parson/internal/models"
	"github.com/mcncl/parson/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to write the report to. If not specified, writes to stdout." short:"o" type:"path"`
	Format      string `help:"Input format: json, csv or parquet. Detected from the file extension or content when empty." short:"F"`
	Encoding    string `help:"Text encoding of the input, by IANA name (default utf-8)." short:"e"`
	Config      string `help:"Path to config file. Searched for from the working directory when empty." short:"c" type:"path"`
	MaxDepth    int    `help:"Maximum JSON nesting depth."`
	HeaderCase  string `help:"Rename CSV columns: snake, camel, lower_camel or kebab."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("parson"),
		kong.Description("Parse JSON or CSV input and report its structure"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("parson version %s\n", Version)
		return
	}

	runCtx, err := newContext()
	if err == nil {
		err = run(runCtx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: parson --help\n")
		os.Exit(1)
	}
}

// newContext loads the config file (explicit or discovered), applies the
// CLI flags over it and builds the logger.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Format:     CLI.Format,
		Encoding:   CLI.Encoding,
		MaxDepth:   CLI.MaxDepth,
		HeaderCase: CLI.HeaderCase,
		Debug:      CLI.Debug,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr, cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("loaded config file", "path", configPath)
	}

	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger}, nil
}

// newLogger logs to w at debug level when debug is set, otherwise only
// warnings and errors.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(io.Discard, false)
	}
	log := ctx.Logger

	// 1. Parse input
	doc, source, err := parseInput(ctx)
	if err != nil {
		return err
	}
	log.Debug("parsed input", "source", source, "format", doc.Format)

	// 2. Analyze the parsed document
	report, err := analyzer.NewAnalyzerWithConfig(ctx.Config).Analyze(doc, source)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", source, err)
	}

	// 3. Render the report
	formatterInst := &formatter.Formatter{Verbose: ctx.Config.Dev.Verbose}
	text, err := formatterInst.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	// 4. Output the result
	return writeOutput(text)
}

// parseInput reads the input from file or stdin and parses it. It also
// returns a name for the input to show in the report.
func parseInput(ctx *Context) (models.Document, string, error) {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	var format models.Format
	if cfg.Format != "" {
		f, err := parser.ParseFormat(cfg.Format)
		if err != nil {
			return models.Document{}, "", err
		}
		format = f
	}
	opts := cfg.ParserOptions()

	if CLI.Input != "" {
		doc, err := parser.ParseFile(CLI.Input, format, opts)
		return doc, CLI.Input, err
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, "", errors.NewInputError("failed to access stdin", err)
	}

	var data []byte
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if !CLI.Interactive {
			return models.Document{}, "", errors.NewInputError("no input provided", errors.ErrEmptyInput)
		}
		data, err = readInteractiveInput()
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			err = errors.NewInputError("failed to read from stdin", err)
		}
	}
	if err != nil {
		return models.Document{}, "", err
	}

	if len(data) == 0 {
		return models.Document{}, "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	if format == "" {
		format = parser.DetectFromContent(data)
	}

	doc, err := parser.ParseBytes(format, data, opts)
	return doc, "stdin", err
}

// writeOutput writes the report to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return fmt.Errorf("failed to write to file '%s': %w", CLI.Output, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(strings.TrimRight(text, "\n"))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// readInteractiveInput lets users paste input and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput() ([]byte, error) {
	fmt.Fprintln(os.Stderr, "parson interactive mode")
	fmt.Fprintln(os.Stderr, "Paste JSON or CSV below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var b strings.Builder

	for {
		line, err := reader.ReadString('\n')
		b.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr, "\nProcessing...")
	return []byte(b.String()), nil
}
