package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/alecthomas/kong"

	"jsoncompare/internal/compare"
	"jsoncompare/internal/config"
	"jsoncompare/internal/errors"
	"jsoncompare/internal/models"
	"jsoncompare/internal/render"
)

// CLI defines the command-line interface
var CLI struct {
	Request        string `help:"Path to the request JSON file. If not specified, reads from stdin." short:"a" type:"path"`
	Response       string `help:"Path to the response JSON file. If not specified, reads from stdin." short:"b" type:"path"`
	Format         string `help:"Output format." short:"f" enum:"table,json" default:"table"`
	NoColor        bool   `help:"Disable ANSI colors in the report."`
	MaxValueLength int    `help:"Truncate displayed values beyond this many characters." default:"50"`
	RequestLabel   string `help:"Label for the first document." default:"REQUEST"`
	ResponseLabel  string `help:"Label for the second document." default:"RESPONSE"`
	Config         string `help:"Path to a config file. Defaults to the nearest .jsoncompare.yml." short:"c" type:"path"`
	Version        bool   `help:"Show version information." short:"v"`
	Interactive    bool   `help:"Run in interactive mode, pasting both documents on stdin." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsoncompare"),
		kong.Description("Compare two JSON documents field by field"),
		kong.UsageOnError(),
	)

	// No arguments means interactive mode, like the bare invocation
	// of the original tool.
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsoncompare version %s\n", Version)
		return
	}

	cfg, err := resolveConfig()
	if err == nil {
		err = run(&Context{Config: cfg})
	}
	if err != nil {
		var parseErr *errors.ParseError
		if stderrors.As(err, &parseErr) {
			// Malformed JSON gets the full diagnostic block instead
			// of a one-line message.
			useColor := cfg != nil && cfg.Display.Color
			fmt.Fprintln(os.Stderr, render.ParseErrorReport(parseErr, useColor))
		} else {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		}

		fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncompare --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	requestText, responseText, err := readDocuments(cfg)
	if err != nil {
		return err
	}

	report, err := compare.Documents(requestText, responseText,
		compare.WithLabels(cfg.Labels.Request, cfg.Labels.Response),
		compare.WithMaxValueLength(cfg.Display.MaxValueLength),
	)
	if err != nil {
		return err
	}

	return writeReport(cfg, report)
}

// resolveConfig loads the effective configuration: defaults, then the
// config file, then explicit CLI overrides.
func resolveConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("failed to load config '%s'", path), err)
		}
		cfg = loaded
	}

	// CLI values override the file only when they differ from the
	// flag defaults, so a config file still wins over an untouched
	// flag.
	if CLI.Format != config.FormatTable {
		cfg.Display.Format = CLI.Format
	}
	if CLI.NoColor {
		cfg.Display.Color = false
	}
	if CLI.MaxValueLength != compare.DefaultMaxValueLength {
		cfg.Display.MaxValueLength = CLI.MaxValueLength
	}
	if CLI.RequestLabel != compare.DefaultLabelA {
		cfg.Labels.Request = CLI.RequestLabel
	}
	if CLI.ResponseLabel != compare.DefaultLabelB {
		cfg.Labels.Response = CLI.ResponseLabel
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInputError("invalid configuration", err)
	}
	return cfg, nil
}

// readDocuments obtains both document texts from files or stdin.
func readDocuments(cfg *config.Config) (string, string, error) {
	if CLI.Request != "" && CLI.Response != "" {
		requestText, err := readDocumentFile(CLI.Request)
		if err != nil {
			return "", "", err
		}
		responseText, err := readDocumentFile(CLI.Response)
		if err != nil {
			return "", "", err
		}
		return requestText, responseText, nil
	}

	if CLI.Request != "" || CLI.Response != "" {
		return "", "", errors.NewInputError("both --request and --response are required when comparing files", errors.ErrNoInput)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", "", errors.NewInputError("failed to access stdin", err)
	}

	isTerminal := (stdinInfo.Mode() & os.ModeCharDevice) != 0
	if isTerminal && !CLI.Interactive {
		return "", "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return readInteractiveInput(cfg, isTerminal)
}

// readDocumentFile reads one document's raw text from a file.
func readDocumentFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", path), errors.ErrFileEmpty)
	}
	return string(data), nil
}

// readInteractiveInput reads both documents from stdin. Each document
// ends at the first blank line after content, or at EOF, so pasting
// two pretty-printed documents in sequence works at a terminal and
// through a pipe alike.
func readInteractiveInput(cfg *config.Config, prompt bool) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if prompt {
		fmt.Fprintf(os.Stderr, "Paste your %s JSON below and finish with a blank line:\n", cfg.Labels.Request)
	}
	requestText, err := readUntilBlankLine(reader)
	if err != nil {
		return "", "", err
	}

	if prompt {
		fmt.Fprintf(os.Stderr, "Paste your %s JSON below and finish with a blank line:\n", cfg.Labels.Response)
	}
	responseText, err := readUntilBlankLine(reader)
	if err != nil {
		return "", "", err
	}

	if strings.TrimSpace(requestText) == "" || strings.TrimSpace(responseText) == "" {
		return "", "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return requestText, responseText, nil
}

func readUntilBlankLine(reader *bufio.Reader) (string, error) {
	var b strings.Builder
	seenContent := false

	for {
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			seenContent = true
			b.WriteString(line)
		} else if seenContent && err == nil {
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}
	return b.String(), nil
}

// writeReport renders the report to stdout in the configured format.
func writeReport(cfg *config.Config, report *models.Report) error {
	if cfg.Display.Format == config.FormatJSON {
		renderer := &render.JSONRenderer{Indent: true}
		return renderer.Render(os.Stdout, report)
	}

	renderer := render.NewTableRenderer()
	renderer.LabelA = cfg.Labels.Request
	renderer.LabelB = cfg.Labels.Response
	renderer.Color = cfg.Display.Color
	renderer.ShowMatching = cfg.Summary.ShowMatching
	renderer.ShowDifferent = cfg.Summary.ShowDifferent
	return renderer.Render(os.Stdout, report)
}
