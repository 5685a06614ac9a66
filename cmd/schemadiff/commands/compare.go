package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/schemadiff/differ"
	"github.com/erraggy/schemadiff/internal/cliutil"
	"github.com/erraggy/schemadiff/internal/severity"
	"github.com/erraggy/schemadiff/parser"
)

// FailOnNone disables the failure threshold.
const FailOnNone = "none"

// CompareFlags contains flags for the compare command
type CompareFlags struct {
	Format  string
	Mode    string
	NoInfo  bool
	FailOn  string
	Verbose bool
}

// SetupCompareFlags creates and configures a FlagSet for the compare command.
// Returns the FlagSet and a CompareFlags struct with bound flag variables.
func SetupCompareFlags() (*flag.FlagSet, *CompareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &CompareFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Mode, "mode", differ.ModeAuto.String(), "comparison dialect: auto, openapi, or json")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "exclude informational changes from output")
	fs.StringVar(&flags.FailOn, "fail-on", severity.SeverityCritical.String(), "exit with status 1 when a change of this severity or higher exists: none, warning, or critical")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schemadiff compare [flags] <old> <new>\n\n")
		cliutil.Writef(fs.Output(), "Compare two versions of an OpenAPI/Swagger or JSON document and classify every change.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable text output grouped by severity\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nSeverities:\n")
		cliutil.Writef(fs.Output(), "  critical  Removed endpoints, methods, parameters, properties or keys; type changes\n")
		cliutil.Writef(fs.Output(), "  warning   New required inputs, enum changes, generic JSON type changes\n")
		cliutil.Writef(fs.Output(), "  info      Additions and value edits\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schemadiff compare api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  schemadiff compare --no-info --fail-on warning old.json new.json\n")
		cliutil.Writef(fs.Output(), "  schemadiff compare --format json api-v1.yaml api-v2.yaml | jq '.breaking'\n")
		cliutil.Writef(fs.Output(), "  cat new.json | schemadiff compare --mode json old.json -\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No change at or above the --fail-on severity\n")
		cliutil.Writef(fs.Output(), "  1    Such a change was found, or the command failed\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Documents may be JSON or YAML; use - to read one of them from stdin\n")
		cliutil.Writef(fs.Output(), "  - $ref pointers are compared as written and never resolved\n")
	}

	return fs, flags
}

// HandleCompare executes the compare command
func HandleCompare(args []string) error {
	return runCompare(args, os.Stdin, os.Stdout, os.Stderr)
}

func runCompare(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupCompareFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("compare command requires exactly two documents")
	}
	sourcePath, targetPath := fs.Arg(0), fs.Arg(1)
	if sourcePath == StdinFilePath && targetPath == StdinFilePath {
		return fmt.Errorf("only one document can be read from stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	mode, err := differ.ParseMode(flags.Mode)
	if err != nil {
		return err
	}
	threshold, failEnabled, err := parseFailOn(flags.FailOn)
	if err != nil {
		return err
	}

	logger := parser.NewSlogAdapter(newLogger(stderr, flags.Verbose))

	var source, target *parser.ParseResult
	var g errgroup.Group
	g.Go(func() error {
		var err error
		source, err = loadDocument(sourcePath, stdin, logger)
		if err != nil {
			return fmt.Errorf("loading source %s: %w", FormatSpecPath(sourcePath), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		target, err = loadDocument(targetPath, stdin, logger)
		if err != nil {
			return fmt.Errorf("loading target %s: %w", FormatSpecPath(targetPath), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d := differ.New()
	d.Mode = mode
	d.IncludeInfo = !flags.NoInfo
	d.Logger = logger
	result := d.CompareParsed(*source, *target)

	if flags.Format == FormatText {
		renderText(stdout, source, target, result)
	} else if err := OutputStructured(stdout, result, flags.Format); err != nil {
		return err
	}

	if failEnabled && result.CountAtLeast(threshold) > 0 {
		return ErrFailThreshold
	}
	return nil
}

func loadDocument(path string, stdin io.Reader, logger parser.Logger) (*parser.ParseResult, error) {
	if path == StdinFilePath {
		return parser.ParseWithOptions(
			parser.WithReader(stdin),
			parser.WithSourceName(FormatSpecPath(path)),
			parser.WithLogger(logger),
		)
	}
	return parser.ParseWithOptions(
		parser.WithFilePath(path),
		parser.WithLogger(logger),
	)
}

// parseFailOn maps the --fail-on value to a severity threshold. The boolean
// is false when failing is disabled.
func parseFailOn(value string) (severity.Severity, bool, error) {
	switch value {
	case FailOnNone:
		return 0, false, nil
	case severity.SeverityWarning.String(), severity.SeverityCritical.String():
		s, err := severity.Parse(value)
		return s, err == nil, err
	default:
		return 0, false, fmt.Errorf("invalid fail-on '%s'. Valid values: none, warning, critical", value)
	}
}
