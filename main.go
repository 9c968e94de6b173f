// swaglint checks that NestJS controllers and DTOs carry complete Swagger
// documentation decorators.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phobologic/swaglint/internal/analyzer"
	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/ranking"
	"github.com/phobologic/swaglint/internal/report"
)

var version = "dev"

// errViolations makes the process exit non-zero without printing an error.
var errViolations = errors.New("documentation problems found")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

type lintOptions struct {
	configPath  string
	pattern     string
	format      string
	sets        []string
	quiet       bool
	verbose     bool
	maxFiles    int
	file        string
	kinds       []string
	maxFileSize int64
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "swaglint [flags] [root]",
		Short: "Lint Swagger documentation decorators in NestJS projects",
		Long: `Static checker for NestJS controllers and DTOs.

Every endpoint method needs an operation decorator with a summary and a
description, every path parameter a matching parameter decorator, and every
field of a body or query type a property decorator. Rules and decorator names
come from the embedded defaults, merged with .swautomaterc when present.`,
		Example: `  # Lint the current directory
  swaglint

  # Lint another project and print JSON
  swaglint -f json ./services/users

  # Only the five files with most problems, path parameters only
  swaglint -n 5 --kind ParamError

  # Disable example checks on request bodies
  swaglint --set scopes.endpoint.payload.example.check=false`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runLint(cmd, root, opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default ./"+config.DefaultFile+" when present)")
	f.StringVarP(&opts.pattern, "pattern", "p", "", "Glob selecting files to lint, overrides scopes.file.pathPattern")
	f.StringVarP(&opts.format, "format", "f", string(report.Text), "Output format (text|toon|json)")
	f.StringArrayVar(&opts.sets, "set", nil, "Override a configuration key, e.g. scopes.endpoint.params.check=false")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not echo diagnostics while linting")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	f.IntVarP(&opts.maxFiles, "max-files", "n", 0, "Report only the files with most problems")
	f.StringVar(&opts.file, "file", "", "Report only files whose path contains this text")
	f.StringArrayVar(&opts.kinds, "kind", nil, "Report only this diagnostic kind (repeatable)")
	f.Int64Var(&opts.maxFileSize, "max-file-size", analyzer.DefaultMaxFileSize, "Skip files larger than this many bytes")

	cmd.AddCommand(newInitCommand())
	return cmd
}

func runLint(cmd *cobra.Command, root string, opts *lintOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(opts.kinds)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := config.Load(config.Options{Path: opts.configPath, Dir: ".", Sets: opts.sets})
	if err != nil {
		return err
	}

	a, err := analyzer.New(cmd.Context(), cfg, analyzer.Options{
		Root:        root,
		Pattern:     opts.pattern,
		MaxFileSize: opts.maxFileSize,
		Interactive: !opts.quiet,
		Out:         cmd.ErrOrStderr(),
		Logger:      &logger,
	})
	if err != nil {
		return err
	}

	state, err := a.Run(cmd.Context())
	if err != nil {
		return err
	}

	if len(kinds) > 0 {
		state = ranking.FilterByKind(state, kinds...)
	}
	if opts.file != "" {
		state = ranking.FilterByFile(state, opts.file)
	}
	if opts.maxFiles > 0 {
		state = ranking.SelectFiles(state, opts.maxFiles)
	}

	if err := report.Write(cmd.OutOrStdout(), format, a.Root(), state); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if state.Count() > 0 {
		return errViolations
	}
	return nil
}

func parseKinds(names []string) ([]model.Kind, error) {
	var kinds []model.Kind
	for _, name := range names {
		k, ok := lookupKind(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown kind %q (must be one of: %s, %s, %s)",
				name, model.InformationError, model.ParamError, model.PropertyError)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func lookupKind(name string) (model.Kind, bool) {
	for _, k := range model.Kinds {
		if strings.EqualFold(name, string(k)) {
			return k, true
		}
	}
	return "", false
}

// newLogger writes human readable records to w, coloured only on a terminal.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}
