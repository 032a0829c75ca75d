package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"bennypowers.dev/cssval/internal/color"
	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/lint"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/internal/properties"
	"bennypowers.dev/cssval/internal/version"
	"bennypowers.dev/cssval/lsp"
	"bennypowers.dev/cssval/value"
)

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cssval %s [options] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// loadConfig loads the -config file, or the config file in dir, and
// applies its log level. A non-empty level flag overrides the file.
func loadConfig(path, dir, level string) (config.Config, error) {
	var cfg config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDir(dir)
	}
	if err != nil {
		return cfg, err
	}
	if level != "" {
		cfg.LogLevel = level
	}
	l, err := cfg.Level()
	if err != nil {
		return cfg, err
	}
	log.SetLevel(l)
	return cfg, nil
}

func runParse(_ context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("parse", "<grammar> <value>", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 2
	}

	g, ok := properties.GrammarByName(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "error: unknown grammar %q, want one of %s\n", fs.Arg(0), strings.Join(properties.Grammars(), ", "))
		return 2
	}
	v, err := g.Parse(strings.Join(fs.Args()[1:], " "))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, v)
	return 0
}

func runFormat(_ context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("format", "<property> <value>", stderr)
	configPath := fs.String("config", "", "Config file (default: .cssval.{yaml,yml,json,jsonc} in the working directory)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath, ".", "")
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	table, err := properties.NewTable(cfg.Properties)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	property := fs.Arg(0)
	g, ok := table.Lookup(property)
	if !ok {
		fmt.Fprintf(stderr, "error: no grammar for property %q\n", property)
		return 1
	}
	v, err := g.Parse(strings.Join(fs.Args()[1:], " "))
	if err != nil {
		fmt.Fprintf(stderr, "error: %s: %v\n", property, err)
		return 1
	}
	fmt.Fprintf(stdout, "%s: %s\n", strings.ToLower(property), v)
	return 0
}

func runColor(_ context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("color", "<value>", stderr)
	to := fs.String("to", "hex", "Target notation: hex, rgb, hsl or name")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	format, err := color.ParseFormat(*to)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	c, err := value.ParseColor().ParseToEnd(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	converted, err := color.Convert(c, format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, converted)
	return 0
}

// jsonDiagnostic is the -format json rendering of a lint.Diagnostic
type jsonDiagnostic struct {
	File      string `json:"file"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"endLine"`
	EndColumn uint32 `json:"endColumn"`
	Severity  string `json:"severity"`
	Property  string `json:"property"`
	Value     string `json:"value"`
	Message   string `json:"message"`
	Canonical string `json:"canonical,omitempty"`
}

func runLint(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("lint", "[glob...]", stderr)
	configPath := fs.String("config", "", "Config file (default: .cssval.{yaml,yml,json,jsonc} in the root)")
	root := fs.String("root", ".", "Directory globs are relative to")
	hints := fs.Bool("hints", false, "Also report valid values that are not in canonical form")
	format := fs.String("format", "text", "Output format: text or json")
	level := fs.String("log-level", "", "Log level: debug, info, warn or error (overrides the config file)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "error: unknown format %q\n", *format)
		return 2
	}

	cfg, err := loadConfig(*configPath, *root, *level)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	diags, err := lint.Run(ctx, cfg, *root, fs.Args()...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	errors := 0
	var shown []lint.Diagnostic
	for _, d := range diags {
		if d.Severity == lint.SeverityError {
			errors++
		} else if !*hints {
			continue
		}
		shown = append(shown, d)
	}

	if *format == "json" {
		out := make([]jsonDiagnostic, 0, len(shown))
		for _, d := range shown {
			out = append(out, jsonDiagnostic{
				File:      d.File,
				Line:      d.Range.Start.Line + 1,
				Column:    d.Range.Start.Character + 1,
				EndLine:   d.Range.End.Line + 1,
				EndColumn: d.Range.End.Character + 1,
				Severity:  d.Severity.String(),
				Property:  d.Property,
				Value:     d.Value,
				Message:   d.Message,
				Canonical: d.Canonical,
			})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
	} else {
		for _, d := range shown {
			fmt.Fprintln(stdout, d)
		}
	}

	log.Info("%d errors, %d diagnostics", errors, len(diags))
	if errors > 0 {
		return 1
	}
	return 0
}

func runLSP(_ context.Context, args []string, _, stderr io.Writer) int {
	fs := newFlagSet("lsp", "", stderr)
	configPath := fs.String("config", "", "Config file (default: .cssval.{yaml,yml,json,jsonc} in the workspace root)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var pinned *config.Config
	if *configPath != "" {
		cfg, err := loadConfig(*configPath, "", "")
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
		pinned = &cfg
	}

	server, err := lsp.NewServer(pinned)
	if err != nil {
		log.Error("failed to create language server: %v", err)
		return 1
	}
	defer func() { _ = server.Close() }()

	if err := server.RunStdio(); err != nil {
		log.Error("server error: %v", err)
		return 1
	}
	return 0
}

func runGrammars(_ context.Context, _ []string, stdout, _ io.Writer) int {
	for _, name := range properties.Grammars() {
		fmt.Fprintln(stdout, name)
	}
	return 0
}

func runVersion(_ context.Context, _ []string, stdout, _ io.Writer) int {
	fmt.Fprintf(stdout, "cssval %s\n", version.GetFullVersion())
	return 0
}
