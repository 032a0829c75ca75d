// Command cssval parses, formats and lints CSS property values.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/cssval/internal/log"
)

const usage = `Usage: cssval <command> [options] [arguments]

Commands:
  parse <grammar> <value>     Parse a value with a named grammar and print its canonical form
  format <property> <value>   Validate a declaration value and print its canonical form
  color [-to format] <value>  Convert a colour to hex, rgb, hsl or name
  lint [options] [glob...]    Check the declarations of CSS, HTML and JS/TS files
  lsp [-config file]          Run the language server over stdio
  grammars                    List the grammar names accepted by parse
  version                     Print the version
`

// command runs one subcommand and returns the process exit code
type command func(ctx context.Context, args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"parse":    runParse,
	"format":   runFormat,
	"color":    runColor,
	"lint":     runLint,
	"lsp":      runLSP,
	"grammars": runGrammars,
	"version":  runVersion,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand. Exit codes: 0 success, 1 invalid
// values or diagnostics, 2 usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	return cmd(ctx, args[1:], stdout, stderr)
}
