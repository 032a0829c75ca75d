// Package lint validates the declarations of CSS, HTML and JS/TS sources
// against the value grammars.
package lint

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/internal/parser"
	"bennypowers.dev/cssval/internal/parser/css"
	"bennypowers.dev/cssval/internal/properties"
	"bennypowers.dev/cssval/token"
)

// Severity distinguishes invalid values from valid values that are not
// in canonical form
type Severity int

const (
	// SeverityError marks a value its property's grammar rejects
	SeverityError Severity = iota
	// SeverityHint marks a valid value whose canonical form differs
	SeverityHint
)

func (s Severity) String() string {
	if s == SeverityHint {
		return "hint"
	}
	return "error"
}

// Diagnostic is one finding in a source file
type Diagnostic struct {
	File     string
	Range    css.Range
	Property string
	Value    string
	Severity Severity
	Message  string
	// Canonical is the value's canonical form; empty for invalid values
	Canonical string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s: %s",
		d.File, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Property, d.Message)
}

// unevaluated are functions whose result is only known at computed-value
// time, so values containing them are not checked
var unevaluated = []string{"var(", "env(", "attr("}

// Linter checks declarations against a property table
type Linter struct {
	table    *properties.Table
	maxDepth int
}

// New creates a Linter from cfg
func New(cfg config.Config) (*Linter, error) {
	table, err := properties.NewTable(cfg.Properties)
	if err != nil {
		return nil, err
	}
	return &Linter{table: table, maxDepth: cfg.MaxDepth}, nil
}

// ErrUnchecked marks a value Canonicalize does not validate: its property
// has no grammar, or it uses a function resolved at computed-value time
var ErrUnchecked = errors.New("value is not checked")

// Canonicalize parses value with property's grammar and returns the
// grammar's name and the value's canonical form
func (l *Linter) Canonicalize(property, value string) (grammar, canonical string, err error) {
	g, ok := l.table.Lookup(property)
	if !ok {
		return "", "", fmt.Errorf("%s: no grammar: %w", property, ErrUnchecked)
	}
	lower := strings.ToLower(value)
	for _, fn := range unevaluated {
		if strings.Contains(lower, fn) {
			return g.Name, "", fmt.Errorf("%s: value uses %s: %w", property, fn, ErrUnchecked)
		}
	}

	list := token.Tokenize(value)
	list.SetMaxDepth(l.maxDepth)
	v, err := g.ParseList(list)
	if err != nil {
		return g.Name, "", err
	}
	return g.Name, v.String(), nil
}

// CheckDeclaration validates one declaration. It returns nil when the
// value is valid and canonical, or when the value is not checked.
func (l *Linter) CheckDeclaration(file string, d *css.Declaration) *Diagnostic {
	grammar, canonical, err := l.Canonicalize(d.Property, d.Value)
	if errors.Is(err, ErrUnchecked) {
		log.Debug("%s: skipping %v", file, err)
		return nil
	}

	diag := &Diagnostic{
		File:     file,
		Range:    d.Range,
		Property: d.Property,
		Value:    d.Value,
	}
	if err != nil {
		diag.Severity = SeverityError
		diag.Message = fmt.Sprintf("invalid %s value %q: %v", grammar, d.Value, err)
		return diag
	}

	if canonical == strings.TrimSpace(d.Value) {
		return nil
	}
	diag.Severity = SeverityHint
	diag.Canonical = canonical
	diag.Message = fmt.Sprintf("canonical form is %q", canonical)
	return diag
}

// Check validates declarations and returns the diagnostics ordered by
// position
func (l *Linter) Check(file string, decls []*css.Declaration) []Diagnostic {
	var diags []Diagnostic
	for _, d := range decls {
		if diag := l.CheckDeclaration(file, d); diag != nil {
			diags = append(diags, *diag)
		}
	}
	// html style attributes are extracted after style tags
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Range.Start.Line, b.Range.Start.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Range.Start.Character, b.Range.Start.Character)
	})
	return diags
}

// LintSource checks every declaration of a document in the given language
func (l *Linter) LintSource(file, content, languageID string) ([]Diagnostic, error) {
	result, err := parser.ParseDeclarations(content, languageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if result == nil {
		return nil, nil
	}

	diags := l.Check(file, result.Declarations)
	log.Debug("%s: %d declarations, %d diagnostics", file, len(result.Declarations), len(diags))
	return diags, nil
}

// LintFile reads and checks one file, choosing the language from its extension
func (l *Linter) LintFile(path string) ([]Diagnostic, error) {
	languageID, ok := parser.LanguageForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}
	content, err := os.ReadFile(path) //nolint:gosec // G304: linting user-selected files
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.LintSource(path, string(content), languageID)
}
