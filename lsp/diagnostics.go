package lsp

import (
	"fmt"

	"bennypowers.dev/cssval/internal/documents"
	"bennypowers.dev/cssval/internal/lint"
	"bennypowers.dev/cssval/internal/parser/css"
	"bennypowers.dev/cssval/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostic codes
const (
	CodeInvalidValue = "invalid-value"
	CodeNonCanonical = "non-canonical"
)

// Diagnostics checks the declarations of an open document
func (s *Server) Diagnostics(uri string) ([]protocol.Diagnostic, error) {
	doc := s.Document(uri)
	if doc == nil {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	found, err := s.check(doc)
	if err != nil {
		return nil, err
	}

	lines := doc.Lines()
	diagnostics := make([]protocol.Diagnostic, 0, len(found))
	for _, d := range found {
		diagnostics = append(diagnostics, toDiagnostic(lines, d))
	}
	return diagnostics, nil
}

func (s *Server) check(doc *documents.Document) ([]lint.Diagnostic, error) {
	decls, err := doc.Declarations()
	if err != nil {
		return nil, err
	}
	return s.currentLinter().Check(doc.URI(), decls), nil
}

func toDiagnostic(lines position.Lines, d lint.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	code := CodeInvalidValue
	if d.Severity == lint.SeverityHint {
		severity = protocol.DiagnosticSeverityHint
		code = CodeNonCanonical
	}
	source := Name
	return protocol.Diagnostic{
		Range:    toRange(lines, d.Range),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &source,
		Message:  d.Property + ": " + d.Message,
	}
}

// toRange converts a tree-sitter byte range to UTF-16 columns
func toRange(lines position.Lines, r css.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: r.Start.Line, Character: lines.ToUTF16(r.Start.Line, r.Start.Character)},
		End:   protocol.Position{Line: r.End.Line, Character: lines.ToUTF16(r.End.Line, r.End.Character)},
	}
}

// toByte converts a client position to a tree-sitter byte position
func toByte(lines position.Lines, p protocol.Position) css.Position {
	return css.Position{Line: p.Line, Character: lines.ToByte(p.Line, p.Character)}
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// rangesTouch reports whether two ranges overlap or meet, so an empty
// cursor range at either end of a value still selects it
func rangesTouch(a, b protocol.Range) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}

// contains reports whether p lies within r, ends included
func contains(r css.Range, p css.Position) bool {
	afterStart := p.Line > r.Start.Line || (p.Line == r.Start.Line && p.Character >= r.Start.Character)
	beforeEnd := p.Line < r.End.Line || (p.Line == r.End.Line && p.Character <= r.End.Character)
	return afterStart && beforeEnd
}
