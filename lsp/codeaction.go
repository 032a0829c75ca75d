package lsp

import (
	"fmt"
	"strings"

	"bennypowers.dev/cssval/internal/documents"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const codeActionKindFixAll protocol.CodeActionKind = "source.fixAll"

// canonicalEdit rewrites one non-canonical value
type canonicalEdit struct {
	edit      protocol.TextEdit
	property  string
	canonical string
}

// canonicalEdits returns an edit for every valid value of doc that is not
// in canonical form
func (s *Server) canonicalEdits(doc *documents.Document) ([]canonicalEdit, error) {
	found, err := s.check(doc)
	if err != nil {
		return nil, err
	}
	lines := doc.Lines()
	var edits []canonicalEdit
	for _, d := range found {
		if d.Canonical == "" {
			continue
		}
		edits = append(edits, canonicalEdit{
			edit:      protocol.TextEdit{Range: toRange(lines, d.Range), NewText: d.Canonical},
			property:  d.Property,
			canonical: d.Canonical,
		})
	}
	return edits, nil
}

func (s *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	doc := s.Document(uri)
	if doc == nil {
		return nil, nil
	}
	edits, err := s.canonicalEdits(doc)
	if err != nil {
		return nil, err
	}

	only := params.Context.Only
	actions := []protocol.CodeAction{}
	var all []protocol.TextEdit
	for _, e := range edits {
		all = append(all, e.edit)
		if !wants(only, protocol.CodeActionKindQuickFix) || !rangesTouch(params.Range, e.edit.Range) {
			continue
		}
		kind := protocol.CodeActionKindQuickFix
		actions = append(actions, protocol.CodeAction{
			Title:       fmt.Sprintf("Rewrite %s as %s", e.property, e.canonical),
			Kind:        &kind,
			Diagnostics: matchingDiagnostics(params.Context.Diagnostics, e.edit.Range),
			IsPreferred: boolPtr(true),
			Edit: &protocol.WorkspaceEdit{
				Changes: map[string][]protocol.TextEdit{uri: {e.edit}},
			},
		})
	}

	if len(all) > 0 && wants(only, codeActionKindFixAll) {
		kind := codeActionKindFixAll
		actions = append(actions, protocol.CodeAction{
			Title: "Rewrite all values in canonical form",
			Kind:  &kind,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[string][]protocol.TextEdit{uri: all},
			},
		})
	}
	return actions, nil
}

func (s *Server) formatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	edits, err := s.canonicalEdits(doc)
	if err != nil {
		return nil, err
	}
	result := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		result = append(result, e.edit)
	}
	return result, nil
}

// wants reports whether a client's "only" filter admits kind. Kinds are
// hierarchical, so "source" admits "source.fixAll".
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(string(kind), string(o)+".") {
			return true
		}
	}
	return false
}

// matchingDiagnostics picks the client's non-canonical diagnostics for r
func matchingDiagnostics(diagnostics []protocol.Diagnostic, r protocol.Range) []protocol.Diagnostic {
	var matched []protocol.Diagnostic
	for _, d := range diagnostics {
		if d.Range != r || d.Source == nil || *d.Source != Name {
			continue
		}
		if d.Code != nil && d.Code.Value != CodeNonCanonical {
			continue
		}
		matched = append(matched, d)
	}
	return matched
}
