package lsp

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/cssval/internal/lint"
	"bennypowers.dev/cssval/internal/parser/css"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	decls, err := doc.Declarations()
	if err != nil {
		return nil, err
	}

	lines := doc.Lines()
	decl := declarationAt(decls, toByte(lines, params.Position))
	if decl == nil {
		return nil, nil
	}
	content, ok := s.describe(decl)
	if !ok {
		return nil, nil
	}

	r := toRange(lines, decl.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &r,
	}, nil
}

// declarationAt finds the declaration whose value contains p
func declarationAt(decls []*css.Declaration, p css.Position) *css.Declaration {
	for _, d := range decls {
		if contains(d.Range, p) {
			return d
		}
	}
	return nil
}

// describe renders the hover markdown for a declaration. It reports false
// for properties without a grammar.
func (s *Server) describe(d *css.Declaration) (string, bool) {
	grammar, canonical, err := s.currentLinter().Canonicalize(d.Property, d.Value)
	if grammar == "" {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**: `<%s>`\n\n", d.Property, grammar)
	switch {
	case errors.Is(err, lint.ErrUnchecked):
		b.WriteString("Not checked: the value is resolved at computed-value time.")
	case err != nil:
		fmt.Fprintf(&b, "Invalid: %v", err)
	case canonical == strings.TrimSpace(d.Value):
		fmt.Fprintf(&b, "Canonical: `%s`", canonical)
	default:
		fmt.Fprintf(&b, "Canonical form: `%s`", canonical)
	}
	return b.String(), true
}
