package lsp

import (
	"bennypowers.dev/cssval/internal/color"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/value"
	"github.com/mazznoer/csscolorparser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// presentations are the notations offered by colorPresentation, in order
var presentations = []color.Format{color.Hex, color.RGB, color.HSL, color.Name}

func (s *Server) documentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	decls, err := doc.Declarations()
	if err != nil {
		return nil, err
	}

	lines := doc.Lines()
	linter := s.currentLinter()
	colors := []protocol.ColorInformation{}
	for _, d := range decls {
		if grammar, _, err := linter.Canonicalize(d.Property, d.Value); err != nil || grammar != "color" {
			continue
		}
		c, err := value.ParseColor().ParseToEnd(d.Value)
		if err != nil {
			// css-wide keywords and the like
			continue
		}
		resolved, err := value.ResolveColor(c)
		if err != nil {
			log.Debug("no swatch for %s: %v", d.Value, err)
			continue
		}
		colors = append(colors, protocol.ColorInformation{
			Range: toRange(lines, d.Range),
			Color: protocol.Color{
				Red:   protocol.Decimal(resolved.R),
				Green: protocol.Decimal(resolved.G),
				Blue:  protocol.Decimal(resolved.B),
				Alpha: protocol.Decimal(resolved.A),
			},
		})
	}
	return colors, nil
}

func (s *Server) colorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	picked := csscolorparser.Color{
		R: float64(params.Color.Red),
		G: float64(params.Color.Green),
		B: float64(params.Color.Blue),
		A: float64(params.Color.Alpha),
	}
	c, err := value.ParseColor().ParseToEnd(picked.HexString())
	if err != nil {
		return nil, err
	}

	var result []protocol.ColorPresentation
	for _, f := range presentations {
		converted, err := color.Convert(c, f)
		if err != nil {
			// most colours have no name
			continue
		}
		label := converted.String()
		result = append(result, protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: label},
		})
	}
	return result, nil
}
