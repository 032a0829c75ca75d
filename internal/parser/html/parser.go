package html

import (
	"fmt"
	"sync"

	"bennypowers.dev/cssval/internal/parser/css"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser finds the CSS inside HTML documents
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// ParseCSSRegions extracts CSS regions from HTML source
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []CSSRegion

	// Find <style> tag contents
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(p.styleQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			content := string(sourceBytes[node.StartByte():node.EndByte()])
			regions = append(regions, CSSRegion{
				Content:   content,
				StartLine: node.StartPosition().Row,
				StartCol:  node.StartPosition().Column,
				Type:      StyleTag,
			})
		}
	}

	// Find style="..." attribute values
	cursor2 := sitter.NewQueryCursor()
	defer cursor2.Close()

	attrMatches := cursor2.Matches(p.attrQuery, root, sourceBytes)
	for match := attrMatches.Next(); match != nil; match = attrMatches.Next() {
		for _, capture := range match.Captures {
			captureName := p.attrQuery.CaptureNames()[capture.Index]
			if captureName != "attr_value" {
				continue
			}
			node := capture.Node
			content := string(sourceBytes[node.StartByte():node.EndByte()])
			regions = append(regions, CSSRegion{
				Content:   content,
				StartLine: node.StartPosition().Row,
				StartCol:  node.StartPosition().Column,
				Type:      StyleAttribute,
			})
		}
	}

	return regions
}

// ParseCSS extracts the declarations of every style region, with ranges
// in HTML document coordinates
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := &css.ParseResult{
		Declarations: []*css.Declaration{},
	}
	regions := p.ParseCSSRegions(source)
	if len(regions) == 0 {
		return result, nil
	}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, region := range regions {
		switch region.Type {
		case StyleTag:
			parsed, err := cssParser.Parse(region.Content)
			if err != nil {
				continue
			}
			for _, d := range parsed.Declarations {
				d.Range = offsetRange(d.Range, region)
			}
			result.Declarations = append(result.Declarations, parsed.Declarations...)

		case StyleAttribute:
			parsed, err := parseStyleAttribute(cssParser, region)
			if err != nil {
				continue
			}
			result.Declarations = append(result.Declarations, parsed.Declarations...)
		}
	}

	return result, nil
}

// offsetRange adjusts a CSS range to account for the region's position in the HTML document
func offsetRange(r css.Range, region CSSRegion) css.Range {
	r.Start = offsetPosition(r.Start, region)
	r.End = offsetPosition(r.End, region)
	return r
}

// offsetPosition moves a position in region content to HTML coordinates.
// Only the first line of the region is offset horizontally.
func offsetPosition(pos css.Position, region CSSRegion) css.Position {
	if pos.Line == 0 {
		pos.Character += uint32(region.StartCol) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	}
	pos.Line += uint32(region.StartLine) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	return pos
}

// parseStyleAttribute parses the declarations of a style attribute value.
// The content is wrapped in "x{...}" to make it a rule.
func parseStyleAttribute(cssParser *css.Parser, region CSSRegion) (*css.ParseResult, error) {
	wrapped := "x{" + region.Content + "}"
	parsed, err := cssParser.Parse(wrapped)
	if err != nil {
		return nil, err
	}

	for _, d := range parsed.Declarations {
		d.Range = adjustAttributeRange(d.Range, region)
	}

	return parsed, nil
}

// adjustAttributeRange adjusts positions from the wrapped CSS back to the HTML document
func adjustAttributeRange(r css.Range, region CSSRegion) css.Range {
	r.Start = adjustAttributePosition(r.Start, region)
	r.End = adjustAttributePosition(r.End, region)
	return r
}

// adjustAttributePosition maps a position in the wrapped rule back to the
// HTML document. The "x{" wrapper shifts line 0 by two columns.
func adjustAttributePosition(pos css.Position, region CSSRegion) css.Position {
	if pos.Line == 0 {
		col := uint32(region.StartCol) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
		if pos.Character >= 2 {
			col += pos.Character - 2
		}
		pos.Character = col
	}
	pos.Line += uint32(region.StartLine) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	return pos
}
