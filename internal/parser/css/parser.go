package css

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser extracts property declarations from CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
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
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses CSS source and extracts every declaration except custom
// properties, whose values have no fixed grammar
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	result := &ParseResult{
		Declarations: []*Declaration{},
	}
	p.walkTree(tree.RootNode(), src, result)
	return result, nil
}

// walkTree recursively walks the tree to find declarations
func (p *Parser) walkTree(node *sitter.Node, source []byte, result *ParseResult) {
	if node == nil {
		return
	}

	if node.Kind() == "declaration" {
		p.handleDeclaration(node, source, result)
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkTree(node.Child(i), source, result)
	}
}

// handleDeclaration records the property name and the source text between
// the colon and the terminating semicolon or !important
func (p *Parser) handleDeclaration(node *sitter.Node, source []byte, result *ParseResult) {
	var propertyNode, first, last *sitter.Node
	important := false
	afterColon := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		kind := child.Kind()
		switch {
		case kind == "property_name":
			propertyNode = child
		case kind == ":":
			afterColon = true
		case kind == ";":
		case kind == "important":
			important = true
		case afterColon:
			if first == nil {
				first = child
			}
			last = child
		}
	}

	if propertyNode == nil || first == nil {
		return
	}

	property := strings.ToLower(string(source[propertyNode.StartByte():propertyNode.EndByte()]))
	if strings.HasPrefix(property, "--") {
		return
	}

	start, end := first.StartPosition(), last.EndPosition()
	result.Declarations = append(result.Declarations, &Declaration{
		Property:  property,
		Value:     string(source[first.StartByte():last.EndByte()]),
		Important: important,
		Range: Range{
			Start: Position{
				Line:      uint32(start.Row),    //nolint:gosec // G115: tree-sitter positions are bounded by file size
				Character: uint32(start.Column), //nolint:gosec // G115: tree-sitter positions are bounded by file size
			},
			End: Position{
				Line:      uint32(end.Row),    //nolint:gosec // G115: tree-sitter positions are bounded by file size
				Character: uint32(end.Column), //nolint:gosec // G115: tree-sitter positions are bounded by file size
			},
		},
	})
}
