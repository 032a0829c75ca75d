package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/cssval/internal/parser"
	"bennypowers.dev/cssval/internal/parser/css"
	"bennypowers.dev/cssval/internal/position"
)

// Document is an open text document. Its declarations are parsed on
// first use and dropped when the content changes.
type Document struct {
	uri        string
	languageID string

	mu      sync.Mutex
	content string
	version int
	parsed  *css.ParseResult
	lines   position.Lines
}

// NewDocument creates a document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// SetContent replaces the content. Updates older than the current
// version are rejected.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.parsed = nil
	d.lines = nil
	return nil
}

// Declarations returns the CSS declarations in the document. Languages
// without CSS yield an empty result.
func (d *Document) Declarations() ([]*css.Declaration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.parsed == nil {
		result, err := parser.ParseDeclarations(d.content, d.languageID)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = &css.ParseResult{}
		}
		d.parsed = result
	}
	return d.parsed.Declarations, nil
}

// Lines returns the document split into lines
func (d *Document) Lines() position.Lines {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lines == nil {
		d.lines = position.NewLines(d.content)
	}
	return d.lines
}
