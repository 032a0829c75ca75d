package documents

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"bennypowers.dev/cssval/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager tracks the documents a client has open
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// URIs returns the URIs of the open documents, sorted
func (m *Manager) URIs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.documents))
}

// DidOpen tracks a newly opened document, replacing any previous one
// with the same URI
func (m *Manager) DidOpen(uri, languageID string, version int, content string) *Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := NewDocument(uri, languageID, version, content)
	m.documents[uri] = doc
	return doc
}

// DidClose stops tracking a document
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange applies content changes in order. Each change is either a
// protocol.TextDocumentContentChangeEvent or a
// protocol.TextDocumentContentChangeEventWhole, as glsp decodes them.
func (m *Manager) DidChange(uri string, version int, changes []any) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		var err error
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				content = c.Text
				continue
			}
			content, err = applyIncrementalChange(content, *c.Range, c.Text)
		default:
			err = fmt.Errorf("unsupported content change %T", change)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	if err := doc.SetContent(content, version); err != nil {
		return nil, fmt.Errorf("failed to set document content: %w", err)
	}
	return doc, nil
}

// applyIncrementalChange replaces the UTF-16 range r of content with text
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	start, err := byteOffset(content, r.Start)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	end, err := byteOffset(content, r.End)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}

// byteOffset converts an LSP position to an offset into content. Columns
// past the end of a line clamp to the line end; the line after the last
// one addresses the end of the content.
func byteOffset(content string, pos protocol.Position) (int, error) {
	offset := 0
	for n := range pos.Line {
		i := strings.IndexByte(content[offset:], '\n')
		if i < 0 && n == pos.Line-1 {
			return len(content), nil
		}
		if i < 0 {
			return 0, fmt.Errorf("line %d out of bounds (total lines: %d)", pos.Line, strings.Count(content, "\n")+1)
		}
		offset += i + 1
	}
	line := content[offset:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return offset + position.UTF16ToByteOffset(line, int(pos.Character)), nil
}
