package lsp

import (
	"path/filepath"
	"sync"
	"testing"

	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/uriutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///workspace/card.css"

const card = `p {
  border-radius: 4px 4px;
  opacity: 10px;
  display: grid;
}`

// recorder captures the notifications a server sends its client
type recorder struct {
	mu    sync.Mutex
	notes []notification
}

type notification struct {
	method string
	params any
}

func (r *recorder) notify(method string, params any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notification{method, params})
}

// published returns the diagnostics notifications in order
func (r *recorder) published() []protocol.PublishDiagnosticsParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []protocol.PublishDiagnosticsParams
	for _, n := range r.notes {
		if n.method == protocol.ServerTextDocumentPublishDiagnostics {
			out = append(out, n.params.(protocol.PublishDiagnosticsParams))
		}
	}
	return out
}

func newTestServer(t *testing.T) (*Server, *glsp.Context, *recorder) {
	t.Helper()
	s, err := NewServer(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	rec := &recorder{}
	return s, &glsp.Context{Notify: rec.notify}, rec
}

func open(t *testing.T, s *Server, ctx *glsp.Context, uri, languageID, text string) {
	t.Helper()
	require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: languageID, Version: 1, Text: text},
	}))
}

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{Start: pos(startLine, startChar), End: pos(endLine, endChar)}
}

func TestInitialize(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("testdata", "workspace"))
	require.NoError(t, err)

	t.Run("workspace config", func(t *testing.T) {
		s, ctx, _ := newTestServer(t)
		rootURI := uriutil.PathToURI(root)

		result, err := s.initialize(ctx, &protocol.InitializeParams{RootURI: &rootURI})
		require.NoError(t, err)

		res, ok := result.(protocol.InitializeResult)
		require.True(t, ok)
		assert.Equal(t, Name, res.ServerInfo.Name)
		assert.Equal(t, true, res.Capabilities.HoverProvider)
		assert.Equal(t, true, res.Capabilities.ColorProvider)

		assert.Equal(t, root, s.RootPath())
		assert.Equal(t, map[string]string{"gap": "length"}, s.Config().Properties)
		_, _, err = s.currentLinter().Canonicalize("gap", "10%")
		assert.Error(t, err, "the workspace maps gap to <length>")
	})

	t.Run("root path", func(t *testing.T) {
		s, ctx, _ := newTestServer(t)
		_, err := s.initialize(ctx, &protocol.InitializeParams{RootPath: &root})
		require.NoError(t, err)
		assert.Equal(t, "warn", s.Config().LogLevel)
	})

	t.Run("broken workspace config keeps defaults", func(t *testing.T) {
		s, ctx, _ := newTestServer(t)
		broken := filepath.Join(root, "broken")
		_, err := s.initialize(ctx, &protocol.InitializeParams{RootPath: &broken})
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), s.Config())
	})

	t.Run("pinned config ignores the workspace", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "error"
		s, err := NewServer(&cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		_, err = s.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
		require.NoError(t, err)
		assert.Equal(t, cfg, s.Config())
	})

	t.Run("invalid pinned config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Properties = map[string]string{"gap": "spacing"}
		_, err := NewServer(&cfg)
		assert.Error(t, err)
	})
}

func TestInitializedStoresContext(t *testing.T) {
	s, ctx, rec := newTestServer(t)
	require.NoError(t, s.initialized(ctx, &protocol.InitializedParams{}))

	// notifications without a request context go to the stored one
	open(t, s, nil, uri, "css", card)
	assert.Len(t, rec.published(), 1)
}

func TestDocumentSync(t *testing.T) {
	s, ctx, rec := newTestServer(t)

	open(t, s, ctx, uri, "css", card)
	published := rec.published()
	require.Len(t, published, 1)
	assert.Equal(t, uri, published[0].URI)
	require.NotNil(t, published[0].Version)
	assert.Equal(t, protocol.UInteger(1), *published[0].Version)

	diags := published[0].Diagnostics
	require.Len(t, diags, 2)

	assert.Equal(t, rng(1, 17, 1, 24), diags[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityHint, *diags[0].Severity)
	assert.Equal(t, CodeNonCanonical, diags[0].Code.Value)
	assert.Equal(t, Name, *diags[0].Source)
	assert.Contains(t, diags[0].Message, `canonical form is "4px"`)

	assert.Equal(t, rng(2, 11, 2, 15), diags[1].Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[1].Severity)
	assert.Equal(t, CodeInvalidValue, diags[1].Code.Value)
	assert.Contains(t, diags[1].Message, "opacity: invalid alpha-value value")

	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{Start: pos(1, 17), End: pos(1, 24)}, Text: "4px"}},
	}))
	published = rec.published()
	require.Len(t, published, 2)
	assert.Equal(t, protocol.UInteger(2), *published[1].Version)
	require.Len(t, published[1].Diagnostics, 1)
	assert.Equal(t, CodeInvalidValue, published[1].Diagnostics[0].Code.Value)

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Nil(t, s.Document(uri))
	published = rec.published()
	require.Len(t, published, 3)
	assert.Empty(t, published[2].Diagnostics)
	assert.NotNil(t, published[2].Diagnostics, "an empty list clears the client's diagnostics")

	assert.Error(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
}

func TestDiagnosticsUseUTF16Columns(t *testing.T) {
	s, ctx, rec := newTestServer(t)

	open(t, s, ctx, uri, "css", `a { content: "👍"; color: RED; }`)
	diags := rec.published()[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, rng(0, 26, 0, 29), diags[0].Range)
}

func TestDiagnosticsOfHTML(t *testing.T) {
	s, ctx, rec := newTestServer(t)

	open(t, s, ctx, "file:///workspace/page.html", "html", `<p style="opacity: 2"></p>`)
	diags := rec.published()[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, rng(0, 19, 0, 20), diags[0].Range)

	_, err := s.Diagnostics("file:///workspace/missing.css")
	assert.Error(t, err)
}
