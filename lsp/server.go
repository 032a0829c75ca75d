// Package lsp reports invalid and non-canonical CSS values to editors
// over the Language Server Protocol.
package lsp

import (
	"sync"

	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/documents"
	"bennypowers.dev/cssval/internal/lint"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/internal/parser/css"
	"bennypowers.dev/cssval/internal/parser/html"
	"bennypowers.dev/cssval/internal/parser/js"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Name identifies the server to clients
const Name = "cssval"

// Server is the cssval language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server

	mu       sync.RWMutex // protects the fields below
	context  *glsp.Context
	rootPath string
	pinned   bool // config came from the command line, not the workspace
	cfg      config.Config
	linter   *lint.Linter
}

// NewServer creates a language server. A nil cfg means the config is
// read from the workspace root when the client initializes.
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{documents: documents.NewManager()}

	initial := config.DefaultConfig()
	if cfg != nil {
		initial = *cfg
		s.pinned = true
	}
	if err := s.Configure(initial); err != nil {
		return nil, err
	}

	handler := protocol.Handler{
		Initialize:                    method("initialize", s.initialize),
		Initialized:                   notify("initialized", s.initialized),
		Shutdown:                      noParam("shutdown", s.shutdown),
		SetTrace:                      notify("$/setTrace", s.setTrace),
		TextDocumentDidOpen:           notify("textDocument/didOpen", s.didOpen),
		TextDocumentDidChange:         notify("textDocument/didChange", s.didChange),
		TextDocumentDidClose:          notify("textDocument/didClose", s.didClose),
		TextDocumentHover:             method("textDocument/hover", s.hover),
		TextDocumentCodeAction:        method("textDocument/codeAction", s.codeAction),
		TextDocumentFormatting:        method("textDocument/formatting", s.formatting),
		TextDocumentColor:             method("textDocument/documentColor", s.documentColor),
		TextDocumentColorPresentation: method("textDocument/colorPresentation", s.colorPresentation),
	}
	s.glspServer = server.NewServer(&handler, Name, false)

	return s, nil
}

// RunStdio serves a client over stdin and stdout
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the pooled tree-sitter parsers
func (s *Server) Close() error {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
	return nil
}

// Configure replaces the config and rebuilds the linter from it. On error
// the previous config stays in effect.
func (s *Server) Configure(cfg config.Config) error {
	linter, err := lint.New(cfg)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.linter = linter
	return nil
}

// Config returns the config in effect
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) currentLinter() *lint.Linter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linter
}

// RootPath returns the workspace root, if the client sent one
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

func (s *Server) glspContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

func (s *Server) setGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// Document returns the open document with the given URI, or nil
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}
