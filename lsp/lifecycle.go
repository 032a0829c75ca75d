package lsp

import (
	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/internal/uriutil"
	"bennypowers.dev/cssval/internal/version"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	client := "unknown"
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	log.Info("initializing for client: %s", client)

	var root string
	switch {
	case params.RootURI != nil:
		root = uriutil.URIToPath(*params.RootURI)
	case params.RootPath != nil:
		root = *params.RootPath
	}
	s.mu.Lock()
	s.rootPath = root
	pinned := s.pinned
	s.mu.Unlock()

	if root != "" && !pinned {
		log.Info("workspace root: %s", root)
		cfg, err := config.LoadDir(root)
		if err == nil {
			err = s.Configure(cfg)
		}
		if err != nil {
			log.Warn("using default config: %v", err)
		}
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			HoverProvider: true,
			CodeActionProvider: protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{
					protocol.CodeActionKindQuickFix,
					codeActionKindFixAll,
				},
			},
			DocumentFormattingProvider: true,
			ColorProvider:              true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, _ *protocol.InitializedParams) error {
	log.Info("server initialized")
	s.setGLSPContext(ctx)
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	log.Info("server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return s.Close()
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	log.Info("trace level set to: %s", params.Value)
	protocol.SetTraceValue(params.Value)
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
