package lsp

import (
	"bennypowers.dev/cssval/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debug("opened %s (language: %s, version: %d)", item.URI, item.LanguageID, item.Version)

	s.documents.DidOpen(item.URI, item.LanguageID, int(item.Version), item.Text)
	s.publish(ctx, item.URI)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("changed %s (version: %d, changes: %d)", uri, params.TextDocument.Version, len(params.ContentChanges))

	if _, err := s.documents.DidChange(uri, int(params.TextDocument.Version), params.ContentChanges); err != nil {
		return err
	}
	s.publish(ctx, uri)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("closed %s", uri)

	if err := s.documents.DidClose(uri); err != nil {
		return err
	}
	// clear the client's diagnostics for the closed document
	if ctx = s.notifier(ctx); ctx != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// notifier picks the request's context, else the one stored at
// initialized. It returns nil when neither can notify.
func (s *Server) notifier(ctx *glsp.Context) *glsp.Context {
	if ctx == nil || ctx.Notify == nil {
		ctx = s.glspContext()
	}
	if ctx == nil || ctx.Notify == nil {
		return nil
	}
	return ctx
}

// publish pushes the diagnostics of an open document to the client
func (s *Server) publish(ctx *glsp.Context, uri string) {
	if ctx = s.notifier(ctx); ctx == nil {
		log.Debug("not publishing diagnostics for %s: no client context", uri)
		return
	}
	doc := s.Document(uri)
	if doc == nil {
		return
	}
	diagnostics, err := s.Diagnostics(uri)
	if err != nil {
		logError(ctx, "diagnostics for %s: %v", uri, err)
		return
	}
	version := protocol.UInteger(doc.Version()) //nolint:gosec // G115: versions come from the client as uintegers
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}
