package server

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/i18n"
	"github.com/ballerina-platform/ballerinalsw/internal/util"
)

// See https://microsoft.github.io/language-server-protocol/specifications/specification-3-16#textDocument_didOpen
func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := newDocument(item.URI, item.Version, []byte(item.Text), s.logger)
	s.putDocument(doc)
	s.logger.Debug("document opened", zap.String("uri", item.URI), zap.Int("length", len(item.Text)))
	s.publishDiagnostics(ctx, doc)
	return nil
}

// See https://microsoft.github.io/language-server-protocol/specifications/specification-3-16#textDocument_didChange
func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	var content []byte
	if doc, ok := s.getDocument(uri); ok {
		content = doc.content
	}
	content, err := applyChanges(content, params.ContentChanges)
	if err != nil {
		return errors.Wrapf(err, "failed to apply changes to %s", uri)
	}

	doc := newDocument(uri, params.TextDocument.Version, content, s.logger)
	s.putDocument(doc)
	s.logger.Debug("document changed", zap.String("uri", uri), zap.Int("changes", len(params.ContentChanges)))
	s.publishDiagnostics(ctx, doc)
	return nil
}

// See https://microsoft.github.io/language-server-protocol/specifications/specification-3-16#textDocument_didClose
func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.removeDocument(uri)
	s.logger.Debug("document closed", zap.String("uri", uri))
	notify(ctx, &protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: []protocol.Diagnostic{}})
	return nil
}

// applyChanges applies content changes in order. A whole-document change
// replaces the content; a ranged change replaces the bytes of its range.
func applyChanges(content []byte, changes []any) ([]byte, error) {
	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = []byte(change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				content = []byte(change.Text)
				continue
			}
			start := positionOffset(content, change.Range.Start)
			end := positionOffset(content, change.Range.End)
			if end < start {
				return nil, errors.Newf("invalid range %v", *change.Range)
			}
			var buf bytes.Buffer
			buf.Grow(len(content) - (end - start) + len(change.Text))
			buf.Write(content[:start])
			buf.WriteString(change.Text)
			buf.Write(content[end:])
			content = buf.Bytes()
		default:
			return nil, errors.AssertionFailedf("unexpected content change %T", change)
		}
	}
	return content, nil
}

// publishDiagnostics reports the syntax errors of doc.
func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *document) {
	diagnostics := []protocol.Diagnostic{}
	for _, e := range doc.file.Errors {
		pos := offsetPosition(doc.content, e.Offset)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: util.ToPtr(protocol.DiagnosticSeverityError),
			Source:   util.ToPtr(Name),
			Message:  i18n.Translate(e.Msg, s.language),
		})
	}
	notify(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     util.ToPtr(protocol.UInteger(doc.version)),
		Diagnostics: diagnostics,
	})
}

func notify(ctx *glsp.Context, params *protocol.PublishDiagnosticsParams) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}
