package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/internal/scope"
	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

// document is an immutable snapshot of an open text document. Changes
// replace the snapshot.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	content []byte
	file    *syntax.File
	index   *scope.Index
}

func newDocument(uri protocol.DocumentUri, version protocol.Integer, content []byte, logger *zap.Logger) *document {
	f := syntax.Parse(content)
	return &document{
		uri:     uri,
		version: version,
		content: content,
		file:    f,
		index:   scope.New(f, logger.With(zap.String("uri", uri))),
	}
}

// getDocument returns the snapshot of uri, if it is open.
func (s *Server) getDocument(uri protocol.DocumentUri) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[uri]
	return doc, ok
}

func (s *Server) putDocument(doc *document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.uri] = doc
}

func (s *Server) removeDocument(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}
