// Package server adapts the completion engine to the Language Server
// Protocol. Documents are kept in memory, parsed on every change, and
// answered from the latest snapshot.
package server

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/i18n"
	"github.com/ballerina-platform/ballerinalsw/internal/completion"
)

// Name is the server name reported to clients.
const Name = "ballerinalsw"

// Server is the language server. It is safe for concurrent use.
type Server struct {
	engine   *completion.Engine
	logger   *zap.Logger
	language i18n.Language
	version  string

	handler protocol.Handler

	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*document
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger of the server.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLanguage sets the language of diagnostic messages.
func WithLanguage(lang i18n.Language) Option {
	return func(s *Server) {
		s.language = lang
	}
}

// WithVersion sets the version reported in the initialize result.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a server answering completion requests with engine.
func New(engine *completion.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    zap.NewNop(),
		language:  i18n.LanguageEN,
		version:   "devel",
		documents: make(map[protocol.DocumentUri]*document),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentCompletion: s.textDocumentCompletion,
	}
	return s
}

// Handler returns the protocol handler of the server.
func (s *Server) Handler() glsp.Handler {
	return &s.handler
}

// RunStdio serves the protocol over stdin and stdout until the connection
// is closed.
func (s *Server) RunStdio() error {
	s.logger.Info("serving over stdio", zap.String("version", s.version))
	return glspserver.NewServer(&s.handler, Name, false).RunStdio()
}
