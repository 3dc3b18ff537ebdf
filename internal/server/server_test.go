package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/goleak"

	"github.com/ballerina-platform/ballerinalsw/i18n"
	"github.com/ballerina-platform/ballerinalsw/internal/completion"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testURI = "file:///project/main.bal"

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

func newTestServer(opts ...Option) *Server {
	return New(completion.New(), opts...)
}

func openDoc(t *testing.T, s *Server, text string) {
	t.Helper()
	require.NoError(t, s.didOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "ballerina", Version: 1, Text: text},
	}))
}

func TestHandlerInitialize(t *testing.T) {
	s := newTestServer(WithVersion("1.2.3"))
	h := s.Handler()

	result, validMethod, validParams, err := h.Handle(&glsp.Context{
		Method: protocol.MethodInitialize,
		Params: json.RawMessage(`{"capabilities":{},"clientInfo":{"name":"test"}}`),
	})
	require.NoError(t, err)
	assert.True(t, validMethod)
	assert.True(t, validParams)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok, "got %T", result)
	require.NotNil(t, res.ServerInfo)
	assert.Equal(t, Name, res.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)

	syncOpts, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *syncOpts.Change)
	assert.True(t, *syncOpts.OpenClose)

	require.NotNil(t, res.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"@", ":", "/"}, res.Capabilities.CompletionProvider.TriggerCharacters)

	_, validMethod, _, err = h.Handle(&glsp.Context{Method: protocol.MethodShutdown})
	require.NoError(t, err)
	assert.True(t, validMethod)
}

func TestHandlerRequiresInitialize(t *testing.T) {
	s := newTestServer()
	_, _, _, err := s.Handler().Handle(&glsp.Context{
		Method: protocol.MethodTextDocumentCompletion,
		Params: json.RawMessage(`{"textDocument":{"uri":"file:///a.bal"},"position":{"line":0,"character":0}}`),
	})
	assert.Error(t, err)
}

func TestSetTrace(t *testing.T) {
	s := newTestServer()
	t.Cleanup(func() { protocol.SetTraceValue(protocol.TraceValueOff) })

	require.NoError(t, s.setTrace(&glsp.Context{}, &protocol.SetTraceParams{Value: protocol.TraceValueVerbose}))
	assert.True(t, protocol.HasTraceLevel(protocol.TraceValueVerbose))
}

func TestDiagnostics(t *testing.T) {
	const src = "function main() {\n}\n) ) oops ;\n"

	for _, tt := range []struct {
		name string
		lang i18n.Language
		want string
	}{
		{"English", i18n.LanguageEN, "unexpected input"},
		{"Chinese", i18n.LanguageCN, "意外的输入"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(WithLanguage(tt.lang))
			ctx, captured := capturingContext()
			require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
				TextDocument: protocol.TextDocumentItem{URI: testURI, Version: 3, Text: src},
			}))

			require.Len(t, *captured, 1)
			published := (*captured)[0]
			assert.Equal(t, testURI, published.URI)
			assert.Equal(t, protocol.UInteger(3), *published.Version)

			var found *protocol.Diagnostic
			for i, d := range published.Diagnostics {
				if d.Message == tt.want {
					found = &published.Diagnostics[i]
					break
				}
			}
			require.NotNil(t, found, "diagnostics: %+v", published.Diagnostics)
			assert.Equal(t, protocol.Position{Line: 2, Character: 0}, found.Range.Start)
			assert.Equal(t, protocol.DiagnosticSeverityError, *found.Severity)
		})
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := newTestServer()
	openDoc(t, s, "function main() {\n}\n")

	ctx, captured := capturingContext()
	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)

	_, ok := s.getDocument(testURI)
	assert.False(t, ok)
}
