package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestApplyChanges(t *testing.T) {
	rng := func(sl, sc, el, ec uint32) *protocol.Range {
		return &protocol.Range{
			Start: protocol.Position{Line: sl, Character: sc},
			End:   protocol.Position{Line: el, Character: ec},
		}
	}

	for _, tt := range []struct {
		name    string
		content string
		changes []any
		want    string
		wantErr bool
	}{
		{
			name:    "Whole",
			content: "old",
			changes: []any{protocol.TextDocumentContentChangeEventWhole{Text: "new"}},
			want:    "new",
		},
		{
			name:    "Insert",
			content: "int x;\n",
			changes: []any{protocol.TextDocumentContentChangeEvent{Range: rng(0, 4, 0, 4), Text: "yy"}},
			want:    "int yyx;\n",
		},
		{
			name:    "ReplaceAcrossLines",
			content: "a\nbc\nd",
			changes: []any{protocol.TextDocumentContentChangeEvent{Range: rng(0, 1, 2, 0), Text: "-"}},
			want:    "a-d",
		},
		{
			name:    "Sequential",
			content: "ab",
			changes: []any{
				protocol.TextDocumentContentChangeEvent{Range: rng(0, 2, 0, 2), Text: "c"},
				protocol.TextDocumentContentChangeEvent{Range: rng(0, 0, 0, 1), Text: ""},
			},
			want: "bc",
		},
		{
			name:    "InvertedRange",
			content: "abc",
			changes: []any{protocol.TextDocumentContentChangeEvent{Range: rng(0, 2, 0, 1), Text: ""}},
			wantErr: true,
		},
		{
			name:    "UnknownChange",
			content: "abc",
			changes: []any{"abc"},
			wantErr: true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyChanges([]byte(tt.content), tt.changes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDidChange(t *testing.T) {
	s := newTestServer()
	openDoc(t, s, "function main() {\n}\n")

	ctx, captured := capturingContext()
	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "function main() {\n    int y = 2;\n    \n}\n"}},
	}))

	doc, ok := s.getDocument(testURI)
	require.True(t, ok)
	assert.Equal(t, protocol.Integer(2), doc.version)
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)

	assert.Contains(t, labels(complete(t, s, 2, 4)), "y")
}

func TestDidChangeUnopened(t *testing.T) {
	s := newTestServer()
	require.NoError(t, s.didChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "int z = 1;\n"}},
	}))
	_, ok := s.getDocument(testURI)
	assert.True(t, ok)
}
