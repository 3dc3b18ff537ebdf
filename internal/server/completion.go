package server

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/internal/completion"
	"github.com/ballerina-platform/ballerinalsw/internal/util"
)

// See https://microsoft.github.io/language-server-protocol/specifications/specification-3-16#textDocument_completion
func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (result any, err error) {
	uri := params.TextDocument.URI
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in completion handler", zap.Any("panic", r), zap.String("uri", uri))
			result, err = []protocol.CompletionItem{}, nil
		}
	}()

	doc, ok := s.getDocument(uri)
	if !ok {
		s.logger.Debug("completion for unopened document", zap.String("uri", uri))
		return []protocol.CompletionItem{}, nil
	}
	offset := positionOffset(doc.content, params.Position)
	cctx := completion.ContextAt(doc.file, offset, doc.index)
	candidates := s.engine.Resolve(cctx)
	return toCompletionItems(candidates, replaceRange(doc.content, cctx)), nil
}

// replaceRange returns the range a chosen item replaces: the name reference
// typed left of the cursor, or an empty range at the cursor.
func replaceRange(content []byte, cctx *completion.Context) protocol.Range {
	end := cctx.Offset()
	return protocol.Range{
		Start: offsetPosition(content, end-len(cctx.Prefix())),
		End:   offsetPosition(content, end),
	}
}

// toCompletionItems converts candidates in their ranked order. The sort text
// is the rank so that clients keep the engine's order.
func toCompletionItems(candidates []completion.Candidate, rng protocol.Range) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(candidates))
	width := len(fmt.Sprint(len(candidates)))
	for i, c := range candidates {
		item := protocol.CompletionItem{
			Label:      c.Label,
			Kind:       util.ToPtr(completionItemKind(c)),
			SortText:   util.ToPtr(fmt.Sprintf("%0*d", width, i)),
			InsertText: util.ToPtr(c.InsertText),
			TextEdit:   protocol.TextEdit{Range: rng, NewText: c.InsertText},
		}
		if c.Detail != "" {
			item.Detail = util.ToPtr(c.Detail)
		}
		if c.Format == completion.Snippet {
			item.InsertTextFormat = util.ToPtr(protocol.InsertTextFormatSnippet)
		} else {
			item.InsertTextFormat = util.ToPtr(protocol.InsertTextFormatPlainText)
		}
		items = append(items, item)
	}
	return items
}

var symbolItemKinds = map[completion.SymbolKind]protocol.CompletionItemKind{
	completion.SymbolVariable:   protocol.CompletionItemKindVariable,
	completion.SymbolConstant:   protocol.CompletionItemKindConstant,
	completion.SymbolFunction:   protocol.CompletionItemKindFunction,
	completion.SymbolType:       protocol.CompletionItemKindStruct,
	completion.SymbolPackage:    protocol.CompletionItemKindModule,
	completion.SymbolAnnotation: protocol.CompletionItemKindProperty,
	completion.SymbolEndpoint:   protocol.CompletionItemKindReference,
}

func completionItemKind(c completion.Candidate) protocol.CompletionItemKind {
	if kind, ok := symbolItemKinds[c.Symbol]; ok {
		return kind
	}
	switch c.Kind {
	case completion.KindKeyword:
		return protocol.CompletionItemKindKeyword
	case completion.KindType:
		return protocol.CompletionItemKindStruct
	case completion.KindSnippet:
		return protocol.CompletionItemKindSnippet
	}
	return protocol.CompletionItemKindText
}
