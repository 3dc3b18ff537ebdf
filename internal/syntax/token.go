package syntax

import (
	"bytes"
	"text/scanner"
)

// TokenKind is the lexical class of a [Token].
type TokenKind int

const (
	TokenIllegal TokenKind = iota
	TokenIdent
	TokenInt
	TokenFloat
	TokenString
	TokenPunct
)

// Token is a lexical token with its byte span in the source.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

// Is reports whether the token has the given text.
func (t Token) Is(text string) bool {
	return t.Text == text
}

// keywords are the reserved words the parser dispatches on.
var keywords = map[string]struct{}{
	"import":     {},
	"as":         {},
	"version":    {},
	"public":     {},
	"private":    {},
	"function":   {},
	"returns":    {},
	"service":    {},
	"resource":   {},
	"bind":       {},
	"endpoint":   {},
	"type":       {},
	"object":     {},
	"record":     {},
	"annotation": {},
	"xmlns":      {},
	"var":        {},
	"final":      {},
	"const":      {},
	"extern":     {},
	"native":     {},

	"return":      {},
	"if":          {},
	"else":        {},
	"while":       {},
	"foreach":     {},
	"match":       {},
	"break":       {},
	"continue":    {},
	"throw":       {},
	"lock":        {},
	"transaction": {},
	"fork":        {},
	"worker":      {},
	"check":       {},
	"new":         {},
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// tokenize splits src into tokens. Comments and whitespace are dropped and
// malformed input never stops the scan: unterminated literals are emitted as
// far as they go.
func tokenize(src []byte) []Token {
	var s scanner.Scanner
	s.Init(bytes.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	s.Error = func(*scanner.Scanner, string) {}
	s.Filename = ""

	var toks []Token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		start := s.Position.Offset
		toks = append(toks, Token{
			Kind:  tokenKindOf(tok),
			Text:  text,
			Start: start,
			End:   start + len(text),
		})
	}
	return toks
}

func tokenKindOf(tok rune) TokenKind {
	switch tok {
	case scanner.Ident:
		return TokenIdent
	case scanner.Int:
		return TokenInt
	case scanner.Float:
		return TokenFloat
	case scanner.String, scanner.RawString:
		return TokenString
	}
	if tok < 0 {
		return TokenIllegal
	}
	return TokenPunct
}
