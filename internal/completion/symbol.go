package completion

import "slices"

// SymbolKind classifies a [Symbol].
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota + 1
	SymbolConstant
	SymbolFunction
	SymbolType
	SymbolPackage
	SymbolAnnotation
	SymbolEndpoint
)

var symbolKindNames = map[SymbolKind]string{
	SymbolVariable:   "Variable",
	SymbolConstant:   "Constant",
	SymbolFunction:   "Function",
	SymbolType:       "Type",
	SymbolPackage:    "Package",
	SymbolAnnotation: "Annotation",
	SymbolEndpoint:   "Endpoint",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "Symbol"
}

// Symbol is an entry of the visible-symbol set supplied by the compiler front
// end. The engine only reads symbols.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Type is the declared type, if any.
	Type string
	// Fundamental marks built-in types such as int or json.
	Fundamental bool
	// Depth is the scope depth the symbol was declared at; 0 is the
	// package level. Of two symbols with the same name the deeper one wins.
	Depth int
	// Package is the alias that qualifies the symbol, e.g. "http".
	Package string
	// AttachPoints lists the constructs an annotation may be attached to.
	// An empty list means any construct.
	AttachPoints []string
	// EndpointType marks types that may follow the endpoint keyword.
	EndpointType bool
}

// QualifiedName returns the name as written in source, e.g. "http:Listener".
func (s Symbol) QualifiedName() string {
	if s.Package == "" {
		return s.Name
	}
	return s.Package + ":" + s.Name
}

// AttachableTo reports whether an annotation symbol may be attached to any of
// the given points.
func (s Symbol) AttachableTo(points ...string) bool {
	if len(s.AttachPoints) == 0 {
		return true
	}
	for _, p := range points {
		if slices.Contains(s.AttachPoints, p) {
			return true
		}
	}
	return false
}

// SymbolSource answers the visible-symbol query for a source offset.
type SymbolSource interface {
	VisibleSymbols(offset int) []Symbol
}

// Symbols is a fixed visible-symbol set, regardless of offset.
type Symbols []Symbol

// VisibleSymbols implements [SymbolSource].
func (s Symbols) VisibleSymbols(int) []Symbol {
	return s
}
