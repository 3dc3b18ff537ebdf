package completion

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// builtinResolvers holds the resolver singleton of every variant.
var builtinResolvers = map[Variant]Resolver{
	VariantTopLevel:                  ResolverFunc(resolveTopLevel),
	VariantExpression:                ResolverFunc(resolveExpression),
	VariantTypeName:                  ResolverFunc(resolveTypeName),
	VariantGlobalVariableDefinition:  ResolverFunc(resolveGlobalVariableDefinition),
	VariantServiceEndpointAttachment: ResolverFunc(resolveServiceEndpointAttachment),
	VariantEndpointType:              ResolverFunc(resolveEndpointType),
	VariantPackageName:               ResolverFunc(resolvePackageName),
	VariantAnnotationAttachment:      ResolverFunc(resolveAnnotationAttachment),
	VariantServiceBody:               ResolverFunc(resolveServiceBody),
}

// topLevelAttachPoints are the constructs an annotation written at
// compilation-unit level can be attached to.
var topLevelAttachPoints = []string{
	"service", "function", "endpoint", "type", "object", "record", "annotation", "transformer",
}

func resolveTopLevel(req *Request) []Candidate {
	items := req.Catalog().Group(GroupTopLevel)
	return append(items, fundamentalTypes(req.Context().Symbols())...)
}

func resolveExpression(req *Request) []Candidate {
	items := req.Catalog().Group(GroupExpression)
	items = append(items, req.Delegate(VariantTypeName)...)
	for _, s := range req.Context().Symbols() {
		if s.Package != "" {
			continue
		}
		switch s.Kind {
		case SymbolVariable, SymbolConstant, SymbolFunction, SymbolEndpoint, SymbolPackage:
			items = append(items, symbolCandidate(s))
		}
	}
	return items
}

func resolveTypeName(req *Request) []Candidate {
	symbols := req.Context().Symbols()
	items := fundamentalTypes(symbols)
	for _, s := range symbols {
		if s.Kind == SymbolType && !s.Fundamental && s.Package == "" {
			items = append(items, symbolCandidate(s))
		}
	}
	for _, s := range symbols {
		if s.Kind == SymbolPackage {
			items = append(items, symbolCandidate(s))
		}
	}
	return items
}

func resolveGlobalVariableDefinition(req *Request) []Candidate {
	items := req.Catalog().Group(GroupGlobalVariable)
	return append(items, req.Delegate(VariantTypeName)...)
}

func resolveServiceEndpointAttachment(req *Request) []Candidate {
	var items []Candidate
	for _, s := range req.Context().Symbols() {
		if s.Kind == SymbolEndpoint {
			items = append(items, symbolCandidate(s))
		}
	}
	return append(items, req.Catalog().Group(GroupEndpointAttachment)...)
}

func resolveEndpointType(req *Request) []Candidate {
	var items []Candidate
	for _, s := range req.Context().Symbols() {
		if s.Kind == SymbolType && s.EndpointType {
			c := symbolCandidate(s)
			c.Detail = "Endpoint"
			items = append(items, c)
		}
	}
	return items
}

// resolvePackageName offers the next segment of the import path being typed,
// drawn from the known packages and the packages already visible.
func resolvePackageName(req *Request) []Candidate {
	typed := req.Context().PackagePath()
	dir := typed[:strings.LastIndex(typed, "/")+1]

	var items []Candidate
	addSegment := func(path string) {
		rest := strings.TrimPrefix(path, dir)
		segment, _, more := strings.Cut(rest, "/")
		if segment == "" {
			return
		}
		detail := "Package"
		if more {
			detail = "Organization"
		}
		items = append(items, Candidate{
			Label:      segment,
			InsertText: segment,
			Format:     PlainText,
			Kind:       KindSymbol,
			Detail:     detail,
			Symbol:     SymbolPackage,
		})
	}
	if trie := req.engine.packages; trie != nil {
		visit := func(prefix patricia.Prefix, _ patricia.Item) error {
			addSegment(string(prefix))
			return nil
		}
		if typed == "" {
			_ = trie.Visit(visit)
		} else {
			_ = trie.VisitSubtree(patricia.Prefix(typed), visit)
		}
	}
	for _, s := range req.Context().Symbols() {
		if s.Kind == SymbolPackage && s.Type != "" && strings.HasPrefix(s.Type, typed) {
			addSegment(s.Type)
		}
	}
	return items
}

func resolveAnnotationAttachment(req *Request) []Candidate {
	return annotations(req.Context().Symbols(), topLevelAttachPoints...)
}

// resolveServiceBody offers the annotations of resources and, unless an `@`
// has already been typed, the members a service body may declare.
func resolveServiceBody(req *Request) []Candidate {
	items := annotations(req.Context().Symbols(), "resource")
	if !req.Context().AfterAt() {
		items = append(items, req.Catalog().Group(GroupService)...)
	}
	return items
}

// fundamentalTypes returns the built-in types of the visible-symbol set.
func fundamentalTypes(symbols []Symbol) []Candidate {
	var items []Candidate
	for _, s := range symbols {
		if s.Kind == SymbolType && s.Fundamental {
			items = append(items, symbolCandidate(s))
		}
	}
	return items
}

func annotations(symbols []Symbol, points ...string) []Candidate {
	var items []Candidate
	for _, s := range symbols {
		if s.Kind == SymbolAnnotation && s.AttachableTo(points...) {
			items = append(items, symbolCandidate(s))
		}
	}
	return items
}

// symbolCandidate returns the candidate offered for s.
func symbolCandidate(s Symbol) Candidate {
	name := s.QualifiedName()
	c := Candidate{
		Label:      name,
		InsertText: name,
		Format:     PlainText,
		Kind:       KindSymbol,
		Detail:     s.Kind.String(),
		Symbol:     s.Kind,
	}
	switch s.Kind {
	case SymbolType:
		c.Kind = KindType
	case SymbolFunction:
		c.InsertText = name + "(${1})"
		c.Format = Snippet
	case SymbolPackage:
		c.InsertText = name + ":"
	case SymbolVariable, SymbolConstant, SymbolEndpoint:
		if s.Type != "" {
			c.Detail += ": " + s.Type
		}
	}
	return c
}
