// Package scope answers visible-symbol queries over a parsed file. It is a
// shallow approximation of the compiler's scope chain: declarations are
// found syntactically and imported packages are described by pkgdata.
package scope

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/internal/completion"
	"github.com/ballerina-platform/ballerinalsw/internal/pkgdata"
	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
	"github.com/ballerina-platform/ballerinalsw/pkgdoc"
)

// Index is the symbol index of one file. It is immutable and safe for
// concurrent use.
type Index struct {
	file *syntax.File

	// package-level symbols: declarations, imports and their members,
	// then the built-in types.
	globals []completion.Symbol
}

// New indexes f. Unknown imports are logged and contribute only their
// alias.
func New(f *syntax.File, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	ix := &Index{file: f}
	if f == nil || f.Root == nil {
		ix.globals = builtinSymbols(logger)
		return ix
	}

	var decls, imports []completion.Symbol
	for _, n := range f.Root.Children {
		switch n.Rule {
		case syntax.RuleImportDeclaration:
			imports = append(imports, importSymbols(n, logger)...)
		case syntax.RuleFunctionDefinition,
			syntax.RuleGlobalVariableDefinition,
			syntax.RuleTypeDefinition,
			syntax.RuleEndpointDeclaration,
			syntax.RuleAnnotationDefinition:
			if s, ok := declSymbol(f, n, 0); ok {
				decls = append(decls, s)
			}
		}
	}
	ix.globals = slices.Concat(decls, imports, builtinSymbols(logger))
	return ix
}

// VisibleSymbols implements [completion.SymbolSource]. Symbols of inner
// scopes come first so that they shadow outer ones.
func (ix *Index) VisibleSymbols(offset int) []completion.Symbol {
	var locals []completion.Symbol
	if ix.file != nil {
		path := ix.file.PathEnclosing(offset)
		depth := 0
		for _, n := range path {
			switch n.Rule {
			case syntax.RuleCallableUnitBody, syntax.RuleServiceBody:
				depth++
			}
		}
		for _, n := range path {
			switch n.Rule {
			case syntax.RuleCallableUnitBody, syntax.RuleServiceBody:
				locals = append(locals, ix.bodySymbols(n, offset, depth)...)
				depth--
			case syntax.RuleFunctionDefinition, syntax.RuleResourceDefinition:
				locals = append(locals, paramSymbols(n, depth+1)...)
			}
		}
	}
	return slices.Concat(locals, ix.globals)
}

// bodySymbols returns the declarations of body made before offset, latest
// first.
func (ix *Index) bodySymbols(body *syntax.Node, offset, depth int) []completion.Symbol {
	var symbols []completion.Symbol
	for _, n := range body.Children {
		if n.Start >= offset {
			break
		}
		if n.Rule == syntax.RuleStatement && len(n.Children) > 0 {
			n = n.Children[0]
		}
		switch n.Rule {
		case syntax.RuleVariableDefinition, syntax.RuleEndpointDeclaration:
			if offset < n.End {
				// The cursor is inside the declaration itself.
				continue
			}
			if s, ok := declSymbol(ix.file, n, depth); ok {
				symbols = append(symbols, s)
			}
		}
	}
	slices.Reverse(symbols)
	return symbols
}

func paramSymbols(fn *syntax.Node, depth int) []completion.Symbol {
	var symbols []completion.Symbol
	for _, n := range fn.Children {
		if n.Rule != syntax.RuleParameter || n.Name == "" {
			continue
		}
		s := completion.Symbol{Name: n.Name, Kind: completion.SymbolVariable, Type: n.Type, Depth: depth}
		if n.Type == "endpoint" {
			s.Kind, s.Type = completion.SymbolEndpoint, ""
		}
		symbols = append(symbols, s)
	}
	return symbols
}

// declSymbol returns the symbol declared by n, if it declares one.
func declSymbol(f *syntax.File, n *syntax.Node, depth int) (completion.Symbol, bool) {
	if n.Name == "" {
		return completion.Symbol{}, false
	}
	s := completion.Symbol{Name: n.Name, Type: n.Type, Depth: depth}
	switch n.Rule {
	case syntax.RuleFunctionDefinition:
		s.Kind = completion.SymbolFunction
	case syntax.RuleGlobalVariableDefinition, syntax.RuleVariableDefinition:
		s.Kind = completion.SymbolVariable
		text := strings.TrimSpace(f.Text(n))
		if strings.HasPrefix(text, "const ") || strings.HasPrefix(text, "final ") {
			s.Kind = completion.SymbolConstant
		}
	case syntax.RuleTypeDefinition:
		s.Kind = completion.SymbolType
	case syntax.RuleEndpointDeclaration:
		s.Kind = completion.SymbolEndpoint
	case syntax.RuleAnnotationDefinition:
		s.Kind = completion.SymbolAnnotation
		s.AttachPoints = slices.Clone(n.Attach)
	default:
		return completion.Symbol{}, false
	}
	return s, true
}

// importSymbols returns the package symbol of an import and the members of
// the imported package, qualified by its alias.
func importSymbols(n *syntax.Node, logger *zap.Logger) []completion.Symbol {
	if n.Name == "" {
		return nil
	}
	var path string
	if pkg := n.Child(syntax.RulePackageName); pkg != nil {
		path = pkg.Name
	}
	symbols := []completion.Symbol{{Name: n.Name, Kind: completion.SymbolPackage, Type: path}}
	if path == "" {
		return symbols
	}
	pkgDoc, err := pkgdata.GetPkgDoc(path)
	if err != nil {
		logger.Debug("import not described by pkgdata", zap.String("path", path), zap.Error(err))
		return symbols
	}
	return append(symbols, memberSymbols(pkgDoc, n.Name)...)
}

func memberSymbols(pkgDoc *pkgdoc.PkgDoc, alias string) []completion.Symbol {
	var symbols []completion.Symbol
	for _, name := range pkgDoc.TypeNames() {
		s := completion.Symbol{Name: name, Kind: completion.SymbolType, Package: alias}
		if typeDoc := pkgDoc.Types[name]; typeDoc != nil {
			s.EndpointType = typeDoc.Endpoint
		}
		symbols = append(symbols, s)
	}
	for _, name := range pkgDoc.FuncNames() {
		symbols = append(symbols, completion.Symbol{Name: name, Kind: completion.SymbolFunction, Package: alias})
	}
	for _, name := range pkgDoc.ConstNames() {
		symbols = append(symbols, completion.Symbol{Name: name, Kind: completion.SymbolConstant, Package: alias})
	}
	for _, name := range pkgDoc.AnnotationNames() {
		s := completion.Symbol{Name: name, Kind: completion.SymbolAnnotation, Package: alias}
		if annDoc := pkgDoc.Annotations[name]; annDoc != nil {
			s.AttachPoints = slices.Clone(annDoc.Attach)
		}
		symbols = append(symbols, s)
	}
	return symbols
}

func builtinSymbols(logger *zap.Logger) []completion.Symbol {
	pkgDoc, err := pkgdata.GetPkgDoc(pkgdata.BuiltinPkgPath)
	if err != nil {
		logger.Warn("built-in types unavailable", zap.Error(err))
		return nil
	}
	var symbols []completion.Symbol
	for _, name := range pkgDoc.TypeNames() {
		symbols = append(symbols, completion.Symbol{Name: name, Kind: completion.SymbolType, Fundamental: true})
	}
	return symbols
}
