package completion

import (
	"strings"

	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

// ruleCategories maps the rules that carry a completion category. Rules not
// listed here are transparent: classification continues with their parent.
var ruleCategories = map[syntax.Rule]Category{
	syntax.RuleCompilationUnit:           CategoryCompilationUnit,
	syntax.RulePackageName:               CategoryPackageName,
	syntax.RuleServiceEndpointAttachment: CategoryServiceEndpointAttachment,
	syntax.RuleEndpointType:              CategoryEndpointType,
	syntax.RuleGlobalVariableDefinition:  CategoryGlobalVariableDefinition,
	syntax.RuleTypeName:                  CategoryTypeName,
	syntax.RuleExpression:                CategoryExpression,
	syntax.RuleStatement:                 CategoryExpression,
	syntax.RuleCallableUnitBody:          CategoryExpression,
	syntax.RuleServiceBody:               CategoryServiceBody,
}

// nestingRules are the declarations whose type slots (parameters, return
// types, fields) cannot start a top-level declaration.
var nestingRules = []syntax.Rule{
	syntax.RuleFunctionDefinition,
	syntax.RuleResourceDefinition,
	syntax.RuleTypeDefinition,
}

// Classify tags the cursor at offset in f. It never fails: an empty file, an
// offset outside the file or any unexpected state yields [CategoryUnknown].
func Classify(f *syntax.File, offset int) (cl Classification) {
	cl = Classification{Offset: offset, Category: CategoryUnknown}
	defer func() {
		if r := recover(); r != nil {
			cl = Classification{Offset: offset, Category: CategoryUnknown}
		}
	}()
	if f.Empty() || offset < 0 || offset > len(f.Src) {
		return
	}

	var node *syntax.Node
	for _, n := range f.PathEnclosing(offset) {
		if n.IsError() {
			continue
		}
		if category, ok := ruleCategories[n.Rule]; ok {
			node, cl.Category = n, category
			break
		}
	}
	if node == nil {
		return
	}

	switch cl.Category {
	case CategoryCompilationUnit:
		cl.Annotation = precededByAt(f, offset)
	case CategoryServiceBody:
		cl.AfterAt = precededByAt(f, offset)
	case CategoryPackageName:
		cl.PackagePath = strings.TrimSpace(f.TextBetween(node.Start, offset))
	case CategoryTypeName:
		cl.Nested = node.Parent.Enclosing(nestingRules...) != nil
	}
	cl.Prefix = typedPrefix(f, offset)
	return
}

// typedPrefix returns the name reference being typed left of offset, such as
// "in", "http:" or "http:Li". Its tokens must be contiguous.
func typedPrefix(f *syntax.File, offset int) string {
	i := f.LastTokenBefore(offset)
	if i < 0 {
		return ""
	}
	isName := func(t syntax.Token) bool { return t.Kind == syntax.TokenIdent }
	t := f.Tokens[i]
	var start int
	switch {
	case isName(t) && t.End >= offset:
		start = t.Start
		if i >= 2 && f.Tokens[i-1].Is(":") && f.Tokens[i-1].End == start &&
			isName(f.Tokens[i-2]) && f.Tokens[i-2].End == f.Tokens[i-1].Start {
			start = f.Tokens[i-2].Start
		}
	case t.Is(":") && t.End == offset && i >= 1 && isName(f.Tokens[i-1]) && f.Tokens[i-1].End == t.Start:
		start = f.Tokens[i-1].Start
	default:
		return ""
	}
	return f.TextBetween(start, offset)
}

// precededByAt reports whether the tokens ending at offset form an annotation
// reference being typed: `@`, `@name`, `@pkg:` or `@pkg:Name`. Whitespace is
// only allowed between a lone `@` and the cursor.
func precededByAt(f *syntax.File, offset int) bool {
	i := f.LastTokenBefore(offset)
	if i < 0 {
		return false
	}
	if f.Tokens[i].Is("@") {
		return true
	}
	end := offset
	for n := 0; i >= 0 && n <= 3; i, n = i-1, n+1 {
		t := f.Tokens[i]
		if t.Is("@") {
			return n > 0 && t.End == end
		}
		if n == 3 || (t.Kind != syntax.TokenIdent && !t.Is(":")) {
			return false
		}
		if n == 0 && t.End < offset {
			return false
		}
		if n > 0 && t.End != end {
			return false
		}
		end = t.Start
	}
	return false
}
