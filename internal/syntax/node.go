package syntax

import "slices"

// Rule identifies the grammar production a [Node] was built for.
type Rule int

const (
	RuleError Rule = iota
	RuleCompilationUnit
	RuleImportDeclaration
	RulePackageName
	RuleAnnotationAttachment
	RuleAnnotationDefinition
	RuleNamespaceDeclaration
	RuleFunctionDefinition
	RuleParameter
	RuleCallableUnitBody
	RuleStatement
	RuleVariableDefinition
	RuleExpression
	RuleServiceDefinition
	RuleServiceEndpointAttachment
	RuleServiceBody
	RuleResourceDefinition
	RuleEndpointDeclaration
	RuleEndpointType
	RuleGlobalVariableDefinition
	RuleTypeDefinition
	RuleTypeName
)

var ruleNames = [...]string{
	RuleError:                     "Error",
	RuleCompilationUnit:           "CompilationUnit",
	RuleImportDeclaration:         "ImportDeclaration",
	RulePackageName:               "PackageName",
	RuleAnnotationAttachment:      "AnnotationAttachment",
	RuleAnnotationDefinition:      "AnnotationDefinition",
	RuleNamespaceDeclaration:      "NamespaceDeclaration",
	RuleFunctionDefinition:        "FunctionDefinition",
	RuleParameter:                 "Parameter",
	RuleCallableUnitBody:          "CallableUnitBody",
	RuleStatement:                 "Statement",
	RuleVariableDefinition:        "VariableDefinition",
	RuleExpression:                "Expression",
	RuleServiceDefinition:         "ServiceDefinition",
	RuleServiceEndpointAttachment: "ServiceEndpointAttachment",
	RuleServiceBody:               "ServiceBody",
	RuleResourceDefinition:        "ResourceDefinition",
	RuleEndpointDeclaration:       "EndpointDeclaration",
	RuleEndpointType:              "EndpointType",
	RuleGlobalVariableDefinition:  "GlobalVariableDefinition",
	RuleTypeDefinition:            "TypeDefinition",
	RuleTypeName:                  "TypeName",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "Rule(?)"
	}
	return ruleNames[r]
}

// Node is a rule-context node of the parse tree. Start and End are byte
// offsets; a node that consumed no tokens spans the gap where its tokens
// were expected.
type Node struct {
	Rule  Rule
	Start int
	End   int

	// Name is the identifier declared by the node, if any.
	Name string
	// Type is the declared type of a variable, parameter or endpoint.
	Type string
	// Attach lists the attachment points of an annotation definition.
	Attach []string

	// Incomplete is set when an expected element was missing.
	Incomplete bool

	Parent   *Node
	Children []*Node
}

// Contains reports whether offset lies within n. The end is inclusive so that
// a cursor placed right after the last character still belongs to the node.
func (n *Node) Contains(offset int) bool {
	return n.Start <= offset && offset <= n.End
}

// IsError reports whether n is an error-recovery node.
func (n *Node) IsError() bool {
	return n.Rule == RuleError
}

// Walk calls f for n and its descendants in depth-first order. Children are
// skipped when f returns false.
func (n *Node) Walk(f func(*Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// Child returns the first direct child with the given rule.
func (n *Node) Child(rule Rule) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// Enclosing returns the nearest ancestor (or n itself) with one of the rules.
func (n *Node) Enclosing(rules ...Rule) *Node {
	for ; n != nil; n = n.Parent {
		if slices.Contains(rules, n.Rule) {
			return n
		}
	}
	return nil
}
