package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseWithCursor parses src after removing the single "|" cursor marker.
func parseWithCursor(t *testing.T, src string) (*File, int) {
	t.Helper()
	offset := strings.Index(src, "|")
	require.GreaterOrEqual(t, offset, 0, "missing cursor marker")
	return Parse([]byte(src[:offset] + src[offset+1:])), offset
}

func innermostRule(f *File, offset int) Rule {
	path := f.PathEnclosing(offset)
	if len(path) == 0 {
		return RuleError
	}
	return path[0].Rule
}

func TestParseInnermostRule(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		want Rule
	}{
		{"EmptyFile", "|", RuleCompilationUnit},
		{"AfterImportKeyword", "import |", RulePackageName},
		{"PartialImportPath", "import ballerina/h|", RulePackageName},
		{"AfterCompleteImport", "import ballerina/http;\n|", RuleCompilationUnit},
		{"AnnotationAt", "@|", RuleAnnotationAttachment},
		{"TypeNameFragment", "in|", RuleTypeName},
		{"GlobalVariableName", "int |", RuleGlobalVariableDefinition},
		{"GlobalVariableInitializer", "int x = |;", RuleExpression},
		{"EndpointType", "endpoint |", RuleEndpointType},
		{"EndpointTypeFragment", "endpoint http:Li|", RuleEndpointType},
		{"ServiceBind", "service<http:Service> hello bind |", RuleServiceEndpointAttachment},
		{"ServiceTypeParameter", "service<ht|", RuleEndpointType},
		{"ServiceBody", "service<http:Service> hello bind ep {\n    |\n}", RuleServiceBody},
		{"UnterminatedServiceBody", "service<http:Service> hello bind ep {\n    |", RuleServiceBody},
		{"ResourceBody", "service<http:Service> hello bind ep {\n    sayHello (endpoint caller, http:Request req) {\n        |\n    }\n}", RuleCallableUnitBody},
		{"FunctionBody", "function main(string... args) {\n    int x = 1;\n    |\n}", RuleCallableUnitBody},
		{"ExpressionStatement", "function main(string... args) {\n    x|\n}", RuleExpression},
		{"InsideErrorSpan", "function main() {\n}\n) ) |oops ;", RuleError},
		{"EmptyParameterList", "function f(|) {}", RuleTypeName},
		{"NextParameter", "function f(int a, |) {}", RuleTypeName},
		{"UnterminatedParameterList", "function f(|", RuleTypeName},
		{"RecordField", "type Person {\n    |\n};", RuleTypeName},
		{"RecordFieldAfterField", "type Person record {\n    string name;\n    |\n};", RuleTypeName},
		{"ObjectFieldAfterMethod", "type Greeter object {\n    function greet() returns string {\n        return \"hi\";\n    }\n    |\n};", RuleTypeName},
		{"EndpointConfig", "endpoint http:Listener ep {\n    port: |\n};", RuleExpression},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f, offset := parseWithCursor(t, tt.src)
			assert.Equal(t, tt.want, innermostRule(f, offset))
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	src := `import ballerina/http;
import ballerina/io as console;

annotation <resource, service> Tagged string;

endpoint http:Listener listener {
    port: 9090
};

type Person record {
    string name;
};

int counter = 0;

function greet(string name, int... rest) returns string {
    string greeting = "hello";
    if (name == "") {
        json j = {a: 1};
    }
    return greeting;
}
`
	f := Parse([]byte(src))
	require.NotNil(t, f.Root)
	assert.Empty(t, f.Errors)

	var got []string
	f.Root.Walk(func(n *Node) bool {
		switch n.Rule {
		case RuleImportDeclaration, RuleAnnotationDefinition, RuleEndpointDeclaration,
			RuleTypeDefinition, RuleGlobalVariableDefinition, RuleFunctionDefinition,
			RuleParameter, RuleVariableDefinition:
			got = append(got, n.Rule.String()+":"+n.Name+":"+n.Type)
		}
		return true
	})
	assert.Equal(t, []string{
		"ImportDeclaration:http:",
		"ImportDeclaration:console:",
		"AnnotationDefinition:Tagged:",
		"EndpointDeclaration:listener:http:Listener",
		"TypeDefinition:Person:",
		"GlobalVariableDefinition:counter:int",
		"FunctionDefinition:greet:",
		"Parameter:name:string",
		"Parameter:rest:int",
		"VariableDefinition:greeting:string",
		"VariableDefinition:j:json",
	}, got)

	var attach []string
	f.Root.Walk(func(n *Node) bool {
		if n.Rule == RuleAnnotationDefinition {
			attach = n.Attach
		}
		return true
	})
	assert.Equal(t, []string{"resource", "service"}, attach)
}

func TestParseRecovery(t *testing.T) {
	src := "function main() {\n}\n) ) oops ;\ntype T int;\n"
	f := Parse([]byte(src))
	require.NotEmpty(t, f.Errors)

	var rules []Rule
	for _, c := range f.Root.Children {
		rules = append(rules, c.Rule)
	}
	assert.Equal(t, []Rule{RuleFunctionDefinition, RuleError, RuleTypeDefinition}, rules)
	assert.Equal(t, "T", f.Root.Children[2].Name)
	assert.Equal(t, ") ) oops ;", f.Text(f.Root.Children[1]))
}

func TestParseNeverPanics(t *testing.T) {
	for _, src := range []string{
		"",
		"}}}}",
		"(((((",
		"service",
		"service<",
		"service<http:Service> s bind {",
		"function (",
		"function f(endpoint",
		"@http:",
		"import /",
		"type",
		"annotation <",
		"xmlns \"unterminated",
		"endpoint http:Listener ep { port: ",
		"int x = {a: [1, 2",
		"public",
		"extern",
		"\"str",
		"`raw",
		"/* unterminated comment",
	} {
		t.Run(src, func(t *testing.T) {
			f := Parse([]byte(src))
			require.NotNil(t, f)
			require.NotNil(t, f.Root)
			assert.Equal(t, 0, f.Root.Start)
			assert.Equal(t, len(src), f.Root.End)
			for offset := 0; offset <= len(src); offset++ {
				assert.NotEmpty(t, f.PathEnclosing(offset))
			}
		})
	}
}

func TestFileLastTokenBefore(t *testing.T) {
	f := Parse([]byte("@http:Serv"))
	require.Len(t, f.Tokens, 4)

	assert.Equal(t, -1, f.LastTokenBefore(0))
	assert.Equal(t, 0, f.LastTokenBefore(1))
	assert.Equal(t, 3, f.LastTokenBefore(10))
	assert.Equal(t, 3, f.LastTokenBefore(8))

	tok, ok := f.TokenAt(10)
	require.True(t, ok)
	assert.Equal(t, "Serv", tok.Text)
}

func TestFileEmpty(t *testing.T) {
	assert.True(t, Parse(nil).Empty())
	assert.True(t, Parse([]byte("  // just a comment\n")).Empty())
	assert.False(t, Parse([]byte("import")).Empty())

	var f *File
	assert.True(t, f.Empty())
	assert.Nil(t, f.PathEnclosing(0))
}
