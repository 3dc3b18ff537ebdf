package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

func classifyCursor(t *testing.T, src string) Classification {
	t.Helper()
	offset := strings.Index(src, "|")
	require.GreaterOrEqual(t, offset, 0, "missing cursor marker")
	f := syntax.Parse([]byte(src[:offset] + src[offset+1:]))
	return Classify(f, offset)
}

func TestClassify(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		want Classification
	}{
		{
			name: "EmptyFile",
			src:  "|",
			want: Classification{Category: CategoryUnknown},
		},
		{
			name: "CommentOnly",
			src:  "// nothing yet\n|",
			want: Classification{Category: CategoryUnknown},
		},
		{
			name: "AfterImport",
			src:  "import ballerina/http;\n|",
			want: Classification{Category: CategoryCompilationUnit},
		},
		{
			name: "ImportPath",
			src:  "import ballerina/ht|",
			want: Classification{Category: CategoryPackageName, Prefix: "ht", PackagePath: "ballerina/ht"},
		},
		{
			name: "ImportKeywordOnly",
			src:  "import |",
			want: Classification{Category: CategoryPackageName},
		},
		{
			name: "Annotation",
			src:  "@|",
			want: Classification{Category: CategoryCompilationUnit, Annotation: true},
		},
		{
			name: "AnnotationWithSpace",
			src:  "@ |",
			want: Classification{Category: CategoryCompilationUnit, Annotation: true},
		},
		{
			name: "QualifiedAnnotation",
			src:  "@http:Ser|",
			want: Classification{Category: CategoryCompilationUnit, Annotation: true, Prefix: "http:Ser"},
		},
		{
			name: "AnnotationBeforeService",
			src:  "@|\nservice<http:Service> hello bind ep {\n}",
			want: Classification{Category: CategoryCompilationUnit, Annotation: true},
		},
		{
			name: "AfterAnnotationBody",
			src:  "@http:ServiceConfig {basePath: \"/\"}\n|",
			want: Classification{Category: CategoryCompilationUnit},
		},
		{
			name: "TypeName",
			src:  "in|",
			want: Classification{Category: CategoryTypeName, Prefix: "in"},
		},
		{
			name: "GlobalVariable",
			src:  "int |",
			want: Classification{Category: CategoryGlobalVariableDefinition},
		},
		{
			name: "GlobalVariableInitializer",
			src:  "int x = |;",
			want: Classification{Category: CategoryExpression},
		},
		{
			name: "EndpointType",
			src:  "endpoint http:Li|",
			want: Classification{Category: CategoryEndpointType, Prefix: "http:Li"},
		},
		{
			name: "ServiceBind",
			src:  "service<http:Service> hello bind |",
			want: Classification{Category: CategoryServiceEndpointAttachment},
		},
		{
			name: "ServiceBody",
			src:  "service<http:Service> hello bind ep {\n    |\n}",
			want: Classification{Category: CategoryServiceBody},
		},
		{
			name: "ServiceBodyAfterAt",
			src:  "service<http:Service> hello bind ep {\n    @|\n}",
			want: Classification{Category: CategoryServiceBody, AfterAt: true},
		},
		{
			name: "ResourceBody",
			src:  "service<http:Service> hello bind ep {\n    sayHello (endpoint caller, http:Request req) {\n        |\n    }\n}",
			want: Classification{Category: CategoryExpression},
		},
		{
			name: "FunctionStatement",
			src:  "function main(string... args) {\n    fo|\n}",
			want: Classification{Category: CategoryExpression, Prefix: "fo"},
		},
		{
			name: "ParameterType",
			src:  "function f(|) {}",
			want: Classification{Category: CategoryTypeName, Nested: true},
		},
		{
			name: "ParameterTypeFragment",
			src:  "function f(string s, in|) {}",
			want: Classification{Category: CategoryTypeName, Nested: true, Prefix: "in"},
		},
		{
			name: "ReturnType",
			src:  "function f() returns |",
			want: Classification{Category: CategoryTypeName, Nested: true},
		},
		{
			name: "RecordField",
			src:  "type Person {\n    |\n};",
			want: Classification{Category: CategoryTypeName, Nested: true},
		},
		{
			name: "EndpointConfig",
			src:  "endpoint http:Listener ep {\n    port: |\n};",
			want: Classification{Category: CategoryExpression},
		},
		{
			name: "QualifierOnly",
			src:  "endpoint http:|",
			want: Classification{Category: CategoryEndpointType, Prefix: "http:"},
		},
		{
			name: "ErrorSpanFallsBackToAncestor",
			src:  "function main() {\n}\n) ) |oops ;",
			want: Classification{Category: CategoryCompilationUnit},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCursor(t, tt.src)
			tt.want.Offset = strings.Index(tt.src, "|")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	f := syntax.Parse([]byte("int x;"))
	for _, offset := range []int{-1, 7, 1 << 20} {
		assert.Equal(t, Classification{Offset: offset, Category: CategoryUnknown}, Classify(f, offset))
	}
	assert.Equal(t, CategoryUnknown, Classify(nil, 0).Category)
}

func TestClassifyNeverPanics(t *testing.T) {
	broken := &syntax.File{
		Src:    []byte("int"),
		Tokens: []syntax.Token{{Kind: syntax.TokenIdent, Text: "int", Start: 0, End: 3}},
		Root: &syntax.Node{
			Rule:     syntax.RuleCompilationUnit,
			End:      3,
			Children: []*syntax.Node{nil},
		},
	}
	assert.NotPanics(t, func() {
		assert.Equal(t, CategoryUnknown, Classify(broken, 1).Category)
	})
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "ServiceBody", CategoryServiceBody.String())
	assert.Equal(t, "Category(42)", Category(42).String())
}
