package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballerina-platform/ballerinalsw/internal/completion"
	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

const source = `import ballerina/http;
import ballerina/io as console;

endpoint http:Listener listener {
    port: 9090
};

const int MAX = 10;
int counter = 0;

function greet(string name, endpoint caller) returns string {
    string greeting = "hello";
    |
    if (name == "") {
        json body = {};
        $
    }
    int late = 1;
}
`

// indexAt parses source and returns the index and the offset of marker.
func indexAt(t *testing.T, marker string) (*Index, int) {
	t.Helper()
	src := source
	offset := strings.Index(src, marker)
	require.GreaterOrEqual(t, offset, 0)
	src = strings.NewReplacer("|", " ", "$", " ").Replace(src)
	return New(syntax.Parse([]byte(src)), nil), offset
}

func names(symbols []completion.Symbol) []string {
	var out []string
	for _, s := range symbols {
		out = append(out, s.Name)
	}
	return out
}

func find(t *testing.T, symbols []completion.Symbol, qualified string) completion.Symbol {
	t.Helper()
	for _, s := range symbols {
		if s.QualifiedName() == qualified {
			return s
		}
	}
	t.Fatalf("symbol %q not visible", qualified)
	return completion.Symbol{}
}

func TestIndexVisibleSymbols(t *testing.T) {
	ix, offset := indexAt(t, "|")
	symbols := ix.VisibleSymbols(offset)

	require.Greater(t, len(symbols), 8)
	assert.Equal(t, []string{"greeting", "name", "caller", "listener", "MAX", "counter", "greet", "http"}, names(symbols[:8]))
	assert.NotContains(t, names(symbols), "late")
	assert.NotContains(t, names(symbols), "body")

	assert.Equal(t, completion.Symbol{Name: "greeting", Kind: completion.SymbolVariable, Type: "string", Depth: 1}, symbols[0])
	assert.Equal(t, completion.SymbolEndpoint, symbols[2].Kind)
	assert.Equal(t, completion.SymbolConstant, find(t, symbols, "MAX").Kind)
	assert.Equal(t, "http:Listener", find(t, symbols, "listener").Type)
	assert.Equal(t, "ballerina/http", find(t, symbols, "http").Type)
	assert.Equal(t, "ballerina/io", find(t, symbols, "console").Type)

	listener := find(t, symbols, "http:Listener")
	assert.Equal(t, completion.SymbolType, listener.Kind)
	assert.True(t, listener.EndpointType)
	assert.Equal(t, []string{"resource"}, find(t, symbols, "http:ResourceConfig").AttachPoints)
	assert.Equal(t, completion.SymbolFunction, find(t, symbols, "console:println").Kind)
	assert.True(t, find(t, symbols, "json").Fundamental)
}

func TestIndexNestedBlock(t *testing.T) {
	ix, offset := indexAt(t, "$")
	symbols := ix.VisibleSymbols(offset)

	require.Greater(t, len(symbols), 3)
	assert.Equal(t, []string{"body", "greeting", "name", "caller"}, names(symbols[:4]))
	assert.Equal(t, 2, symbols[0].Depth)
	assert.Equal(t, 1, symbols[1].Depth)
}

func TestIndexTopLevel(t *testing.T) {
	ix, _ := indexAt(t, "|")
	symbols := ix.VisibleSymbols(0)
	assert.NotContains(t, names(symbols), "greeting")
	assert.Equal(t, "listener", symbols[0].Name)
}

func TestIndexUnknownImport(t *testing.T) {
	ix := New(syntax.Parse([]byte("import acme/widgets;\n")), nil)
	symbols := ix.VisibleSymbols(0)
	widgets := find(t, symbols, "widgets")
	assert.Equal(t, completion.SymbolPackage, widgets.Kind)
	for _, s := range symbols {
		assert.NotEqual(t, "widgets", s.Package)
	}
}

func TestIndexNilFile(t *testing.T) {
	symbols := New(nil, nil).VisibleSymbols(0)
	require.NotEmpty(t, symbols)
	for _, s := range symbols {
		assert.True(t, s.Fundamental)
	}
}

func TestIndexCompletion(t *testing.T) {
	src := "import ballerina/http;\nfunction main(string... args) {\n    int x = 1;\n    \n}\n"
	offset := strings.Index(src, "    \n") + 4
	f := syntax.Parse([]byte(src))

	items := completion.New().Complete(f, offset, New(f, nil))
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "x")
	assert.Contains(t, labels, "args")
	assert.Contains(t, labels, "http")
	assert.Contains(t, labels, "true")
	assert.NotContains(t, labels, "import")
}
