package completion

import (
	"cmp"
	"fmt"
	"slices"
)

// Category is the closed classification of the grammar production that
// encloses the cursor.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCompilationUnit
	CategoryPackageName
	CategoryServiceEndpointAttachment
	CategoryEndpointType
	CategoryGlobalVariableDefinition
	CategoryTypeName
	CategoryExpression
	CategoryServiceBody
)

var categoryNames = [...]string{
	CategoryUnknown:                   "Unknown",
	CategoryCompilationUnit:           "CompilationUnit",
	CategoryPackageName:               "PackageName",
	CategoryServiceEndpointAttachment: "ServiceEndpointAttachment",
	CategoryEndpointType:              "EndpointType",
	CategoryGlobalVariableDefinition:  "GlobalVariableDefinition",
	CategoryTypeName:                  "TypeName",
	CategoryExpression:                "Expression",
	CategoryServiceBody:               "ServiceBody",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Classification is what [Classify] learns about a cursor position.
type Classification struct {
	Offset   int
	Category Category

	// Annotation is set when an `@` immediately precedes the cursor at
	// compilation-unit level.
	Annotation bool
	// AfterAt is set when an `@` immediately precedes the cursor inside a
	// service body.
	AfterAt bool
	// Prefix is the part of the identifier being typed left of the cursor.
	Prefix string
	// PackagePath is the import path typed so far in an import declaration.
	PackagePath string
	// Nested is set for a type slot inside a function signature or a record
	// or object body.
	Nested bool
}

// Context is the per-request input of the resolvers. It is never mutated
// after construction.
type Context struct {
	cl      Classification
	symbols []Symbol
}

// NewContext creates a [Context]. The symbols are copied and ordered by
// descending scope depth, so a symbol shadows same-named ones of enclosing
// scopes. Symbols of equal depth keep their order.
func NewContext(cl Classification, symbols []Symbol) *Context {
	symbols = slices.Clone(symbols)
	slices.SortStableFunc(symbols, func(a, b Symbol) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return &Context{
		cl:      cl,
		symbols: symbols,
	}
}

// Offset returns the cursor offset.
func (c *Context) Offset() int { return c.cl.Offset }

// Category returns the classified context category.
func (c *Context) Category() Category { return c.cl.Category }

// Annotation reports whether the cursor is at a compilation-unit level
// annotation attachment.
func (c *Context) Annotation() bool { return c.cl.Annotation }

// AfterAt reports whether the cursor directly follows `@` in a service body.
func (c *Context) AfterAt() bool { return c.cl.AfterAt }

// Prefix returns the identifier fragment left of the cursor.
func (c *Context) Prefix() string { return c.cl.Prefix }

// PackagePath returns the partially typed import path.
func (c *Context) PackagePath() string { return c.cl.PackagePath }

// Nested reports whether a type slot lies inside a signature or type body.
func (c *Context) Nested() bool { return c.cl.Nested }

// Symbols returns the visible symbols, innermost scope first. Callers must
// not modify the result.
func (c *Context) Symbols() []Symbol { return c.symbols }
