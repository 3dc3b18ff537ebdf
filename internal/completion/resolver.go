package completion

import (
	"fmt"

	"go.uber.org/zap"
)

// Variant identifies a resolver strategy.
type Variant int

const (
	VariantTopLevel Variant = iota
	VariantExpression
	VariantTypeName
	VariantGlobalVariableDefinition
	VariantServiceEndpointAttachment
	VariantEndpointType
	VariantPackageName
	VariantAnnotationAttachment
	VariantServiceBody
)

// VariantDefault is the baseline variant used when no specific one applies.
const VariantDefault = VariantTopLevel

var variantNames = [...]string{
	VariantTopLevel:                  "TopLevel",
	VariantExpression:                "Expression",
	VariantTypeName:                  "TypeName",
	VariantGlobalVariableDefinition:  "GlobalVariableDefinition",
	VariantServiceEndpointAttachment: "ServiceEndpointAttachment",
	VariantEndpointType:              "EndpointType",
	VariantPackageName:               "PackageName",
	VariantAnnotationAttachment:      "AnnotationAttachment",
	VariantServiceBody:               "ServiceBody",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// categoryVariants maps each category to the variant that resolves it.
// Categories without an entry resolve with [VariantDefault].
var categoryVariants = map[Category]Variant{
	CategoryCompilationUnit:           VariantTopLevel,
	CategoryPackageName:               VariantPackageName,
	CategoryServiceEndpointAttachment: VariantServiceEndpointAttachment,
	CategoryEndpointType:              VariantEndpointType,
	CategoryGlobalVariableDefinition:  VariantGlobalVariableDefinition,
	CategoryTypeName:                  VariantTypeName,
	CategoryExpression:                VariantExpression,
	CategoryServiceBody:               VariantServiceBody,
}

// VariantFor returns the variant that resolves category c.
func VariantFor(c Category) Variant {
	if v, ok := categoryVariants[c]; ok {
		return v
	}
	return VariantDefault
}

// Resolver produces the candidates of one variant. Implementations must be
// stateless and must not classify the context again.
type Resolver interface {
	Resolve(req *Request) []Candidate
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(req *Request) []Candidate

// Resolve implements [Resolver].
func (f ResolverFunc) Resolve(req *Request) []Candidate {
	return f(req)
}

// Request is what a resolver sees of a completion request.
type Request struct {
	ctx    *Context
	engine *Engine
	depth  int
}

// Context returns the completion context.
func (r *Request) Context() *Context { return r.ctx }

// Catalog returns the catalog of the engine.
func (r *Request) Catalog() *Catalog { return r.engine.catalog }

// Delegate resolves the same context with another variant. Once the
// delegation depth limit is reached it returns the baseline instead.
func (r *Request) Delegate(v Variant) []Candidate {
	if r.depth+1 > r.engine.maxDepth {
		r.engine.logger.Warn("completion delegation depth exceeded, using baseline",
			zap.Stringer("variant", v),
			zap.Int("depth", r.depth+1),
		)
		return r.engine.baseline(r.ctx)
	}
	res, ok := r.engine.lookup(v)
	if !ok {
		return r.engine.baseline(r.ctx)
	}
	return res.Resolve(&Request{ctx: r.ctx, engine: r.engine, depth: r.depth + 1})
}
