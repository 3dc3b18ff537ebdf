package completion

// source is a producer of candidates named by a dispatch rule.
type source int

const (
	sourceBaselineKeywords source = iota
	sourceBaselineTypes
	sourceDelegate
	sourceAnnotationAttachment
)

func (s source) String() string {
	switch s {
	case sourceBaselineKeywords:
		return "baseline-keywords"
	case sourceBaselineTypes:
		return "baseline-types"
	case sourceDelegate:
		return "delegate"
	case sourceAnnotationAttachment:
		return "annotation-attachment"
	}
	return "unknown"
}

// dispatchRule selects the sources of a completion result. The candidates
// of the sources are concatenated in order, so earlier sources win label
// clashes.
type dispatchRule struct {
	name    string
	match   func(ctx *Context, delegate Variant) bool
	sources []source
}

func inCategories(categories ...Category) func(*Context, Variant) bool {
	return func(ctx *Context, _ Variant) bool {
		for _, c := range categories {
			if ctx.Category() == c {
				return true
			}
		}
		return false
	}
}

// dispatchTable is evaluated top to bottom; the first matching rule wins.
var dispatchTable = []dispatchRule{
	{
		name:    "service-body",
		match:   inCategories(CategoryServiceBody),
		sources: []source{sourceDelegate},
	},
	{
		name: "annotation-attachment",
		match: func(ctx *Context, _ Variant) bool {
			return ctx.Category() == CategoryCompilationUnit && ctx.Annotation()
		},
		sources: []source{sourceAnnotationAttachment},
	},
	{
		// The delegate of a compilation unit is the baseline resolver
		// itself; invoking it as a delegate would only repeat the baseline.
		name: "baseline",
		match: func(ctx *Context, delegate Variant) bool {
			return ctx.Category() == CategoryUnknown || delegate == VariantDefault
		},
		sources: []source{sourceBaselineKeywords, sourceBaselineTypes},
	},
	{
		name:    "delegate",
		match:   inCategories(CategoryPackageName, CategoryServiceEndpointAttachment, CategoryEndpointType),
		sources: []source{sourceDelegate},
	},
	{
		// No top-level declaration starts inside a signature or type body.
		name: "nested-type-name",
		match: func(ctx *Context, _ Variant) bool {
			return ctx.Category() == CategoryTypeName && ctx.Nested()
		},
		sources: []source{sourceDelegate},
	},
	{
		name:    "baseline-and-delegate",
		match:   inCategories(CategoryGlobalVariableDefinition, CategoryTypeName),
		sources: []source{sourceBaselineKeywords, sourceBaselineTypes, sourceDelegate},
	},
	{
		name:    "expression",
		match:   inCategories(CategoryExpression),
		sources: []source{sourceDelegate},
	},
}

var fallbackRule = dispatchRule{
	name:    "fallback",
	sources: []source{sourceBaselineKeywords, sourceBaselineTypes},
}

// dispatch returns the first rule of the table matching ctx.
func dispatch(ctx *Context, delegate Variant) dispatchRule {
	for _, rule := range dispatchTable {
		if rule.match(ctx, delegate) {
			return rule
		}
	}
	return fallbackRule
}
