package completion

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/tchap/go-patricia/v2/patricia"
	"go.uber.org/zap"

	"github.com/ballerina-platform/ballerinalsw/i18n"
	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

// DefaultMaxDelegationDepth bounds how deep resolvers may delegate to one
// another.
const DefaultMaxDelegationDepth = 4

// Engine resolves completion candidates. It is immutable after [New] and safe
// for concurrent use.
type Engine struct {
	catalog   *Catalog
	sorter    Sorter
	resolvers map[Variant]Resolver
	packages  *patricia.Trie
	maxDepth  int
	strict    bool
	language  i18n.Language
	logger    *zap.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithSorter replaces [DefaultSorter].
func WithSorter(s Sorter) Option {
	return func(e *Engine) {
		if s != nil {
			e.sorter = s
		}
	}
}

// WithMaxDepth sets the delegation depth limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithStrictInvariants makes invariant violations panic even outside test
// binaries and debug builds.
func WithStrictInvariants(strict bool) Option {
	return func(e *Engine) {
		e.strict = e.strict || strict
	}
}

// WithLogger sets the logger used for degraded paths.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithResolver replaces the resolver of variant v.
func WithResolver(v Variant, r Resolver) Option {
	return func(e *Engine) {
		e.resolvers[v] = r
	}
}

// WithoutResolver removes the resolver of variant v, leaving the registry
// incomplete.
func WithoutResolver(v Variant) Option {
	return func(e *Engine) {
		delete(e.resolvers, v)
	}
}

// WithPackages sets the import paths known to the PackageName resolver.
func WithPackages(paths []string) Option {
	return func(e *Engine) {
		trie := patricia.NewTrie()
		for _, path := range paths {
			trie.Insert(patricia.Prefix(path), struct{}{})
		}
		e.packages = trie
	}
}

// WithLanguage sets the language candidate details are translated to.
func WithLanguage(lang i18n.Language) Option {
	return func(e *Engine) {
		e.language = lang
	}
}

// New creates an [Engine].
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog:   DefaultCatalog(),
		sorter:    DefaultSorter,
		resolvers: make(map[Variant]Resolver, len(builtinResolvers)),
		maxDepth:  DefaultMaxDelegationDepth,
		strict:    debugBuild || testing.Testing(),
		language:  i18n.LanguageEN,
		logger:    zap.NewNop(),
	}
	for v, r := range builtinResolvers {
		e.resolvers[v] = r
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog of e.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// ContextAt classifies the cursor at offset in f and collects the symbols
// visible there. A nil symbol source means no symbols.
func ContextAt(f *syntax.File, offset int, symbols SymbolSource) *Context {
	var visible []Symbol
	if symbols != nil {
		visible = symbols.VisibleSymbols(offset)
	}
	return NewContext(Classify(f, offset), visible)
}

// Complete resolves the cursor at offset in f with the symbols visible there.
func (e *Engine) Complete(f *syntax.File, offset int, symbols SymbolSource) []Candidate {
	return e.Resolve(ContextAt(f, offset, symbols))
}

// Resolve returns the sorted candidates of ctx. The result never contains
// two candidates with the same label.
func (e *Engine) Resolve(ctx *Context) []Candidate {
	items := e.merge(ctx)
	e.sorter.Sort(items)
	if e.language != i18n.LanguageEN {
		for i := range items {
			items[i].Detail = i18n.Translate(items[i].Detail, e.language)
		}
	}
	return items
}

// merge concatenates the sources of the dispatch rule matching ctx, in rule
// order, dropping repeated labels.
func (e *Engine) merge(ctx *Context) []Candidate {
	delegate := VariantFor(ctx.Category())
	rule := dispatch(ctx, delegate)

	set := newCandidateSet()
	for _, src := range rule.sources {
		switch src {
		case sourceBaselineKeywords:
			set.add(e.catalog.Group(GroupTopLevel)...)
		case sourceBaselineTypes:
			set.add(fundamentalTypes(ctx.Symbols())...)
		case sourceDelegate:
			set.add(e.run(ctx, delegate)...)
		case sourceAnnotationAttachment:
			set.add(e.run(ctx, VariantAnnotationAttachment)...)
		}
	}
	return set.items
}

// run invokes the resolver of v at depth zero, degrading to the baseline when
// it is missing.
func (e *Engine) run(ctx *Context, v Variant) []Candidate {
	r, ok := e.lookup(v)
	if !ok {
		return e.baseline(ctx)
	}
	return r.Resolve(&Request{ctx: ctx, engine: e})
}

// lookup returns the resolver of v. A missing resolver is an invariant
// violation: fatal in strict mode, logged otherwise.
func (e *Engine) lookup(v Variant) (Resolver, bool) {
	r, ok := e.resolvers[v]
	if ok && r != nil {
		return r, true
	}
	if e.strict {
		panic(errors.AssertionFailedf("no resolver registered for variant %s", v))
	}
	e.logger.Warn("no resolver registered, using baseline", zap.Stringer("variant", v))
	return nil, false
}

// baseline returns the baseline keywords followed by the built-in types.
func (e *Engine) baseline(ctx *Context) []Candidate {
	set := newCandidateSet()
	set.add(e.catalog.Group(GroupTopLevel)...)
	set.add(fundamentalTypes(ctx.Symbols())...)
	return set.items
}
