package pkgdoc

import (
	"maps"
	"slices"
)

// PkgDoc is the documentation for a package.
type PkgDoc struct {
	Doc  string `yaml:"doc"`
	Path string `yaml:"path"`
	Name string `yaml:"name"`

	// Builtin marks the package whose types are available without an
	// import.
	Builtin bool `yaml:"builtin"`

	Consts      map[string]string         `yaml:"consts"`
	Types       map[string]*TypeDoc       `yaml:"types"`
	Funcs       map[string]string         `yaml:"funcs"`
	Annotations map[string]*AnnotationDoc `yaml:"annotations"`
}

// TypeDoc is the documentation for a type.
type TypeDoc struct {
	Doc string `yaml:"doc"`
	// Endpoint marks types that may follow the endpoint keyword.
	Endpoint bool              `yaml:"endpoint"`
	Fields   map[string]string `yaml:"fields"`
}

// AnnotationDoc is the documentation for an annotation.
type AnnotationDoc struct {
	Doc string `yaml:"doc"`
	// Attach lists the constructs the annotation may be attached to. An
	// empty list means any construct.
	Attach []string `yaml:"attach"`
}

// Alias returns the name the package is referred to by when imported
// without an explicit alias: the last segment of its path.
func (p *PkgDoc) Alias() string {
	if p.Name != "" {
		return p.Name
	}
	for i := len(p.Path) - 1; i >= 0; i-- {
		if p.Path[i] == '/' {
			return p.Path[i+1:]
		}
	}
	return p.Path
}

// ConstNames returns the constant names in sorted order.
func (p *PkgDoc) ConstNames() []string { return sortedKeys(p.Consts) }

// TypeNames returns the type names in sorted order.
func (p *PkgDoc) TypeNames() []string { return sortedKeys(p.Types) }

// FuncNames returns the function names in sorted order.
func (p *PkgDoc) FuncNames() []string { return sortedKeys(p.Funcs) }

// AnnotationNames returns the annotation names in sorted order.
func (p *PkgDoc) AnnotationNames() []string { return sortedKeys(p.Annotations) }

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
