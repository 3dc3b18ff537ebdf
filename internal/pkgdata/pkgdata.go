package pkgdata

import (
	_ "embed"
	"io/fs"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ballerina-platform/ballerinalsw/pkgdoc"
)

// BuiltinPkgPath is the package whose types need no import.
const BuiltinPkgPath = "ballerina/builtin"

var (
	//go:embed pkgdata.yaml
	pkgdataYAML []byte

	// customPkgdata holds the user-provided package data which has higher
	// priority than the embedded one.
	customPkgdata []byte
	customMu      sync.RWMutex
)

// SetCustomPkgdata sets the user-provided package data. It must be a YAML
// list of packages in the same format as the embedded data.
func SetCustomPkgdata(data []byte) error {
	if _, err := parsePkgdata(data); err != nil {
		return errors.Wrap(err, "invalid custom package data")
	}
	customMu.Lock()
	defer customMu.Unlock()
	customPkgdata = data
	pkgDocCache.Clear()
	return nil
}

func custom() []byte {
	customMu.RLock()
	defer customMu.RUnlock()
	return customPkgdata
}

var embedded = sync.OnceValues(func() (map[string]*pkgdoc.PkgDoc, error) {
	return parsePkgdata(pkgdataYAML)
})

// parsePkgdata decodes a package list keyed by path.
func parsePkgdata(data []byte) (map[string]*pkgdoc.PkgDoc, error) {
	var pkgs []*pkgdoc.PkgDoc
	if err := yaml.Unmarshal(data, &pkgs); err != nil {
		return nil, errors.Wrap(err, "failed to decode package data")
	}
	byPath := make(map[string]*pkgdoc.PkgDoc, len(pkgs))
	for i, pkg := range pkgs {
		if pkg == nil || pkg.Path == "" {
			return nil, errors.Newf("package %d has no path", i)
		}
		if _, ok := byPath[pkg.Path]; ok {
			return nil, errors.Newf("duplicate package %q", pkg.Path)
		}
		byPath[pkg.Path] = pkg
	}
	return byPath, nil
}

// ListPkgs lists all known package paths in sorted order.
func ListPkgs() ([]string, error) {
	pkgs, err := embedded()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list embed packages")
	}
	paths := make([]string, 0, len(pkgs))
	for path := range pkgs {
		paths = append(paths, path)
	}
	if data := custom(); len(data) > 0 {
		customPkgs, err := parsePkgdata(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list custom packages")
		}
		for path := range customPkgs {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// pkgDocCache is a cache for package documentation.
var pkgDocCache sync.Map // map[string]*pkgdoc.PkgDoc

// GetPkgDoc gets the documentation for a package. The error wraps
// [fs.ErrNotExist] when the package is unknown.
func GetPkgDoc(pkgPath string) (pkgDoc *pkgdoc.PkgDoc, err error) {
	if pkgDocIface, ok := pkgDocCache.Load(pkgPath); ok {
		return pkgDocIface.(*pkgdoc.PkgDoc), nil
	}

	// The read lock spans the lookup and the store, so SetCustomPkgdata
	// cannot clear the cache in between.
	customMu.RLock()
	defer customMu.RUnlock()
	defer func() {
		if err == nil {
			pkgDocCache.Store(pkgPath, pkgDoc)
		}
	}()

	if data := customPkgdata; len(data) > 0 {
		customPkgs, err := parsePkgdata(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get custom package doc")
		}
		if pkgDoc, ok := customPkgs[pkgPath]; ok {
			return pkgDoc, nil
		}
	}
	pkgs, err := embedded()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get embed package doc")
	}
	if pkgDoc, ok := pkgs[pkgPath]; ok {
		return pkgDoc, nil
	}
	return nil, errors.Wrapf(fs.ErrNotExist, "failed to find doc for package %q", pkgPath)
}
