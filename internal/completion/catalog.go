package completion

import (
	"bytes"
	_ "embed"
	"os"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Group names a set of catalog entries offered together.
type Group string

const (
	GroupTopLevel           Group = "toplevel"
	GroupExpression         Group = "expression"
	GroupGlobalVariable     Group = "globalvar"
	GroupService            Group = "service"
	GroupEndpointAttachment Group = "endpoint-attachment"
)

var knownGroups = []Group{
	GroupTopLevel,
	GroupExpression,
	GroupGlobalVariable,
	GroupService,
	GroupEndpointAttachment,
}

// Entry is a keyword or snippet of the catalog.
type Entry struct {
	Name   string `yaml:"name"`
	Group  Group  `yaml:"group"`
	Label  string `yaml:"label"`
	Insert string `yaml:"insert"`
	Kind   Kind   `yaml:"kind"`
	Detail string `yaml:"detail"`
}

// Candidate returns the candidate offered for e.
func (e Entry) Candidate() Candidate {
	format := PlainText
	if len(tabStops(e.Insert)) > 0 {
		format = Snippet
	}
	return Candidate{
		Label:      e.Label,
		InsertText: e.Insert,
		Format:     format,
		Kind:       e.Kind,
		Detail:     e.Detail,
	}
}

// Catalog is the immutable registry of keywords and snippets.
type Catalog struct {
	entries []Entry
	byName  map[string]int
	groups  map[Group][]Candidate
}

// ParseCatalog parses and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog")
	}
	if len(doc.Entries) == 0 {
		return nil, errors.New("catalog has no entries")
	}

	c := &Catalog{
		entries: doc.Entries,
		byName:  make(map[string]int, len(doc.Entries)),
		groups:  make(map[Group][]Candidate),
	}
	for i, e := range doc.Entries {
		if err := validateEntry(e); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %d (%q)", i, e.Name)
		}
		if _, ok := c.byName[e.Name]; ok {
			return nil, errors.Newf("duplicate catalog entry %q", e.Name)
		}
		c.byName[e.Name] = i
		c.groups[e.Group] = append(c.groups[e.Group], e.Candidate())
	}
	return c, nil
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to read catalog %s", path),
			"unset completion.catalog_path to use the built-in catalog",
		)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog %s", path)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
})

// DefaultCatalog returns the built-in catalog. It is parsed once per process.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(errors.Wrap(err, "built-in catalog"))
	}
	return c
}

// Entry returns the entry with the given name.
func (c *Catalog) Entry(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Group returns the candidates of group g in catalog order.
func (c *Catalog) Group(g Group) []Candidate {
	return slices.Clone(c.groups[g])
}

func validateEntry(e Entry) error {
	switch {
	case e.Name == "":
		return errors.New("missing name")
	case e.Label == "":
		return errors.New("missing label")
	case e.Insert == "":
		return errors.New("missing insert text")
	case e.Kind == 0:
		return errors.New("missing kind")
	case !slices.Contains(knownGroups, e.Group):
		return errors.Newf("unknown group %q", e.Group)
	}
	return validateTabStops(e.Insert)
}

var tabStopRE = regexp.MustCompile(`\$\{(\d+)(?::[^}]*)?\}|\$(\d+)`)

func tabStops(insert string) []int {
	var stops []int
	for _, m := range tabStopRE.FindAllStringSubmatch(insert, -1) {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		stops = append(stops, n)
	}
	return stops
}

// validateTabStops checks that the tab stops of a snippet are numbered
// 1..N without gaps. A stop may appear more than once.
func validateTabStops(insert string) error {
	stops := tabStops(insert)
	if len(stops) == 0 {
		return nil
	}
	slices.Sort(stops)
	stops = slices.Compact(stops)
	for i, n := range stops {
		if n != i+1 {
			if n == 0 {
				return errors.New("tab stop $0 is not allowed")
			}
			return errors.Newf("tab stops must be numbered 1..%d without gaps, found %v", len(stops), stops)
		}
	}
	return nil
}
