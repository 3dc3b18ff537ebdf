package completion

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Kind is the source category of a [Candidate]. Its numeric value is the
// ranking priority used by [DefaultSorter].
type Kind int

const (
	KindKeyword Kind = iota + 1
	KindType
	KindSnippet
	KindSymbol
)

var kindNames = map[Kind]string{
	KindKeyword: "keyword",
	KindType:    "type",
	KindSnippet: "snippet",
	KindSymbol:  "symbol",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the lower-case name of a [Kind].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, errors.Newf("unknown candidate kind %q", s)
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseKind(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*k = parsed
	return nil
}

// InsertFormat tells how a [Candidate.InsertText] is to be interpreted.
type InsertFormat int

const (
	PlainText InsertFormat = iota + 1
	Snippet
)

// Candidate is a single completion suggestion.
type Candidate struct {
	Label      string
	InsertText string
	Format     InsertFormat
	Kind       Kind
	Detail     string

	// Symbol is the kind of symbol the candidate was made from. It is zero
	// for catalog entries.
	Symbol SymbolKind
}

// SortKey returns the key [DefaultSorter] orders by: the kind priority
// followed by the lower-cased label.
func (c Candidate) SortKey() string {
	return fmt.Sprintf("%d%s", c.Kind, strings.ToLower(c.Label))
}

// candidateSet collects candidates in insertion order, dropping any whose
// label was already added.
type candidateSet struct {
	items []Candidate
	seen  map[string]struct{}
}

func newCandidateSet() *candidateSet {
	return &candidateSet{
		items: []Candidate{},
		seen:  make(map[string]struct{}),
	}
}

// add adds candidates to the set.
func (s *candidateSet) add(items ...Candidate) {
	for _, item := range items {
		if _, ok := s.seen[item.Label]; ok {
			continue
		}
		s.seen[item.Label] = struct{}{}
		s.items = append(s.items, item)
	}
}
