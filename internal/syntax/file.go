package syntax

import (
	"fmt"
	"slices"
	"sort"
)

// Error is a syntax error recorded while parsing. Parsing never stops on an
// error; the offending tokens end up in a [RuleError] node.
type Error struct {
	Offset int
	Msg    string
}

func (e Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Msg)
}

// File is a parsed source file.
type File struct {
	Src    []byte
	Tokens []Token
	Root   *Node
	Errors []Error
}

// Text returns the source text covered by n.
func (f *File) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return f.slice(n.Start, n.End)
}

func (f *File) slice(start, end int) string {
	start = min(max(start, 0), len(f.Src))
	end = min(max(end, start), len(f.Src))
	return string(f.Src[start:end])
}

// TextBetween returns the source text in [start, end), clamped to the file.
func (f *File) TextBetween(start, end int) string {
	return f.slice(start, end)
}

// Empty reports whether the file holds no tokens at all.
func (f *File) Empty() bool {
	return f == nil || len(f.Tokens) == 0
}

// PathEnclosing returns the nodes enclosing offset, innermost first. When two
// siblings touch at offset the left one wins, as the cursor is then at the end
// of the token being typed.
func (f *File) PathEnclosing(offset int) []*Node {
	if f == nil || f.Root == nil || !f.Root.Contains(offset) {
		return nil
	}
	var path []*Node
	for n := f.Root; n != nil; {
		path = append(path, n)
		var next *Node
		for _, c := range n.Children {
			if c.Contains(offset) {
				next = c
				break
			}
		}
		n = next
	}
	slices.Reverse(path)
	return path
}

// LastTokenBefore returns the index of the last token starting before
// offset, or -1 if there is none. A token the cursor sits in counts as before
// the cursor.
func (f *File) LastTokenBefore(offset int) int {
	if f == nil {
		return -1
	}
	i := sort.Search(len(f.Tokens), func(i int) bool {
		return f.Tokens[i].Start >= offset
	})
	return i - 1
}

// TokenAt returns the token whose span contains offset (end-inclusive).
func (f *File) TokenAt(offset int) (Token, bool) {
	if i := f.LastTokenBefore(offset); i >= 0 && f.Tokens[i].End >= offset {
		return f.Tokens[i], true
	}
	return Token{}, false
}
