package syntax

import (
	"fmt"
	"strings"
)

// Parse parses src into a [File]. It never fails: tokens that fit no
// production are wrapped in [RuleError] nodes and parsing resumes at the next
// synchronisation point.
func Parse(src []byte) (f *File) {
	p := &parser{src: src, toks: tokenize(src)}
	root := &Node{Rule: RuleCompilationUnit, Start: 0, End: len(src)}
	p.cur = root
	f = &File{Src: src, Tokens: p.toks, Root: root}
	defer func() {
		if r := recover(); r != nil {
			p.errs = append(p.errs, Error{Offset: p.pos(), Msg: fmt.Sprintf("parser panic: %v", r)})
		}
		f.Errors = p.errs
	}()
	p.compilationUnit()
	return f
}

// frame remembers where a node was opened.
type frame struct {
	node     *Node
	tok      int
	gapStart int
}

type parser struct {
	src     []byte
	toks    []Token
	i       int
	prevEnd int

	cur   *Node
	stack []frame
	errs  []Error
}

func (p *parser) eof() bool {
	return p.i >= len(p.toks)
}

func (p *parser) tok() Token {
	if p.eof() {
		return Token{Start: len(p.src), End: len(p.src)}
	}
	return p.toks[p.i]
}

// pos returns the start of the current token, or the end of the source.
func (p *parser) pos() int {
	return p.tok().Start
}

func (p *parser) at(text string) bool {
	return !p.eof() && p.toks[p.i].Text == text
}

func (p *parser) peekIs(k int, text string) bool {
	j := p.i + k
	return j < len(p.toks) && p.toks[j].Text == text
}

// atIdent reports whether the current token is a non-reserved identifier.
func (p *parser) atIdent() bool {
	return !p.eof() && p.toks[p.i].Kind == TokenIdent && !IsKeyword(p.toks[p.i].Text)
}

func (p *parser) next() Token {
	t := p.tok()
	if !p.eof() {
		p.i++
		p.prevEnd = t.End
	}
	return t
}

func (p *parser) got(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) bool {
	if p.got(text) {
		return true
	}
	p.cur.Incomplete = true
	p.errorf("expected %q", text)
	return false
}

func (p *parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, Error{Offset: p.pos(), Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) open(rule Rule) *Node {
	n := &Node{Rule: rule, Start: p.pos(), Parent: p.cur}
	p.cur.Children = append(p.cur.Children, n)
	p.stack = append(p.stack, frame{node: n, tok: p.i, gapStart: p.prevEnd})
	p.cur = n
	return n
}

// close finishes the innermost open node. A node that consumed nothing spans
// the gap between the previous token and the next one; an incomplete node
// extends up to the next token.
func (p *parser) close(n *Node) {
	fr := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.cur = n.Parent
	if p.i == fr.tok {
		n.Start = fr.gapStart
		n.End = p.pos()
		return
	}
	n.End = p.prevEnd
	if n.Incomplete {
		n.End = p.pos()
	}
	for _, c := range n.Children {
		n.End = max(n.End, c.End)
	}
}

// abandon closes n and removes it from its parent.
func (p *parser) abandon(n *Node) {
	p.close(n)
	if parent := n.Parent; parent != nil {
		parent.Children = parent.Children[:len(parent.Children)-1]
	}
}

func (p *parser) consumed(n *Node) bool {
	return p.i > p.stack[len(p.stack)-1].tok && p.stack[len(p.stack)-1].node == n
}

func (p *parser) textFrom(start int) string {
	if p.prevEnd <= start {
		return ""
	}
	return string(p.src[start:p.prevEnd])
}

var topLevelSync = map[string]struct{}{
	"import": {}, "public": {}, "function": {}, "service": {}, "endpoint": {},
	"type": {}, "annotation": {}, "xmlns": {}, "@": {},
}

var memberSync = map[string]struct{}{
	"}": {}, "public": {}, "private": {}, "function": {},
}

var bodySync = map[string]struct{}{
	"}": {}, "@": {}, "endpoint": {},
}

// recoverTo wraps tokens up to the next synchronisation token in an error node.
// Brackets are skipped as a unit and a ';' at depth zero ends the span.
func (p *parser) recoverTo(sync map[string]struct{}) {
	if p.eof() {
		return
	}
	n := p.open(RuleError)
	depth := 0
loop:
	for !p.eof() {
		t := p.tok()
		if _, ok := sync[t.Text]; ok && depth == 0 {
			break
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth = max(depth-1, 0)
		}
		p.next()
		if depth == 0 && t.Is(";") {
			break loop
		}
	}
	if !p.consumed(n) {
		p.abandon(n)
		return
	}
	p.errs = append(p.errs, Error{Offset: n.Start, Msg: "unexpected input"})
	p.close(n)
}

// skipBalanced consumes a bracketed group starting at the current opener.
func (p *parser) skipBalanced() bool {
	open := p.tok().Text
	closer := map[string]string{"{": "}", "(": ")", "[": "]", "<": ">"}[open]
	if closer == "" {
		return false
	}
	depth := 0
	for !p.eof() {
		t := p.next()
		switch t.Text {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	p.cur.Incomplete = true
	return false
}

func (p *parser) compilationUnit() {
	for !p.eof() {
		start := p.i
		p.topLevel()
		if p.i == start {
			p.skipOne()
		}
	}
}

// skipOne wraps the current token in an error node.
func (p *parser) skipOne() {
	n := p.open(RuleError)
	p.next()
	p.close(n)
}

func (p *parser) topLevel() {
	switch {
	case p.at("import"):
		p.importDeclaration()
	case p.at("@"):
		p.annotationAttachment()
	case p.at("public"), p.at("private"):
		p.next()
		p.definition()
	default:
		p.definition()
	}
}

func (p *parser) definition() {
	switch {
	case p.at("function"):
		p.functionDefinition()
	case p.at("extern"), p.at("native"):
		if p.peekIs(1, "function") {
			p.next()
			p.functionDefinition()
			return
		}
		p.recoverTo(topLevelSync)
	case p.at("service"):
		p.serviceDefinition()
	case p.at("endpoint"):
		p.endpointDeclaration()
	case p.at("type"):
		p.typeDefinition()
	case p.at("annotation"):
		p.annotationDefinition()
	case p.at("xmlns"):
		p.namespaceDeclaration()
	case p.at("final"), p.at("const"), p.at("var"), p.atIdent(), p.at("("):
		p.globalVariableDefinition()
	default:
		p.recoverTo(topLevelSync)
	}
}

func (p *parser) importDeclaration() {
	n := p.open(RuleImportDeclaration)
	p.next()
	pkg := p.packageName()
	if p.got("version") {
		if !p.eof() && p.tok().Kind != TokenPunct {
			p.next()
		}
	}
	if p.got("as") {
		if p.atIdent() {
			n.Name = p.next().Text
		} else {
			n.Incomplete = true
		}
	} else {
		n.Name = packageAlias(pkg.Name)
	}
	p.expect(";")
	p.close(n)
}

// packageAlias returns the implicit alias of an import path: its last
// segment.
func packageAlias(path string) string {
	if i := strings.LastIndexAny(path, "/."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// packageName parses an import path such as "ballerina/http". Segments must
// be contiguous, so a path never runs into the next line.
func (p *parser) packageName() *Node {
	n := p.open(RulePackageName)
	first := p.i
	for !p.eof() {
		t := p.tok()
		if p.i > first && t.Start != p.prevEnd {
			break
		}
		if (t.Kind == TokenIdent && !IsKeyword(t.Text)) || t.Is("/") || t.Is(".") {
			p.next()
			continue
		}
		break
	}
	if p.i > first {
		n.Name = p.textFrom(n.Start)
	}
	p.close(n)
	return n
}

// nameReference parses `ident (':' ident)?` and returns its text.
func (p *parser) nameReference() string {
	if !p.atIdent() {
		return ""
	}
	start := p.next().Start
	if p.at(":") && !p.peekIs(1, ":") {
		p.next()
		if p.atIdent() {
			p.next()
		} else {
			p.cur.Incomplete = true
		}
	}
	return p.textFrom(start)
}

func (p *parser) annotationAttachment() {
	n := p.open(RuleAnnotationAttachment)
	p.next()
	if n.Name = p.nameReference(); n.Name == "" {
		n.Incomplete = true
	}
	if p.at("{") {
		p.skipBalanced()
	}
	p.close(n)
}

func (p *parser) annotationDefinition() {
	n := p.open(RuleAnnotationDefinition)
	p.next()
	if p.got("<") {
		for !p.eof() && !p.at(">") && !p.at(";") {
			if t := p.next(); t.Kind == TokenIdent {
				n.Attach = append(n.Attach, t.Text)
			}
		}
		p.expect(">")
	}
	if p.atIdent() {
		n.Name = p.next().Text
	} else {
		n.Incomplete = true
	}
	if !p.at(";") {
		p.typeName()
	}
	p.expect(";")
	p.close(n)
}

func (p *parser) namespaceDeclaration() {
	n := p.open(RuleNamespaceDeclaration)
	p.next()
	if !p.eof() && p.tok().Kind == TokenString {
		p.next()
	}
	if p.got("as") && p.atIdent() {
		n.Name = p.next().Text
	}
	p.expect(";")
	p.close(n)
}

func (p *parser) functionDefinition() {
	n := p.open(RuleFunctionDefinition)
	p.next()
	if p.atIdent() {
		n.Name = p.next().Text
		if p.at(":") && p.peekIs(1, ":") {
			p.next()
			p.next()
			if p.atIdent() {
				n.Name = p.next().Text
			}
		}
	} else {
		n.Incomplete = true
	}
	if p.expect("(") {
		p.parameters()
		p.expect(")")
	}
	if p.got("returns") {
		p.typeName()
	}
	switch {
	case p.at("{"):
		p.callableUnitBody()
	case p.got(";"):
	default:
		n.Incomplete = true
	}
	p.close(n)
}

// parameters parses a parameter list up to, not including, the closing
// parenthesis. An empty parameter slot yields a gap type node.
func (p *parser) parameters() {
	for {
		if p.eof() || p.at(")") || p.at("{") {
			p.typeName()
			return
		}
		n := p.open(RuleParameter)
		if p.got("endpoint") {
			n.Type = "endpoint"
		} else if tn := p.typeName(); tn.Name != "" {
			n.Type = tn.Name
		}
		for p.got(".") {
		}
		if p.atIdent() {
			n.Name = p.next().Text
		}
		if !p.consumed(n) {
			p.abandon(n)
			return
		}
		p.close(n)
		if !p.got(",") {
			return
		}
	}
}

// typeName parses a type reference. It consumes nothing, producing a gap
// node, when no type starts at the current token.
func (p *parser) typeName() *Node {
	n := p.open(RuleTypeName)
	p.typeTokens()
	n.Name = p.textFrom(n.Start)
	p.close(n)
	return n
}

func (p *parser) typeTokens() bool {
	switch {
	case p.at("("):
		p.skipBalanced()
	case p.at("object"), p.at("record"):
		p.next()
		if p.at("{") {
			p.skipBalanced()
		}
	case p.at("var"):
		p.next()
	case p.atIdent():
		p.nameReference()
		if p.at("<") {
			p.skipBalanced()
		}
	default:
		return false
	}
	for {
		switch {
		case p.at("[") && p.peekIs(1, "]"):
			p.next()
			p.next()
		case p.at("?"):
			p.next()
		case p.at("|"):
			p.next()
			p.typeTokens()
		default:
			return true
		}
	}
}

// looksLikeVariableDefinition reports whether the tokens ahead read as
// `Type name =` or `Type name ;`.
func (p *parser) looksLikeVariableDefinition() bool {
	j := p.i
	tok := func(k int) Token {
		if k < len(p.toks) {
			return p.toks[k]
		}
		return Token{}
	}
	isName := func(t Token) bool { return t.Kind == TokenIdent && !IsKeyword(t.Text) }
	if t := tok(j); !isName(t) && !t.Is("var") {
		return false
	}
	j++
	if tok(j).Is(":") && isName(tok(j+1)) {
		j += 2
	}
	if tok(j).Is("<") {
		for depth := 0; j < len(p.toks); j++ {
			if tok(j).Is("<") {
				depth++
			} else if tok(j).Is(">") {
				if depth--; depth == 0 {
					j++
					break
				}
			}
		}
	}
	for {
		if tok(j).Is("[") && tok(j+1).Is("]") {
			j += 2
		} else if tok(j).Is("?") {
			j++
		} else {
			break
		}
	}
	return isName(tok(j)) && (tok(j+1).Is("=") || tok(j+1).Is(";"))
}

func (p *parser) globalVariableDefinition() {
	n := p.open(RuleGlobalVariableDefinition)
	for p.got("final") || p.got("const") {
	}
	tn := p.typeName()
	n.Type = tn.Name
	if p.atIdent() {
		n.Name = p.next().Text
	} else {
		n.Incomplete = true
	}
	if p.got("=") {
		p.expression(false)
	}
	p.expect(";")
	p.close(n)
}

func (p *parser) callableUnitBody() {
	n := p.open(RuleCallableUnitBody)
	p.next()
	for !p.eof() && !p.at("}") {
		start := p.i
		p.statement()
		if p.i == start {
			p.next()
		}
	}
	p.expect("}")
	p.close(n)
}

func (p *parser) statement() {
	n := p.open(RuleStatement)
	switch {
	case p.at("endpoint"):
		p.endpointDeclaration()
	case p.looksLikeVariableDefinition():
		v := p.open(RuleVariableDefinition)
		v.Type = p.typeName().Name
		v.Name = p.next().Text
		if p.got("=") {
			p.expression(false)
		}
		p.close(v)
	default:
		p.expression(true)
	}
	for p.at("{") {
		p.callableUnitBody()
		if !p.got("else") {
			break
		}
		if !p.at("{") {
			p.expression(true)
		}
	}
	p.got(";")
	p.close(n)
}

// expression consumes tokens up to a ';' or the closing brace of the
// enclosing body, skipping bracketed groups. In statement position a '{' at
// depth zero opens a block and ends the expression; elsewhere it starts a
// record literal. Stray closers are swallowed so the caller always makes
// progress.
func (p *parser) expression(blockEnds bool) {
	n := p.open(RuleExpression)
	depth := 0
	for !p.eof() {
		t := p.tok()
		if depth == 0 && (t.Is(";") || t.Is("}") || (blockEnds && t.Is("{"))) {
			break
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth = max(depth-1, 0)
		}
		p.next()
	}
	p.close(n)
}

func (p *parser) serviceDefinition() {
	n := p.open(RuleServiceDefinition)
	p.next()
	if p.got("<") {
		p.endpointType()
		p.expect(">")
	}
	if p.atIdent() {
		n.Name = p.next().Text
	} else {
		n.Incomplete = true
	}
	if p.got("bind") {
		p.serviceEndpointAttachment()
	}
	if p.at("{") {
		p.serviceBody()
	} else {
		n.Incomplete = true
	}
	p.close(n)
}

func (p *parser) endpointType() *Node {
	n := p.open(RuleEndpointType)
	n.Name = p.nameReference()
	p.close(n)
	return n
}

// serviceEndpointAttachment parses the endpoints after `bind`: either a list
// of endpoint names or an inline configuration record followed by the body.
func (p *parser) serviceEndpointAttachment() {
	n := p.open(RuleServiceEndpointAttachment)
	switch {
	case p.at("{") && p.recordFollowedByBlock():
		p.skipBalanced()
	default:
		for p.atIdent() {
			p.nameReference()
			if !p.got(",") {
				break
			}
		}
	}
	p.close(n)
}

func (p *parser) recordFollowedByBlock() bool {
	depth := 0
	for j := p.i; j < len(p.toks); j++ {
		switch p.toks[j].Text {
		case "{":
			depth++
		case "}":
			if depth--; depth == 0 {
				return j+1 < len(p.toks) && p.toks[j+1].Is("{")
			}
		}
	}
	return false
}

func (p *parser) serviceBody() {
	n := p.open(RuleServiceBody)
	p.next()
	for !p.eof() && !p.at("}") {
		start := p.i
		switch {
		case p.at("@"):
			p.annotationAttachment()
		case p.at("endpoint"):
			p.endpointDeclaration()
		case p.atIdent() && p.peekIs(1, "("):
			p.resourceDefinition()
		case p.looksLikeVariableDefinition():
			p.statement()
		default:
			p.recoverTo(bodySync)
		}
		if p.i == start {
			p.next()
		}
	}
	p.expect("}")
	p.close(n)
}

func (p *parser) resourceDefinition() {
	n := p.open(RuleResourceDefinition)
	n.Name = p.next().Text
	p.next()
	p.parameters()
	p.expect(")")
	if p.at("{") {
		p.callableUnitBody()
	} else {
		n.Incomplete = true
	}
	p.close(n)
}

func (p *parser) endpointDeclaration() {
	n := p.open(RuleEndpointDeclaration)
	p.next()
	n.Type = p.endpointType().Name
	if p.atIdent() {
		n.Name = p.next().Text
	} else {
		n.Incomplete = true
	}
	if p.at("{") {
		// The configuration is a record literal.
		cfg := p.open(RuleExpression)
		if !p.skipBalanced() {
			n.Incomplete = true
		}
		p.close(cfg)
	}
	p.expect(";")
	p.close(n)
}

func (p *parser) typeDefinition() {
	n := p.open(RuleTypeDefinition)
	p.next()
	if p.atIdent() {
		n.Name = p.next().Text
	} else {
		n.Incomplete = true
	}
	if (p.at("record") || p.at("object")) && p.peekIs(1, "{") {
		p.next()
	}
	switch {
	case p.at("{"):
		p.memberBody()
	case p.at(";"):
		n.Incomplete = true
	default:
		p.typeName()
	}
	p.expect(";")
	p.close(n)
}

// memberBody parses the fields of a record or object type body. Every member
// slot starts with a type, so an empty slot yields a gap type node. Member
// functions and their bodies are skipped.
func (p *parser) memberBody() {
	p.next()
	for {
		if p.eof() || p.at("}") {
			p.typeName()
			break
		}
		start := p.i
		switch {
		case p.at("public"), p.at("private"):
			p.next()
			if p.at("{") {
				p.memberBody()
			}
			continue
		case p.at("function"), p.at("new"):
			for !p.eof() && !p.at("{") && !p.at(";") && !p.at("}") {
				if p.at("(") {
					p.skipBalanced()
					continue
				}
				p.next()
			}
			if p.at("{") {
				p.skipBalanced()
			}
		default:
			p.got("*")
			p.typeName()
			for p.got(".") {
			}
			if p.atIdent() {
				p.next()
			}
			if p.got("=") {
				p.expression(false)
			}
		}
		if !p.got(";") && p.i == start {
			p.recoverTo(memberSync)
		}
	}
	p.expect("}")
}
