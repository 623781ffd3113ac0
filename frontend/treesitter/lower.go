package treesitter

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/teranos/autogen/annotate"
	"github.com/teranos/autogen/frontend"
)

// lowerer converts tree-sitter nodes into frontend cursors.
type lowerer struct {
	src   []byte
	file  string
	diags []frontend.Diagnostic
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

func (l *lowerer) loc(n *sitter.Node) frontend.Location {
	p := n.StartPoint()
	return frontend.Location{File: l.file, Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (l *lowerer) warn(n *sitter.Node, msg string) {
	l.diags = append(l.diags, frontend.Diagnostic{
		Severity: frontend.SeverityWarning,
		Location: l.loc(n),
		Message:  msg,
	})
}

func (l *lowerer) translationUnit(root *sitter.Node) *frontend.Cursor {
	tu := &frontend.Cursor{
		Kind:     frontend.KindTranslationUnit,
		Spelling: l.file,
		Location: frontend.Location{File: l.file, Line: 1, Column: 1},
	}
	return tu.Add(l.declarations(root)...)
}

// container is the part of a node that lists declarations.
type container interface {
	NamedChildCount() uint32
	NamedChild(int) *sitter.Node
}

// declarations lowers every named child of a translation unit, declaration
// list or preprocessor block.
func (l *lowerer) declarations(parent container) []*frontend.Cursor {
	var out []*frontend.Cursor
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		if child := parent.NamedChild(i); child != nil {
			out = append(out, l.declaration(child)...)
		}
	}
	return out
}

func (l *lowerer) declaration(n *sitter.Node) []*frontend.Cursor {
	switch n.Type() {
	case "namespace_definition":
		if c := l.namespace(n); c != nil {
			return []*frontend.Cursor{c}
		}
	case "class_specifier", "struct_specifier":
		if c := l.record(n, n); c != nil {
			return []*frontend.Cursor{c}
		}
	case "enum_specifier":
		if c := l.enum(n, n); c != nil {
			return []*frontend.Cursor{c}
		}
	case "declaration":
		return l.plainDeclaration(n)
	case "function_definition":
		return l.functionDefinition(n, "", frontend.AccessNone)
	case "type_definition":
		return l.typeDefinition(n)
	case "alias_declaration":
		return []*frontend.Cursor{l.alias(n)}
	case "linkage_specification":
		if body := n.ChildByFieldName("body"); body != nil {
			if body.Type() == "declaration_list" {
				return l.declarations(body)
			}
			return l.declaration(body)
		}
	case "preproc_if", "preproc_ifdef":
		return l.declarations(withoutAlternative(n))
	}
	return nil
}

// withoutAlternative narrows a conditional block to its first branch.
func withoutAlternative(n *sitter.Node) *conditional {
	return &conditional{node: n, alt: n.ChildByFieldName("alternative")}
}

// conditional lets declarations() iterate a preprocessor block while
// skipping its #else/#elif branch.
type conditional struct {
	node *sitter.Node
	alt  *sitter.Node
}

func (c *conditional) NamedChildCount() uint32 { return c.node.NamedChildCount() }

func (c *conditional) NamedChild(i int) *sitter.Node {
	child := c.node.NamedChild(i)
	if c.alt != nil && sameNode(child, c.alt) {
		return nil
	}
	return child
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (l *lowerer) namespace(n *sitter.Node) *frontend.Cursor {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	name := strings.TrimSpace(l.text(n.ChildByFieldName("name")))

	// namespace a::b { } opens one namespace per component.
	parts := []string{name}
	if strings.Contains(name, "::") {
		parts = strings.Split(name, "::")
	}

	outer := &frontend.Cursor{Kind: frontend.KindNamespace, Spelling: strings.TrimSpace(parts[0]), Location: l.loc(n)}
	inner := outer
	for _, part := range parts[1:] {
		next := &frontend.Cursor{Kind: frontend.KindNamespace, Spelling: strings.TrimSpace(part), Location: l.loc(n)}
		inner.Add(next)
		inner = next
	}
	inner.Add(l.declarations(body)...)
	return outer
}

// record lowers a class or struct definition. anchor is the node that owns
// the leading comment: the specifier itself or its enclosing declaration.
func (l *lowerer) record(n, anchor *sitter.Node) *frontend.Cursor {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return nil
	}

	kind, access := frontend.KindClass, frontend.AccessPrivate
	if n.Type() == "struct_specifier" {
		kind, access = frontend.KindStruct, frontend.AccessPublic
	}

	c := &frontend.Cursor{
		Kind:     kind,
		Spelling: lastComponent(l.text(name)),
		Comment:  l.comment(anchor),
		Location: l.loc(name),
	}
	header := string(l.src[n.StartByte():body.StartByte()])
	c.Add(l.annotations(header, name)...)

	members, _ := l.members(body, c.Spelling, access)
	return c.Add(members...)
}

// members lowers a field declaration list, tracking access specifiers.
// It returns the access level in effect at the end of the list.
func (l *lowerer) members(body container, class string, access frontend.Access) ([]*frontend.Cursor, frontend.Access) {
	var out []*frontend.Cursor
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		if m == nil {
			continue
		}
		switch m.Type() {
		case "access_specifier":
			access = parseAccess(l.text(m))
		case "field_declaration":
			out = append(out, l.fieldDeclaration(m, class, access)...)
		case "declaration":
			out = append(out, l.memberDeclaration(m, class, access)...)
		case "function_definition":
			out = append(out, l.functionDefinition(m, class, access)...)
		case "preproc_if", "preproc_ifdef":
			var nested []*frontend.Cursor
			nested, access = l.members(withoutAlternative(m), class, access)
			out = append(out, nested...)
		}
	}
	return out, access
}

func parseAccess(s string) frontend.Access {
	switch strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":")) {
	case "public":
		return frontend.AccessPublic
	case "protected":
		return frontend.AccessProtected
	default:
		return frontend.AccessPrivate
	}
}

// fieldDeclaration lowers a member declaration: methods, constructors
// declared with a return-less signature, and data members.
func (l *lowerer) fieldDeclaration(n *sitter.Node, class string, access frontend.Access) []*frontend.Cursor {
	var out []*frontend.Cursor
	for _, d := range l.declarators(n) {
		shape := unwrap(d)
		if shape.function != nil {
			if isFunctionName(shape.function.ChildByFieldName("declarator")) {
				if c := l.function(n, shape.function, shape.markers, class, access, n); c != nil {
					out = append(out, c)
				}
				continue
			}
		}
		name := innermostName(d)
		if name == nil {
			continue
		}
		out = append(out, &frontend.Cursor{
			Kind:     frontend.KindField,
			Spelling: l.text(name),
			Type:     l.declaredType(n, d, shape, l.text(name)),
			Access:   access,
			Static:   l.isStatic(n),
			Comment:  l.comment(n),
			Location: l.loc(name),
		})
	}
	return out
}

// memberDeclaration lowers constructor and destructor declarations, which
// the grammar reports as plain declarations inside a class body.
func (l *lowerer) memberDeclaration(n *sitter.Node, class string, access frontend.Access) []*frontend.Cursor {
	var out []*frontend.Cursor
	for _, d := range l.declarators(n) {
		shape := unwrap(d)
		if shape.function == nil || !isFunctionName(shape.function.ChildByFieldName("declarator")) {
			continue
		}
		if c := l.function(n, shape.function, shape.markers, class, access, n); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// plainDeclaration lowers a namespace-scope declaration: free function
// prototypes and any class, struct or enum defined inline.
func (l *lowerer) plainDeclaration(n *sitter.Node) []*frontend.Cursor {
	var out []*frontend.Cursor
	if t := n.ChildByFieldName("type"); t != nil {
		switch t.Type() {
		case "class_specifier", "struct_specifier":
			if c := l.record(t, n); c != nil {
				out = append(out, c)
			}
		case "enum_specifier":
			if c := l.enum(t, n); c != nil {
				out = append(out, c)
			}
		}
	}
	for _, d := range l.declarators(n) {
		shape := unwrap(d)
		if shape.function == nil || !isFunctionName(shape.function.ChildByFieldName("declarator")) {
			continue
		}
		if c := l.function(n, shape.function, shape.markers, "", frontend.AccessNone, n); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (l *lowerer) functionDefinition(n *sitter.Node, class string, access frontend.Access) []*frontend.Cursor {
	d := n.ChildByFieldName("declarator")
	if d == nil {
		return nil
	}
	shape := unwrap(d)
	if shape.function == nil || !isFunctionName(shape.function.ChildByFieldName("declarator")) {
		return nil
	}
	if c := l.function(n, shape.function, shape.markers, class, access, n); c != nil {
		return []*frontend.Cursor{c}
	}
	return nil
}

// function lowers one function-like declaration. decl owns the type and
// specifiers, fn is its function_declarator and markers are the pointer or
// reference tokens that apply to the return type.
func (l *lowerer) function(decl, fn *sitter.Node, markers, class string, access frontend.Access, anchor *sitter.Node) *frontend.Cursor {
	nameNode := fn.ChildByFieldName("declarator")
	name := l.text(nameNode)
	typeNode := decl.ChildByFieldName("type")

	c := &frontend.Cursor{
		Spelling: name,
		Access:   access,
		Static:   l.isStatic(decl),
		Comment:  l.comment(anchor),
		Location: l.loc(nameNode),
	}

	switch {
	case nameNode.Type() == "qualified_identifier":
		// Out-of-line definition of something declared elsewhere.
		return nil
	case nameNode.Type() == "destructor_name":
		if class == "" {
			return nil
		}
		c.Kind = frontend.KindDestructor
	case class != "" && typeNode == nil && name == class:
		c.Kind = frontend.KindConstructor
	case class != "":
		if typeNode == nil {
			return nil
		}
		c.Kind = frontend.KindMethod
	default:
		if typeNode == nil {
			return nil
		}
		c.Kind = frontend.KindFunction
	}

	if typeNode != nil {
		c.ResultType = l.typeSpelling(decl, markers)
	} else if c.Kind == frontend.KindConstructor || c.Kind == frontend.KindDestructor {
		c.ResultType = "void"
	}

	c.Add(l.parameters(fn.ChildByFieldName("parameters"))...)

	region := l.src[decl.StartByte():decl.EndByte()]
	if body := decl.ChildByFieldName("body"); body != nil {
		region = l.src[decl.StartByte():body.StartByte()]
	}
	c.Add(l.annotations(string(region), nameNode)...)
	return c
}

func (l *lowerer) parameters(list *sitter.Node) []*frontend.Cursor {
	if list == nil {
		return nil
	}
	var out []*frontend.Cursor
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
		default:
			continue
		}

		d := p.ChildByFieldName("declarator")
		var shape declShape
		if d != nil {
			shape = unwrap(d)
		}
		typ := l.typeSpelling(p, shape.markers)

		// f(void) declares no parameters.
		if d == nil && typ == "void" && list.NamedChildCount() == 1 {
			return nil
		}

		name := ""
		if n := innermostName(d); n != nil {
			name = l.text(n)
		}
		if shape.function != nil {
			typ = l.declaredType(p, d, shape, name)
		}
		out = append(out, &frontend.Cursor{
			Kind:     frontend.KindParameter,
			Spelling: name,
			Type:     typ,
			Location: l.loc(p),
		})
	}
	return out
}

func (l *lowerer) typeDefinition(n *sitter.Node) []*frontend.Cursor {
	var out []*frontend.Cursor
	for _, d := range l.declarators(n) {
		name := innermostName(d)
		if name == nil {
			continue
		}
		shape := unwrap(d)
		out = append(out, &frontend.Cursor{
			Kind:     frontend.KindTypedef,
			Spelling: l.text(name),
			Type:     l.declaredType(n, d, shape, l.text(name)),
			Comment:  l.comment(n),
			Location: l.loc(name),
		})
	}
	return out
}

func (l *lowerer) alias(n *sitter.Node) *frontend.Cursor {
	name := n.ChildByFieldName("name")
	return &frontend.Cursor{
		Kind:     frontend.KindTypedef,
		Spelling: l.text(name),
		Type:     collapse(l.text(n.ChildByFieldName("type"))),
		Comment:  l.comment(n),
		Location: l.loc(n),
	}
}

// annotations scans source text for annotate("...") attributes and returns
// one annotation cursor per literal.
func (l *lowerer) annotations(text string, at *sitter.Node) []*frontend.Cursor {
	var out []*frontend.Cursor
	for _, lit := range annotate.Scan(text) {
		if unquoted, err := strconv.Unquote(lit); err == nil {
			lit = unquoted
		}
		out = append(out, &frontend.Cursor{
			Kind:     frontend.KindAnnotation,
			Spelling: lit,
			Location: l.loc(at),
		})
	}
	return out
}

func (l *lowerer) isStatic(decl *sitter.Node) bool {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		if c.Type() == "storage_class_specifier" && strings.TrimSpace(l.text(c)) == "static" {
			return true
		}
	}
	return false
}

func lastComponent(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return strings.TrimSpace(name[i+2:])
	}
	return strings.TrimSpace(name)
}
