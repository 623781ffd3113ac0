package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// declaratorTypes are the node types that can name the entity a declaration
// introduces, directly or through pointer/reference/array wrappers.
var declaratorTypes = map[string]bool{
	"identifier":                    true,
	"field_identifier":              true,
	"type_identifier":               true,
	"operator_name":                 true,
	"destructor_name":               true,
	"qualified_identifier":          true,
	"template_function":             true,
	"pointer_declarator":            true,
	"reference_declarator":          true,
	"array_declarator":              true,
	"function_declarator":           true,
	"parenthesized_declarator":      true,
	"attributed_declarator":         true,
	"init_declarator":               true,
	"abstract_pointer_declarator":   true,
	"abstract_reference_declarator": true,
	"abstract_function_declarator":  true,
	"abstract_array_declarator":     true,
}

// declarators returns the declarator children of a declaration, skipping
// its type and any initializer that follows "=".
func (l *lowerer) declarators(n *sitter.Node) []*sitter.Node {
	typeNode := n.ChildByFieldName("type")

	var out []*sitter.Node
	skipNext := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "=" {
			skipNext = true
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		if !c.IsNamed() || !declaratorTypes[c.Type()] || sameNode(c, typeNode) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// declShape is what wraps the declared name: pointer and reference tokens in
// source order, array extents, and the function declarator if there is one.
type declShape struct {
	markers  string
	arrays   string
	function *sitter.Node
}

func unwrap(d *sitter.Node) declShape {
	var s declShape
	for d != nil {
		switch d.Type() {
		case "pointer_declarator", "abstract_pointer_declarator":
			s.markers += "*"
			d = d.ChildByFieldName("declarator")
		case "reference_declarator", "abstract_reference_declarator":
			tok := "&"
			if d.ChildCount() > 0 && d.Child(0).Type() == "&&" {
				tok = "&&"
			}
			s.markers += tok
			d = lastNamedChild(d)
		case "array_declarator", "abstract_array_declarator":
			s.arrays = "[]" + s.arrays
			d = d.ChildByFieldName("declarator")
		case "init_declarator":
			d = d.ChildByFieldName("declarator")
		case "parenthesized_declarator", "attributed_declarator":
			d = firstNamedChild(d)
		case "function_declarator", "abstract_function_declarator":
			s.function = d
			return s
		default:
			return s
		}
	}
	return s
}

// innermostName finds the identifier a declarator introduces, or nil for
// abstract declarators.
func innermostName(d *sitter.Node) *sitter.Node {
	for d != nil {
		switch d.Type() {
		case "identifier", "field_identifier", "type_identifier",
			"operator_name", "destructor_name", "qualified_identifier":
			return d
		case "reference_declarator", "abstract_reference_declarator":
			d = lastNamedChild(d)
		case "parenthesized_declarator", "attributed_declarator":
			d = firstNamedChild(d)
		default:
			d = d.ChildByFieldName("declarator")
		}
	}
	return nil
}

func isFunctionName(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "identifier", "field_identifier", "destructor_name",
		"operator_name", "qualified_identifier", "template_function":
		return true
	}
	return false
}

// typeSpelling renders the declared type of decl in libclang's style:
// qualifiers first, then the base type, then pointer/reference markers.
func (l *lowerer) typeSpelling(decl *sitter.Node, markers string) string {
	var parts []string
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		if c.Type() != "type_qualifier" {
			continue
		}
		switch q := strings.TrimSpace(l.text(c)); q {
		case "const", "volatile":
			parts = append(parts, q)
		}
	}
	parts = append(parts, collapse(l.text(decl.ChildByFieldName("type"))))

	s := strings.Join(parts, " ")
	if markers != "" {
		s += " " + markers
	}
	return s
}

// declaredType renders the full type of one declarator, including array
// extents and function pointer signatures.
func (l *lowerer) declaredType(decl, d *sitter.Node, shape declShape, name string) string {
	if shape.function != nil {
		base := l.typeSpelling(decl, "")
		rest := collapse(l.text(d))
		if name != "" {
			rest = strings.Replace(rest, name, "", 1)
		}
		return base + " " + rest
	}
	s := l.typeSpelling(decl, shape.markers)
	if shape.arrays != "" {
		s += " " + shape.arrays
	}
	return s
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func lastNamedChild(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	return n.NamedChild(count - 1)
}

// collapse normalizes runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
