package treesitter

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/teranos/autogen/frontend"
)

// enum lowers an enum definition. Enumerator values are evaluated the way a
// compiler would for integer constant expressions built from literals,
// earlier enumerators and arithmetic; anything else falls back to the
// implicit value with a warning diagnostic.
func (l *lowerer) enum(n, anchor *sitter.Node) *frontend.Cursor {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return nil
	}

	c := &frontend.Cursor{
		Kind:     frontend.KindEnum,
		Spelling: lastComponent(l.text(name)),
		Comment:  l.comment(anchor),
		Location: l.loc(name),
	}
	header := string(l.src[n.StartByte():body.StartByte()])
	c.Add(l.annotations(header, name)...)

	known := map[string]int64{}
	var next int64
	for i := 0; i < int(body.NamedChildCount()); i++ {
		e := body.NamedChild(i)
		if e.Type() != "enumerator" {
			continue
		}
		nameNode := e.ChildByFieldName("name")
		constant := l.text(nameNode)

		value := next
		if expr := e.ChildByFieldName("value"); expr != nil {
			if v, ok := l.eval(expr, known); ok {
				value = v
			} else {
				l.warn(expr, "cannot evaluate value of enumerator '"+constant+"', using "+strconv.FormatInt(next, 10))
			}
		}
		known[constant] = value
		known[c.Spelling+"::"+constant] = value
		next = value + 1

		c.Add(&frontend.Cursor{
			Kind:      frontend.KindEnumConstant,
			Spelling:  constant,
			EnumValue: value,
			Comment:   l.comment(e),
			Location:  l.loc(nameNode),
		})
	}
	return c
}

func (l *lowerer) eval(n *sitter.Node, known map[string]int64) (int64, bool) {
	switch n.Type() {
	case "number_literal":
		return parseIntLiteral(l.text(n))
	case "char_literal":
		return parseCharLiteral(l.text(n))
	case "true":
		return 1, true
	case "false":
		return 0, true
	case "identifier":
		v, ok := known[l.text(n)]
		return v, ok
	case "qualified_identifier":
		text := strings.Join(strings.Fields(l.text(n)), "")
		if v, ok := known[text]; ok {
			return v, true
		}
		v, ok := known[lastComponent(text)]
		return v, ok
	case "parenthesized_expression":
		if n.NamedChildCount() != 1 {
			return 0, false
		}
		return l.eval(n.NamedChild(0), known)
	case "unary_expression":
		arg, ok := l.eval(n.ChildByFieldName("argument"), known)
		if !ok {
			return 0, false
		}
		switch l.text(n.ChildByFieldName("operator")) {
		case "-":
			return -arg, true
		case "+":
			return arg, true
		case "~":
			return ^arg, true
		case "!":
			if arg == 0 {
				return 1, true
			}
			return 0, true
		}
	case "binary_expression":
		left, ok := l.eval(n.ChildByFieldName("left"), known)
		if !ok {
			return 0, false
		}
		right, ok := l.eval(n.ChildByFieldName("right"), known)
		if !ok {
			return 0, false
		}
		return binary(l.text(n.ChildByFieldName("operator")), left, right)
	}
	return 0, false
}

func binary(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case "%":
		if b == 0 {
			return 0, false
		}
		return a % b, true
	case "<<":
		if b < 0 || b > 63 {
			return 0, false
		}
		return a << uint(b), true
	case ">>":
		if b < 0 || b > 63 {
			return 0, false
		}
		return a >> uint(b), true
	case "|":
		return a | b, true
	case "&":
		return a & b, true
	case "^":
		return a ^ b, true
	}
	return 0, false
}

// parseIntLiteral parses a C++ integer literal: decimal, hex, octal or
// binary, with digit separators and u/l/z suffixes.
func parseIntLiteral(text string) (int64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "'", "")
	s = strings.TrimRight(s, "uUlLzZ")
	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		s = "0o" + s[1:]
	}

	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return int64(v), true
	}
	return 0, false
}

func parseCharLiteral(text string) (int64, bool) {
	text = strings.TrimSpace(text)
	if len(text) < 3 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return 0, false
	}
	r, _, tail, err := strconv.UnquoteChar(text[1:len(text)-1], '\'')
	if err != nil || tail != "" {
		return 0, false
	}
	return int64(r), true
}
