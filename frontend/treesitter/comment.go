package treesitter

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/teranos/autogen/frontend"
	"github.com/teranos/autogen/internal/util"
)

// maxSyntaxDiagnostics caps how many ERROR/MISSING nodes are reported.
const maxSyntaxDiagnostics = 20

// comment returns the brief documentation attached to n: the comments that
// immediately precede it with no blank line in between, or else a "///<"
// style comment trailing it on the same line. A comment that trails the
// previous declaration on the same line belongs to that declaration and
// stops the search.
func (l *lowerer) comment(n *sitter.Node) string {
	var raw []string
	row := n.StartPoint().Row

	for prev := n.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		if prev.EndPoint().Row+1 < row {
			break
		}
		if before := prev.PrevSibling(); before != nil && before.Type() != "comment" &&
			before.EndPoint().Row == prev.StartPoint().Row {
			break
		}
		raw = append([]string{l.text(prev)}, raw...)
		row = prev.StartPoint().Row
	}
	if len(raw) == 0 {
		return l.trailing(n)
	}
	return util.BriefComment(raw...)
}

// trailingMarkers introduce documentation for the preceding declaration.
var trailingMarkers = []string{"///<", "//!<", "/**<", "/*!<"}

// trailing returns a trailing member comment on the row where n ends.
// Separators such as "," between n and the comment are skipped.
func (l *lowerer) trailing(n *sitter.Node) string {
	row := n.EndPoint().Row
	for next := n.NextSibling(); next != nil && next.StartPoint().Row == row; next = next.NextSibling() {
		if next.Type() != "comment" {
			if next.IsNamed() {
				return ""
			}
			continue
		}
		text := l.text(next)
		for _, marker := range trailingMarkers {
			if strings.HasPrefix(text, marker) {
				return util.BriefComment(text)
			}
		}
		return ""
	}
	return ""
}

// syntaxDiagnostics reports tree-sitter ERROR and MISSING nodes as error
// diagnostics.
func syntaxDiagnostics(root *sitter.Node, src []byte, file string) []frontend.Diagnostic {
	if !root.HasError() {
		return nil
	}

	var diags []frontend.Diagnostic
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if len(diags) >= maxSyntaxDiagnostics {
			return
		}
		p := n.StartPoint()
		loc := frontend.Location{File: file, Line: int(p.Row) + 1, Column: int(p.Column) + 1}

		switch {
		case n.IsMissing():
			diags = append(diags, frontend.Diagnostic{
				Severity: frontend.SeverityError,
				Location: loc,
				Message:  "expected " + strconv.Quote(n.Type()),
			})
			return
		case n.Type() == "ERROR":
			diags = append(diags, frontend.Diagnostic{
				Severity: frontend.SeverityError,
				Location: loc,
				Message:  "syntax error near " + strconv.Quote(snippet(n.Content(src))),
			})
			return
		case !n.HasError():
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	return diags
}

func snippet(s string) string {
	s = collapse(s)
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
