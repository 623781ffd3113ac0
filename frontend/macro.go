package frontend

import (
	"regexp"
	"strings"

	"github.com/teranos/autogen/errors"
)

// maxExpansionDepth bounds nested macro expansion.
const maxExpansionDepth = 32

// Macro is a preprocessor definition.
type Macro struct {
	Name   string
	Params []string // nil for object-like macros
	Body   string
}

// FunctionLike reports whether the macro takes arguments.
func (m Macro) FunctionLike() bool { return m.Params != nil }

// ParseDefine parses a command-line style definition: NAME, NAME=VALUE or
// NAME(a,b)=VALUE. A bare NAME defines it as 1, like -DNAME.
func ParseDefine(def string) (Macro, error) {
	head, body, found := strings.Cut(def, "=")
	if !found {
		body = "1"
	}
	head = strings.TrimSpace(head)
	m := Macro{Body: strings.TrimSpace(body)}

	if i := strings.IndexByte(head, '('); i >= 0 {
		if !strings.HasSuffix(head, ")") {
			return Macro{}, errors.NewConfigurationError("define %q: unterminated parameter list", def)
		}
		m.Name = strings.TrimSpace(head[:i])
		m.Params = []string{}
		for _, p := range strings.Split(head[i+1:len(head)-1], ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !isIdent(p) {
				return Macro{}, errors.NewConfigurationError("define %q: invalid parameter %q", def, p)
			}
			m.Params = append(m.Params, p)
		}
	} else {
		m.Name = head
	}

	if !isIdent(m.Name) {
		return Macro{}, errors.NewConfigurationError("define %q: invalid macro name", def)
	}
	return m, nil
}

// Expander performs textual macro expansion for backends without a preprocessor.
// It handles object-like and function-like macros with rescanning; the
// stringizing (#) and token-pasting (##) operators are not supported.
type Expander struct {
	macros map[string]Macro
}

// NewExpander parses every definition.
func NewExpander(defines []string) (*Expander, error) {
	e := &Expander{macros: make(map[string]Macro, len(defines))}
	for _, d := range defines {
		m, err := ParseDefine(d)
		if err != nil {
			return nil, err
		}
		e.macros[m.Name] = m
	}
	return e, nil
}

// Define adds or replaces a macro.
func (e *Expander) Define(m Macro) {
	e.macros[m.Name] = m
}

// DefineIfAbsent adds m unless a macro of the same name exists.
func (e *Expander) DefineIfAbsent(m Macro) bool {
	if _, ok := e.macros[m.Name]; ok {
		return false
	}
	e.macros[m.Name] = m
	return true
}

// Clone returns an independent copy.
func (e *Expander) Clone() *Expander {
	c := &Expander{macros: make(map[string]Macro, len(e.macros))}
	for k, v := range e.macros {
		c.macros[k] = v
	}
	return c
}

// Len returns the number of known macros.
func (e *Expander) Len() int { return len(e.macros) }

// Expand returns src with every known macro expanded. Comments, string and
// character literals, and preprocessor directive lines are copied verbatim.
// Newlines consumed by a multi-line invocation are re-emitted so line
// numbers of later declarations do not shift.
func (e *Expander) Expand(src []byte) []byte {
	if len(e.macros) == 0 {
		return src
	}
	return []byte(e.expand(string(src), nil, 0, true))
}

func (e *Expander) expand(s string, active map[string]bool, depth int, directives bool) string {
	var out strings.Builder
	out.Grow(len(s))

	lineStart := true
	for i := 0; i < len(s); {
		c := s[i]

		if directives && lineStart && c == '#' {
			end := directiveEnd(s, i)
			out.WriteString(s[i:end])
			i = end
			continue
		}

		switch {
		case c == '\n':
			out.WriteByte(c)
			lineStart = true
			i++
			continue
		case c == ' ' || c == '\t' || c == '\r':
			out.WriteByte(c)
			i++
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				end = len(s) - i
			}
			out.WriteString(s[i : i+end])
			i += end
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			out.WriteString(s[i : i+2+end+2])
			i += 2 + end + 2
		case c == '"' || c == '\'':
			end := literalEnd(s, i)
			out.WriteString(s[i:end])
			i = end
		case isDigit(c):
			j := i
			for j < len(s) && (isIdentChar(s[j]) || s[j] == '.' ||
				(s[j] == '\'' && j+1 < len(s) && isIdentChar(s[j+1]))) {
				j++
			}
			out.WriteString(s[i:j])
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			name := s[i:j]
			if rep, end, ok := e.expandAt(s, name, j, active, depth); ok {
				out.WriteString(rep)
				if lost := strings.Count(s[i:end], "\n") - strings.Count(rep, "\n"); lost > 0 {
					out.WriteString(strings.Repeat("\n", lost))
				}
				i = end
			} else {
				out.WriteString(name)
				i = j
			}
		default:
			out.WriteByte(c)
			i++
		}
		lineStart = false
	}
	return out.String()
}

// expandAt expands the macro invocation whose name ends at j.
func (e *Expander) expandAt(s, name string, j int, active map[string]bool, depth int) (string, int, bool) {
	m, ok := e.macros[name]
	if !ok || active[name] || depth >= maxExpansionDepth {
		return "", 0, false
	}
	inner := with(active, name)

	if !m.FunctionLike() {
		return e.expand(m.Body, inner, depth+1, false), j, true
	}

	k := j
	for k < len(s) && isSpace(s[k]) {
		k++
	}
	if k >= len(s) || s[k] != '(' {
		return "", 0, false
	}
	args, end, ok := splitArgs(s, k)
	if !ok {
		return "", 0, false
	}
	if len(m.Params) == 0 && len(args) == 1 && args[0] == "" {
		args = nil
	}
	if len(args) != len(m.Params) {
		return "", 0, false
	}

	bound := make(map[string]string, len(args))
	for idx, p := range m.Params {
		bound[p] = e.expand(args[idx], active, depth+1, false)
	}
	body := substitute(m.Body, bound)
	return e.expand(body, inner, depth+1, false), end, true
}

// splitArgs parses a parenthesized argument list starting at s[open] == '('.
// It returns the trimmed top-level arguments and the index after ')'.
func splitArgs(s string, open int) ([]string, int, bool) {
	var args []string
	level := 0
	start := open + 1
	for i := open; i < len(s); {
		switch c := s[i]; {
		case c == '"' || c == '\'':
			i = literalEnd(s, i)
			continue
		case c == '(':
			level++
		case c == ')':
			level--
			if level == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				return args, i + 1, true
			}
		case c == ',' && level == 1:
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
		i++
	}
	return nil, 0, false
}

// substitute replaces parameter identifiers in body, leaving literals alone.
func substitute(body string, bound map[string]string) string {
	var out strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '"' || c == '\'':
			end := literalEnd(body, i)
			out.WriteString(body[i:end])
			i = end
		case isIdentStart(c):
			j := i
			for j < len(body) && isIdentChar(body[j]) {
				j++
			}
			if arg, ok := bound[body[i:j]]; ok {
				out.WriteString(arg)
			} else {
				out.WriteString(body[i:j])
			}
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

var defineLine = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)(\([^)]*\))?(?:\s+(.*))?$`)

// LearnDefines returns the #define directives found in src, in order.
// Continuation lines are joined; trailing // comments are dropped.
func LearnDefines(src []byte) []Macro {
	var macros []Macro
	for _, line := range logicalLines(string(src)) {
		m := defineLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		body := m[3]
		if i := strings.Index(body, "//"); i >= 0 {
			body = body[:i]
		}
		def := m[1] + m[2] + "=" + strings.TrimSpace(body)
		if macro, err := ParseDefine(def); err == nil {
			macros = append(macros, macro)
		}
	}
	return macros
}

var includeLine = regexp.MustCompile(`^\s*#\s*include\s*"([^"]+)"`)

// QuotedIncludes returns the targets of #include "..." directives in src.
func QuotedIncludes(src []byte) []string {
	var out []string
	for _, line := range logicalLines(string(src)) {
		if m := includeLine.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
		}
	}
	return out
}

func logicalLines(s string) []string {
	var lines []string
	var cur strings.Builder
	for _, raw := range strings.Split(s, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.HasSuffix(raw, "\\") {
			cur.WriteString(strings.TrimSuffix(raw, "\\"))
			cur.WriteByte(' ')
			continue
		}
		cur.WriteString(raw)
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// directiveEnd returns the index of the newline ending the directive at i,
// following backslash continuations.
func directiveEnd(s string, i int) int {
	for {
		nl := strings.IndexByte(s[i:], '\n')
		if nl < 0 {
			return len(s)
		}
		end := i + nl
		line := strings.TrimRight(s[i:end], "\r")
		if !strings.HasSuffix(line, "\\") {
			return end
		}
		i = end + 1
	}
}

// literalEnd returns the index after the string or character literal at i.
func literalEnd(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(s)
}

func with(active map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(active)+1)
	for k := range active {
		next[k] = true
	}
	next[name] = true
	return next
}

func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
