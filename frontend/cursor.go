package frontend

import "fmt"

// Kind classifies a cursor in the neutral syntax tree.
type Kind int

const (
	KindUnknown Kind = iota
	KindTranslationUnit
	KindNamespace
	KindFunction
	KindClass
	KindStruct
	KindEnum
	KindEnumConstant
	KindTypedef
	KindMethod
	KindConstructor
	KindDestructor
	KindField
	KindParameter
	KindAnnotation
)

var kindNames = map[Kind]string{
	KindUnknown:         "Unknown",
	KindTranslationUnit: "TranslationUnit",
	KindNamespace:       "Namespace",
	KindFunction:        "Function",
	KindClass:           "Class",
	KindStruct:          "Struct",
	KindEnum:            "Enum",
	KindEnumConstant:    "EnumConstant",
	KindTypedef:         "Typedef",
	KindMethod:          "Method",
	KindConstructor:     "Constructor",
	KindDestructor:      "Destructor",
	KindField:           "Field",
	KindParameter:       "Parameter",
	KindAnnotation:      "Annotation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Access is the C++ access level of a class or struct member.
type Access int

const (
	AccessNone Access = iota // not a member
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "none"
	}
}

// Location is a 1-based position in a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Cursor is one node of the neutral tree produced by a backend.
//
// Annotation attributes are children of kind KindAnnotation whose Spelling
// is the attribute literal, the way libclang reports ANNOTATE_ATTR.
type Cursor struct {
	Kind       Kind
	Spelling   string // declared name; literal text for annotations
	Type       string // field/parameter type, or the aliased type of a typedef
	ResultType string // return type of functions and methods
	Access     Access
	Static     bool
	Comment    string // brief documentation comment
	EnumValue  int64
	Location   Location
	Children   []*Cursor
}

// ChildrenOf returns the direct children of the given kind, in order.
func (c *Cursor) ChildrenOf(kind Kind) []*Cursor {
	var out []*Cursor
	for _, child := range c.Children {
		if child.Kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// Parameters returns the parameter children of a function-like cursor.
func (c *Cursor) Parameters() []*Cursor {
	return c.ChildrenOf(KindParameter)
}

// AnnotationLiterals returns the spellings of annotation children.
func (c *Cursor) AnnotationLiterals() []string {
	var out []string
	for _, child := range c.ChildrenOf(KindAnnotation) {
		out = append(out, child.Spelling)
	}
	return out
}

// Add appends children and returns c for chaining.
func (c *Cursor) Add(children ...*Cursor) *Cursor {
	c.Children = append(c.Children, children...)
	return c
}

// Walk visits c and its descendants depth-first. Returning false from fn
// skips the cursor's children.
func (c *Cursor) Walk(fn func(*Cursor) bool) {
	if c == nil || !fn(c) {
		return
	}
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "note"
	}
}

// Diagnostic is a message reported by the front end while parsing.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

// TranslationUnit is the parse result for one header.
type TranslationUnit struct {
	File        string
	Root        *Cursor
	Diagnostics []Diagnostic
}

// Errors returns diagnostics of error severity or worse.
func (tu *TranslationUnit) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range tu.Diagnostics {
		if d.Severity >= SeverityError {
			out = append(out, d)
		}
	}
	return out
}
