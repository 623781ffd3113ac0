// Package model defines the normalized declaration model handed to templates.
//
// Records are plain data. They are built once per run by the extractor,
// treated as immutable afterwards and consumed by the renderer.
package model

import "github.com/samber/lo"

// Argument is one parameter of a function, method or constructor.
type Argument struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"` // raw type spelling, e.g. "const Data &"
}

// Function describes a free function, a method or a constructor.
type Function struct {
	Name        string     `json:"name" yaml:"name"`
	Arguments   []Argument `json:"arguments" yaml:"arguments"`
	ReturnType  string     `json:"return_type" yaml:"return_type"`
	Comment     string     `json:"comment" yaml:"comment"`
	IsStatic    bool       `json:"is_static" yaml:"is_static"`
	Annotations []string   `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Attribute is a public data member of a struct.
type Attribute struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Class describes a class and its public interface.
type Class struct {
	Name                  string     `json:"name" yaml:"name"`
	Comment               string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	Methods               []Function `json:"methods" yaml:"methods"`
	Constructors          []Function `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	HasDefaultConstructor bool       `json:"has_default_constructor" yaml:"has_default_constructor"`
	Annotations           []string   `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Struct describes a struct, its public fields and its public methods.
type Struct struct {
	Name                  string      `json:"name" yaml:"name"`
	Comment               string      `json:"comment,omitempty" yaml:"comment,omitempty"`
	Attributes            []Attribute `json:"attributes" yaml:"attributes"`
	Methods               []Function  `json:"methods" yaml:"methods"`
	Constructors          []Function  `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	HasDefaultConstructor bool        `json:"has_default_constructor" yaml:"has_default_constructor"`
	Annotations           []string    `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// EnumConstant is one enumerator with its evaluated value.
type EnumConstant struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// Enum describes an enumeration and its constants in declaration order.
type Enum struct {
	Name        string         `json:"name" yaml:"name"`
	Comment     string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Constants   []EnumConstant `json:"constants" yaml:"constants"`
	Annotations []string       `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Typedef describes a type alias (typedef or using declaration).
type Typedef struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"` // referenced type spelling
}

// Declarations is the root aggregate: one slice per category, in source order.
type Declarations struct {
	Functions []Function `json:"functions" yaml:"functions"`
	Classes   []Class    `json:"classes" yaml:"classes"`
	Structs   []Struct   `json:"structs" yaml:"structs"`
	Enums     []Enum     `json:"enums" yaml:"enums"`
	Typedefs  []Typedef  `json:"typedefs" yaml:"typedefs"`
}

// New returns an empty Declarations with non-nil slices, so templates and
// JSON output see empty lists rather than null.
func New() *Declarations {
	return &Declarations{
		Functions: []Function{},
		Classes:   []Class{},
		Structs:   []Struct{},
		Enums:     []Enum{},
		Typedefs:  []Typedef{},
	}
}

// Append adds other's declarations after d's, keeping per-category order.
func (d *Declarations) Append(other *Declarations) {
	if other == nil {
		return
	}
	d.Functions = append(d.Functions, other.Functions...)
	d.Classes = append(d.Classes, other.Classes...)
	d.Structs = append(d.Structs, other.Structs...)
	d.Enums = append(d.Enums, other.Enums...)
	d.Typedefs = append(d.Typedefs, other.Typedefs...)
}

// TypeNames lists every class, struct, enum and typedef name, de-duplicated
// in first-seen order.
func (d *Declarations) TypeNames() []string {
	var names []string
	for _, c := range d.Classes {
		names = append(names, c.Name)
	}
	for _, s := range d.Structs {
		names = append(names, s.Name)
	}
	for _, e := range d.Enums {
		names = append(names, e.Name)
	}
	for _, t := range d.Typedefs {
		names = append(names, t.Name)
	}
	return lo.Uniq(names)
}

// Count returns the total number of top-level declarations.
func (d *Declarations) Count() int {
	return len(d.Functions) + len(d.Classes) + len(d.Structs) + len(d.Enums) + len(d.Typedefs)
}

// Annotation returns the first annotation tag, or "" when there is none.
func (f Function) Annotation() string {
	return first(f.Annotations)
}

// Has reports whether the function carries the annotation tag.
func (f Function) Has(tag string) bool { return lo.Contains(f.Annotations, tag) }

// Has reports whether the class carries the annotation tag.
func (c Class) Has(tag string) bool { return lo.Contains(c.Annotations, tag) }

// Has reports whether the struct carries the annotation tag.
func (s Struct) Has(tag string) bool { return lo.Contains(s.Annotations, tag) }

// Has reports whether the enum carries the annotation tag.
func (e Enum) Has(tag string) bool { return lo.Contains(e.Annotations, tag) }

// Annotation returns the first annotation tag of the class, or "".
func (c Class) Annotation() string { return first(c.Annotations) }

// Annotation returns the first annotation tag of the struct, or "".
func (s Struct) Annotation() string { return first(s.Annotations) }

// Annotation returns the first annotation tag of the enum, or "".
func (e Enum) Annotation() string { return first(e.Annotations) }

func first(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
