package testing

import "github.com/teranos/autogen/frontend"

// Unit wraps top-level cursors in a translation unit named file.
func Unit(file string, children ...*frontend.Cursor) *frontend.TranslationUnit {
	root := &frontend.Cursor{Kind: frontend.KindTranslationUnit, Spelling: file}
	return &frontend.TranslationUnit{File: file, Root: root.Add(children...)}
}

// Namespace builds a namespace cursor.
func Namespace(name string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindNamespace, Spelling: name}).Add(children...)
}

// Function builds a free function. children are parameters and annotations.
func Function(name, result string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindFunction, Spelling: name, ResultType: result}).Add(children...)
}

// Method builds a member function with the given access.
func Method(access frontend.Access, name, result string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindMethod, Spelling: name, ResultType: result, Access: access}).Add(children...)
}

// StaticMethod builds a public static member function.
func StaticMethod(name, result string, children ...*frontend.Cursor) *frontend.Cursor {
	m := Method(frontend.AccessPublic, name, result, children...)
	m.Static = true
	return m
}

// Constructor builds a constructor of class with the given access.
func Constructor(access frontend.Access, class string, params ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindConstructor, Spelling: class, ResultType: "void", Access: access}).Add(params...)
}

// Param builds a parameter.
func Param(name, typ string) *frontend.Cursor {
	return &frontend.Cursor{Kind: frontend.KindParameter, Spelling: name, Type: typ}
}

// Field builds a data member.
func Field(access frontend.Access, name, typ string) *frontend.Cursor {
	return &frontend.Cursor{Kind: frontend.KindField, Spelling: name, Type: typ, Access: access}
}

// Class builds a class. children are members and annotations.
func Class(name string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindClass, Spelling: name}).Add(children...)
}

// Struct builds a struct. children are members and annotations.
func Struct(name string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindStruct, Spelling: name}).Add(children...)
}

// Enum builds an enum. children are constants and annotations.
func Enum(name string, children ...*frontend.Cursor) *frontend.Cursor {
	return (&frontend.Cursor{Kind: frontend.KindEnum, Spelling: name}).Add(children...)
}

// Constant builds an enumerator.
func Constant(name string, value int64) *frontend.Cursor {
	return &frontend.Cursor{Kind: frontend.KindEnumConstant, Spelling: name, EnumValue: value}
}

// Typedef builds a typedef or alias.
func Typedef(name, typ string) *frontend.Cursor {
	return &frontend.Cursor{Kind: frontend.KindTypedef, Spelling: name, Type: typ}
}

// Annotation builds an annotation attribute with the given literal.
func Annotation(literal string) *frontend.Cursor {
	return &frontend.Cursor{Kind: frontend.KindAnnotation, Spelling: literal}
}

// Documented sets the brief comment of c and returns it.
func Documented(c *frontend.Cursor, comment string) *frontend.Cursor {
	c.Comment = comment
	return c
}
