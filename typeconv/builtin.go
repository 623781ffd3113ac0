package typeconv

// Canonical output names of the builtin table.
const (
	Int   = "int"
	Float = "float"
	Bool  = "bool"
	Str   = "str"
	None  = "None"
	Any   = "Any"
)

// builtins maps normalized C++ spellings to their canonical output.
// Keys are compared after qualifiers, pointer/reference markers and
// namespace prefixes have been removed.
var builtins = map[string]string{
	// Integer family
	"int":                    Int,
	"signed":                 Int,
	"unsigned":               Int,
	"signed int":             Int,
	"unsigned int":           Int,
	"short":                  Int,
	"short int":              Int,
	"signed short":           Int,
	"unsigned short":         Int,
	"unsigned short int":     Int,
	"long":                   Int,
	"long int":               Int,
	"signed long":            Int,
	"unsigned long":          Int,
	"unsigned long int":      Int,
	"long long":              Int,
	"long long int":          Int,
	"signed long long":       Int,
	"unsigned long long":     Int,
	"unsigned long long int": Int,
	"signed char":            Int,
	"unsigned char":          Int,
	"int8_t":                 Int,
	"int16_t":                Int,
	"int32_t":                Int,
	"int64_t":                Int,
	"uint8_t":                Int,
	"uint16_t":               Int,
	"uint32_t":               Int,
	"uint64_t":               Int,
	"size_t":                 Int,
	"ssize_t":                Int,
	"ptrdiff_t":              Int,
	"intptr_t":               Int,
	"uintptr_t":              Int,

	// Floating family
	"float":       Float,
	"double":      Float,
	"long double": Float,
	"float32_t":   Float,
	"float64_t":   Float,
	"float32":     Float,
	"float64":     Float,

	// Boolean
	"bool": Bool,

	// String family
	"string":      Str,
	"string_view": Str,
	"char":        Str,

	// Void and the explicit generic
	"void": None,
	"Any":  Any,
	"":     Any,
}
