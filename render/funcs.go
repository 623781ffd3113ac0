package render

import (
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/teranos/autogen/internal/util"
	"github.com/teranos/autogen/model"
)

// FuncMap returns the functions available to templates.
func (r *Renderer) FuncMap() template.FuncMap {
	return template.FuncMap{
		"convert":       r.conv.Convert,
		"namespace":     func() string { return r.namespace },
		"hasAnnotation": hasAnnotation,
		"snake":         util.ToSnakeCase,
		"pascal":        util.ToPascalCase,
		"camel":         util.ToCamelCase,
		"join":          join,
		"quote":         strconv.Quote,
		"docstring":     docstring,
		"last":          last,
		"indent":        indent,
		"argTypes":      argTypes,
		"argNames":      argNames,
	}
}

// hasAnnotation reports whether tags contains tag.
func hasAnnotation(tags []string, tag string) bool {
	return lo.Contains(tags, tag)
}

// join joins list with sep; arguments are ordered for pipelines:
// {{ .Annotations | join ", " }}.
func join(sep string, list []string) string {
	return strings.Join(list, sep)
}

// docstring escapes s for the body of a Python triple-quoted string.
func docstring(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// last reports whether i is the final index of list.
func last(i int, list interface{}) bool {
	v := reflect.ValueOf(list)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return i == v.Len()-1
	}
	return false
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// argTypes lists argument types, comma separated, for init<...> lists.
func argTypes(args []model.Argument) string {
	return strings.Join(lo.Map(args, func(a model.Argument, _ int) string { return a.Type }), ", ")
}

// argNames lists argument names, comma separated.
func argNames(args []model.Argument) string {
	return strings.Join(lo.Map(args, func(a model.Argument, _ int) string { return a.Name }), ", ")
}
