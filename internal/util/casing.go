// Package util holds small string helpers shared by the generator and its
// templates.
package util

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts PascalCase or camelCase identifiers to snake_case.
// Acronyms stay together ("HTTPServer" -> "http_server") and existing
// underscores are kept without doubling ("get_Value" -> "get_value").
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			prevUpper := unicode.IsUpper(prev)
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prev != '_' && (!prevUpper || nextLower) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// ToPascalCase converts snake_case, kebab-case or C++ scoped names
// ("ntt::render_target") to PascalCase.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ':'
	})

	var result strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}

	return result.String()
}

// ToCamelCase converts snake_case or kebab-case to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return pascal
	}

	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
