// Package annotate parses annotation attribute literals into tags.
//
// A declaration is annotated with __attribute__((annotate("tag"))) or
// [[clang::annotate("tag")]]. One literal may pack several comma-separated
// tags ("python,singleton") and a declaration may carry several literals.
package annotate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Conventional tags understood by the shipped templates.
const (
	Bindable  = "python"    // expose the declaration to the scripting runtime
	Singleton = "singleton" // expose the class through its instance accessor
)

// Split unquotes a literal if needed and returns its comma-separated tags,
// trimmed, with empty entries dropped.
func Split(literal string) []string {
	literal = strings.TrimSpace(literal)
	if unquoted, err := strconv.Unquote(literal); err == nil {
		literal = unquoted
	}

	var tags []string
	for _, part := range strings.Split(literal, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Collect splits every literal and de-duplicates the tags in first-seen order.
func Collect(literals ...string) []string {
	var tags []string
	for _, l := range literals {
		tags = append(tags, Split(l)...)
	}
	if len(tags) == 0 {
		return nil
	}
	return lo.Uniq(tags)
}

var annotateCall = regexp.MustCompile(`\bannotate\s*\(\s*("(?:[^"\\]|\\.)*")`)

// Scan returns the string literals of every annotate("...") call in text,
// still quoted, in source order.
func Scan(text string) []string {
	matches := annotateCall.FindAllStringSubmatch(text, -1)
	literals := make([]string, 0, len(matches))
	for _, m := range matches {
		literals = append(literals, m[1])
	}
	return literals
}
