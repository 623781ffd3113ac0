// Package typeconv maps C++ type spellings to script-side type names.
//
// Resolution order for Convert:
//  1. registered custom types, longest name first, resolving to a quoted
//     forward reference such as "\"Camera\"". Only the bare type may
//     match: qualifiers, pointer and reference markers and namespace
//     prefixes are stripped, while template arguments and nested members
//     never resolve to the enclosing name;
//  2. the builtin table (int, float, bool, str, None);
//  3. the generic "Any", with one warning logged per call.
package typeconv

import (
	"sort"
	"strings"
	"sync"

	"github.com/teranos/autogen/logger"
	"go.uber.org/zap"
)

// Converter resolves type spellings against builtins and registered types.
// Safe for concurrent use.
type Converter struct {
	mu         sync.RWMutex
	registered []registeredType // longest name first
	log        *zap.SugaredLogger
}

type registeredType struct {
	name   string
	output string
}

// New returns a Converter with an empty registered-type table.
func New(log *zap.SugaredLogger) *Converter {
	return &Converter{log: logger.OrNop(log)}
}

// Register adds a custom type. Registering the same name again replaces its output.
func (c *Converter) Register(name, output string) {
	name = strings.TrimPrefix(strip(name), "::")
	if name == "" {
		return
	}
	if output == "" {
		output = name
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.registered {
		if c.registered[i].name == name {
			c.registered[i].output = output
			return
		}
	}
	c.registered = append(c.registered, registeredType{name: name, output: output})
	sort.SliceStable(c.registered, func(i, j int) bool {
		if len(c.registered[i].name) != len(c.registered[j].name) {
			return len(c.registered[i].name) > len(c.registered[j].name)
		}
		return c.registered[i].name < c.registered[j].name
	})
}

// RegisterAll registers every name as mapping to itself.
func (c *Converter) RegisterAll(names ...string) {
	for _, n := range names {
		c.Register(n, n)
	}
}

// Registered lists registered names in matching order.
func (c *Converter) Registered() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.registered))
	for i, r := range c.registered {
		names[i] = r.name
	}
	return names
}

// Convert resolves a C++ type spelling. Unresolvable spellings return Any
// and log exactly one warning.
func (c *Converter) Convert(spelling string) string {
	name, ok := c.Resolve(spelling)
	if !ok {
		c.log.Warnw("Unresolved type, falling back to Any",
			logger.FieldSpelling, spelling)
	}
	return name
}

// Resolve is Convert without the warning; ok is false when the fallback was used.
func (c *Converter) Resolve(spelling string) (name string, ok bool) {
	if out, found := c.lookupRegistered(spelling); found {
		return `"` + out + `"`, true
	}
	if out, found := builtins[Normalize(spelling)]; found {
		return out, true
	}
	return Any, false
}

func (c *Converter) lookupRegistered(spelling string) (string, bool) {
	bare := strings.TrimPrefix(strip(spelling), "::")
	if bare == "" {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.registered {
		if matches(bare, r.name) {
			return r.output, true
		}
	}
	return "", false
}

// matches reports whether bare names the registered type: either exactly
// or as the last component of a qualified name. A registered "Camera"
// matches "ntt::Camera" but not "Camera::Mode" or "std::vector<Camera>".
func matches(bare, name string) bool {
	if bare == name {
		return true
	}
	if strings.Contains(bare, "<") {
		return false
	}
	return strings.HasSuffix(bare, "::"+name)
}

// qualifiers are dropped wherever they appear in a spelling.
var qualifiers = map[string]bool{
	"const":    true,
	"volatile": true,
	"struct":   true,
	"class":    true,
	"enum":     true,
	"typename": true,
	"mutable":  true,
}

// Normalize strips qualifiers, pointer and reference markers and namespace
// prefixes, and collapses whitespace: "const std::uint32_t &" becomes "uint32_t".
// Template spellings keep their namespace so they never hit the builtin table.
func Normalize(spelling string) string {
	s := strip(spelling)
	if !strings.Contains(s, "<") {
		if i := strings.LastIndex(s, "::"); i >= 0 {
			s = s[i+2:]
		}
	}
	return s
}

// strip drops qualifiers and pointer and reference markers, keeping any
// namespace prefix.
func strip(spelling string) string {
	s := strings.NewReplacer("*", " ", "&", " ").Replace(spelling)

	var kept []string
	for _, tok := range strings.Fields(s) {
		if qualifiers[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
