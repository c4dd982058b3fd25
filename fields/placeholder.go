package fields

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Substitution is the outcome of filling a text's placeholders.
type Substitution struct {
	Text       string
	Unresolved []string
}

// Substitute replaces every {{name}} in text using DefaultChain.
func Substitute(text string, r Record) Substitution {
	return DefaultChain.Substitute(text, r)
}

// Substitute replaces every {{name}} in text with the resolved value. Names are
// trimmed of surrounding whitespace. Placeholders that do not resolve are left
// exactly as written so unmapped fields stay visible on the printed badge.
func (c Chain) Substitute(text string, r Record) Substitution {
	var unresolved []string
	out := placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := strings.TrimSpace(m[2 : len(m)-2])
		if name == "" {
			return m
		}
		if v, ok := c.Resolve(name, r); ok {
			return v
		}
		unresolved = append(unresolved, name)
		return m
	})
	return Substitution{Text: out, Unresolved: unresolved}
}

// Placeholders lists the field names referenced by text in order of
// appearance, without duplicates.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
