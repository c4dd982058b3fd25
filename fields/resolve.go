package fields

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Strategy is one step of the lookup chain.
type Strategy interface {
	// Name identifies the strategy in logs and tests.
	Name() string
	// Lookup returns the value for name, if this strategy can find one.
	Lookup(name string, r Record) (string, bool)
}

// Chain tries its strategies in order; the first hit wins.
type Chain []Strategy

// DefaultChain is the lookup order used by Resolve.
var DefaultChain = Chain{
	Exact{},
	Synonyms(DefaultSynonyms),
	CustomFields{},
	Normalized{},
}

// Resolve looks name up using DefaultChain.
func Resolve(name string, r Record) (string, bool) {
	return DefaultChain.Resolve(name, r)
}

// Resolve returns the first value found for name.
func (c Chain) Resolve(name string, r Record) (string, bool) {
	v, _, ok := c.ResolveWith(name, r)
	return v, ok
}

// ResolveWith is Resolve that also reports which strategy matched.
func (c Chain) ResolveWith(name string, r Record) (value, strategy string, ok bool) {
	for _, s := range c {
		if v, ok := s.Lookup(name, r); ok {
			return v, s.Name(), true
		}
	}
	return "", "", false
}

// Exact matches a standard field by its exact key.
type Exact struct{}

func (Exact) Name() string { return "exact" }

func (Exact) Lookup(name string, r Record) (string, bool) {
	v, ok := r.Standard[name]
	return v, ok
}

// SynonymPair links two spellings of the same standard attribute.
type SynonymPair [2]string

// DefaultSynonyms lists the standard contact attributes that appear under
// both camelCase and snake_case names.
var DefaultSynonyms = []SynonymPair{
	{"firstName", "first_name"},
	{"lastName", "last_name"},
	{"middleName", "middle_name"},
	{"birthDate", "birth_date"},
	{"zipCode", "zip_code"},
	{"phoneNumber", "phone_number"},
}

// Synonyms looks up the other spelling of a known pair, in both directions.
type Synonyms []SynonymPair

func (Synonyms) Name() string { return "synonym" }

func (s Synonyms) Lookup(name string, r Record) (string, bool) {
	for _, p := range s {
		var other string
		switch name {
		case p[0]:
			other = p[1]
		case p[1]:
			other = p[0]
		default:
			continue
		}
		if v, ok := r.Standard[other]; ok {
			return v, true
		}
	}
	return "", false
}

// CustomFields looks in the custom-field map, first by exact key and then by
// the upper-cased key older imports used.
type CustomFields struct{}

func (CustomFields) Name() string { return "custom" }

func (CustomFields) Lookup(name string, r Record) (string, bool) {
	if r.Custom == nil {
		return "", false
	}
	if v, ok := r.Custom[name]; ok {
		return v, true
	}
	v, ok := r.Custom[strings.ToUpper(name)]
	return v, ok
}

// Normalized compares case-folded keys with everything but letters and digits
// removed. Standard fields are scanned before custom fields, each in sorted
// key order.
type Normalized struct{}

func (Normalized) Name() string { return "normalized" }

func (Normalized) Lookup(name string, r Record) (string, bool) {
	want := NormalizeKey(name)
	if want == "" {
		return "", false
	}
	for _, m := range []map[string]string{r.Standard, r.Custom} {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if NormalizeKey(k) == want {
				return m[k], true
			}
		}
	}
	return "", false
}

// NormalizeKey folds case and strips every rune that is not a letter or digit,
// so "First Name", "first_name" and "FIRSTNAME" compare equal.
func NormalizeKey(s string) string {
	folded := cases.Fold().String(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
