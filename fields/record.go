// Package fields resolves template placeholders against contact records.
//
// Records come from CSV imports whose headers rarely match the names template
// authors type, so a placeholder is looked up through an ordered chain of
// strategies: exact key, standard synonyms, the custom-field map and finally a
// case and punctuation insensitive match.
package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CustomFieldsKey is the reserved JSON key holding a record's custom fields.
const CustomFieldsKey = "customFields"

// Record holds the field values for one contact. Standard holds the
// normalised contact attributes; Custom holds fields imported from arbitrary
// CSV headers.
type Record struct {
	Standard map[string]string
	Custom   map[string]string
}

// NewRecord returns a record over the given standard fields.
func NewRecord(standard map[string]string) Record {
	return Record{Standard: standard}
}

// WithCustom returns a copy of r using custom as its custom-field map.
func (r Record) WithCustom(custom map[string]string) Record {
	r.Custom = custom
	return r
}

// MarshalJSON writes the record as a flat object with custom fields nested
// under CustomFieldsKey.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Standard)+1)
	for k, v := range r.Standard {
		out[k] = v
	}
	if r.Custom != nil {
		out[CustomFieldsKey] = r.Custom
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat object. Scalars other than strings are kept in
// their JSON text form; nulls are dropped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("fields: decode record: %w", err)
	}
	rec := Record{Standard: make(map[string]string, len(raw))}
	for k, v := range raw {
		if k == CustomFieldsKey {
			custom, err := decodeFlat(v)
			if err != nil {
				return fmt.Errorf("fields: decode %s: %w", CustomFieldsKey, err)
			}
			rec.Custom = custom
			continue
		}
		s, ok, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("fields: decode %q: %w", k, err)
		}
		if ok {
			rec.Standard[k] = s
		}
	}
	*r = rec
	return nil
}

func decodeFlat(data json.RawMessage) (map[string]string, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		if ok {
			out[k] = s
		}
	}
	return out, nil
}

func scalarString(v json.RawMessage) (string, bool, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", false, nil
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	case '{', '[':
		return "", false, fmt.Errorf("nested value not supported")
	default:
		// numbers keep their literal spelling
		return string(v), true, nil
	}
}
