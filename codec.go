package badgekit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ParseTemplate decodes a template from JSON or YAML. YAML documents are
// normalised to JSON first so both formats share one decoder.
func ParseTemplate(data []byte) (*Template, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("badgekit: parsing template: empty document")
	}

	if trimmed[0] != '{' {
		var doc any
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("badgekit: parsing template: invalid JSON or YAML: %w", err)
		}
		js, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("badgekit: parsing template: %w", err)
		}
		trimmed = js
	}

	var t Template
	if err := json.Unmarshal(trimmed, &t); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, fmt.Errorf("badgekit: parsing template: %w", err)
	}
	return &t, nil
}

// LoadTemplateFile reads and parses a JSON or YAML template file.
func LoadTemplateFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("badgekit: reading %s: %w", path, err)
	}
	return ParseTemplate(data)
}

// MarshalTemplate encodes t as JSON, the persistence format.
func MarshalTemplate(t *Template) ([]byte, error) {
	return json.Marshal(t)
}

// AddElement appends e, assigning a fresh id when it has none, and returns
// the stored element.
func (t *Template) AddElement(e Element) Element {
	if f := e.Bounds(); f.ID == "" {
		f.ID = uuid.NewString()
		e = WithFrame(e, f)
	}
	t.Elements = append(t.Elements, e)
	return e
}

// WithFrame returns a copy of e with its common fields replaced by f.
func WithFrame(e Element, f Frame) Element {
	switch v := normalize(e).(type) {
	case TextElement:
		v.Frame = f
		return v
	case TextAreaElement:
		v.Frame = f
		return v
	case CheckboxElement:
		v.Frame = f
		return v
	case ImageElement:
		v.Frame = f
		return v
	case LineElement:
		v.Frame = f
		return v
	case SquareElement:
		v.Frame = f
		return v
	case BarcodeElement:
		v.Frame = f
		return v
	}
	return e
}

// normalize turns pointer elements into values so type switches only need
// the value cases.
func normalize(e Element) Element {
	switch v := e.(type) {
	case *TextElement:
		return *v
	case *TextAreaElement:
		return *v
	case *CheckboxElement:
		return *v
	case *ImageElement:
		return *v
	case *LineElement:
		return *v
	case *SquareElement:
		return *v
	case *BarcodeElement:
		return *v
	}
	return e
}

// UnmarshalJSON decodes the element list, choosing each element's Go type
// from its "type" field. An unknown or missing type yields ValidationErrors
// naming the element index.
func (l *Elements) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Elements, 0, len(raws))
	var verrs ValidationErrors
	for i, raw := range raws {
		e, err := decodeElement(raw)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Index = i
				verrs = append(verrs, verr)
				continue
			}
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, e)
	}
	if len(verrs) > 0 {
		return verrs
	}
	*l = out
	return nil
}

type (
	textJSON     TextElement
	textAreaJSON TextAreaElement
	checkboxJSON CheckboxElement
	imageJSON    ImageElement
	lineJSON     LineElement
	squareJSON   SquareElement
	barcodeJSON  BarcodeElement
)

func decodeElement(raw json.RawMessage) (Element, error) {
	var head struct {
		Type *ElementType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Type == nil {
		return nil, &ValidationError{Field: "type", Reason: "is required"}
	}

	switch *head.Type {
	case TypeText:
		var e TextElement
		err := json.Unmarshal(raw, (*textJSON)(&e))
		return e, err
	case TypeTextArea:
		var e TextAreaElement
		err := json.Unmarshal(raw, (*textAreaJSON)(&e))
		return e, err
	case TypeCheckbox:
		var e CheckboxElement
		err := json.Unmarshal(raw, (*checkboxJSON)(&e))
		return e, err
	case TypeImage, TypeBackgroundImage:
		var e ImageElement
		err := json.Unmarshal(raw, (*imageJSON)(&e))
		e.Background = *head.Type == TypeBackgroundImage
		return e, err
	case TypeLine:
		var e LineElement
		err := json.Unmarshal(raw, (*lineJSON)(&e))
		return e, err
	case TypeSquare:
		var e SquareElement
		err := json.Unmarshal(raw, (*squareJSON)(&e))
		return e, err
	case TypeBarcode:
		var e BarcodeElement
		err := json.Unmarshal(raw, (*barcodeJSON)(&e))
		return e, err
	}
	return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not a known element type", *head.Type)}
}

// marshalTagged encodes v and prepends the "type" discriminator.
func marshalTagged(typ ElementType, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(body) + len(tag) + 10)
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

func (e TextElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), textJSON(e))
}

func (e TextAreaElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), textAreaJSON(e))
}

func (e CheckboxElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), checkboxJSON(e))
}

func (e ImageElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), imageJSON(e))
}

func (e LineElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), lineJSON(e))
}

func (e SquareElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), squareJSON(e))
}

func (e BarcodeElement) MarshalJSON() ([]byte, error) {
	return marshalTagged(e.Type(), barcodeJSON(e))
}
