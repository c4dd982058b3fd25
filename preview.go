package badgekit

import (
	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
)

// Preview is the structural description of a rendered badge: what each
// element resolved to and where it lands on the page.
type Preview struct {
	Name     string           `json:"name"`
	WidthPt  float64          `json:"widthPt"`
	HeightPt float64          `json:"heightPt"`
	Elements []PreviewElement `json:"elements"`
}

// PreviewElement describes one element after placeholder resolution and
// placement. Only the fields relevant to the element's type are set.
type PreviewElement struct {
	Index           int         `json:"index"`
	ID              string      `json:"id,omitempty"`
	Type            ElementType `json:"type"`
	ResolvedContent string      `json:"resolvedContent,omitempty"`
	Unresolved      []string    `json:"unresolved,omitempty"`
	Label           string      `json:"label,omitempty"`
	Checked         *bool       `json:"checked,omitempty"`
	ImageFileName   string      `json:"imageFileName,omitempty"`
	Symbology       Symbology   `json:"symbology,omitempty"`

	Box         geometry.Box[geometry.Points] `json:"box"`
	Mirrored    bool                          `json:"mirrored,omitempty"`
	OutOfBounds bool                          `json:"outOfBounds,omitempty"`
}

// Preview resolves t against rec as the printed page would, without
// drawing anything.
func (c *Composer) Preview(t *Template, rec fields.Record) (*Preview, error) {
	return c.PreviewMode(t, rec, geometry.ModePrint)
}

// PreviewMode is Preview with an explicit placement mode, so an editor can
// show the flat design or the folded layout.
func (c *Composer) PreviewMode(t *Template, rec fields.Record, mode geometry.Mode) (*Preview, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	tr, err := t.Page.Transform()
	if err != nil {
		return nil, err
	}
	tr = tr.WithMode(mode)
	w, h := tr.Page.Size()
	r := &renderer{cfg: c.cfg, record: rec}

	p := &Preview{
		Name:     t.Name,
		WidthPt:  float64(w),
		HeightPt: float64(h),
		Elements: make([]PreviewElement, 0, len(t.Elements)),
	}
	for i, e := range t.Elements {
		e = normalize(e)
		f := e.Bounds()
		placed := tr.Place(f.Box())
		pe := PreviewElement{
			Index:       i,
			ID:          f.ID,
			Type:        e.Type(),
			Box:         placed.Box,
			Mirrored:    placed.Mirrored,
			OutOfBounds: !tr.InBounds(f.Box()),
		}
		switch e := e.(type) {
		case TextElement:
			pe.setContent(r.substitute(e.Content))
		case TextAreaElement:
			pe.setContent(r.substitute(e.Content))
		case BarcodeElement:
			pe.setContent(r.substitute(e.Content))
			pe.Symbology = e.Symbology
			if pe.Symbology == "" {
				pe.Symbology = SymbologyQR
			}
		case CheckboxElement:
			sub := r.substitute(e.Label)
			pe.Label, pe.Unresolved = sub.Text, sub.Unresolved
			checked := e.Checked
			pe.Checked = &checked
		case ImageElement:
			pe.ImageFileName = e.ImageFileName
		}
		p.Elements = append(p.Elements, pe)
	}
	return p, nil
}

func (pe *PreviewElement) setContent(s fields.Substitution) {
	pe.ResolvedContent = s.Text
	pe.Unresolved = s.Unresolved
}
