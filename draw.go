package badgekit

import (
	"fmt"
	"strings"

	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
)

// Text metrics, in points.
const (
	defaultFontSize  = 12.0
	lineGap          = 2.0
	textAreaPadding  = 8.0
	checkboxSize     = 20.0
	checkboxLabelGap = 8.0
	placeholderFont  = 9.0
)

// renderer draws the elements of one page. It is not safe for concurrent use.
type renderer struct {
	cfg    *config
	record fields.Record
}

func (r *renderer) substitute(text string) fields.Substitution {
	return r.cfg.resolver.Substitute(text, r.record)
}

// draw paints e into box, which is already in page points.
func (r *renderer) draw(s Surface, e Element, box geometry.Box[geometry.Points]) error {
	x, y, w, h := float64(box.X), float64(box.Y), float64(box.Width), float64(box.Height)
	switch e := e.(type) {
	case TextElement:
		r.drawText(s, e, x, y, w)
	case TextAreaElement:
		r.drawTextArea(s, e, x, y, w, h)
	case CheckboxElement:
		r.drawCheckbox(s, e, x, y)
	case LineElement:
		drawLine(s, e, x, y, w, h)
	case SquareElement:
		drawSquare(s, e, x, y, w, h)
	case ImageElement:
		return r.drawImage(s, e, x, y, w, h)
	case BarcodeElement:
		return r.drawBarcode(s, e, x, y, w, h)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownElement, e)
	}
	return nil
}

func fontSizeOr(size float64) float64 {
	if size <= 0 {
		return defaultFontSize
	}
	return size
}

// alignedX returns where a run of the given width starts so that it is
// anchored to the box's left edge, midpoint or right edge.
func alignedX(a Align, x, w, runWidth float64) float64 {
	switch a {
	case AlignCenter:
		return x + w/2 - runWidth/2
	case AlignRight:
		return x + w - runWidth
	}
	return x
}

func (r *renderer) drawText(s Surface, e TextElement, x, y, w float64) {
	size := fontSizeOr(e.FontSize)
	s.SetFont(r.cfg.fontFamily, e.Bold, size)
	s.SetTextColor(colorOr(e.Color, Black))

	text := r.substitute(e.Content).Text
	baseline := y + size
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			s.Text(alignedX(e.Align, x, w, s.StringWidth(line)), baseline, line)
		}
		baseline += size + lineGap
	}
}

func (r *renderer) drawTextArea(s Surface, e TextAreaElement, x, y, w, h float64) {
	if bg := colorOr(e.BackgroundColor, Transparent); !bg.Transparent {
		s.SetFillColor(bg)
		s.Rect(x, y, w, h, "F")
	}
	if e.BorderWidth > 0 {
		strokeRect(s, StrokeSolid, e.BorderWidth, colorOr(e.BorderColor, Black), x, y, w, h)
	}

	size := fontSizeOr(e.FontSize)
	s.SetFont(r.cfg.fontFamily, e.Bold, size)
	s.SetTextColor(colorOr(e.Color, Black))

	inner := w - 2*textAreaPadding
	lines := wrapText(s.StringWidth, r.substitute(e.Content).Text, inner)
	for i, line := range lines {
		if line == "" {
			continue
		}
		baseline := y + textAreaPadding + size + float64(i)*(size+lineGap)
		s.Text(alignedX(e.Align, x+textAreaPadding, inner, s.StringWidth(line)), baseline, line)
	}
}

func (r *renderer) drawCheckbox(s Surface, e CheckboxElement, x, y float64) {
	c := colorOr(e.Color, Black)
	s.SetDrawColor(c)
	s.SetLineWidth(1)
	s.Rect(x, y, checkboxSize, checkboxSize, "D")
	if e.Checked {
		s.SetLineWidth(2)
		s.Line(x+4, y+10, x+8, y+15)
		s.Line(x+8, y+15, x+16, y+5)
	}

	label := r.substitute(e.Label).Text
	if label == "" {
		return
	}
	size := fontSizeOr(e.FontSize)
	s.SetFont(r.cfg.fontFamily, false, size)
	s.SetTextColor(c)
	s.Text(x+checkboxSize+checkboxLabelGap, y+checkboxSize/2+size*0.35, label)
}

func drawLine(s Surface, e LineElement, x, y, w, h float64) {
	thickness := e.Thickness
	if thickness <= 0 {
		thickness = 1
	}
	mid := y + h/2
	strokeSegment(s, e.Style, thickness, colorOr(e.Color, Black), x, mid, x+w, mid)
}

func drawSquare(s Surface, e SquareElement, x, y, w, h float64) {
	if fill := colorOr(e.FillColor, Transparent); !fill.Transparent {
		s.SetFillColor(fill)
		s.Rect(x, y, w, h, "F")
	}
	if e.BorderWidth > 0 {
		strokeRect(s, e.BorderStyle, e.BorderWidth, colorOr(e.BorderColor, Black), x, y, w, h)
	}
}

func (r *renderer) drawImage(s Surface, e ImageElement, x, y, w, h float64) error {
	a, err := loadAsset(e.ImageData, r.cfg.maxImageDim, r.cfg.maxImagePx)
	if err == nil {
		err = drawAsset(s, a, x, y, w, h)
	}
	if err != nil {
		drawPlaceholder(s, r.cfg.fontFamily, "Image Error", x, y, w, h)
		return err
	}
	return nil
}

func (r *renderer) drawBarcode(s Surface, e BarcodeElement, x, y, w, h float64) error {
	pic, err := encodeBarcode(e.Symbology, r.substitute(e.Content).Text, colorOr(e.Color, Black), w, h)
	if err == nil {
		err = s.Image(pic, x, y, w, h)
	}
	if err != nil {
		drawPlaceholder(s, r.cfg.fontFamily, "Barcode Error", x, y, w, h)
		return err
	}
	return nil
}

// drawPlaceholder marks a box whose content could not be drawn.
func drawPlaceholder(s Surface, family, label string, x, y, w, h float64) {
	s.SetFillColor(placeholderFill)
	s.SetDrawColor(placeholderStroke)
	s.SetLineWidth(1)
	s.Rect(x, y, w, h, "FD")

	s.SetFont(family, true, placeholderFont)
	s.SetTextColor(placeholderStroke)
	s.Text(x+w/2-s.StringWidth(label)/2, y+h/2+placeholderFont*0.35, label)
}
