package geometry

import "fmt"

// Mode selects when the fold mirror applies.
type Mode int

const (
	// ModePrint is used for PDF and print output. The mirror is always applied
	// to fold-over pages.
	ModePrint Mode = iota
	// ModeDesign is the editor view with fold preview switched off.
	ModeDesign
	// ModeDesignFoldPreview is the editor view showing the folded layout.
	ModeDesignFoldPreview
)

// ParseMode maps a mode name to its Mode: "print" (or empty), "design" or
// "fold-preview".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "print":
		return ModePrint, nil
	case "design":
		return ModeDesign, nil
	case "fold-preview":
		return ModeDesignFoldPreview, nil
	}
	return 0, fmt.Errorf("geometry: unknown mode %q", s)
}

func (m Mode) mirrors() bool {
	return m == ModePrint || m == ModeDesignFoldPreview
}

// Mirror reflects a vertical extent about the page's horizontal midline.
// Applying it twice returns the original y.
func Mirror(y, height, pageHeight Inches) Inches {
	return pageHeight - y - height
}

// IsLowerHalf reports whether a box belongs to the lower physical half of the
// page. A box straddling the fold belongs to the half containing its top edge.
func IsLowerHalf(b Box[Inches], p Page) bool {
	return b.Y >= p.FoldLine()
}

// Placement is an element box resolved to page points.
type Placement struct {
	Box Box[Points]
	// Mirrored is set when the fold mirror moved the box; its content must
	// be drawn inverted.
	Mirrored bool
}

// Transform maps design coordinates to page coordinates.
type Transform struct {
	Page   Page
	Unit   DesignUnit
	Canvas Canvas
	Mode   Mode
}

// NewTransform returns a print-mode transform. A zero canvas falls back to
// DefaultCanvas.
func NewTransform(page Page, unit DesignUnit, canvas Canvas) (Transform, error) {
	if page.Width <= 0 || page.Height <= 0 {
		return Transform{}, fmt.Errorf("geometry: page size %.2fx%.2f in must be positive", float64(page.Width), float64(page.Height))
	}
	switch unit {
	case "", UnitInch:
		unit = UnitInch
	case UnitPixel:
		if canvas.Width == 0 && canvas.Height == 0 {
			canvas = DefaultCanvas
		}
		if canvas.Width <= 0 || canvas.Height <= 0 {
			return Transform{}, fmt.Errorf("geometry: canvas size %.0fx%.0f px must be positive", float64(canvas.Width), float64(canvas.Height))
		}
	default:
		return Transform{}, fmt.Errorf("geometry: unknown design unit %q", unit)
	}
	return Transform{Page: page, Unit: unit, Canvas: canvas, Mode: ModePrint}, nil
}

// WithMode returns a copy of t using mode m.
func (t Transform) WithMode(m Mode) Transform {
	t.Mode = m
	return t
}

// Inches normalises a design box to page inches.
func (t Transform) Inches(b Box[float64]) Box[Inches] {
	if t.Unit == UnitPixel {
		return PixelsToInches(Box[Pixels]{
			X: Pixels(b.X), Y: Pixels(b.Y), Width: Pixels(b.Width), Height: Pixels(b.Height),
		}, t.Canvas, t.Page)
	}
	return Box[Inches]{X: Inches(b.X), Y: Inches(b.Y), Width: Inches(b.Width), Height: Inches(b.Height)}
}

// Place converts a design box to page points, mirroring lower-half boxes
// of fold-over pages when the mode calls for it.
func (t Transform) Place(b Box[float64]) Placement {
	in := t.Inches(b)
	mirrored := false
	if t.Page.FoldOver && t.Mode.mirrors() && IsLowerHalf(in, t.Page) {
		in.Y = Mirror(in.Y, in.Height, t.Page.Height)
		mirrored = true
	}
	return Placement{Box: InchesToPoints(in), Mirrored: mirrored}
}

// InBounds reports whether a design box lies entirely on the page.
func (t Transform) InBounds(b Box[float64]) bool {
	const eps = 1e-9
	in := t.Inches(b)
	return in.X >= -eps && in.Y >= -eps &&
		float64(in.Right()) <= float64(t.Page.Width)+eps &&
		float64(in.Bottom()) <= float64(t.Page.Height)+eps
}
