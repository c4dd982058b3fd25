// Package geometry converts badge element boxes between the design canvas and
// the printed page.
//
// Two coordinate systems are involved. Templates are authored on a design
// surface measured either in inches or in canvas pixels, while the output PDF is
// measured in points (72 per inch). Each system has its own length type so a
// value cannot be scaled twice or not at all without the compiler noticing.
//
// Fold-over badges print the lower half of the page upside down. The fold
// mirror is applied here, in inches, before the final conversion to points.
package geometry

import "fmt"

// PointsPerInch is the PDF user-space resolution.
const PointsPerInch = 72.0

// Length is the set of length types understood by Box.
type Length interface {
	~float64
}

// Inches is a length on the physical page.
type Inches float64

// Pixels is a length on the design canvas.
type Pixels float64

// Points is a length in PDF user space.
type Points float64

// Points converts to PDF points.
func (in Inches) Points() Points { return Points(float64(in) * PointsPerInch) }

// Inches converts back to inches.
func (pt Points) Inches() Inches { return Inches(float64(pt) / PointsPerInch) }

// Box is an axis-aligned rectangle with its origin at the top-left corner and y
// growing downward, in the length type U.
type Box[U Length] struct {
	X      U `json:"x"`
	Y      U `json:"y"`
	Width  U `json:"width"`
	Height U `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Box[U]) Right() U { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box[U]) Bottom() U { return b.Y + b.Height }

// CenterX returns the horizontal midpoint.
func (b Box[U]) CenterX() U { return b.X + b.Width/2 }

// CenterY returns the vertical midpoint.
func (b Box[U]) CenterY() U { return b.Y + b.Height/2 }

func (b Box[U]) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", float64(b.X), float64(b.Y), float64(b.Width), float64(b.Height))
}

// DesignUnit names the unit template coordinates are authored in.
type DesignUnit string

const (
	UnitInch  DesignUnit = "in"
	UnitPixel DesignUnit = "px"
)

// Canvas is the logical size of a pixel design surface.
type Canvas struct {
	Width  Pixels
	Height Pixels
}

// DefaultCanvas is the editor surface for a 4x6 inch badge (144 px per inch).
var DefaultCanvas = Canvas{Width: 576, Height: 864}

// Page is the physical page a template prints on.
type Page struct {
	Width    Inches
	Height   Inches
	FoldOver bool
}

// BadgePage is the canonical 4x6 inch fold-over badge.
var BadgePage = Page{Width: 4, Height: 6, FoldOver: true}

// FoldLine returns the distance of the fold from the top edge.
func (p Page) FoldLine() Inches { return p.Height / 2 }

// Size returns the page size in points.
func (p Page) Size() (w, h Points) { return p.Width.Points(), p.Height.Points() }

// PixelsToInches maps a canvas box onto the page. Each axis is scaled on its
// own, since canvas and page aspect ratios are independent settings.
func PixelsToInches(b Box[Pixels], c Canvas, p Page) Box[Inches] {
	sx := float64(p.Width) / float64(c.Width)
	sy := float64(p.Height) / float64(c.Height)
	return Box[Inches]{
		X:      Inches(float64(b.X) * sx),
		Y:      Inches(float64(b.Y) * sy),
		Width:  Inches(float64(b.Width) * sx),
		Height: Inches(float64(b.Height) * sy),
	}
}

// InchesToPixels is the inverse of PixelsToInches.
func InchesToPixels(b Box[Inches], c Canvas, p Page) Box[Pixels] {
	sx := float64(c.Width) / float64(p.Width)
	sy := float64(c.Height) / float64(p.Height)
	return Box[Pixels]{
		X:      Pixels(float64(b.X) * sx),
		Y:      Pixels(float64(b.Y) * sy),
		Width:  Pixels(float64(b.Width) * sx),
		Height: Pixels(float64(b.Height) * sy),
	}
}

// InchesToPoints scales a page box to PDF points.
func InchesToPoints(b Box[Inches]) Box[Points] {
	return Box[Points]{
		X:      b.X.Points(),
		Y:      b.Y.Points(),
		Width:  b.Width.Points(),
		Height: b.Height.Points(),
	}
}
