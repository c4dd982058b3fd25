// Package badgekit renders fold-over name badges from declarative templates.
//
// A Template is a fixed-size page plus an ordered list of positioned elements.
// A Composer fills the template's {{field}} placeholders from a contact
// record, places every element on the page and writes a one-page PDF. On
// fold-over pages the elements of the lower half are mirrored about the fold
// line and drawn upside down, so both faces read upright once the badge is
// folded.
//
// Example JSON:
//
//	{
//	  "name": "Attendee",
//	  "page": {"widthIn": 4, "heightIn": 6, "foldOverEnabled": true},
//	  "elements": [
//	    {"type": "text", "id": "name", "x": 0.25, "y": 0.5, "width": 3.5, "height": 0.5,
//	     "content": "{{firstName}} {{lastName}}", "fontSize": 24, "bold": true, "align": "center"},
//	    {"type": "line", "id": "rule", "x": 0.25, "y": 1.25, "width": 3.5, "height": 0.1,
//	     "thickness": 1, "style": "dashed"}
//	  ]
//	}
package badgekit

import (
	"github.com/lvillar/badgekit/geometry"
)

// Template is the declarative, reusable description of a badge layout.
// The renderer treats it as read-only.
type Template struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Page        Page     `json:"page"`
	Elements    Elements `json:"elements"`
}

// Page holds the physical page settings.
type Page struct {
	WidthIn         float64 `json:"widthIn" validate:"gt=0"`
	HeightIn        float64 `json:"heightIn" validate:"gt=0"`
	FoldOverEnabled bool    `json:"foldOverEnabled"`
	// BackgroundImage is a data URI drawn full-bleed beneath all elements.
	BackgroundImage string `json:"backgroundImage,omitempty"`

	// DesignUnit is the unit element coordinates are stored in; "in" when empty.
	DesignUnit     geometry.DesignUnit `json:"designUnit,omitempty" validate:"omitempty,oneof=in px"`
	CanvasWidthPx  float64             `json:"canvasWidthPx,omitempty" validate:"gte=0"`
	CanvasHeightPx float64             `json:"canvasHeightPx,omitempty" validate:"gte=0"`
}

// BadgePage returns the canonical 4x6 inch fold-over page.
func BadgePage() Page {
	return Page{WidthIn: 4, HeightIn: 6, FoldOverEnabled: true}
}

// Geometry returns the page as a geometry.Page.
func (p Page) Geometry() geometry.Page {
	return geometry.Page{
		Width:    geometry.Inches(p.WidthIn),
		Height:   geometry.Inches(p.HeightIn),
		FoldOver: p.FoldOverEnabled,
	}
}

// Transform returns the print-mode transform for the page.
func (p Page) Transform() (geometry.Transform, error) {
	return geometry.NewTransform(p.Geometry(), p.DesignUnit, geometry.Canvas{
		Width:  geometry.Pixels(p.CanvasWidthPx),
		Height: geometry.Pixels(p.CanvasHeightPx),
	})
}

// ElementType discriminates the element variants.
type ElementType string

const (
	TypeText            ElementType = "text"
	TypeTextArea        ElementType = "textArea"
	TypeCheckbox        ElementType = "checkbox"
	TypeImage           ElementType = "image"
	TypeBackgroundImage ElementType = "background-image"
	TypeLine            ElementType = "line"
	TypeSquare          ElementType = "square"
	TypeBarcode         ElementType = "barcode"
)

// Align is the horizontal text anchor.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// StrokeStyle is the dash pattern of lines and borders.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// Symbology selects the barcode encoding.
type Symbology string

const (
	SymbologyQR      Symbology = "qr"
	SymbologyCode128 Symbology = "code128"
	SymbologyPDF417  Symbology = "pdf417"
)

// Element is one positioned visual element. The set of implementations is
// closed: TextElement, TextAreaElement, CheckboxElement, ImageElement,
// LineElement, SquareElement and BarcodeElement.
type Element interface {
	Type() ElementType
	Bounds() Frame
	element()
}

// Frame holds the fields common to every element, in design units.
type Frame struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

// Bounds returns the frame itself.
func (f Frame) Bounds() Frame { return f }

// Box returns the frame as a design-unit box.
func (f Frame) Box() geometry.Box[float64] {
	return geometry.Box[float64]{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// TextStyle is shared by text and textArea elements. Content may embed
// {{fieldName}} placeholders.
type TextStyle struct {
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize,omitempty" validate:"gte=0"`
	Bold     bool    `json:"bold,omitempty"`
	Color    string  `json:"color,omitempty" validate:"omitempty,badgecolor"`
	Align    Align   `json:"align,omitempty" validate:"omitempty,oneof=left center right"`
}

// TextElement is a single run of text anchored at the top of its box.
type TextElement struct {
	Frame
	TextStyle
}

// TextAreaElement is word-wrapped text inside an optionally filled and
// bordered box.
type TextAreaElement struct {
	Frame
	TextStyle
	BackgroundColor string  `json:"backgroundColor,omitempty" validate:"omitempty,badgecolor"`
	BorderColor     string  `json:"borderColor,omitempty" validate:"omitempty,badgecolor"`
	BorderWidth     float64 `json:"borderWidth,omitempty" validate:"gte=0"`
}

// CheckboxElement is a fixed-size tick box with a label to its right.
type CheckboxElement struct {
	Frame
	Label    string  `json:"label"`
	Checked  bool    `json:"checked"`
	Color    string  `json:"color,omitempty" validate:"omitempty,badgecolor"`
	FontSize float64 `json:"fontSize,omitempty" validate:"gte=0"`
}

// ImageElement places an embedded image. Background marks the
// "background-image" variant, which renders the same way.
type ImageElement struct {
	Frame
	ImageData     string `json:"imageData"`
	ImageFileName string `json:"imageFileName,omitempty"`
	Background    bool   `json:"-"`
}

// LineElement is a horizontal rule through the vertical center of its box.
type LineElement struct {
	Frame
	Thickness float64     `json:"thickness,omitempty" validate:"gte=0"`
	Style     StrokeStyle `json:"style,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	Color     string      `json:"color,omitempty" validate:"omitempty,badgecolor"`
}

// SquareElement is a rectangle with optional fill and border.
type SquareElement struct {
	Frame
	BorderWidth float64     `json:"borderWidth,omitempty" validate:"gte=0"`
	BorderStyle StrokeStyle `json:"borderStyle,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	BorderColor string      `json:"borderColor,omitempty" validate:"omitempty,badgecolor"`
	FillColor   string      `json:"fillColor,omitempty" validate:"omitempty,badgecolor"`
}

// BarcodeElement encodes its resolved content as a QR, Code 128 or PDF417
// symbol scaled to the box.
type BarcodeElement struct {
	Frame
	Content   string    `json:"content"`
	Symbology Symbology `json:"symbology,omitempty" validate:"omitempty,oneof=qr code128 pdf417"`
	Color     string    `json:"color,omitempty" validate:"omitempty,badgecolor"`
}

func (TextElement) Type() ElementType     { return TypeText }
func (TextAreaElement) Type() ElementType { return TypeTextArea }
func (CheckboxElement) Type() ElementType { return TypeCheckbox }
func (LineElement) Type() ElementType     { return TypeLine }
func (SquareElement) Type() ElementType   { return TypeSquare }
func (BarcodeElement) Type() ElementType  { return TypeBarcode }

func (e ImageElement) Type() ElementType {
	if e.Background {
		return TypeBackgroundImage
	}
	return TypeImage
}

func (TextElement) element()     {}
func (TextAreaElement) element() {}
func (CheckboxElement) element() {}
func (ImageElement) element()    {}
func (LineElement) element()     {}
func (SquareElement) element()   {}
func (BarcodeElement) element()  {}

// Elements is the painter-ordered element list: later elements draw on top.
type Elements []Element
