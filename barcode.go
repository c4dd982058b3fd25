package badgekit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
)

// minBarcodePixels is the smallest rendered width of a symbol, so thin
// Code 128 bars survive the printer's resampling.
const minBarcodePixels = 300

// maxLinearHeight caps the pixel height a linear symbol is stretched to.
// The picture is scaled into its box when drawn, so only resolution is lost.
const maxLinearHeight = 2000

const pdf417SecurityLevel = 2

// encodeBarcode renders content as a symbol in color c on white, sized for
// a w x h point box.
func encodeBarcode(sym Symbology, content string, c Color, w, h float64) (*Picture, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrBarcode)
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch sym {
	case SymbologyQR, "":
		bc, err = qr.Encode(content, qr.M, qr.Auto)
	case SymbologyCode128:
		bc, err = code128.Encode(content)
	case SymbologyPDF417:
		bc, err = pdf417.Encode(content, pdf417SecurityLevel)
	default:
		return nil, fmt.Errorf("%w: unknown symbology %q", ErrBarcode, sym)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBarcode, sym, err)
	}

	b := bc.Bounds()
	factor := int(math.Ceil(float64(minBarcodePixels) / float64(b.Dx())))
	if factor < 1 {
		factor = 1
	}
	pw, ph := b.Dx()*factor, b.Dy()*factor
	if sym == SymbologyCode128 && w > 0 && h > 0 {
		// Linear symbols have a nominal height of one module; stretch to the box.
		ph = int(min(math.Round(float64(pw)*h/w), maxLinearHeight))
		ph = max(ph, 1)
	}
	scaled, err := barcode.Scale(bc, pw, ph)
	if err != nil {
		return nil, fmt.Errorf("%w: scaling: %v", ErrBarcode, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, recolor(scaled, c)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBarcode, err)
	}
	return newPicture("PNG", buf.Bytes(), pw, ph), nil
}

// recolor paints the dark modules of img in c and the rest white.
func recolor(img image.Image, c Color) *image.NRGBA {
	ink := color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
	if c.Transparent {
		ink = color.NRGBA{A: 0xff}
	}
	paper := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y < 0x80 {
				out.SetNRGBA(x-b.Min.X, y-b.Min.Y, ink)
			} else {
				out.SetNRGBA(x-b.Min.X, y-b.Min.Y, paper)
			}
		}
	}
	return out
}
