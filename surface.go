package badgekit

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding/charmap"
)

// Surface is the drawing context element renderers paint on. Coordinates are
// PDF points with the origin at the top-left corner of the page. Rect and
// Circle take fpdf style strings: "D" stroke, "F" fill, "FD" both.
type Surface interface {
	SetFont(family string, bold bool, size float64)
	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)

	// StringWidth measures s in the current font.
	StringWidth(s string) float64
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, style string)
	Circle(x, y, r float64, style string)
	// Image draws a prepared raster into the given box.
	Image(p *Picture, x, y, w, h float64) error
	// PDFPage draws the first page of an embedded PDF document into the box.
	PDFPage(data []byte, x, y, w, h float64) error

	// BeginRotation rotates subsequent drawing counter-clockwise by angle
	// degrees about (cx, cy) until the matching EndRotation.
	BeginRotation(angle, cx, cy float64)
	EndRotation()

	// Err returns and clears any error the backend recorded since the last call.
	Err() error
}

// Picture is a raster ready for embedding. Key identifies identical
// pictures so they are embedded once per document.
type Picture struct {
	Key    string
	Format string // "PNG" or "JPG"
	Data   []byte
	Width  int
	Height int
}

// pdfSurface draws onto an fpdf document whose unit is the point.
type pdfSurface struct {
	pdf *fpdf.Fpdf
	// imp is shared by every imported page so template names stay unique.
	imp *gofpdi.Importer
}

func newPDFSurface(pdf *fpdf.Fpdf) *pdfSurface {
	return &pdfSurface{pdf: pdf}
}

// latin1 converts UTF-8 text to the cp1252 bytes the core PDF fonts expect.
// Runes outside the code page become '?'.
func latin1(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			buf = append(buf, b)
		} else {
			buf = append(buf, '?')
		}
	}
	return string(buf)
}

func (s *pdfSurface) SetFont(family string, bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	s.pdf.SetFont(family, style, size)
}

func (s *pdfSurface) SetTextColor(c Color) { s.pdf.SetTextColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetDrawColor(c Color) { s.pdf.SetDrawColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetFillColor(c Color) { s.pdf.SetFillColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w)
}

func (s *pdfSurface) StringWidth(str string) float64 {
	return s.pdf.GetStringWidth(latin1(str))
}

func (s *pdfSurface) Text(x, y float64, str string) {
	s.pdf.Text(x, y, latin1(str))
}

func (s *pdfSurface) Line(x1, y1, x2, y2 float64) { s.pdf.Line(x1, y1, x2, y2) }

func (s *pdfSurface) Rect(x, y, w, h float64, style string) { s.pdf.Rect(x, y, w, h, style) }

func (s *pdfSurface) Circle(x, y, r float64, style string) { s.pdf.Circle(x, y, r, style) }

func (s *pdfSurface) Image(p *Picture, x, y, w, h float64) error {
	opt := fpdf.ImageOptions{ImageType: p.Format}
	if s.pdf.GetImageInfo(p.Key) == nil {
		s.pdf.RegisterImageOptionsReader(p.Key, opt, bytes.NewReader(p.Data))
		if err := s.Err(); err != nil {
			return newRenderError("Image", err)
		}
	}
	s.pdf.ImageOptions(p.Key, x, y, w, h, false, opt, 0, "")
	return nil
}

func (s *pdfSurface) PDFPage(data []byte, x, y, w, h float64) (err error) {
	// gofpdi panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = newRenderError("PDFPage", fmt.Errorf("%w: %v", ErrImageDecode, r))
		}
	}()
	if s.imp == nil {
		s.imp = gofpdi.NewImporter()
	}
	rs := io.ReadSeeker(bytes.NewReader(data))
	tpl := s.imp.ImportPageFromStream(s.pdf, &rs, 1, "/MediaBox")
	if err := s.Err(); err != nil {
		return newRenderError("PDFPage", err)
	}
	s.imp.UseImportedTemplate(s.pdf, tpl, x, y, w, h)
	return nil
}

func (s *pdfSurface) BeginRotation(angle, cx, cy float64) {
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(angle, cx, cy)
}

func (s *pdfSurface) EndRotation() { s.pdf.TransformEnd() }

func (s *pdfSurface) Err() error {
	if !s.pdf.Err() {
		return nil
	}
	err := s.pdf.Error()
	s.pdf.ClearError()
	return err
}
