package pageops

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// Sheet is a physical paper size in points.
type Sheet struct {
	Width, Height float64
}

// Common sheet sizes.
var (
	Letter = Sheet{Width: 612, Height: 792}
	A4     = Sheet{Width: 595.28, Height: 841.89}
)

// Layout describes how badges are placed on sheets. Zero Cols or Rows
// fit as many as the sheet allows.
type Layout struct {
	Sheet  Sheet
	Cols   int
	Rows   int
	Gutter float64 // space between neighbouring badges, in points
	// CropMarks draws short cut guides outside each badge corner.
	CropMarks bool
}

const cropMarkLength = 9.0

// Grid returns the columns and rows of badges of size w x h that fit the
// layout's sheet.
func (l Layout) Grid(w, h float64) (cols, rows int) {
	fit := func(avail, size float64) int {
		if size <= 0 {
			return 0
		}
		n := int((avail + l.Gutter) / (size + l.Gutter))
		return max(n, 0)
	}
	cols, rows = l.Cols, l.Rows
	if cols <= 0 {
		cols = fit(l.Sheet.Width, w)
	}
	if rows <= 0 {
		rows = fit(l.Sheet.Height, h)
	}
	return cols, rows
}

// Impose lays out the pages of docs several to a sheet, left to right and
// top to bottom, with the grid centred on each sheet. Every page is placed
// at the size of the first one.
func Impose(w io.Writer, layout Layout, docs ...[]byte) error {
	pdf, err := buildImposed(layout, docs)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildImposed(layout Layout, docs [][]byte) (*fpdf.Fpdf, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("pageops: no input documents provided")
	}
	if layout.Sheet == (Sheet{}) {
		layout.Sheet = Letter
	}

	pdf := newJob()
	imp := gofpdi.NewImporter()
	var pages []importedPage
	for i, data := range docs {
		p, err := importDocument(pdf, imp, data)
		if err != nil {
			return nil, fmt.Errorf("pageops: imposing document %d: %w", i+1, err)
		}
		pages = append(pages, p...)
	}

	bw, bh := pages[0].w, pages[0].h
	cols, rows := layout.Grid(bw, bh)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("pageops: %.0fx%.0f pt badge does not fit a %.0fx%.0f pt sheet",
			bw, bh, layout.Sheet.Width, layout.Sheet.Height)
	}
	gridW := float64(cols)*bw + float64(cols-1)*layout.Gutter
	gridH := float64(rows)*bh + float64(rows-1)*layout.Gutter
	left := (layout.Sheet.Width - gridW) / 2
	top := (layout.Sheet.Height - gridH) / 2

	perSheet := cols * rows
	for i, p := range pages {
		slot := i % perSheet
		if slot == 0 {
			pdf.AddPageFormat("P", fpdf.SizeType{Wd: layout.Sheet.Width, Ht: layout.Sheet.Height})
		}
		x := left + float64(slot%cols)*(bw+layout.Gutter)
		y := top + float64(slot/cols)*(bh+layout.Gutter)
		imp.UseImportedTemplate(pdf, p.tpl, x, y, bw, bh)
		if layout.CropMarks {
			drawCropMarks(pdf, x, y, bw, bh)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pageops: impose: %w", pdf.Error())
	}
	return pdf, nil
}

// drawCropMarks draws two short guides at each corner of the box, offset so
// they do not touch the badge.
func drawCropMarks(pdf *fpdf.Fpdf, x, y, w, h float64) {
	const gap = 3.0
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	for _, cx := range []float64{x, x + w} {
		for _, cy := range []float64{y, y + h} {
			dx, dy := -1.0, -1.0
			if cx > x {
				dx = 1
			}
			if cy > y {
				dy = 1
			}
			pdf.Line(cx+dx*gap, cy, cx+dx*(gap+cropMarkLength), cy)
			pdf.Line(cx, cy+dy*gap, cx, cy+dy*(gap+cropMarkLength))
		}
	}
}
