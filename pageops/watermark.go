package pageops

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// TextWatermark defines a text stamp drawn across every page, such as
// "PROOF" on badges sent out for approval.
type TextWatermark struct {
	Text     string   // watermark text
	FontSize float64  // font size in points (default: 60)
	Color    RGBColor // text color (default: light gray)
	Opacity  float64  // 0.0 to 1.0 (default: 0.3)
	Angle    float64  // rotation angle in degrees (default: 45)
}

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// AddTextWatermark stamps every page of doc and writes the result to w.
func AddTextWatermark(w io.Writer, doc []byte, wm TextWatermark) error {
	pdf, err := buildWatermarkedPDF(doc, wm)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// AddTextWatermarkToFile stamps every page of the input file and saves the
// result to outputPath.
func AddTextWatermarkToFile(inputPath, outputPath string, wm TextWatermark) error {
	docs, err := readFiles([]string{inputPath})
	if err != nil {
		return err
	}
	pdf, err := buildWatermarkedPDF(docs[0], wm)
	if err != nil {
		return err
	}
	return writePDFToFile(pdf, outputPath)
}

func buildWatermarkedPDF(doc []byte, wm TextWatermark) (*fpdf.Fpdf, error) {
	if wm.Text == "" {
		return nil, fmt.Errorf("pageops: watermark text is empty")
	}
	if wm.FontSize == 0 {
		wm.FontSize = 60
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.3
	}
	if wm.Angle == 0 {
		wm.Angle = 45
	}
	if wm.Color == (RGBColor{}) {
		wm.Color = RGBColor{200, 200, 200}
	}

	pdf := newJob()
	imp := gofpdi.NewImporter()
	pages, err := importDocument(pdf, imp, doc)
	if err != nil {
		return nil, fmt.Errorf("pageops: watermark: %w", err)
	}
	for _, p := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: p.w, Ht: p.h})
		imp.UseImportedTemplate(pdf, p.tpl, 0, 0, p.w, p.h)
		drawTextWatermark(pdf, wm, p.w, p.h)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pageops: watermark: %w", pdf.Error())
	}
	return pdf, nil
}

// drawTextWatermark renders the watermark text centered on the current page.
func drawTextWatermark(pdf *fpdf.Fpdf, wm TextWatermark, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "B", wm.FontSize)
	pdf.SetTextColor(wm.Color.R, wm.Color.G, wm.Color.B)
	pdf.SetAlpha(wm.Opacity, "Normal")

	textW := pdf.GetStringWidth(wm.Text)
	cx, cy := pageW/2, pageH/2

	pdf.TransformBegin()
	pdf.TransformRotate(wm.Angle, cx, cy)
	pdf.Text(cx-textW/2, cy+wm.FontSize/3, wm.Text)
	pdf.TransformEnd()

	pdf.SetAlpha(1.0, "Normal")
}
