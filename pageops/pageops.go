// Package pageops assembles rendered badges into print jobs: merging
// single-badge PDFs into one document, laying several badges out per sheet
// and stamping proof copies.
//
// Input documents are imported page by page as templates through the gofpdi
// contrib package, so their content is copied without being re-rendered.
package pageops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// ErrNotPDF is returned for input that does not start with a PDF header.
var ErrNotPDF = errors.New("pageops: input is not a PDF document")

// importedPage is one source page registered as a template in the output.
type importedPage struct {
	tpl  int
	w, h float64
}

// newJob returns an empty output document measured in points.
func newJob() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	return pdf
}

// importDocument registers every page of data with pdf. One importer must
// serve the whole output document so template names do not collide.
func importDocument(pdf *fpdf.Fpdf, imp *gofpdi.Importer, data []byte) (pages []importedPage, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	// gofpdi panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pageops: importing page: %v", r)
		}
	}()

	rs := io.ReadSeeker(bytes.NewReader(data))
	first := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	if pdf.Err() {
		return nil, pdf.Error()
	}
	sizes := imp.GetPageSizes()
	count := max(len(sizes), 1)

	for n := 1; n <= count; n++ {
		tpl := first
		if n > 1 {
			tpl = imp.ImportPageFromStream(pdf, &rs, n, "/MediaBox")
		}
		w, h := pageSize(sizes, n)
		pages = append(pages, importedPage{tpl: tpl, w: w, h: h})
	}
	return pages, pdf.Error()
}

// pageSize reads a page's media box, defaulting to a 4x6 inch badge.
func pageSize(sizes map[int]map[string]map[string]float64, n int) (w, h float64) {
	if dims, ok := sizes[n]; ok {
		if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
			return mb["w"], mb["h"]
		}
	}
	return 288, 432
}

// readFiles loads every input path.
func readFiles(paths []string) ([][]byte, error) {
	docs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("pageops: reading %s: %w", p, err)
		}
		docs = append(docs, data)
	}
	return docs, nil
}

// writePDFToFile writes the PDF to a file.
func writePDFToFile(pdf *fpdf.Fpdf, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", filename, err)
	}
	defer f.Close()
	return pdf.Output(f)
}
