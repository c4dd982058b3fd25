package pageops

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// Merge combines PDF documents and writes the result to w. Pages keep
// their own size and appear in order: all pages of the first document,
// then all of the second, and so on.
func Merge(w io.Writer, docs ...[]byte) error {
	pdf, err := buildMerged(docs)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// MergeFiles combines PDF files into a single output file.
func MergeFiles(outputPath string, inputPaths ...string) error {
	docs, err := readFiles(inputPaths)
	if err != nil {
		return err
	}
	pdf, err := buildMerged(docs)
	if err != nil {
		return err
	}
	return writePDFToFile(pdf, outputPath)
}

func buildMerged(docs [][]byte) (*fpdf.Fpdf, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("pageops: no input documents provided")
	}

	pdf := newJob()
	imp := gofpdi.NewImporter()
	for i, data := range docs {
		pages, err := importDocument(pdf, imp, data)
		if err != nil {
			return nil, fmt.Errorf("pageops: merging document %d: %w", i+1, err)
		}
		for _, p := range pages {
			pdf.AddPageFormat("P", fpdf.SizeType{Wd: p.w, Ht: p.h})
			imp.UseImportedTemplate(pdf, p.tpl, 0, 0, p.w, p.h)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pageops: merge: %w", pdf.Error())
	}
	return pdf, nil
}
