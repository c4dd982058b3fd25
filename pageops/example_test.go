package pageops_test

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/lvillar/badgekit/pageops"
)

// ExampleImpose lays three badges out two to a letter sheet with crop marks.
func ExampleImpose() {
	var badges [][]byte
	for _, name := range []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"} {
		pdf := fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           fpdf.SizeType{Wd: 288, Ht: 432},
		})
		pdf.SetFont("Helvetica", "B", 24)
		pdf.AddPage()
		pdf.Text(36, 60, name)
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			fmt.Println(err)
			return
		}
		badges = append(badges, buf.Bytes())
	}

	layout := pageops.Layout{Sheet: pageops.Letter, CropMarks: true}
	cols, rows := layout.Grid(288, 432)
	fmt.Printf("%d x %d per sheet\n", cols, rows)

	var job bytes.Buffer
	if err := pageops.Impose(&job, layout, badges...); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(bytes.HasPrefix(job.Bytes(), []byte("%PDF-")))
	// Output:
	// 2 x 1 per sheet
	// true
}
