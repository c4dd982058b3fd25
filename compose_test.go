package badgekit

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
)

var ada = fields.NewRecord(map[string]string{"firstName": "Ada", "lastName": "Lovelace"})

func nameText(y float64) TextElement {
	return TextElement{
		Frame:     Frame{ID: "name", X: 0.5, Y: y, Width: 3, Height: 0.5},
		TextStyle: TextStyle{Content: "{{firstName}} {{lastName}}", FontSize: 18},
	}
}

func badge(elems ...Element) *Template {
	return &Template{Name: "test", Page: BadgePage(), Elements: elems}
}

func draw(t *testing.T, tpl *Template, rec fields.Record) (*recorder, []*ElementError) {
	t.Helper()
	r := &recorder{}
	problems, err := New().Draw(r, tpl, rec)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.rotation != 0 {
		t.Fatalf("unbalanced rotation: %d", r.rotation)
	}
	return r, problems
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

var cmpApprox = cmp.Comparer(func(a, b geometry.Points) bool { return approx(float64(a), float64(b)) })

func pointsBox(x, y, w, h geometry.Points) geometry.Box[geometry.Points] {
	return geometry.Box[geometry.Points]{X: x, Y: y, Width: w, Height: h}
}

func TestDrawUpperHalfText(t *testing.T) {
	r, problems := draw(t, badge(nameText(0.5)), ada)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(r.kinds("rotate")) != 0 {
		t.Errorf("upper half element must not be rotated")
	}
	want := []op{{Kind: "text", X: 36, Y: 54, Text: "Ada Lovelace"}}
	if diff := cmp.Diff(want, r.kinds("text")); diff != "" {
		t.Errorf("text ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawLowerHalfTextMirrored(t *testing.T) {
	r, _ := draw(t, badge(nameText(4.0)), ada)

	// (6 - 4 - 0.5) in from the top of the page.
	const top = 108.0
	want := []op{
		{Kind: "rotate", X: 144, Y: top + 18, W: 180},
		{Kind: "text", X: 36, Y: top + 18, Text: "Ada Lovelace"},
		{Kind: "unrotate"},
	}
	if diff := cmp.Diff(want, r.ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawWithoutFoldOver(t *testing.T) {
	tpl := badge(nameText(4.0))
	tpl.Page.FoldOverEnabled = false
	r, _ := draw(t, tpl, ada)
	if len(r.kinds("rotate")) != 0 {
		t.Errorf("flat page must not rotate elements")
	}
	if got := r.kinds("text")[0].Y; !approx(got, 4*72+18) {
		t.Errorf("baseline = %v, want %v", got, 4*72+18)
	}
}

func TestDrawTextAlignment(t *testing.T) {
	tests := []struct {
		align Align
		x     float64
	}{
		{AlignLeft, 36},
		// "Ada Lovelace" is 12 runes of 9pt each.
		{AlignCenter, 36 + 108 - 54},
		{AlignRight, 36 + 216 - 108},
	}
	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			e := nameText(0.5)
			e.Align = tt.align
			r, _ := draw(t, badge(e), ada)
			if got := r.kinds("text")[0].X; !approx(got, tt.x) {
				t.Errorf("x = %v, want %v", got, tt.x)
			}
		})
	}
}

func TestDrawUnresolvedPlaceholderVerbatim(t *testing.T) {
	e := nameText(0.5)
	e.Content = "{{firstName}} - {{badgeTitle}}"
	r, _ := draw(t, badge(e), ada)
	if diff := cmp.Diff([]string{"Ada - {{badgeTitle}}"}, r.texts()); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawTextExplicitNewlines(t *testing.T) {
	e := nameText(0.5)
	e.Content = "{{firstName}}\n{{lastName}}"
	r, _ := draw(t, badge(e), ada)
	texts := r.kinds("text")
	if len(texts) != 2 {
		t.Fatalf("got %d lines, want 2", len(texts))
	}
	if !approx(texts[1].Y-texts[0].Y, 20) {
		t.Errorf("line advance = %v, want 20", texts[1].Y-texts[0].Y)
	}
}

func TestDrawTextAreaWrapsWithinWidth(t *testing.T) {
	e := TextAreaElement{
		Frame: Frame{X: 0.25, Y: 1, Width: 2, Height: 1},
		TextStyle: TextStyle{
			Content:  "The Analytical Engine weaves algebraical patterns just as the Jacquard loom weaves flowers and leaves Supercalifragilisticexpialidocious",
			FontSize: 10,
		},
		BorderWidth: 1,
	}
	r, _ := draw(t, badge(e), fields.Record{})

	inner := 2*72 - 2*textAreaPadding
	texts := r.kinds("text")
	if len(texts) < 3 {
		t.Fatalf("expected the paragraph to wrap, got %d lines", len(texts))
	}
	rec := &recorder{size: 10}
	for i, o := range texts {
		if w := rec.StringWidth(o.Text); w > inner {
			t.Errorf("line %d %q is %vpt wide, limit %vpt", i, o.Text, w, inner)
		}
		wantY := 72 + textAreaPadding + 10 + float64(i)*12
		if !approx(o.Y, wantY) {
			t.Errorf("line %d baseline = %v, want %v", i, o.Y, wantY)
		}
	}
	if got := len(r.kinds("line")); got != 4 {
		t.Errorf("border edges = %d, want 4", got)
	}
}

func TestDrawCheckbox(t *testing.T) {
	e := CheckboxElement{
		Frame:   Frame{X: 1, Y: 1, Width: 2, Height: 0.3},
		Label:   "{{firstName}} attends dinner",
		Checked: true,
	}
	r, _ := draw(t, badge(e), ada)

	rects := r.kinds("rect")
	if len(rects) != 1 || rects[0].W != checkboxSize || rects[0].H != checkboxSize {
		t.Fatalf("checkbox rect = %+v", rects)
	}
	if got := len(r.kinds("line")); got != 2 {
		t.Errorf("checkmark segments = %d, want 2", got)
	}
	texts := r.kinds("text")
	if len(texts) != 1 || texts[0].Text != "Ada attends dinner" || texts[0].X != 72+28 {
		t.Errorf("label = %+v", texts)
	}

	e.Checked = false
	r, _ = draw(t, badge(e), ada)
	if got := len(r.kinds("line")); got != 0 {
		t.Errorf("unchecked box drew %d segments", got)
	}
}

func TestDrawLineStyles(t *testing.T) {
	line := func(style StrokeStyle) LineElement {
		return LineElement{Frame: Frame{X: 0.5, Y: 1, Width: 3, Height: 0.25}, Thickness: 2, Style: style}
	}

	r, _ := draw(t, badge(line(StrokeSolid)), fields.Record{})
	if diff := cmp.Diff([]op{{Kind: "line", X: 36, Y: 81, W: 216}}, r.kinds("line")); diff != "" {
		t.Errorf("solid mismatch (-want +got):\n%s", diff)
	}

	r, _ = draw(t, badge(line(StrokeDashed)), fields.Record{})
	dashes := r.kinds("line")
	if len(dashes) != 15 {
		t.Fatalf("dashes = %d, want 15", len(dashes))
	}
	if dashes[0].W != dashLength || dashes[1].X != 36+dashLength+dashGap {
		t.Errorf("dash tiling = %+v, %+v", dashes[0], dashes[1])
	}
	if last := dashes[14]; !approx(last.X+last.W, 252) {
		t.Errorf("last dash ends at %v, want 252", last.X+last.W)
	}

	r, _ = draw(t, badge(line(StrokeDotted)), fields.Record{})
	dots := r.kinds("circle")
	if len(dots) != 28 {
		t.Fatalf("dots = %d, want 28", len(dots))
	}
	if dots[0].W != 1 || dots[0].Style != "F" {
		t.Errorf("dot = %+v, want radius 1 filled", dots[0])
	}
}

func TestDrawSquare(t *testing.T) {
	e := SquareElement{
		Frame:       Frame{X: 0, Y: 0, Width: 1, Height: 1},
		BorderWidth: 1,
		BorderColor: "navy",
		FillColor:   "transparent",
	}
	r, _ := draw(t, badge(e), fields.Record{})
	if got := len(r.kinds("rect")); got != 0 {
		t.Errorf("transparent square filled %d times", got)
	}
	if got := len(r.kinds("line")); got != 4 {
		t.Errorf("border edges = %d, want 4", got)
	}

	e.FillColor = "#fafafa"
	e.BorderWidth = 0
	r, _ = draw(t, badge(e), fields.Record{})
	want := []op{{Kind: "rect", W: 72, H: 72, Style: "F"}}
	if diff := cmp.Diff(want, r.ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestImageErrorIsIsolated(t *testing.T) {
	tpl := badge(
		nameText(0.5),
		ImageElement{Frame: Frame{ID: "logo", X: 1, Y: 1, Width: 2, Height: 1}, ImageData: "data:image/png;base64,AAAA"},
		nameText(2),
	)
	r, problems := draw(t, tpl, ada)

	if len(problems) != 1 {
		t.Fatalf("problems = %v, want one", problems)
	}
	p := problems[0]
	if p.Index != 1 || p.ID != "logo" || p.Type != TypeImage || !errors.Is(p.Err, ErrImageDecode) {
		t.Errorf("problem = %+v", p)
	}
	want := []string{"Ada Lovelace", "Image Error", "Ada Lovelace"}
	if diff := cmp.Diff(want, r.texts()); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	rects := r.kinds("rect")
	if len(rects) != 1 || rects[0].Style != "FD" || rects[0].W != 144 {
		t.Errorf("placeholder rect = %+v", rects)
	}
}

func TestOversizedImageIsIsolated(t *testing.T) {
	tpl := badge(
		ImageElement{Frame: Frame{ID: "photo", X: 1, Y: 1, Width: 2, Height: 1}, ImageData: dataURI("image/png", pngHeaderOnly(16000, 16000))},
		nameText(2),
	)
	r, problems := draw(t, tpl, ada)
	if len(problems) != 1 || !errors.Is(problems[0].Err, ErrImageDecode) {
		t.Fatalf("problems = %v", problems)
	}
	want := []string{"Image Error", "Ada Lovelace"}
	if diff := cmp.Diff(want, r.texts()); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestImageUnsupportedType(t *testing.T) {
	tpl := badge(ImageElement{Frame: Frame{Width: 1, Height: 1}, ImageData: "data:image/svg+xml;base64,PHN2Zy8+"})
	_, problems := draw(t, tpl, fields.Record{})
	if len(problems) != 1 || !errors.Is(problems[0].Err, ErrUnsupportedImage) {
		t.Fatalf("problems = %v", problems)
	}
}

func TestDrawImage(t *testing.T) {
	tpl := badge(
		ImageElement{Frame: Frame{X: 0.5, Y: 0.5, Width: 1, Height: 1}, ImageData: pngURI(t, 4, 4)},
		ImageElement{Frame: Frame{X: 0.5, Y: 1.5, Width: 1, Height: 1}, ImageData: jpegURI(t, 4, 4), Background: true},
	)
	r, problems := draw(t, tpl, fields.Record{})
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	want := []op{
		{Kind: "image", X: 36, Y: 36, W: 72, H: 72, Text: "PNG"},
		{Kind: "image", X: 36, Y: 108, W: 72, H: 72, Text: "JPG"},
	}
	if diff := cmp.Diff(want, r.ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawPageBackground(t *testing.T) {
	tpl := badge(nameText(0.5))
	tpl.Page.BackgroundImage = pngURI(t, 2, 3)
	r, _ := draw(t, tpl, ada)
	if r.ops[0] != (op{Kind: "image", W: 288, H: 432, Text: "PNG"}) {
		t.Errorf("first op = %+v, want full-bleed background", r.ops[0])
	}

	tpl.Page.BackgroundImage = "data:image/png;base64,AAAA"
	_, problems := draw(t, tpl, ada)
	if len(problems) != 1 || problems[0].Index != PageLevel {
		t.Errorf("problems = %v, want one page-level problem", problems)
	}
}

func TestDrawBarcode(t *testing.T) {
	rec := fields.NewRecord(map[string]string{"contactId": "C-1042"})
	tpl := badge(
		BarcodeElement{Frame: Frame{X: 1, Y: 1, Width: 1, Height: 1}, Content: "{{contactId}}"},
		BarcodeElement{Frame: Frame{X: 1, Y: 2, Width: 2, Height: 0.5}, Content: "{{contactId}}", Symbology: SymbologyCode128},
		BarcodeElement{Frame: Frame{X: 1, Y: 2.5, Width: 2, Height: 0.5}, Content: ""},
	)
	r, problems := draw(t, tpl, rec)
	if got := len(r.kinds("image")); got != 2 {
		t.Errorf("barcode images = %d, want 2", got)
	}
	if len(problems) != 1 || problems[0].Index != 2 || !errors.Is(problems[0].Err, ErrBarcode) {
		t.Fatalf("problems = %v", problems)
	}
	if !slices.Contains(r.texts(), "Barcode Error") {
		t.Errorf("missing barcode placeholder, texts = %q", r.texts())
	}
}

func TestElementPanicIsIsolated(t *testing.T) {
	tpl := badge(
		LineElement{Frame: Frame{X: 0.5, Y: 4, Width: 1, Height: 0.1}, Style: StrokeDotted},
		nameText(0.5),
	)
	r := &recorder{panicOn: "circle"}
	problems, err := New().Draw(r, tpl, ada)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(problems) != 1 || !errors.Is(problems[0].Err, ErrElementPanic) {
		t.Fatalf("problems = %v", problems)
	}
	if r.rotation != 0 {
		t.Errorf("rotation left open after panic")
	}
	if diff := cmp.Diff([]string{"Ada Lovelace"}, r.texts()); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawRejectsInvalidTemplate(t *testing.T) {
	r := &recorder{}
	_, err := New().Draw(r, &Template{Page: BadgePage()}, ada)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(r.ops) != 0 {
		t.Errorf("invalid template drew %d ops", len(r.ops))
	}
}

func TestDrawOutOfBoundsStillRenders(t *testing.T) {
	e := nameText(0.5)
	e.Width = 10
	r, problems := draw(t, badge(e), ada)
	if len(problems) != 0 || len(r.texts()) != 1 {
		t.Errorf("overflowing element should render, problems = %v", problems)
	}
}

func TestDrawPixelTemplate(t *testing.T) {
	e := nameText(0)
	e.Frame = Frame{X: 72, Y: 72, Width: 432, Height: 72}
	tpl := badge(e)
	tpl.Page.DesignUnit = "px"
	r, _ := draw(t, tpl, ada)
	// 144 px per inch on the default canvas.
	if got := r.kinds("text")[0]; !approx(got.X, 36) || !approx(got.Y, 54) {
		t.Errorf("text at (%v, %v), want (36, 54)", got.X, got.Y)
	}
}

func TestPreview(t *testing.T) {
	tpl := badge(
		nameText(0.5),
		nameText(4),
		CheckboxElement{Frame: Frame{ID: "vip", X: 1, Y: 1, Width: 1, Height: 0.3}, Label: "{{tier}}", Checked: true},
		ImageElement{Frame: Frame{ID: "logo", Width: 1, Height: 1}, ImageFileName: "logo.png"},
		BarcodeElement{Frame: Frame{ID: "qr", X: 3.5, Y: 5.5, Width: 1, Height: 1}, Content: "{{lastName}}"},
	)
	p, err := New().Preview(tpl, ada)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	checked := true
	want := []PreviewElement{
		{Index: 0, ID: "name", Type: TypeText, ResolvedContent: "Ada Lovelace", Box: pointsBox(36, 36, 216, 36)},
		{Index: 1, ID: "name", Type: TypeText, ResolvedContent: "Ada Lovelace", Box: pointsBox(36, 108, 216, 36), Mirrored: true},
		{Index: 2, ID: "vip", Type: TypeCheckbox, Label: "{{tier}}", Unresolved: []string{"tier"}, Checked: &checked, Box: pointsBox(72, 72, 72, 21.6)},
		{Index: 3, ID: "logo", Type: TypeImage, ImageFileName: "logo.png", Box: pointsBox(0, 0, 72, 72)},
		{Index: 4, ID: "qr", Type: TypeBarcode, ResolvedContent: "Lovelace", Symbology: SymbologyQR, Box: pointsBox(252, -36, 72, 72), Mirrored: true, OutOfBounds: true},
	}
	if diff := cmp.Diff(want, p.Elements, cmpApprox); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}
	if p.WidthPt != 288 || p.HeightPt != 432 {
		t.Errorf("page = %vx%v, want 288x432", p.WidthPt, p.HeightPt)
	}
}
