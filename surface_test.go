package badgekit

import (
	"fmt"
	"unicode/utf8"
)

// op is one recorded drawing call.
type op struct {
	Kind       string
	X, Y, W, H float64
	Text       string
	Style      string
}

// recorder is a Surface that records calls instead of drawing. Text is
// measured as half the font size per rune.
type recorder struct {
	ops      []op
	size     float64
	bold     bool
	rotation int
	panicOn  string
}

func (r *recorder) add(o op) {
	if o.Kind == r.panicOn {
		panic(fmt.Sprintf("%s exploded", o.Kind))
	}
	r.ops = append(r.ops, o)
}

func (r *recorder) SetFont(family string, bold bool, size float64) {
	r.size, r.bold = size, bold
}
func (r *recorder) SetTextColor(Color)   {}
func (r *recorder) SetDrawColor(Color)   {}
func (r *recorder) SetFillColor(Color)   {}
func (r *recorder) SetLineWidth(float64) {}

func (r *recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size / 2
}

func (r *recorder) Text(x, y float64, s string) {
	r.add(op{Kind: "text", X: x, Y: y, Text: s})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.add(op{Kind: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *recorder) Rect(x, y, w, h float64, style string) {
	r.add(op{Kind: "rect", X: x, Y: y, W: w, H: h, Style: style})
}

func (r *recorder) Circle(x, y, radius float64, style string) {
	r.add(op{Kind: "circle", X: x, Y: y, W: radius, Style: style})
}

func (r *recorder) Image(p *Picture, x, y, w, h float64) error {
	r.add(op{Kind: "image", X: x, Y: y, W: w, H: h, Text: p.Format})
	return nil
}

func (r *recorder) PDFPage(data []byte, x, y, w, h float64) error {
	r.add(op{Kind: "pdf", X: x, Y: y, W: w, H: h})
	return nil
}

func (r *recorder) BeginRotation(angle, cx, cy float64) {
	r.rotation++
	r.add(op{Kind: "rotate", X: cx, Y: cy, W: angle})
}

func (r *recorder) EndRotation() {
	r.rotation--
	r.add(op{Kind: "unrotate"})
}

func (r *recorder) Err() error { return nil }

func (r *recorder) kinds(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.kinds("text") {
		out = append(out, o.Text)
	}
	return out
}
