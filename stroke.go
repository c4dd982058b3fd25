package badgekit

import "math"

// Dash and dot tiling used by lines and square borders, in points.
const (
	dashLength = 10.0
	dashGap    = 5.0
	dotPitch   = 8.0
)

// strokeSegment draws the segment from (x1, y1) to (x2, y2) in the given
// style. Dash and dot phases start at (x1, y1).
func strokeSegment(s Surface, style StrokeStyle, width float64, c Color, x1, y1, x2, y2 float64) {
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 || width <= 0 || c.Transparent {
		return
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	at := func(d float64) (float64, float64) { return x1 + ux*d, y1 + uy*d }

	switch style {
	case StrokeDashed:
		s.SetDrawColor(c)
		s.SetLineWidth(width)
		for pos := 0.0; pos < length; pos += dashLength + dashGap {
			ax, ay := at(pos)
			bx, by := at(math.Min(pos+dashLength, length))
			s.Line(ax, ay, bx, by)
		}
	case StrokeDotted:
		s.SetFillColor(c)
		r := width / 2
		for pos := 0.0; pos <= length; pos += dotPitch {
			cx, cy := at(pos)
			s.Circle(cx, cy, r, "F")
		}
	default:
		s.SetDrawColor(c)
		s.SetLineWidth(width)
		s.Line(x1, y1, x2, y2)
	}
}

// strokeRect strokes the four edges of a box separately. Each edge restarts
// its dash phase at its own starting corner: top and bottom run left to
// right, left and right run top to bottom.
func strokeRect(s Surface, style StrokeStyle, width float64, c Color, x, y, w, h float64) {
	strokeSegment(s, style, width, c, x, y, x+w, y)
	strokeSegment(s, style, width, c, x, y+h, x+w, y+h)
	strokeSegment(s, style, width, c, x, y, x, y+h)
	strokeSegment(s, style, width, c, x+w, y, x+w, y+h)
}
