package geo

import "fmt"

// Rect is an axis-aligned rectangle in PDF page space (origin bottom-left,
// units are points). Word bounding boxes and highlight regions use it.
type Rect struct {
	Llx, Lly, Urx, Ury float64
}

// NewRect returns the rectangle spanning the two corners, normalizing the
// coordinate order so that Llx <= Urx and Lly <= Ury.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Llx: x0, Lly: y0, Urx: x1, Ury: y1}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Urx - r.Llx }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Ury - r.Lly }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Urx <= r.Llx || r.Ury <= r.Lly }

// Contains returns true if the point (x, y) lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Llx && x <= r.Urx && y >= r.Lly && y <= r.Ury
}

// Union returns the smallest rectangle covering both r and o. An empty
// rectangle acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	u := r
	if o.Llx < u.Llx {
		u.Llx = o.Llx
	}
	if o.Lly < u.Lly {
		u.Lly = o.Lly
	}
	if o.Urx > u.Urx {
		u.Urx = o.Urx
	}
	if o.Ury > u.Ury {
		u.Ury = o.Ury
	}
	return u
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Llx < o.Urx && o.Llx < r.Urx && r.Lly < o.Ury && o.Lly < r.Ury
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", r.Llx, r.Lly, r.Urx, r.Ury)
}

// Size holds the dimensions of a page or raster in points.
type Size struct {
	W, H float64
}
