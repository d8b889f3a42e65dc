package grid

// Bounds is an axis-aligned rectangle in continuous coordinates.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// NewBounds returns the rectangle [xmin, xmax] x [ymin, ymax].
func NewBounds(xmin, xmax, ymin, ymax float64) Bounds {
	return Bounds{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

// Width returns the x extent.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns the y extent.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Includes reports whether (x, y) lies inside the rectangle, edges
// inclusive.
func (b Bounds) Includes(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// Expand scales the rectangle about its center by the given factor. A
// factor slightly above 1 absorbs floating-point rounding at the edges
// during membership tests.
func (b Bounds) Expand(factor float64) Bounds {
	cx := 0.5 * (b.XMin + b.XMax)
	cy := 0.5 * (b.YMin + b.YMax)
	hw := 0.5 * b.Width() * factor
	hh := 0.5 * b.Height() * factor
	return Bounds{XMin: cx - hw, XMax: cx + hw, YMin: cy - hh, YMax: cy + hh}
}
