package model

import "math"

// Point is a location in PDF user space (origin bottom-left, y grows
// upward).
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Matrix is a 2D affine transform in PDF's column-major convention:
// [a b c d e f] maps (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m pre-multiplied by other, i.e. the matrix that
// applies m first and then other (matches the PDF "cm" semantics of
// CTM' = m × CTM).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// VerticalScale returns the magnitude of the matrix's vertical basis
// vector (0,1) → (c,d); used to carry font size into device space.
func (m Matrix) VerticalScale() float64 {
	s := math.Sqrt(m[2]*m[2] + m[3]*m[3])
	if s == 0 {
		return 1
	}
	return s
}

// BBox is an axis-aligned rectangle, (X, Y) being its bottom-left
// corner in PDF user space.
type BBox struct {
	X, Y, Width, Height float64
}

// NewBBox builds a bounding box from its bottom-left corner and size.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

// Contains reports whether the given box lies entirely within b.
func (b BBox) Contains(other BBox) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Bottom() >= b.Bottom() && other.Top() <= b.Top()
}

// Union returns the smallest box enclosing both b and other. A zero
// box unioned with a populated one yields the populated one.
func (b BBox) Union(other BBox) BBox {
	if b.Width == 0 && b.Height == 0 {
		return other
	}
	if other.Width == 0 && other.Height == 0 {
		return b
	}
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())
	return BBox{X: x, Y: y, Width: right - x, Height: top - y}
}
