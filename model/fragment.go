package model

// TextFragment is a single positioned text emission from one Tj, or
// one string element of a TJ array (spec §3). Origin is the point
// (0,0) of the effective text matrix (Tm ∘ CTM) at the moment the
// string was shown.
type TextFragment struct {
	Text             string
	Origin           Point
	AdvanceWidth     float64 // > 0
	FontSize         float64 // > 0, device-space (scaled by CTM)
	FontResourceName string
}

// LineSegment is a stroked segment recovered from a path-painting
// operator, in page user-space coordinates, before orientation
// filtering and coalescing.
type LineSegment struct {
	Start, End  Point
	StrokeWidth float64
}

// Orientation classifies a LineSegment by the ε_line tolerance from
// spec §3. Segments that are neither are discarded at emission time.
type Orientation int

const (
	OrientationNone Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

// EpsilonLine is the tolerance, in user-space units, used to classify
// a segment as horizontal or vertical and to coalesce collinear
// segments (spec §3, §4.2, §4.3).
const EpsilonLine = 2.0

// MinLineLength discards stroked segments shorter than this, in
// user-space units (spec §4.2).
const MinLineLength = 10.0

// Classify returns the segment's orientation under EpsilonLine.
func (l LineSegment) Classify() Orientation {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	if dy < 0 {
		dy = -dy
	}
	if dx < 0 {
		dx = -dx
	}
	switch {
	case dy < EpsilonLine:
		return OrientationHorizontal
	case dx < EpsilonLine:
		return OrientationVertical
	default:
		return OrientationNone
	}
}

// Length returns the Euclidean length of the segment.
func (l LineSegment) Length() float64 {
	return l.Start.Distance(l.End)
}

// TextElement is the result of merging one or more adjacent
// TextFragments on the same baseline (spec §3, §4.3). Width runs from
// the first fragment's origin to the end of the last fragment's
// advance, so it includes any gaps between them; Height equals FontSize.
type TextElement struct {
	Text             string
	Origin           Point
	Width            float64
	FontSize         float64
	FontResourceName string
}

// BBox returns the element's bounding box. Height equals FontSize per
// spec §3.
func (e TextElement) BBox() BBox {
	return NewBBox(e.Origin.X, e.Origin.Y, e.Width, e.FontSize)
}

// RuledLine is a horizontal or vertical ruling recovered by coalescing
// collinear LineSegments (spec §3, §4.3): an axis coordinate, the
// [Lo, Hi] span along the orthogonal axis, and a stroke width.
type RuledLine struct {
	Orientation Orientation
	Axis        float64 // y for horizontal, x for vertical
	Lo, Hi      float64 // span along the orthogonal axis
	StrokeWidth float64
}

// Length returns Hi - Lo.
func (r RuledLine) Length() float64 {
	return r.Hi - r.Lo
}
