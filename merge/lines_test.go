package merge

import (
	"testing"

	"github.com/SUGAM-ARORA/pdftable/model"
)

func seg(x1, y1, x2, y2 float64) model.LineSegment {
	return model.LineSegment{Start: model.Point{X: x1, Y: y1}, End: model.Point{X: x2, Y: y2}, StrokeWidth: 1}
}

func TestLinesCoalescesOverlappingHorizontalSegments(t *testing.T) {
	segments := []model.LineSegment{
		seg(0, 100, 50, 100),
		seg(48, 100, 100, 100), // overlaps the first by 2 units
	}
	lines := Lines(segments)
	if len(lines) != 1 {
		t.Fatalf("lines = %+v, want 1 merged line", lines)
	}
	if lines[0].Lo != 0 || lines[0].Hi != 100 {
		t.Errorf("span = [%v,%v], want [0,100]", lines[0].Lo, lines[0].Hi)
	}
	if lines[0].Orientation != model.OrientationHorizontal {
		t.Errorf("Orientation = %v, want Horizontal", lines[0].Orientation)
	}
}

func TestLinesCoalescesTouchingSegmentsWithinTolerance(t *testing.T) {
	segments := []model.LineSegment{
		seg(0, 100, 50, 100),
		seg(51, 100, 100, 100), // 1-unit gap, within EpsilonLine=2.0
	}
	lines := Lines(segments)
	if len(lines) != 1 {
		t.Fatalf("lines = %+v, want 1 merged line (touching within tolerance)", lines)
	}
}

func TestLinesKeepsDistantSegmentsSeparate(t *testing.T) {
	segments := []model.LineSegment{
		seg(0, 100, 50, 100),
		seg(80, 100, 120, 100), // 30-unit gap
	}
	lines := Lines(segments)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2 separate lines", lines)
	}
}

func TestLinesSeparatesDifferentAxisCoordinates(t *testing.T) {
	segments := []model.LineSegment{
		seg(0, 100, 50, 100),
		seg(0, 200, 50, 200), // different y axis, same x span
	}
	lines := Lines(segments)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2 (different axis rows)", lines)
	}
}

func TestLinesPartitionsHorizontalAndVertical(t *testing.T) {
	segments := []model.LineSegment{
		seg(0, 100, 100, 100),  // horizontal
		seg(50, 0, 50, 100),    // vertical
	}
	lines := Lines(segments)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2 (one horizontal, one vertical)", lines)
	}
	var gotH, gotV bool
	for _, l := range lines {
		switch l.Orientation {
		case model.OrientationHorizontal:
			gotH = true
		case model.OrientationVertical:
			gotV = true
		}
	}
	if !gotH || !gotV {
		t.Errorf("lines = %+v, want one of each orientation", lines)
	}
}

func TestLinesEmptyInput(t *testing.T) {
	if lines := Lines(nil); lines != nil {
		t.Errorf("Lines(nil) = %+v, want nil", lines)
	}
}

func TestRuledLineLength(t *testing.T) {
	rl := model.RuledLine{Lo: 10, Hi: 35}
	if rl.Length() != 25 {
		t.Errorf("Length() = %v, want 25", rl.Length())
	}
}
