package model

import "testing"

func TestNewTableDefaultsSpans(t *testing.T) {
	tbl := NewTable(2, 3)
	if tbl.RowCount() != 2 || tbl.ColCount() != 3 {
		t.Fatalf("dims = (%d,%d), want (2,3)", tbl.RowCount(), tbl.ColCount())
	}
	for _, row := range tbl.Rows {
		for _, cell := range row {
			if cell.EffectiveRowSpan() != 1 || cell.EffectiveColSpan() != 1 {
				t.Errorf("fresh cell span = (%d,%d), want (1,1)", cell.EffectiveRowSpan(), cell.EffectiveColSpan())
			}
		}
	}
}

func TestIsRectangularWithCoveredCells(t *testing.T) {
	tbl := NewTable(1, 4)
	// "Phase 2" absorbs cells 1..2 under cell 0's ColSpan=3.
	tbl.Rows[0][0].ColSpan = 3
	tbl.Rows[0][1] = TableCell{Covered: true}
	tbl.Rows[0][2] = TableCell{Covered: true}
	tbl.Rows[0][3].ColSpan = 1

	if !tbl.IsRectangular() {
		t.Errorf("IsRectangular() = false, want true: spans should reconcile to row length")
	}
}

func TestIsRectangularDetectsMismatchedRowLengths(t *testing.T) {
	tbl := &Table{Rows: [][]TableCell{
		{{ColSpan: 1}, {ColSpan: 1}},
		{{ColSpan: 1}},
	}}
	if tbl.IsRectangular() {
		t.Errorf("IsRectangular() = true, want false for mismatched row lengths")
	}
}

func TestNonEmptyRatioSkipsCoveredCells(t *testing.T) {
	tbl := NewTable(1, 2)
	tbl.Rows[0][0].Text = "hello"
	tbl.Rows[0][1] = TableCell{Covered: true, Text: ""}

	if got := tbl.NonEmptyRatio(); got != 1.0 {
		t.Errorf("NonEmptyRatio() = %v, want 1.0 (covered cell excluded)", got)
	}
}

func TestComputeBoundingBoxEnclosesAllCells(t *testing.T) {
	tbl := NewTable(2, 2)
	tbl.Rows[0][0].Bounds = NewBBox(0, 50, 10, 10)
	tbl.Rows[0][1].Bounds = NewBBox(10, 50, 10, 10)
	tbl.Rows[1][0].Bounds = NewBBox(0, 40, 10, 10)
	tbl.Rows[1][1].Bounds = NewBBox(10, 40, 10, 10)

	box := tbl.ComputeBoundingBox()
	want := NewBBox(0, 40, 20, 20)
	if box != want {
		t.Errorf("ComputeBoundingBox() = %+v, want %+v", box, want)
	}
}
