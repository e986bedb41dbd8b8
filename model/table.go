package model

import "strings"

// TableCell is one cell of a reconstructed table (spec §3). Text may
// be empty. RowSpan/ColSpan are >= 1; NewTable initializes both to 1,
// and EffectiveRowSpan/EffectiveColSpan read a zero value left by a
// bare struct literal as 1.
//
// When a cell is absorbed into a neighboring cell's span (Phase 5 of
// the reconstructor), it is marked Covered instead of being removed
// from the row — this keeps every row the same backing length (the
// design note in spec §9 forbids ragged rows) while letting consumers
// skip over positions a span already accounts for.
type TableCell struct {
	Text    string
	Bounds  BBox
	RowSpan int
	ColSpan int
	Covered bool
}

// EffectiveRowSpan returns RowSpan, treating an unset (zero) value as 1.
func (c TableCell) EffectiveRowSpan() int {
	if c.RowSpan <= 0 {
		return 1
	}
	return c.RowSpan
}

// EffectiveColSpan returns ColSpan, treating an unset (zero) value as 1.
func (c TableCell) EffectiveColSpan() int {
	if c.ColSpan <= 0 {
		return 1
	}
	return c.ColSpan
}

// Table is a reconstructed grid of cells for one table region on one
// page (spec §3).
type Table struct {
	PageNumber int
	Rows       [][]TableCell
	Confidence float64
	BoundingBox BBox
}

// NewTable allocates a rows×cols grid with every cell defaulted to
// RowSpan=ColSpan=1, Covered=false.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([][]TableCell, rows)}
	for i := range t.Rows {
		row := make([]TableCell, cols)
		for j := range row {
			row[j] = TableCell{RowSpan: 1, ColSpan: 1}
		}
		t.Rows[i] = row
	}
	return t
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the column count of the first row (rows are kept
// rectangular by construction — see the Covered field doc).
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// IsRectangular reports whether every row has the same length and, for
// every row, the sum of non-covered cells' effective ColSpan equals
// the row's length — i.e. spans reconcile to a uniform grid width.
func (t *Table) IsRectangular() bool {
	if len(t.Rows) == 0 {
		return false
	}
	width := len(t.Rows[0])
	for _, row := range t.Rows {
		if len(row) != width {
			return false
		}
		sum := 0
		for _, cell := range row {
			if cell.Covered {
				continue
			}
			sum += cell.EffectiveColSpan()
		}
		if sum != width {
			return false
		}
	}
	return true
}

// NonEmptyRatio returns the fraction of non-covered cells whose
// trimmed text is non-empty (spec §3, §4.4 Phase 6, §8 invariant 3).
func (t *Table) NonEmptyRatio() float64 {
	total, nonEmpty := 0, 0
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell.Covered {
				continue
			}
			total++
			if strings.TrimSpace(cell.Text) != "" {
				nonEmpty++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nonEmpty) / float64(total)
}

// ComputeBoundingBox returns the union of every cell's bounds, covered
// cells included (cells with zero-size bounds add nothing), satisfying the invariant that BoundingBox encloses every
// cell (spec §8 invariant 5).
func (t *Table) ComputeBoundingBox() BBox {
	var box BBox
	for _, row := range t.Rows {
		for _, cell := range row {
			box = box.Union(cell.Bounds)
		}
	}
	return box
}
