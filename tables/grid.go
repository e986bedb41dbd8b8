package tables

import (
	"math"
	"strings"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// buildTable implements Phases 5 and 6 over a closed, qualifying run
// of rows: grid formation with span detection, then scoring and
// validation. Returns ok=false if the candidate fails any Phase 6
// drop condition.
func buildTable(run []row, columns []float64, lines []model.RuledLine, cfg Config) (model.Table, bool) {
	cols := len(columns)
	if cols < cfg.MinCols {
		return model.Table{}, false
	}

	t := *model.NewTable(len(run), cols)
	for ri, r := range run {
		projectRow(r, columns, t.Rows[ri])
	}

	if cfg.CellMerging {
		for ri := range t.Rows {
			absorbHorizontal(t.Rows[ri])
		}
		absorbVertical(t.Rows, columns, cfg.RowTolerance)
	}

	return validateTable(t, lines, cfg)
}

// projectRow implements Phase 5's nearest-center assignment: each
// element lands in the column slot whose anchor is closest to the
// element's horizontal center (Origin.X + Width/2).
func projectRow(r row, columns []float64, cells []model.TableCell) {
	for _, e := range r.elements {
		center := e.Origin.X + e.Width/2
		idx := nearestColumnIndex(center, columns)
		cells[idx] = model.TableCell{
			Text:    e.Text,
			Bounds:  e.BBox(),
			RowSpan: 1,
			ColSpan: 1,
		}
	}
}

func nearestColumnIndex(x float64, columns []float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range columns {
		d := x - c
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// absorbHorizontal implements Phase 5's horizontal span: left to
// right, a non-empty cell followed by one or more empty cells absorbs
// them, growing its ColSpan and bounds; absorbed cells are marked
// Covered rather than spliced out, keeping every row the same length
// (spec's ragged-row resolution).
func absorbHorizontal(cells []model.TableCell) {
	for i := 0; i < len(cells); i++ {
		if cells[i].Covered || strings.TrimSpace(cells[i].Text) == "" {
			continue
		}
		j := i + 1
		for j < len(cells) && !cells[j].Covered && strings.TrimSpace(cells[j].Text) == "" {
			cells[i].Bounds = cells[i].Bounds.Union(cells[j].Bounds)
			cells[j].Covered = true
			j++
		}
		cells[i].ColSpan = j - i
		i = j - 1
	}
}

// absorbVertical implements Phase 5's vertical span: within a column
// position, a non-empty cell followed by one or more whitespace-only
// cells at an aligned x absorbs them into its RowSpan.
func absorbVertical(rows [][]model.TableCell, columns []float64, xTolerance float64) {
	for col := range columns {
		if col >= len(rows[0]) {
			continue
		}
		ri := 0
		for ri < len(rows) {
			owner := &rows[ri][col]
			if owner.Covered || strings.TrimSpace(owner.Text) == "" {
				ri++
				continue
			}
			span := 1
			rj := ri + 1
			for rj < len(rows) {
				cand := &rows[rj][col]
				// An un-projected cell (no element landed here) is not
				// the same as a cell holding whitespace text: only the
				// latter participates in a vertical merge.
				if cand.Covered || cand.Bounds.Width == 0 || strings.TrimSpace(cand.Text) != "" {
					break
				}
				if !alignedX(owner.Bounds, cand.Bounds, xTolerance) {
					break
				}
				cand.Covered = true
				span++
				rj++
			}
			owner.RowSpan = span
			ri = rj
		}
	}
}

func alignedX(a, b model.BBox, tolerance float64) bool {
	d := a.X - b.X
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
