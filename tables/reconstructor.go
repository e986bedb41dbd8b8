package tables

import (
	"math"
	"sort"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// row is one Phase-1 bucket: all elements sharing a rounded baseline,
// sorted left to right.
type row struct {
	y        float64
	elements []model.TextElement
}

// Reconstruct runs the six-phase algorithm over a page's merged
// elements and lines, returning the tables that survive Phase 6
// validation, ordered top-to-bottom by the position of their first row.
func Reconstruct(elements []model.TextElement, lines []model.RuledLine, cfg Config) []model.Table {
	cfg = cfg.normalized()
	if len(elements) == 0 {
		return nil
	}

	rows := bucketRows(elements, cfg.RowTolerance)
	columns := candidateColumns(elements, cfg.ColTolerance)

	type scoredRow struct {
		row        row
		confidence float64
		qualifies  bool
	}
	scored := make([]scoredRow, len(rows))
	for i, r := range rows {
		conf := scoreRow(r, columns)
		scored[i] = scoredRow{
			row:        r,
			confidence: conf,
			qualifies:  conf > 0.7 && len(r.elements) >= 2,
		}
	}

	var tables []model.Table
	var run []row
	flush := func() {
		if len(run) >= cfg.MinRows {
			allWideEnough := true
			for _, r := range run {
				if len(r.elements) < cfg.MinCols {
					allWideEnough = false
					break
				}
			}
			if allWideEnough {
				if t, ok := buildTable(run, columns, lines, cfg); ok {
					tables = append(tables, t)
				}
			}
		}
		run = nil
	}

	for i, sr := range scored {
		if !sr.qualifies {
			flush()
			continue
		}
		if len(run) == 0 {
			run = append(run, sr.row)
			continue
		}
		gap := run[len(run)-1].y - sr.row.y
		if gap < 0 {
			gap = -gap
		}
		if gap < maxRowGap {
			run = append(run, sr.row)
		} else {
			flush()
			run = append(run, sr.row)
		}
		_ = i
	}
	flush()

	return tables
}

// bucketRows implements Phase 1: round each element's y to the
// nearest multiple of tolerance, group, sort groups descending y, and
// sort each group's elements ascending x.
func bucketRows(elements []model.TextElement, tolerance float64) []row {
	buckets := make(map[float64][]model.TextElement)
	for _, e := range elements {
		y := math.Round(e.Origin.Y/tolerance) * tolerance
		buckets[y] = append(buckets[y], e)
	}

	rows := make([]row, 0, len(buckets))
	for y, els := range buckets {
		sort.SliceStable(els, func(i, j int) bool { return els[i].Origin.X < els[j].Origin.X })
		rows = append(rows, row{y: y, elements: els})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	return rows
}

// candidateColumns implements Phase 2: for every element, emit a
// left-edge and a right-edge anchor rounded to tolerance, count
// occurrences across the whole page, and keep anchors seen at least
// minColFrequency times. Left edges recur across a real column's
// rows; right edges rarely do, since cell text width varies — the
// frequency filter naturally favors left edges without special-casing
// them.
func candidateColumns(elements []model.TextElement, tolerance float64) []float64 {
	counts := make(map[float64]int)
	for _, e := range elements {
		left := math.Round(e.Origin.X/tolerance) * tolerance
		right := math.Round((e.Origin.X+e.Width)/tolerance) * tolerance
		counts[left]++
		counts[right]++
	}

	var cols []float64
	for anchor, n := range counts {
		if n >= minColFrequency {
			cols = append(cols, anchor)
		}
	}
	sort.Float64s(cols)
	return cols
}

// scoreRow implements Phase 3's composite confidence for one row.
func scoreRow(r row, columns []float64) float64 {
	alignment := alignmentScore(r.elements, columns)
	spacing := spacingScore(r.elements)
	density := densityScore(r.elements, columns)
	return 0.5*alignment + 0.3*spacing + 0.2*density
}

func alignmentScore(elements []model.TextElement, columns []float64) float64 {
	if len(elements) == 0 || len(columns) == 0 {
		return 0
	}
	matched := 0
	for _, e := range elements {
		if nearAnyColumn(e.Origin.X, columns) || nearAnyColumn(e.Origin.X+e.Width, columns) {
			matched++
		}
	}
	return float64(matched) / float64(len(elements))
}

func nearAnyColumn(x float64, columns []float64) bool {
	for _, c := range columns {
		d := x - c
		if d < 0 {
			d = -d
		}
		if d <= alignmentTol {
			return true
		}
	}
	return false
}

func spacingScore(elements []model.TextElement) float64 {
	if len(elements) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(elements)-1)
	for i := 1; i < len(elements); i++ {
		prev := elements[i-1]
		gaps = append(gaps, elements[i].Origin.X-(prev.Origin.X+prev.Width))
	}
	mean := 0.0
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, g := range gaps {
		d := g - mean
		variance += d * d
	}
	variance /= float64(len(gaps))
	score := 1 - variance/(mean*mean)
	if score < 0 {
		return 0
	}
	return score
}

func densityScore(elements []model.TextElement, columns []float64) float64 {
	if len(columns) == 0 {
		return 0
	}
	d := float64(len(elements)) / float64(len(columns))
	if d > 1 {
		return 1
	}
	return d
}
