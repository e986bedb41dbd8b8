package tables

import (
	"math"
	"strings"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// validateTable implements Phase 6: compute the multiplicative
// confidence adjustments, then apply the drop conditions. Returns
// ok=false for a table that fails validation.
func validateTable(t model.Table, lines []model.RuledLine, cfg Config) (model.Table, bool) {
	rows, cols := t.RowCount(), t.ColCount()
	if rows < 2 || cols < 2 {
		return model.Table{}, false
	}
	if !t.IsRectangular() {
		return model.Table{}, false
	}
	if t.NonEmptyRatio() < 0.3 {
		return model.Table{}, false
	}

	confidence := 1.0
	if !equalEffectiveWidths(t) {
		confidence *= 0.8
	}

	emptyRatio := 1 - t.NonEmptyRatio()
	confidence *= 1 - emptyRatioWeight*emptyRatio

	confidence *= 0.8 + 0.2*columnAlignmentBonus(t, cfg.ColTolerance)

	t.BoundingBox = t.ComputeBoundingBox()
	confidence *= rulingBonus(t.BoundingBox, lines)

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	t.Confidence = confidence

	if confidence < cfg.ConfidenceThreshold {
		return model.Table{}, false
	}
	return t, true
}

// equalEffectiveWidths reports whether every row's sum of non-covered
// effective column spans is equal, i.e. the grid is rectangular
// through its spans.
func equalEffectiveWidths(t model.Table) bool {
	if len(t.Rows) == 0 {
		return true
	}
	want := effectiveWidth(t.Rows[0])
	for _, r := range t.Rows[1:] {
		if effectiveWidth(r) != want {
			return false
		}
	}
	return true
}

func effectiveWidth(row []model.TableCell) int {
	w := 0
	for _, c := range row {
		if c.Covered {
			continue
		}
		w += c.EffectiveColSpan()
	}
	return w
}

// columnAlignmentBonus implements Phase 6's column-alignment bonus:
// for each column, the fraction of distinct rounded-x values among its
// non-empty cells (fewer distinct values, i.e. tighter alignment,
// scores higher), averaged across columns.
func columnAlignmentBonus(t model.Table, tolerance float64) float64 {
	cols := t.ColCount()
	if cols == 0 {
		return 0
	}
	total := 0.0
	counted := 0
	for c := 0; c < cols; c++ {
		distinct := make(map[float64]bool)
		any := false
		for _, r := range t.Rows {
			if c >= len(r) {
				continue
			}
			cell := r[c]
			if cell.Covered || strings.TrimSpace(cell.Text) == "" {
				continue
			}
			any = true
			distinct[math.Round(cell.Bounds.X/tolerance)*tolerance] = true
		}
		if !any {
			continue
		}
		total += 1.0 / float64(len(distinct))
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// rulingBonus implements Phase 6's ruled-line bonus: 1.1 for a grid
// pattern of lines inside the table's bounds, 0.9 for lines present
// without a grid pattern, 1.0 (no adjustment) for no lines at all.
func rulingBonus(bounds model.BBox, lines []model.RuledLine) float64 {
	var h, v []model.RuledLine
	for _, l := range lines {
		if !lineWithinBounds(l, bounds) {
			continue
		}
		switch l.Orientation {
		case model.OrientationHorizontal:
			h = append(h, l)
		case model.OrientationVertical:
			v = append(v, l)
		}
	}
	if len(h) == 0 && len(v) == 0 {
		return 1.0
	}
	if len(h) >= 2 && len(v) >= 2 && formsGrid(h) && formsGrid(v) {
		return 1.1
	}
	return 0.9
}

func lineWithinBounds(l model.RuledLine, bounds model.BBox) bool {
	switch l.Orientation {
	case model.OrientationHorizontal:
		return l.Axis >= bounds.Bottom() && l.Axis <= bounds.Top()
	case model.OrientationVertical:
		return l.Axis >= bounds.Left() && l.Axis <= bounds.Right()
	default:
		return false
	}
}

// formsGrid reports whether same-orientation lines have nearly-equal
// inter-line axis gaps (variance < rulingVarianceFr × mean).
func formsGrid(lines []model.RuledLine) bool {
	if len(lines) < 2 {
		return false
	}
	axes := make([]float64, len(lines))
	for i, l := range lines {
		axes[i] = l.Axis
	}
	for i := 1; i < len(axes); i++ {
		for j := i; j > 0 && axes[j-1] > axes[j]; j-- {
			axes[j-1], axes[j] = axes[j], axes[j-1]
		}
	}
	gaps := make([]float64, 0, len(axes)-1)
	for i := 1; i < len(axes); i++ {
		gaps = append(gaps, axes[i]-axes[i-1])
	}
	mean := 0.0
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	if mean == 0 {
		return false
	}
	variance := 0.0
	for _, g := range gaps {
		d := g - mean
		variance += d * d
	}
	variance /= float64(len(gaps))
	return variance < rulingVarianceFr*mean
}
