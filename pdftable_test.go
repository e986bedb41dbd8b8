package pdftable

import (
	"errors"
	"strconv"
	"testing"

	"github.com/SUGAM-ARORA/pdftable/lexer"
)

// synthesizeStream builds a content stream placing each row of cells
// at descending baselines with Tf/Tm/Tj, the same technique spec §8's
// round-trip property exercises.
func synthesizeStream(rows [][]string, xs []float64, startY, rowGap float64) []byte {
	var out []byte
	out = append(out, "BT /F1 12 Tf\n"...)
	for ri, row := range rows {
		y := startY - float64(ri)*rowGap
		for ci, text := range row {
			out = append(out, []byte(
				"1 0 0 1 "+ftoa(xs[ci])+" "+ftoa(y)+" Tm ("+text+") Tj\n",
			)...)
		}
	}
	out = append(out, "ET"...)
	return out
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// varyingWidthResolver gives each byte a slightly different advance so
// that words of equal length don't collide onto the exact same
// right-edge anchor — real font metrics vary per glyph; the default
// 0.6×font_size approximation does not, which the reconstructor's
// candidate-column frequency analysis is sensitive to.
type varyingWidthResolver struct{}

func (varyingWidthResolver) Advance(_ string, b byte, fontSize float64) (float64, bool) {
	return fontSize/20 + float64(b%7)*0.37, true
}

func TestExtractEndToEndRecoversGrid(t *testing.T) {
	rows := [][]string{
		{"Name", "Age", "City"},
		{"John", "35", "NYC"},
		{"Jane", "28", "LAX"},
		{"Bob", "42", "ORD"},
	}
	xs := []float64{50, 200, 280}
	stream := synthesizeStream(rows, xs, 700, 18)

	res, err := Extract(1, stream, varyingWidthResolver{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(res.Tables))
	}
	tb := res.Tables[0]
	if tb.RowCount() != 4 || tb.ColCount() != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", tb.RowCount(), tb.ColCount())
	}
	if tb.Rows[0][0].Text != "Name" || tb.Rows[3][2].Text != "ORD" {
		t.Errorf("cells[0][0]=%q cells[3][2]=%q", tb.Rows[0][0].Text, tb.Rows[3][2].Text)
	}
	if tb.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", tb.PageNumber)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"1", "2"},
		{"3", "4"},
	}
	xs := []float64{50, 200}
	stream := synthesizeStream(rows, xs, 700, 18)

	r1, err1 := Extract(1, stream, varyingWidthResolver{}, DefaultOptions())
	r2, err2 := Extract(1, stream, varyingWidthResolver{}, DefaultOptions())
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v, %v", err1, err2)
	}
	if len(r1.Tables) != len(r2.Tables) {
		t.Fatalf("table counts differ: %d vs %d", len(r1.Tables), len(r2.Tables))
	}
	for i := range r1.Tables {
		if r1.Tables[i].Confidence != r2.Tables[i].Confidence {
			t.Errorf("table %d confidence differs: %v vs %v", i, r1.Tables[i].Confidence, r2.Tables[i].Confidence)
		}
	}
}

func TestExtractMalformedStreamReturnsPrefixResult(t *testing.T) {
	stream := append(synthesizeStream([][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}}, []float64{50, 200}, 700, 18), []byte(" (unterminated")...)
	res, err := Extract(1, stream, varyingWidthResolver{}, DefaultOptions())
	if !errors.Is(err, lexer.ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
	if len(res.Tables) != 1 {
		t.Errorf("tables = %d, want 1 (recovered from the valid prefix)", len(res.Tables))
	}
}

func TestExtractZeroFragmentsYieldsZeroTables(t *testing.T) {
	res, err := Extract(1, []byte("q Q"), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(res.Tables) != 0 {
		t.Errorf("tables = %d, want 0", len(res.Tables))
	}
}
