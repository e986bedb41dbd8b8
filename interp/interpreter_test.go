package interp

import (
	"math"
	"testing"

	"github.com/SUGAM-ARORA/pdftable/model"
)

func run(t *testing.T, src string) Result {
	t.Helper()
	res, err := New(nil).RunBytes([]byte(src))
	if err != nil {
		t.Fatalf("RunBytes(%q) error: %v", src, err)
	}
	return res
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestShowTextEmitsFragmentAtOrigin(t *testing.T) {
	res := run(t, "BT /F1 12 Tf 100 700 Td (Hello) Tj ET")
	if len(res.Fragments) != 1 {
		t.Fatalf("fragments = %+v, want 1", res.Fragments)
	}
	f := res.Fragments[0]
	if f.Text != "Hello" {
		t.Errorf("Text = %q, want Hello", f.Text)
	}
	if !almostEqual(f.Origin.X, 100) || !almostEqual(f.Origin.Y, 700) {
		t.Errorf("Origin = %+v, want (100,700)", f.Origin)
	}
	if f.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", f.FontSize)
	}
	wantWidth := 0.6 * 12 * 5 // "Hello" = 5 bytes
	if !almostEqual(f.AdvanceWidth, wantWidth) {
		t.Errorf("AdvanceWidth = %v, want %v", f.AdvanceWidth, wantWidth)
	}
}

func TestTjAdvancesTextMatrix(t *testing.T) {
	res := run(t, "BT /F1 10 Tf 0 0 Td (AB) Tj (CD) Tj ET")
	if len(res.Fragments) != 2 {
		t.Fatalf("fragments = %+v, want 2", res.Fragments)
	}
	wantAdvance := 0.6 * 10 * 2
	if !almostEqual(res.Fragments[1].Origin.X, wantAdvance) {
		t.Errorf("second fragment X = %v, want %v", res.Fragments[1].Origin.X, wantAdvance)
	}
}

func TestTJAppliesKerningToRunningX(t *testing.T) {
	// Per spec §9's Open Question resolution, the -n/1000*fontSize
	// kerning IS applied to the running x, not just the string advance.
	res := run(t, "BT /F1 10 Tf 0 0 Td [(A) -500 (B)] TJ ET")
	if len(res.Fragments) != 2 {
		t.Fatalf("fragments = %+v, want 2", res.Fragments)
	}
	stringAdvance := 0.6 * 10 * 1 // "A" is one byte
	kerning := 500.0 / 1000.0 * 10
	want := stringAdvance + kerning
	if !almostEqual(res.Fragments[1].Origin.X, want) {
		t.Errorf("second fragment X = %v, want %v (string advance + kerning)", res.Fragments[1].Origin.X, want)
	}
}

func TestTmSetsBothMatrices(t *testing.T) {
	res := run(t, "BT /F1 10 Tf 1 0 0 1 50 60 Tm (X) Tj T* (Y) Tj ET")
	if len(res.Fragments) != 2 {
		t.Fatalf("fragments = %+v, want 2", res.Fragments)
	}
	if !almostEqual(res.Fragments[0].Origin.X, 50) || !almostEqual(res.Fragments[0].Origin.Y, 60) {
		t.Errorf("first origin = %+v, want (50,60)", res.Fragments[0].Origin)
	}
	// No leading was set, so T* with Leading=0 keeps the same Y.
	if !almostEqual(res.Fragments[1].Origin.Y, 60) {
		t.Errorf("second origin Y = %v, want 60 (leading defaults to 0)", res.Fragments[1].Origin.Y)
	}
}

func TestTDSetsLeadingThenMoves(t *testing.T) {
	res := run(t, "BT /F1 10 Tf 0 700 TD (A) Tj 0 -20 TD (B) Tj T* (C) Tj ET")
	if len(res.Fragments) != 3 {
		t.Fatalf("fragments = %+v, want 3", res.Fragments)
	}
	if !almostEqual(res.Fragments[1].Origin.Y, 680) {
		t.Errorf("second origin Y = %v, want 680", res.Fragments[1].Origin.Y)
	}
	// Leading is now 20 (from "0 -20 TD"); T* should move down another 20.
	if !almostEqual(res.Fragments[2].Origin.Y, 660) {
		t.Errorf("third origin Y = %v, want 660", res.Fragments[2].Origin.Y)
	}
}

func TestCmPrependsToCTM(t *testing.T) {
	res := run(t, "q 2 0 0 2 0 0 cm BT /F1 10 Tf 5 5 Td (A) Tj ET Q")
	if len(res.Fragments) != 1 {
		t.Fatalf("fragments = %+v, want 1", res.Fragments)
	}
	f := res.Fragments[0]
	if !almostEqual(f.Origin.X, 10) || !almostEqual(f.Origin.Y, 10) {
		t.Errorf("Origin = %+v, want (10,10) under a 2x scale CTM", f.Origin)
	}
	if f.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20 (10 * 2x CTM scale)", f.FontSize)
	}
}

func TestQRestoresCTM(t *testing.T) {
	res := run(t, "q 2 0 0 2 0 0 cm Q BT /F1 10 Tf 5 5 Td (A) Tj ET")
	f := res.Fragments[0]
	if !almostEqual(f.Origin.X, 5) || !almostEqual(f.Origin.Y, 5) {
		t.Errorf("Origin = %+v, want (5,5) after Q undid the scale", f.Origin)
	}
}

func TestUnbalancedQIsNoOp(t *testing.T) {
	res := run(t, "Q Q BT /F1 10 Tf 1 1 Td (A) Tj ET")
	if len(res.Fragments) != 1 {
		t.Fatalf("extra Q operators should not panic or drop fragments: %+v", res.Fragments)
	}
}

func TestStrokeEmitsClassifiedLongSegments(t *testing.T) {
	res := run(t, "50 100 m 250 100 l S")
	if len(res.Segments) != 1 {
		t.Fatalf("segments = %+v, want 1", res.Segments)
	}
	if got := res.Segments[0].Classify(); got != model.OrientationHorizontal {
		t.Errorf("Classify() = %v, want OrientationHorizontal", got)
	}
}

func TestStrokeDiscardsShortSegments(t *testing.T) {
	res := run(t, "0 0 m 5 0 l S") // length 5 < MinLineLength(10)
	if len(res.Segments) != 0 {
		t.Fatalf("segments = %+v, want none (too short)", res.Segments)
	}
}

func TestStrokeDiscardsDiagonalSegments(t *testing.T) {
	res := run(t, "0 0 m 100 100 l S") // neither horizontal nor vertical
	if len(res.Segments) != 0 {
		t.Fatalf("segments = %+v, want none (diagonal)", res.Segments)
	}
}

func TestClosePathAddsClosingSegment(t *testing.T) {
	res := run(t, "0 0 m 100 0 l 100 50 l 0 50 l h S")
	if len(res.Segments) != 4 {
		t.Fatalf("segments = %+v, want 4 (closed rectangle)", res.Segments)
	}
}

func TestInvalidOperandRecordsDiagnosticAndContinues(t *testing.T) {
	res := run(t, "1 0 0 cm BT /F1 10 Tf 0 0 Td (A) Tj ET")
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected an InvalidOperand diagnostic for cm with 3 operands")
	}
	if res.Diagnostics[0].Kind != InvalidOperand {
		t.Errorf("diagnostic kind = %v, want InvalidOperand", res.Diagnostics[0].Kind)
	}
	if len(res.Fragments) != 1 {
		t.Errorf("extraction should continue after the bad operator: fragments = %+v", res.Fragments)
	}
}

func TestUnknownOperatorIsIgnored(t *testing.T) {
	res := run(t, "1 2 3 xyz BT /F1 10 Tf 0 0 Td (A) Tj ET")
	if len(res.Fragments) != 1 {
		t.Fatalf("fragments = %+v, want 1 (unknown operator should be a no-op)", res.Fragments)
	}
}

func TestInlineImageIsSkippedWithoutDesyncingStream(t *testing.T) {
	src := "BT /F1 10 Tf 0 0 Td (before) Tj ET " +
		"BI /W 2 /H 2 /BPC 8 ID \x00\x01(garbage)<more EI " +
		"BT /F1 10 Tf 0 -20 Td (after) Tj ET"
	res := run(t, src)
	if len(res.Fragments) != 2 {
		t.Fatalf("fragments = %+v, want 2 (before + after, image skipped)", res.Fragments)
	}
	if res.Fragments[0].Text != "before" || res.Fragments[1].Text != "after" {
		t.Errorf("fragments = %+v", res.Fragments)
	}
}
