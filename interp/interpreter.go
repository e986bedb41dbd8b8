package interp

import (
	"fmt"

	"github.com/SUGAM-ARORA/pdftable/lexer"
	"github.com/SUGAM-ARORA/pdftable/model"
)

// DefaultCharAdvance is the approximate per-byte advance width used
// when no ResourceResolver is supplied or it cannot resolve a glyph
// (spec §4.2): 0.6 × font size.
const DefaultCharAdvance = 0.6

// ResourceResolver resolves a font resource name to a character-width
// function (spec §6's page_resources). Implementations may consult
// real embedded font metrics; a nil ResourceResolver, or one that
// returns ok=false, falls back to DefaultCharAdvance.
type ResourceResolver interface {
	// Advance returns the advance width, in user-space units already
	// scaled by fontSize, of the single encoded byte b shown under the
	// given font resource name at the given (unscaled) font size.
	Advance(fontResourceName string, b byte, fontSize float64) (float64, bool)
}

// TextDecoder is an optional capability a ResourceResolver may also
// implement to transliterate the raw bytes of a Tj/TJ string to text
// under a font's base encoding (spec §6's page_resources; WinAnsi/
// MacRoman in practice) before the bytes reach a TextFragment. When
// Resources doesn't implement TextDecoder, or isn't set, the raw
// lexer bytes are kept as-is — correct for ASCII content, lossy for
// high-byte WinAnsi/MacRoman text.
type TextDecoder interface {
	Decode(fontResourceName string, data []byte) string
}

// DiagnosticKind classifies a non-fatal condition recorded during
// interpretation (spec §7).
type DiagnosticKind int

const (
	// InvalidOperand marks a state operator invoked with too few
	// arguments; the operator is skipped and extraction continues.
	InvalidOperand DiagnosticKind = iota
	// ResourceLookupFailed marks a font resource name the resolver
	// could not resolve; the approximate metric was used instead. Not
	// an error per spec §7, but surfaced for callers who care.
	ResourceLookupFailed
)

// Diagnostic is one non-fatal condition encountered while
// interpreting a content stream.
type Diagnostic struct {
	Kind     DiagnosticKind
	Operator string
	Message  string
}

// Result is everything the Interpreter recovers from one content
// stream: positioned text fragments and stroked line segments, both in
// page user-space coordinates (spec §4.2), plus any diagnostics.
type Result struct {
	Fragments   []model.TextFragment
	Segments    []model.LineSegment
	Diagnostics []Diagnostic
}

// Interpreter walks a token sequence produced by the lexer, maintains
// the graphics/text state stack, and emits positioned text and line
// segments. It holds no state beyond a single Run call's lifetime
// (spec §5: single-threaded, synchronous, side-effect-free per call).
type Interpreter struct {
	Resources ResourceResolver
}

// New creates an Interpreter. resources may be nil, in which case the
// 0.6×font_size approximation (spec §4.2) is used unconditionally.
func New(resources ResourceResolver) *Interpreter {
	return &Interpreter{Resources: resources}
}

// Run interprets a content stream's tokens (already produced by
// lexer.Lexer — an owned slice, per the cyclic-graph-avoidance note in
// spec §9) and returns the fragments and segments it emits.
func (ip *Interpreter) Run(tokens []lexer.Token) Result {
	st := newStateStack()
	var args []lexer.Token
	var res Result
	inTextObject := false

	for _, tok := range tokens {
		if tok.Type != lexer.Operator {
			args = append(args, tok)
			continue
		}
		ip.dispatch(st, tok.Str, args, &res, &inTextObject)
		args = args[:0]
	}
	return res
}

// RunBytes tokenizes data (skipping inline-image payloads first, per
// spec §4.5) and interprets it. A MalformedStream error from the
// lexer still yields the fragments/segments recovered from the valid
// prefix (spec §7: a page with a broken tail still emits what was
// parsed from its prefix).
func (ip *Interpreter) RunBytes(data []byte) (Result, error) {
	cleaned := stripInlineImages(data)
	toks, err := lexer.New(cleaned).TokenizeBestEffort()
	res := ip.Run(toks)
	return res, err
}

func (ip *Interpreter) dispatch(st *stateStack, op string, args []lexer.Token, res *Result, inTextObject *bool) {
	f := st.top()

	invalid := func(want int) bool {
		if len(args) < want {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:     InvalidOperand,
				Operator: op,
				Message:  fmt.Sprintf("%s expects %d operand(s), got %d", op, want, len(args)),
			})
			return true
		}
		return false
	}
	num := func(i int) float64 {
		if i < len(args) && args[i].Type == lexer.Number {
			return args[i].Num
		}
		return 0
	}

	switch op {
	case "q":
		st.push()
	case "Q":
		st.pop()
	case "cm":
		if invalid(6) {
			return
		}
		m := model.Matrix{num(0), num(1), num(2), num(3), num(4), num(5)}
		f.CTM = m.Multiply(f.CTM)
	case "w":
		if invalid(1) {
			return
		}
		f.StrokeWidth = num(0)
	case "BT":
		*inTextObject = true
		f.TextMatrix = model.Identity()
		f.TextLineMatrix = model.Identity()
	case "ET":
		*inTextObject = false
	case "Tf":
		if invalid(2) {
			return
		}
		if args[0].Type == lexer.Name {
			f.FontResourceName = args[0].Str
		}
		f.FontSize = num(1)
	case "Tm":
		if invalid(6) {
			return
		}
		m := model.Matrix{num(0), num(1), num(2), num(3), num(4), num(5)}
		f.TextMatrix = m
		f.TextLineMatrix = m
	case "Td":
		if invalid(2) {
			return
		}
		ip.moveTextLine(f, num(0), num(1))
	case "TD":
		if invalid(2) {
			return
		}
		f.Leading = -num(1)
		ip.moveTextLine(f, num(0), num(1))
	case "T*":
		ip.moveTextLine(f, 0, -f.Leading)
	case "Tj":
		if invalid(1) {
			return
		}
		if args[0].Type == lexer.String {
			ip.showText(f, args[0].Str, res)
		}
	case "TJ":
		if invalid(1) {
			return
		}
		if args[0].Type == lexer.Array {
			ip.showTextArray(f, args[0].Array, res)
		}
	case "'":
		ip.moveTextLine(f, 0, -f.Leading)
		if len(args) >= 1 && args[0].Type == lexer.String {
			ip.showText(f, args[0].Str, res)
		}
	case "\"":
		if invalid(3) {
			return
		}
		ip.moveTextLine(f, 0, -f.Leading)
		if args[2].Type == lexer.String {
			ip.showText(f, args[2].Str, res)
		}
	case "m":
		if invalid(2) {
			return
		}
		f.Subpaths = append(f.Subpaths, []model.Point{{X: num(0), Y: num(1)}})
	case "l":
		if invalid(2) {
			return
		}
		if len(f.Subpaths) == 0 {
			f.Subpaths = append(f.Subpaths, []model.Point{{}})
		}
		i := len(f.Subpaths) - 1
		f.Subpaths[i] = append(f.Subpaths[i], model.Point{X: num(0), Y: num(1)})
	case "h":
		closeSubpath(f)
	case "S":
		ip.strokePath(f, res)
		f.Subpaths = nil
	case "s":
		closeSubpath(f)
		ip.strokePath(f, res)
		f.Subpaths = nil
	case "n":
		f.Subpaths = nil
	case "f", "F", "f*", "B", "B*", "b", "b*":
		if op == "b" || op == "b*" {
			closeSubpath(f)
			ip.strokePath(f, res)
		}
		if op == "B" || op == "B*" {
			ip.strokePath(f, res)
		}
		f.Subpaths = nil
	default:
		// Unknown operator: consume and discard its arguments, the
		// standard behavior required by the format (spec §4.2).
	}
}

func (ip *Interpreter) moveTextLine(f *Frame, tx, ty float64) {
	f.TextLineMatrix = model.Translate(tx, ty).Multiply(f.TextLineMatrix)
	f.TextMatrix = f.TextLineMatrix
}

func closeSubpath(f *Frame) {
	if len(f.Subpaths) == 0 {
		return
	}
	i := len(f.Subpaths) - 1
	sp := f.Subpaths[i]
	if len(sp) == 0 {
		return
	}
	if sp[len(sp)-1] != sp[0] {
		f.Subpaths[i] = append(sp, sp[0])
	}
}

func (ip *Interpreter) strokePath(f *Frame, res *Result) {
	for _, sp := range f.Subpaths {
		for i := 0; i+1 < len(sp); i++ {
			start := f.CTM.Transform(sp[i])
			end := f.CTM.Transform(sp[i+1])
			seg := model.LineSegment{Start: start, End: end, StrokeWidth: f.StrokeWidth}
			if seg.Length() < model.MinLineLength {
				continue
			}
			if seg.Classify() == model.OrientationNone {
				continue
			}
			res.Segments = append(res.Segments, seg)
		}
	}
}

// showText emits one TextFragment for data (spec §4.2: one fragment
// per Tj, or per TJ string element) and advances the text matrix.
func (ip *Interpreter) showText(f *Frame, data string, res *Result) {
	effective := f.TextMatrix.Multiply(f.CTM)
	origin := effective.Transform(model.Point{})

	ctmScale := f.CTM.VerticalScale()
	deviceFontSize := f.FontSize * ctmScale
	if deviceFontSize <= 0 {
		deviceFontSize = f.FontSize
	}
	if deviceFontSize <= 0 {
		deviceFontSize = 1
	}

	width := 0.0
	missing := false
	for i := 0; i < len(data); i++ {
		var a float64
		var ok bool
		if ip.Resources != nil {
			a, ok = ip.Resources.Advance(f.FontResourceName, data[i], f.FontSize)
		}
		if !ok {
			a = DefaultCharAdvance * f.FontSize
			missing = true
		}
		width += a
	}
	if missing {
		// One diagnostic per shown string, not per byte: a whole
		// unresolved word would otherwise flood Diagnostics with one
		// identical entry per character.
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Kind:     ResourceLookupFailed,
			Operator: "Tj",
			Message:  fmt.Sprintf("no metric for font %q, using approximation for %q", f.FontResourceName, data),
		})
	}

	if width <= 0 || f.FontSize <= 0 {
		// Degenerate state (e.g. Tf never called): skip emission rather
		// than violate the AdvanceWidth/FontSize > 0 invariant.
		return
	}

	text := data
	if dec, ok := ip.Resources.(TextDecoder); ok {
		text = dec.Decode(f.FontResourceName, []byte(data))
	}

	res.Fragments = append(res.Fragments, model.TextFragment{
		Text:             text,
		Origin:           origin,
		AdvanceWidth:     width * ctmScale,
		FontSize:         deviceFontSize,
		FontResourceName: f.FontResourceName,
	})

	f.TextMatrix = model.Translate(width, 0).Multiply(f.TextMatrix)
}

// showTextArray processes a TJ array: strings are shown like Tj;
// numbers are kerning adjustments in thousandths of font size, applied
// to the running text-matrix translation (spec §4.2). Per the Open
// Question resolution in spec §9, kerning IS applied to the running
// x — the behaviorally-correct choice, not the source's omission.
func (ip *Interpreter) showTextArray(f *Frame, elems []lexer.Token, res *Result) {
	for _, elem := range elems {
		switch elem.Type {
		case lexer.String:
			ip.showText(f, elem.Str, res)
		case lexer.Number:
			shift := -elem.Num / 1000.0 * f.FontSize
			f.TextMatrix = model.Translate(shift, 0).Multiply(f.TextMatrix)
		}
	}
}
