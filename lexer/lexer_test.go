package lexer

import (
	"errors"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return toks
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"12", 12},
		{"-12", -12},
		{"+3.5", 3.5},
		{".5", 0.5},
		{"-.5", -0.5},
		{"100.", 100},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.src)
		if len(toks) != 1 || toks[0].Type != Number || toks[0].Num != tt.want {
			t.Errorf("Tokenize(%q) = %+v, want single Number %v", tt.src, toks, tt.want)
		}
	}
}

func TestTokenizeName(t *testing.T) {
	toks := tokenize(t, "/Name1 /F#41")
	if len(toks) != 2 || toks[0].Type != Name || toks[0].Str != "Name1" {
		t.Fatalf("first token = %+v, want Name \"Name1\"", toks[0])
	}
	if toks[1].Type != Name || toks[1].Str != "FA" {
		t.Errorf("second token = %+v, want Name \"FA\" (decoded #41)", toks[1])
	}
}

func TestTokenizeLiteralStringEscapes(t *testing.T) {
	toks := tokenize(t, `(hello\nworld\(paren\)\101)`)
	if len(toks) != 1 || toks[0].Type != String {
		t.Fatalf("tokens = %+v, want single String", toks)
	}
	want := "hello\nworld(paren)A"
	if toks[0].Str != want {
		t.Errorf("String = %q, want %q", toks[0].Str, want)
	}
}

func TestTokenizeLiteralStringNesting(t *testing.T) {
	toks := tokenize(t, `(outer (inner) end)`)
	if len(toks) != 1 || toks[0].Str != "outer (inner) end" {
		t.Fatalf("tokens = %+v, want balanced nested string", toks)
	}
}

func TestTokenizeHexString(t *testing.T) {
	toks := tokenize(t, "<48656C6C6F>")
	if len(toks) != 1 || toks[0].Type != String || toks[0].Str != "Hello" {
		t.Fatalf("tokens = %+v, want String \"Hello\"", toks)
	}
}

func TestTokenizeHexStringOddLengthPadded(t *testing.T) {
	// "48656C6C6" is 9 hex digits; the last is padded with a trailing 0.
	toks := tokenize(t, "<48656C6C6>")
	if len(toks) != 1 || toks[0].Str != "Hell\x60" {
		t.Fatalf("tokens = %+v, want padded hex decode", toks)
	}
}

func TestTokenizeArray(t *testing.T) {
	toks := tokenize(t, "[(Hi) -250 (there) 10]")
	if len(toks) != 1 || toks[0].Type != Array {
		t.Fatalf("tokens = %+v, want single Array", toks)
	}
	arr := toks[0].Array
	if len(arr) != 4 {
		t.Fatalf("array len = %d, want 4", len(arr))
	}
	if arr[0].Str != "Hi" || arr[1].Num != -250 || arr[2].Str != "there" || arr[3].Num != 10 {
		t.Errorf("array = %+v", arr)
	}
}

func TestTokenizeNestedArray(t *testing.T) {
	toks := tokenize(t, "[[1 2] 3]")
	if len(toks) != 1 || len(toks[0].Array) != 2 {
		t.Fatalf("tokens = %+v", toks)
	}
	inner := toks[0].Array[0]
	if inner.Type != Array || len(inner.Array) != 2 {
		t.Errorf("nested array = %+v", inner)
	}
}

func TestTokenizeSkipsDictionary(t *testing.T) {
	toks := tokenize(t, "<< /Type /Page >> q")
	if len(toks) != 1 || toks[0].Type != Operator || toks[0].Str != "q" {
		t.Fatalf("tokens = %+v, want dict skipped leaving only the q operator", toks)
	}
}

func TestTokenizeNestedDictionary(t *testing.T) {
	toks := tokenize(t, "<< /Font << /F1 5 0 R >> >> Q")
	if len(toks) != 1 || toks[0].Str != "Q" {
		t.Fatalf("tokens = %+v, want nested dict skipped", toks)
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks := tokenize(t, "q Q cm Tj TJ T* ' \" f*")
	wantOps := []string{"q", "Q", "cm", "Tj", "TJ", "T*", "'", "\"", "f*"}
	if len(toks) != len(wantOps) {
		t.Fatalf("tokens = %+v, want %d operators", toks, len(wantOps))
	}
	for i, op := range wantOps {
		if toks[i].Type != Operator || toks[i].Str != op {
			t.Errorf("token %d = %+v, want Operator %q", i, toks[i], op)
		}
	}
}

func TestTokenizeOperandsThenOperator(t *testing.T) {
	toks := tokenize(t, "1 0 0 1 100 200 cm")
	if len(toks) != 7 {
		t.Fatalf("tokens = %+v, want 7", toks)
	}
	if toks[6].Type != Operator || toks[6].Str != "cm" {
		t.Errorf("last token = %+v, want Operator cm", toks[6])
	}
}

func TestTokenizeCommentSkipped(t *testing.T) {
	toks := tokenize(t, "q % this is a comment\nQ")
	if len(toks) != 2 || toks[0].Str != "q" || toks[1].Str != "Q" {
		t.Fatalf("tokens = %+v, want [q Q] with comment skipped", toks)
	}
}

func TestTokenizeUnterminatedLiteralStringFails(t *testing.T) {
	_, err := New([]byte("(hello")).Tokenize()
	if !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
}

func TestTokenizeUnterminatedHexStringFails(t *testing.T) {
	_, err := New([]byte("<48656")).Tokenize()
	if !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
}

func TestTokenizeUnterminatedArrayFails(t *testing.T) {
	_, err := New([]byte("[1 2 3")).Tokenize()
	if !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
}

func TestTokenizeBestEffortReturnsPrefix(t *testing.T) {
	toks, err := New([]byte("q Q (unterminated")).TokenizeBestEffort()
	if !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
	if len(toks) != 2 || toks[0].Str != "q" || toks[1].Str != "Q" {
		t.Fatalf("tokens = %+v, want the valid prefix [q Q]", toks)
	}
}

func TestTokenizeLimitExceeded(t *testing.T) {
	l := New([]byte("q Q q Q q"))
	l.MaxTokens = 2
	_, err := l.Tokenize()
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
}
