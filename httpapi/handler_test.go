package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SUGAM-ARORA/pdftable/metrics"
	"github.com/SUGAM-ARORA/pdftable/model"
)

func TestServeHTTPGetRendersUploadForm(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<form") || !strings.Contains(body, `name="pdf"`) {
		t.Errorf("body = %q, want an upload form with a pdf field", body)
	}
}

func TestServeHTTPRejectsUnsupportedMethod(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestServeHTTPPostWithoutFileIsBadRequest(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderResultsPageEmbedsCellText(t *testing.T) {
	var buf strings.Builder
	results := []pageResult{{
		pageNumber: 1,
		tables: []model.Table{{
			Confidence: 0.95,
			Rows: [][]model.TableCell{
				{{Text: "Name"}, {Text: "Age"}},
				{{Text: "Alice"}, {Text: "30"}},
			},
		}},
	}}
	if err := renderResultsPage(&buf, results); err != nil {
		t.Fatalf("renderResultsPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Page 1", "Alice", "<table", "0.95"} {
		if !strings.Contains(out, want) {
			t.Errorf("results page missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResultsPageNoTablesMessage(t *testing.T) {
	var buf strings.Builder
	results := []pageResult{{pageNumber: 2, tables: nil}}
	if err := renderResultsPage(&buf, results); err != nil {
		t.Fatalf("renderResultsPage: %v", err)
	}
	if !strings.Contains(buf.String(), "No tables found") {
		t.Errorf("results page missing the no-tables message")
	}
}

var _ metrics.Sink = metrics.NoOp{}
