package httpapi

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/SUGAM-ARORA/pdftable"
	"github.com/SUGAM-ARORA/pdftable/fontmetrics"
	"github.com/SUGAM-ARORA/pdftable/metrics"
	"github.com/SUGAM-ARORA/pdftable/model"
	"github.com/SUGAM-ARORA/pdftable/pdfdoc"
)

const maxUploadBytes = 64 << 20 // 64 MiB

// Handler serves the upload form on GET and runs extraction on POST.
type Handler struct {
	Sink metrics.Sink
}

// NewHandler returns a Handler reporting to sink; a nil sink is
// replaced with metrics.NoOp.
func NewHandler(sink metrics.Sink) *Handler {
	if sink == nil {
		sink = metrics.NoOp{}
	}
	return &Handler{Sink: sink}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet:
		h.serveUploadForm(w)
	case r.Method == http.MethodPost:
		h.serveExtraction(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveUploadForm(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderUploadForm(w); err != nil {
		log.Printf("httpapi: rendering upload form: %v", err)
	}
}

func (h *Handler) serveExtraction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("upload too large or malformed: %v", err), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("pdf")
	if err != nil {
		http.Error(w, "missing \"pdf\" form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "pdftable-upload-*.pdf")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Printf("httpapi: creating temp file: %v", err)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		http.Error(w, "could not read upload", http.StatusBadRequest)
		return
	}

	doc, err := pdfdoc.Open(tmp.Name())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not parse PDF: %v", err), http.StatusBadRequest)
		return
	}

	results := make([]pageResult, 0, doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		start := time.Now()
		content, fonts, err := doc.Page(i)
		if err != nil {
			log.Printf("httpapi: page %d: %v", i, err)
			continue
		}
		resolver, _ := fontmetrics.Load(doc, fonts)
		res, _ := pdftable.Extract(i+1, content, resolver, pdftable.DefaultOptions())
		h.Sink.ObserveExtraction(i+1, time.Since(start), len(res.Tables))
		results = append(results, pageResult{pageNumber: i + 1, tables: res.Tables})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderResultsPage(w, results); err != nil {
		log.Printf("httpapi: rendering results page: %v", err)
	}
}

// pageResult pairs a 1-indexed page number with whatever tables were
// recovered from it.
type pageResult struct {
	pageNumber int
	tables     []model.Table
}
