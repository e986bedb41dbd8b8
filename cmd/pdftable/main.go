// Command pdftable reconstructs tabular structure from a PDF file's
// content streams and either prints a JSON summary, writes a .xlsx
// workbook, or serves the upload UI over HTTP.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/SUGAM-ARORA/pdftable"
	"github.com/SUGAM-ARORA/pdftable/fontmetrics"
	"github.com/SUGAM-ARORA/pdftable/httpapi"
	"github.com/SUGAM-ARORA/pdftable/metrics"
	"github.com/SUGAM-ARORA/pdftable/model"
	"github.com/SUGAM-ARORA/pdftable/ocrfallback"
	"github.com/SUGAM-ARORA/pdftable/pdfdoc"
	"github.com/SUGAM-ARORA/pdftable/tables"
	"github.com/SUGAM-ARORA/pdftable/workbook"
)

func main() {
	xlsxOut := flag.String("xlsx", "", "write reconstructed tables to this .xlsx path instead of stdout JSON")
	mode := flag.String("mode", "balanced", "processing mode: fast, balanced, accurate")
	serve := flag.String("serve", "", "instead of processing a file, listen on this address and serve the upload UI (e.g. :8080)")
	flag.Parse()

	if *serve != "" {
		runServer(*serve)
		return
	}

	if flag.NArg() < 1 {
		log.Fatal("Usage: pdftable [--xlsx out.xlsx] [--mode fast|balanced|accurate] <path_to_pdf>")
	}
	path := flag.Arg(0)
	opts := optionsForMode(*mode)

	doc, err := pdfdoc.Open(path)
	if err != nil {
		log.Fatalf("opening %s: %v", path, err)
	}

	var summaries []pageSummary
	var allTables []model.Table
	for i := 0; i < doc.PageCount(); i++ {
		content, fonts, err := doc.Page(i)
		if err != nil {
			log.Printf("page %d: %v", i, err)
			continue
		}
		resolver, _ := fontmetrics.Load(doc, fonts)
		res, err := pdftable.Extract(i+1, content, resolver, opts)
		if err != nil {
			log.Printf("page %d: extraction warning: %v", i, err)
		}

		if len(res.Tables) == 0 {
			resources, _ := doc.PageResources(i)
			if ocrfallback.ShouldFallback(doc, resources, countTextOperators(content)) {
				runOCRFallback(doc, resources, i)
			}
		}

		for _, t := range res.Tables {
			summaries = append(summaries, pageSummary{Page: i + 1, Rows: t.RowCount(), Cols: t.ColCount(), Confidence: t.Confidence})
			allTables = append(allTables, t)
		}
	}

	if *xlsxOut != "" {
		writeWorkbook(*xlsxOut, allTables)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaries); err != nil {
		log.Fatalf("encoding results: %v", err)
	}
}

type pageSummary struct {
	Page       int     `json:"page"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Confidence float64 `json:"confidence"`
}

func optionsForMode(name string) pdftable.Options {
	opts := pdftable.DefaultOptions()
	switch name {
	case "fast":
		return opts.WithMode(tables.ModeFast)
	case "accurate":
		return opts.WithMode(tables.ModeAccurate)
	default:
		return opts
	}
}

// countTextOperators is a crude text-bearing check for the OCR-fallback
// heuristic: any Tj/TJ operator anywhere in the stream means the page
// isn't image-only, without needing a full interpreter pass.
func countTextOperators(content []byte) int {
	return bytes.Count(content, []byte("Tj")) + bytes.Count(content, []byte("TJ"))
}

// runOCRFallback recognizes text from every Image XObject on an
// image-only page. Under the default build (no "ocr" tag) ocrfallback.New
// returns ErrOCRNotEnabled, which is logged and otherwise ignored — the
// core extraction result for the page is unaffected either way, since
// OCR output isn't fed back into table reconstruction.
func runOCRFallback(doc *pdfdoc.Document, resources pdfdoc.Dict, page int) {
	client, err := ocrfallback.New()
	if err != nil {
		log.Printf("page %d: image-only, OCR unavailable: %v", page, err)
		return
	}
	defer client.Close()

	images, err := ocrfallback.ImageStreams(doc, resources)
	if err != nil {
		log.Printf("page %d: reading image resources: %v", page, err)
		return
	}
	for idx, img := range images {
		text, err := client.RecognizeImage(img)
		if err != nil {
			log.Printf("page %d image %d: OCR failed: %v", page, idx, err)
			continue
		}
		log.Printf("page %d image %d: OCR recovered %q", page, idx, text)
	}
}

func runServer(addr string) {
	counter := &metrics.Counter{}
	handler := httpapi.NewHandler(counter)
	log.Printf("pdftable serving on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func writeWorkbook(path string, tbls []model.Table) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := workbook.Write(f, tbls); err != nil {
		log.Fatalf("writing workbook: %v", err)
	}
	fmt.Printf("wrote %d table(s) to %s\n", len(tbls), path)
}
