// Package pdftable reconstructs tabular structure from digitally
// generated PDF content streams, without rasterization or OCR.
//
// Extract wires the four core components together: lexer tokenizes a
// content stream, interp interprets it into positioned text and
// strokes, merge collapses those into logical text elements and ruled
// lines, and tables reconstructs the grid.
//
//	result, err := pdftable.Extract(1, contentStream, resolver, pdftable.DefaultOptions())
package pdftable

import (
	"github.com/SUGAM-ARORA/pdftable/interp"
	"github.com/SUGAM-ARORA/pdftable/merge"
	"github.com/SUGAM-ARORA/pdftable/model"
	"github.com/SUGAM-ARORA/pdftable/tables"
)

// ResourceResolver resolves a font resource name and byte to an
// advance width; see interp.ResourceResolver.
type ResourceResolver = interp.ResourceResolver

// TextDecoder is the optional capability a ResourceResolver may also
// implement to transliterate shown bytes to text; see
// interp.TextDecoder. fontmetrics.Resolver implements it.
type TextDecoder = interp.TextDecoder

// Diagnostic is a non-fatal condition recorded during interpretation;
// see interp.Diagnostic.
type Diagnostic = interp.Diagnostic

// Result is everything Extract recovers from one page's content
// stream.
type Result struct {
	Tables      []model.Table
	Diagnostics []Diagnostic
}

// Extract tokenizes, interprets, merges and reconstructs tables from
// a single page's content stream. pageNumber is the 1-based page this
// content stream came from and is stamped onto every returned Table
// (spec §3's page_number >= 1 invariant) — callers iterating a
// multi-page document pass the page's own index, not a constant.
//
// A MalformedStream or LimitExceeded error from the lexer is returned
// alongside whatever tables could still be recovered from the valid
// prefix (spec §7).
func Extract(pageNumber int, contentStream []byte, resources ResourceResolver, opts Options) (Result, error) {
	ip := interp.New(resources)
	raw, err := ip.RunBytes(contentStream)

	elements := merge.Text(raw.Fragments)
	lines := merge.Lines(raw.Segments)
	tbs := tables.Reconstruct(elements, lines, opts.toConfig())
	for i := range tbs {
		tbs[i].PageNumber = pageNumber
	}

	return Result{Tables: tbs, Diagnostics: raw.Diagnostics}, err
}
