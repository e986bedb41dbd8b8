package fontmetrics

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/SUGAM-ARORA/pdftable/pdfdoc"
)

// fontEntry is one resolved simple font's metrics: an explicit
// per-byte width table built from either Standard-14 data or the
// font's own /Widths array, plus the base encoding used to decode
// bytes to text.
type fontEntry struct {
	widths       map[byte]float64
	missingWidth float64
	encoding     encodingName
}

type encodingName int

const (
	winAnsiEncoding encodingName = iota
	macRomanEncoding
)

// Resolver implements pdftable.ResourceResolver over a page's decoded
// font resources.
type Resolver struct {
	fonts map[string]fontEntry
}

// Advance satisfies pdftable.ResourceResolver: it returns b's advance
// width under fontResourceName, scaled to fontSize, or ok=false if
// the resource name is unknown (the caller falls back to its own
// approximation).
func (r *Resolver) Advance(fontResourceName string, b byte, fontSize float64) (float64, bool) {
	f, ok := r.fonts[fontResourceName]
	if !ok {
		return 0, false
	}
	w, ok := f.widths[b]
	if !ok {
		w = f.missingWidth
	}
	return w / 1000.0 * fontSize, true
}

// Decode transliterates bytes shown under fontResourceName to text
// using that font's base encoding, normalized to NFC. For unknown
// resources the bytes are used unchanged as a Go string (no charset
// decoding), then normalized to NFC.
func (r *Resolver) Decode(fontResourceName string, data []byte) string {
	f, ok := r.fonts[fontResourceName]
	if !ok {
		return norm.NFC.String(string(data))
	}
	var decoder = charmap.Windows1252
	if f.encoding == macRomanEncoding {
		decoder = charmap.Macintosh
	}
	decoded, err := decoder.NewDecoder().String(string(data))
	if err != nil {
		decoded = string(data)
	}
	return norm.NFC.String(decoded)
}

// Load builds a Resolver from a page's resolved /Font resource
// dictionary (pdfdoc.Document.Page's second return value), following
// each font's Widths/FirstChar/BaseFont/Encoding fields.
func Load(doc *pdfdoc.Document, fonts pdfdoc.Dict) (*Resolver, error) {
	r := &Resolver{fonts: map[string]fontEntry{}}
	for name, ref := range fonts {
		fontDict, err := doc.ResolveFontDict(ref)
		if err != nil {
			continue // a single unresolvable font shouldn't fail the page
		}
		r.fonts[string(name)] = buildFontEntry(doc, fontDict)
	}
	return r, nil
}

func buildFontEntry(doc *pdfdoc.Document, fontDict pdfdoc.Dict) fontEntry {
	baseFont, _ := doc.NameField(fontDict, "BaseFont")
	encName, _ := doc.EncodingField(fontDict)

	entry := fontEntry{
		missingWidth: fallbackWidth,
		encoding:     winAnsiEncoding,
	}
	if encName == "MacRomanEncoding" {
		entry.encoding = macRomanEncoding
	}

	if widths, firstChar, ok := doc.WidthsField(fontDict); ok {
		entry.widths = make(map[byte]float64, len(widths))
		for i, w := range widths {
			code := firstChar + i
			if code < 0 || code > 255 {
				continue
			}
			entry.widths[byte(code)] = w
		}
		if mw, ok := doc.MissingWidthField(fontDict); ok {
			entry.missingWidth = mw
		}
		return entry
	}

	if isStandard14(baseFont) {
		entry.widths = standard14Widths[normalizeBaseFont(baseFont)]
		return entry
	}

	// Non-standard font with no embedded /Widths: fall back to
	// Helvetica's metrics, the closest the core's flat-approximation
	// spirit gets without rasterizing glyphs.
	entry.widths = helveticaWidths
	return entry
}
