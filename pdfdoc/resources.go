package pdfdoc

// The functions below expose just enough object-resolution surface
// for fontmetrics to build per-font width tables without reaching
// into this package's internal object representation itself.

// ResolveFontDict resolves a /Font resource entry (itself a Ref in
// almost every real PDF) to its dictionary.
func (d *Document) ResolveFontDict(ref Object) (Dict, error) {
	return d.resolveDict(ref)
}

// ResolveDict resolves any indirect reference to a dictionary,
// e.g. a page's /Resources /XObject entry.
func (d *Document) ResolveDict(ref Object) (Dict, error) {
	return d.resolveDict(ref)
}

// ResolveObject resolves any indirect reference one level, e.g. an
// /XObject dictionary's per-name Stream entries.
func (d *Document) ResolveObject(ref Object) (Object, error) {
	return d.resolve(ref)
}

// DecodeStream applies stm's /Filter chain and returns the decoded
// bytes, e.g. for handing an Image XObject's samples to an OCR
// client. DCTDecode/JPXDecode streams pass through undecoded — those
// bytes are already a complete JPEG/JPEG2000 image, not raw samples.
func (d *Document) DecodeStream(stm Stream) ([]byte, error) {
	return decodeStream(stm)
}

// NameField resolves dict[key] and returns it as a string if it is a
// Name object.
func (d *Document) NameField(dict Dict, key string) (string, bool) {
	v, err := d.resolve(dict[Name(key)])
	if err != nil {
		return "", false
	}
	return nameVal(v)
}

// EncodingField resolves a font dictionary's /Encoding entry, which
// is either a bare Name (e.g. /WinAnsiEncoding) or a dictionary with
// a /BaseEncoding Name.
func (d *Document) EncodingField(fontDict Dict) (string, bool) {
	v, err := d.resolve(fontDict["Encoding"])
	if err != nil {
		return "", false
	}
	if n, ok := nameVal(v); ok {
		return n, true
	}
	if enc, ok := v.(Dict); ok {
		if base, err := d.resolve(enc["BaseEncoding"]); err == nil {
			if n, ok := nameVal(base); ok {
				return n, true
			}
		}
	}
	return "", false
}

// WidthsField resolves a simple font's /Widths array and /FirstChar,
// reporting ok=false when either is absent (CID fonts and Standard-14
// references without embedded metrics both take this path).
func (d *Document) WidthsField(fontDict Dict) ([]float64, int, bool) {
	widthsObj, err := d.resolve(fontDict["Widths"])
	if err != nil {
		return nil, 0, false
	}
	arr, ok := widthsObj.(Array)
	if !ok {
		return nil, 0, false
	}
	firstCharObj, err := d.resolve(fontDict["FirstChar"])
	if err != nil {
		return nil, 0, false
	}
	if _, ok := num(firstCharObj); !ok {
		return nil, 0, false
	}
	firstChar := intVal(firstCharObj, 0)

	out := make([]float64, 0, len(arr))
	for _, elem := range arr {
		resolved, err := d.resolve(elem)
		if err != nil {
			out = append(out, 0)
			continue
		}
		w, _ := num(resolved)
		out = append(out, w)
	}
	return out, firstChar, true
}

// MissingWidthField resolves a font's /FontDescriptor /MissingWidth
// entry, the width PDF readers use for codes absent from /Widths.
func (d *Document) MissingWidthField(fontDict Dict) (float64, bool) {
	descObj, err := d.resolve(fontDict["FontDescriptor"])
	if err != nil {
		return 0, false
	}
	desc, ok := descObj.(Dict)
	if !ok {
		return 0, false
	}
	mw, err := d.resolve(desc["MissingWidth"])
	if err != nil {
		return 0, false
	}
	v, ok := num(mw)
	return v, ok
}
