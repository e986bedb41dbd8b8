package ocrfallback

import "github.com/SUGAM-ARORA/pdftable/pdfdoc"

// ShouldFallback reports whether a page is a candidate for OCR: the
// core pipeline recovered zero text fragments (fragmentCount == 0)
// and the page's resources list at least one /Image XObject. A page
// with fragments but no tables is a layout miss, not an image-only
// page, and is left alone — OCR text would have nothing to merge
// against and isn't a substitute for table structure anyway.
func ShouldFallback(doc *pdfdoc.Document, resources pdfdoc.Dict, fragmentCount int) bool {
	if fragmentCount > 0 {
		return false
	}
	return hasImageXObject(doc, resources)
}

func hasImageXObject(doc *pdfdoc.Document, resources pdfdoc.Dict) bool {
	if resources == nil {
		return false
	}
	xobjects, err := doc.ResolveDict(resources["XObject"])
	if err != nil {
		return false
	}
	for _, ref := range xobjects {
		obj, err := doc.ResolveObject(ref)
		if err != nil {
			continue
		}
		stm, ok := obj.(pdfdoc.Stream)
		if !ok {
			continue
		}
		if t, _ := stm.Dict["Subtype"].(pdfdoc.Name); t == "Image" {
			return true
		}
	}
	return false
}
