package ocrfallback

import "github.com/SUGAM-ARORA/pdftable/pdfdoc"

// ImageStreams returns the decoded bytes of every Image XObject in
// resources, in no particular order (Go map iteration over the
// resolved /XObject dict). A Client.RecognizeImage call per element is
// the expected consumer.
func ImageStreams(doc *pdfdoc.Document, resources pdfdoc.Dict) ([][]byte, error) {
	if resources == nil {
		return nil, nil
	}
	xobjects, err := doc.ResolveDict(resources["XObject"])
	if err != nil {
		return nil, nil
	}
	var out [][]byte
	for _, ref := range xobjects {
		obj, err := doc.ResolveObject(ref)
		if err != nil {
			continue
		}
		stm, ok := obj.(pdfdoc.Stream)
		if !ok {
			continue
		}
		if t, _ := stm.Dict["Subtype"].(pdfdoc.Name); t != "Image" {
			continue
		}
		data, err := doc.DecodeStream(stm)
		if err != nil {
			continue
		}
		out = append(out, data)
	}
	return out, nil
}
