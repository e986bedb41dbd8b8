package interp

// stripInlineImages removes inline-image spans (BI ... ID <binary> EI)
// from a content stream before tokenization. The binary payload
// between ID and EI is not valid content-stream syntax and must never
// reach the lexer (spec §4.5, supplementing the distilled spec's
// silence on inline images): an embedded '(' or '<' inside the raster
// data would otherwise be mistaken for a string or hex-string opener
// and could desynchronize everything that follows.
//
// This is a best-effort byte scan, not a dictionary parser: it looks
// for the literal keywords BI, ID and EI bounded by whitespace, which
// is what every content stream generator in practice produces.
func stripInlineImages(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		if isWordAt(data, i, "BI") {
			idPos := findWordAfter(data, i+2, "ID")
			if idPos < 0 {
				// No matching ID: not a real inline image, copy as-is.
				out = append(out, data[i])
				i++
				continue
			}
			// Binary data starts one byte after "ID" and its trailing
			// whitespace separator.
			dataStart := idPos + 2
			if dataStart < len(data) && isStreamWhitespace(data[dataStart]) {
				dataStart++
			}
			eiPos := findWordAfter(data, dataStart, "EI")
			if eiPos < 0 {
				// Unterminated inline image: drop the remainder rather
				// than risk feeding binary garbage to the lexer.
				return out
			}
			i = eiPos + 2
			continue
		}
		out = append(out, data[i])
		i++
	}
	return out
}

func isStreamWhitespace(b byte) bool {
	switch b {
	case 0x00, '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

// isWordAt reports whether word occurs at data[pos:] bounded by
// whitespace (or start/end of buffer) on both sides.
func isWordAt(data []byte, pos int, word string) bool {
	if pos+len(word) > len(data) {
		return false
	}
	if string(data[pos:pos+len(word)]) != word {
		return false
	}
	if pos > 0 && !isStreamWhitespace(data[pos-1]) {
		return false
	}
	end := pos + len(word)
	if end < len(data) && !isStreamWhitespace(data[end]) {
		return false
	}
	return true
}

// findWordAfter scans forward from pos for the next whitespace-bounded
// occurrence of word, returning -1 if none is found.
func findWordAfter(data []byte, pos int, word string) int {
	for i := pos; i+len(word) <= len(data); i++ {
		if isWordAt(data, i, word) {
			return i
		}
	}
	return -1
}
