package pdfdoc

import (
	"bytes"
	"fmt"
	"strconv"
)

// xrefEntry locates one indirect object: either a direct byte offset
// into the file, or a (streamObjNum, index) pair inside a compressed
// object stream (PDF 1.5 cross-reference streams / ObjStm).
type xrefEntry struct {
	offset     int64
	inStream   bool
	streamNum  int
	streamIdx  int
}

type xrefTable struct {
	entries map[int]xrefEntry
	trailer Dict
}

// loadXRef locates and parses the cross-reference section(s) of buf,
// following /Prev chains, classic tables and xref streams alike.
func loadXRef(buf []byte) (*xrefTable, error) {
	start, err := findStartXRef(buf)
	if err != nil {
		return recoverXRefByScanning(buf)
	}

	table := &xrefTable{entries: map[int]xrefEntry{}, trailer: Dict{}}
	seen := map[int64]bool{}
	for start >= 0 && !seen[start] {
		seen[start] = true
		trailer, next, err := parseXRefSection(buf, int(start), table)
		if err != nil {
			return recoverXRefByScanning(buf)
		}
		for k, v := range trailer {
			if _, exists := table.trailer[k]; !exists {
				table.trailer[k] = v
			}
		}
		start = next
	}
	if len(table.entries) == 0 {
		return recoverXRefByScanning(buf)
	}
	return table, nil
}

func findStartXRef(buf []byte) (int64, error) {
	tail := buf
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("pdfdoc: startxref not found")
	}
	p := newParser(tail, idx+len("startxref"))
	p.skipWhitespaceAndComments()
	n, ok := p.parseSignedInt()
	if !ok {
		return 0, fmt.Errorf("pdfdoc: malformed startxref offset")
	}
	return n, nil
}

// parseXRefSection parses one xref section at offset — either a
// classic "xref" table followed by "trailer", or a cross-reference
// stream object — merging entries into table (first writer for an
// object number wins, matching PDF's "newest revision first" rule
// when walking /Prev backwards... here we walk forward from the most
// recent, so first-seen wins naturally). Returns the trailer dict and
// the offset of /Prev, or -1 if none.
func parseXRefSection(buf []byte, offset int, table *xrefTable) (Dict, int64, error) {
	p := newParser(buf, offset)
	p.skipWhitespaceAndComments()
	if p.matchKeyword("xref") {
		return parseClassicXRefTable(buf, p, table)
	}
	obj, err := parseIndirectObject(buf, offset)
	if err != nil {
		return nil, -1, err
	}
	stm, ok := obj.(Stream)
	if !ok {
		return nil, -1, fmt.Errorf("pdfdoc: expected xref stream at %d", offset)
	}
	return parseXRefStream(stm, table)
}

func parseClassicXRefTable(buf []byte, p *parser, table *xrefTable) (Dict, int64, error) {
	for {
		p.skipWhitespaceAndComments()
		if p.matchKeyword("trailer") {
			p.skipWhitespaceAndComments()
			obj, err := p.parseObject()
			if err != nil {
				return nil, -1, err
			}
			trailer, _ := obj.(Dict)
			prev := int64(-1)
			if ref, ok := trailer["XRefStm"]; ok {
				if n, ok := num(ref); ok {
					// Hybrid-reference file: merge the xref-stream's
					// entries too (object streams for this revision
					// live there, not in the classic table).
					parseXRefSection(buf, int(n), table)
				}
			}
			if n, ok := num(trailer["Prev"]); ok {
				prev = int64(n)
			}
			return trailer, prev, nil
		}
		startNum, ok := p.parseSignedInt()
		if !ok {
			return nil, -1, fmt.Errorf("pdfdoc: malformed xref subsection header")
		}
		p.skipWhitespaceAndComments()
		count, ok := p.parseSignedInt()
		if !ok {
			return nil, -1, fmt.Errorf("pdfdoc: malformed xref subsection count")
		}
		for i := int64(0); i < count; i++ {
			p.skipWhitespaceAndComments()
			lineStart := p.pos
			if p.pos+20 > len(buf) {
				break
			}
			line := string(buf[lineStart : lineStart+20])
			offStr, genStr, kind := line[0:10], line[11:16], line[17:18]
			p.pos = lineStart + 20
			objNum := int(startNum + i)
			if _, exists := table.entries[objNum]; exists {
				continue
			}
			if kind == "n" {
				off, _ := strconv.ParseInt(offStr, 10, 64)
				table.entries[objNum] = xrefEntry{offset: off}
			}
		}
	}
}

// parseXRefStream parses a PDF 1.5+ cross-reference stream: a Stream
// whose decoded body packs fixed-width (type, field2, field3) rows
// per /W, describing free/in-use/compressed objects.
func parseXRefStream(stm Stream, table *xrefTable) (Dict, int64, error) {
	data, err := decodeStream(stm)
	if err != nil {
		return nil, -1, err
	}
	wArr, _ := stm.Dict["W"].(Array)
	if len(wArr) != 3 {
		return nil, -1, fmt.Errorf("pdfdoc: xref stream missing /W")
	}
	w0, w1, w2 := intVal(wArr[0], 1), intVal(wArr[1], 1), intVal(wArr[2], 1)
	rowLen := w0 + w1 + w2

	var index []int
	if idxArr, ok := stm.Dict["Index"].(Array); ok {
		for _, v := range idxArr {
			index = append(index, intVal(v, 0))
		}
	} else {
		size := intVal(stm.Dict["Size"], 0)
		index = []int{0, size}
	}

	pos := 0
	for i := 0; i+1 < len(index); i += 2 {
		startNum, count := index[i], index[i+1]
		for j := 0; j < count; j++ {
			if pos+rowLen > len(data) {
				break
			}
			row := data[pos : pos+rowLen]
			pos += rowLen
			typ := 1
			if w0 > 0 {
				typ = int(beUint(row[:w0]))
			}
			f2 := beUint(row[w0 : w0+w1])
			f3 := beUint(row[w0+w1 : w0+w1+w2])
			objNum := startNum + j
			if _, exists := table.entries[objNum]; exists {
				continue
			}
			switch typ {
			case 1:
				table.entries[objNum] = xrefEntry{offset: int64(f2)}
			case 2:
				table.entries[objNum] = xrefEntry{inStream: true, streamNum: int(f2), streamIdx: int(f3)}
			}
		}
	}

	prev := int64(-1)
	if n, ok := num(stm.Dict["Prev"]); ok {
		prev = int64(n)
	}
	return stm.Dict, prev, nil
}

func beUint(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// recoverXRefByScanning rebuilds a best-effort xref table by scanning
// the whole file for "N G obj" headers, the standard fallback when a
// PDF's xref table is missing or damaged.
func recoverXRefByScanning(buf []byte) (*xrefTable, error) {
	table := &xrefTable{entries: map[int]xrefEntry{}, trailer: Dict{}}
	for i := 0; i < len(buf); i++ {
		if buf[i] != 'o' || !bytes.HasPrefix(buf[i:], []byte("obj")) {
			continue
		}
		// Walk backwards over "N G " preceding "obj".
		j := i
		for j > 0 && isSpace(buf[j-1]) {
			j--
		}
		genEnd := j
		for j > 0 && buf[j-1] >= '0' && buf[j-1] <= '9' {
			j--
		}
		genStart := j
		for j > 0 && isSpace(buf[j-1]) {
			j--
		}
		numEnd := j
		for j > 0 && buf[j-1] >= '0' && buf[j-1] <= '9' {
			j--
		}
		numStart := j
		if numStart == numEnd || genStart == genEnd {
			continue
		}
		objNum, err := strconv.Atoi(string(buf[numStart:numEnd]))
		if err != nil {
			continue
		}
		table.entries[objNum] = xrefEntry{offset: int64(numStart)}
	}

	idx := bytes.LastIndex(buf, []byte("trailer"))
	if idx >= 0 {
		p := newParser(buf, idx+len("trailer"))
		p.skipWhitespaceAndComments()
		if obj, err := p.parseObject(); err == nil {
			if d, ok := obj.(Dict); ok {
				table.trailer = d
			}
		}
	}
	if _, ok := table.trailer["Root"]; !ok {
		// No trailer, or it lacks /Root: find a /Type /Catalog object
		// directly, which recovery viewers do as a last resort.
		for num := range table.entries {
			if obj, err := resolveDirect(buf, table, num); err == nil {
				if d, ok := obj.(Dict); ok {
					if t, _ := nameVal(d["Type"]); t == "Catalog" {
						table.trailer["Root"] = Ref{Num: num}
						break
					}
				}
			}
		}
	}
	return table, nil
}

func resolveDirect(buf []byte, table *xrefTable, objNum int) (Object, error) {
	entry, ok := table.entries[objNum]
	if !ok || entry.inStream {
		return nil, fmt.Errorf("pdfdoc: object %d not directly available", objNum)
	}
	return parseIndirectObject(buf, int(entry.offset))
}
