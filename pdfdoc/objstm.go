package pdfdoc

import "fmt"

// objStmCache memoizes decoded object streams: a PDF typically packs
// many small objects (page dicts, font dicts) into one compressed
// ObjStm, and the page walk resolves several of them.
type objStmCache struct {
	doc    *Document
	cached map[int][]Object
}

func newObjStmCache(doc *Document) *objStmCache {
	return &objStmCache{doc: doc, cached: map[int][]Object{}}
}

// resolveCompressed returns the idx'th object stored in the object
// stream at object number streamNum (PDF 32000-1 §7.5.7): the stream
// dict gives N (object count) and First (offset of the first object's
// bytes); the header preceding First lists each object's number and
// byte offset.
func (c *objStmCache) resolveCompressed(streamNum, idx int) (Object, error) {
	objs, ok := c.cached[streamNum]
	if !ok {
		var err error
		objs, err = c.decodeObjStm(streamNum)
		if err != nil {
			return nil, err
		}
		c.cached[streamNum] = objs
	}
	if idx < 0 || idx >= len(objs) {
		return nil, fmt.Errorf("pdfdoc: object stream %d has no index %d", streamNum, idx)
	}
	return objs[idx], nil
}

func (c *objStmCache) decodeObjStm(streamNum int) ([]Object, error) {
	raw, err := c.doc.resolveRaw(streamNum)
	if err != nil {
		return nil, err
	}
	stm, ok := raw.(Stream)
	if !ok {
		return nil, fmt.Errorf("pdfdoc: object %d is not a stream", streamNum)
	}
	data, err := decodeStream(stm)
	if err != nil {
		return nil, err
	}
	n := intVal(stm.Dict["N"], 0)
	first := intVal(stm.Dict["First"], 0)

	header := newParser(data, 0)
	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		header.skipWhitespaceAndComments()
		header.parseSignedInt() // object number, unused: index order matches
		header.skipWhitespaceAndComments()
		off, _ := header.parseSignedInt()
		offsets[i] = int(off)
	}

	objs := make([]Object, n)
	for i, off := range offsets {
		p := newParser(data, first+off)
		obj, err := p.parseObject()
		if err != nil {
			return nil, fmt.Errorf("pdfdoc: object stream %d entry %d: %w", streamNum, i, err)
		}
		objs[i] = obj
	}
	return objs, nil
}
