package pdfdoc

import (
	"fmt"
	"os"
)

// Document is an opened PDF file: its cross-reference table plus
// enough of the object graph resolved lazily to walk the page tree.
type Document struct {
	buf    []byte
	xref   *xrefTable
	objStm *objStmCache
	pages  []pageNode
}

// pageNode is one leaf of the resolved page tree, with resources
// already merged down from its ancestors (PDF resource inheritance,
// §7.7.3.4).
type pageNode struct {
	dict      Dict
	resources Dict
}

// Open reads path and resolves its cross-reference table and page
// tree. It does not decode any content streams yet; call Page to pull
// one page's bytes on demand.
func Open(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: %w", err)
	}
	return OpenBytes(buf)
}

// OpenBytes is Open for an already-read file.
func OpenBytes(buf []byte) (*Document, error) {
	xt, err := loadXRef(buf)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: %w", err)
	}
	doc := &Document{buf: buf, xref: xt}
	doc.objStm = newObjStmCache(doc)

	root, ok := doc.xref.trailer["Root"]
	if !ok {
		return nil, fmt.Errorf("pdfdoc: trailer has no /Root")
	}
	catalog, err := doc.resolve(root)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: resolving catalog: %w", err)
	}
	catalogDict, ok := catalog.(Dict)
	if !ok {
		return nil, fmt.Errorf("pdfdoc: /Root is not a dictionary")
	}
	pagesRoot, err := doc.resolve(catalogDict["Pages"])
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: resolving page tree root: %w", err)
	}
	var pages []pageNode
	if err := doc.walkPageTree(pagesRoot, Dict{}, &pages, map[int]bool{}); err != nil {
		return nil, fmt.Errorf("pdfdoc: walking page tree: %w", err)
	}
	doc.pages = pages
	return doc, nil
}

// PageCount returns the number of leaf pages found in the page tree.
func (d *Document) PageCount() int { return len(d.pages) }

// resolveRaw resolves object number num at generation 0 to its raw
// Object, consulting compressed object streams when the xref table
// says the object lives in one.
func (d *Document) resolveRaw(num int) (Object, error) {
	entry, ok := d.xref.entries[num]
	if !ok {
		return nil, fmt.Errorf("pdfdoc: object %d not in xref table", num)
	}
	if entry.inStream {
		return d.objStm.resolveCompressed(entry.streamNum, entry.streamIdx)
	}
	return parseIndirectObject(d.buf, int(entry.offset))
}

// resolve follows o if it is a Ref, one level (PDF references are
// never chained beyond one indirection).
func (d *Document) resolve(o Object) (Object, error) {
	if ref, ok := o.(Ref); ok {
		return d.resolveRaw(ref.Num)
	}
	return o, nil
}

func (d *Document) resolveDict(o Object) (Dict, error) {
	r, err := d.resolve(o)
	if err != nil {
		return nil, err
	}
	dict, ok := r.(Dict)
	if !ok {
		if stm, ok := r.(Stream); ok {
			return stm.Dict, nil
		}
		return nil, fmt.Errorf("pdfdoc: expected dictionary, got %T", r)
	}
	return dict, nil
}

// walkPageTree recursively visits /Pages nodes, inheriting
// /Resources, /MediaBox and /Rotate down to each /Page leaf (cycle
// guard keyed by object identity isn't available post-resolve, so we
// guard by node count instead via the visited set keyed on dict
// pointer identity is not possible for value Dicts — instead we cap
// recursion via a depth-independent visited-Kids-ref set).
func (d *Document) walkPageTree(node Object, inherited Dict, out *[]pageNode, visited map[int]bool) error {
	dict, err := d.resolveDict(node)
	if err != nil {
		return err
	}
	merged := mergeInherited(inherited, dict)

	if t, _ := nameVal(dict["Type"]); t == "Page" || dict["Kids"] == nil {
		resources, _ := d.resolveDict(merged["Resources"])
		*out = append(*out, pageNode{dict: dict, resources: resources})
		return nil
	}

	kidsObj, err := d.resolve(dict["Kids"])
	if err != nil {
		return err
	}
	kids, _ := kidsObj.(Array)
	for _, kid := range kids {
		if ref, ok := kid.(Ref); ok {
			if visited[ref.Num] {
				continue // guards against a cyclic page tree
			}
			visited[ref.Num] = true
		}
		if err := d.walkPageTree(kid, merged, out, visited); err != nil {
			return err
		}
	}
	return nil
}

func mergeInherited(parent, child Dict) Dict {
	merged := Dict{}
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}

// Page returns the i'th page's (0-based) decoded, concatenated
// content stream and its /Font resource dictionary, ready to feed
// fontmetrics.Load and pdftable.Extract.
func (d *Document) Page(i int) ([]byte, Dict, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, nil, fmt.Errorf("pdfdoc: page index %d out of range (have %d)", i, len(d.pages))
	}
	p := d.pages[i]

	contentsObj, err := d.resolve(p.dict["Contents"])
	if err != nil {
		return nil, nil, fmt.Errorf("pdfdoc: resolving /Contents: %w", err)
	}

	var streams []Object
	switch c := contentsObj.(type) {
	case Stream:
		streams = []Object{c}
	case Array:
		for _, ref := range c {
			resolved, err := d.resolve(ref)
			if err != nil {
				return nil, nil, err
			}
			streams = append(streams, resolved)
		}
	case nil:
		// Pages with no marking content (e.g. blank pages) are valid.
	default:
		return nil, nil, fmt.Errorf("pdfdoc: unexpected /Contents type %T", c)
	}

	var out []byte
	for i, s := range streams {
		stm, ok := s.(Stream)
		if !ok {
			continue
		}
		decoded, err := decodeStream(stm)
		if err != nil {
			return nil, nil, fmt.Errorf("pdfdoc: decoding content stream %d: %w", i, err)
		}
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, decoded...)
	}

	var fonts Dict
	if p.resources != nil {
		fonts, _ = d.resolveDict(p.resources["Font"])
	}
	return out, fonts, nil
}

// PageResources returns the i'th page's full merged resource
// dictionary, e.g. for locating /XObject image entries.
func (d *Document) PageResources(i int) (Dict, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("pdfdoc: page index %d out of range", i)
	}
	return d.pages[i].resources, nil
}
