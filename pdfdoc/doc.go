// Package pdfdoc opens a real PDF file and yields each page's content
// stream bytes, ready for pdftable.Extract.
//
// It implements just enough of the PDF object model — objects,
// cross-reference tables (classic and compressed/object-stream), the
// page tree, and the stream filters content streams actually use — to
// walk from file bytes to a page's concatenated, decoded content
// stream. It is not a general-purpose PDF renderer: it has no
// knowledge of content-stream semantics, fonts, or color spaces; that
// is pdftable's job once it has the bytes.
package pdfdoc
