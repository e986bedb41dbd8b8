package httpapi

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/SUGAM-ARORA/pdftable/model"
)

func elem(tag atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag, Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func renderDoc(w io.Writer, title string, body *html.Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	htmlNode := elem(atom.Html, nil,
		elem(atom.Head, nil,
			elem(atom.Title, nil, text(title)),
		),
		body,
	)
	doc.AppendChild(htmlNode)
	return html.Render(w, doc)
}

// renderUploadForm writes the drag-and-drop upload page.
func renderUploadForm(w io.Writer) error {
	form := elem(atom.Form, []html.Attribute{
		attr("method", "post"),
		attr("action", "/"),
		attr("enctype", "multipart/form-data"),
	},
		elem(atom.Input, []html.Attribute{attr("type", "file"), attr("name", "pdf"), attr("accept", "application/pdf")}),
		elem(atom.Button, []html.Attribute{attr("type", "submit")}, text("Extract tables")),
	)
	body := elem(atom.Body, nil,
		elem(atom.H1, nil, text("pdftable")),
		elem(atom.P, nil, text("Drop a PDF to reconstruct its tables.")),
		form,
	)
	return renderDoc(w, "pdftable", body)
}

// renderResultsPage writes one HTML table per reconstructed table,
// grouped under its source page number.
func renderResultsPage(w io.Writer, results []pageResult) error {
	var sections []*html.Node
	for _, r := range results {
		sections = append(sections, renderPageSection(r))
	}
	body := elem(atom.Body, nil, append([]*html.Node{
		elem(atom.H1, nil, text("Extraction results")),
	}, sections...)...)
	return renderDoc(w, "pdftable results", body)
}

func renderPageSection(r pageResult) *html.Node {
	heading := elem(atom.H2, nil, text(fmt.Sprintf("Page %d", r.pageNumber)))
	if len(r.tables) == 0 {
		return elem(atom.Div, nil, heading, elem(atom.P, nil, text("No tables found.")))
	}
	children := []*html.Node{heading}
	for ti, t := range r.tables {
		children = append(children,
			elem(atom.H3, nil, text(fmt.Sprintf("Table %d (confidence %.2f)", ti+1, t.Confidence))),
			renderTable(t),
		)
	}
	return elem(atom.Div, nil, children...)
}

func renderTable(t model.Table) *html.Node {
	var rows []*html.Node
	for _, row := range t.Rows {
		var cells []*html.Node
		for _, cell := range row {
			if cell.Covered {
				continue
			}
			attrs := []html.Attribute{}
			if cell.ColSpan > 1 {
				attrs = append(attrs, attr("colspan", fmt.Sprintf("%d", cell.ColSpan)))
			}
			if cell.RowSpan > 1 {
				attrs = append(attrs, attr("rowspan", fmt.Sprintf("%d", cell.RowSpan)))
			}
			cells = append(cells, elem(atom.Td, attrs, text(cell.Text)))
		}
		rows = append(rows, elem(atom.Tr, nil, cells...))
	}
	return elem(atom.Table, []html.Attribute{attr("border", "1")}, rows...)
}
