package workbook

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// Write renders tables to a minimal .xlsx package, one worksheet per
// table, and streams the zip container to w. Covered cells (absorbed
// into a preceding cell's span) are omitted from sheetData and folded
// into a <mergeCells> entry instead.
func Write(w io.Writer, tables []model.Table) error {
	zw := zip.NewWriter(w)

	if err := writePart(zw, "[Content_Types].xml", contentTypesPart(len(tables))); err != nil {
		return err
	}
	if err := writePart(zw, "_rels/.rels", packageRelsPart()); err != nil {
		return err
	}
	if err := writePart(zw, "xl/workbook.xml", workbookPart(len(tables))); err != nil {
		return err
	}
	if err := writePart(zw, "xl/_rels/workbook.xml.rels", workbookRelsPart(len(tables))); err != nil {
		return err
	}
	for i, t := range tables {
		name := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		if err := writePart(zw, name, worksheetPart(t)); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writePart(zw *zip.Writer, name string, body []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("workbook: creating %s: %w", name, err)
	}
	_, err = f.Write(body)
	return err
}

func marshalPart(v any) []byte {
	out, err := xml.MarshalIndent(v, "", "")
	if err != nil {
		// Every part type here is a fixed, well-formed struct; a
		// marshal failure would be a programming error, not runtime
		// input we need to recover from.
		panic(fmt.Sprintf("workbook: marshal failed: %v", err))
	}
	return append([]byte(xml.Header), out...)
}

func contentTypesPart(sheetCount int) []byte {
	ct := contentTypesXML{
		Defaults: []defaultXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
	}
	ct.Overrides = append(ct.Overrides, overrideTypeXML{
		PartName:    "/xl/workbook.xml",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml",
	})
	for i := 0; i < sheetCount; i++ {
		ct.Overrides = append(ct.Overrides, overrideTypeXML{
			PartName:    fmt.Sprintf("/xl/worksheets/sheet%d.xml", i+1),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml",
		})
	}
	return marshalPart(ct)
}

func packageRelsPart() []byte {
	return marshalPart(relationshipsXML{
		Relationship: []relationshipXML{
			{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument", Target: "xl/workbook.xml"},
		},
	})
}

func workbookPart(sheetCount int) []byte {
	wb := workbookXML{XmlnsR: "http://schemas.openxmlformats.org/officeDocument/2006/relationships"}
	for i := 0; i < sheetCount; i++ {
		wb.Sheets.Sheet = append(wb.Sheets.Sheet, sheetRefXML{
			Name:    fmt.Sprintf("Table%d", i+1),
			SheetID: i + 1,
			RID:     fmt.Sprintf("rId%d", i+1),
		})
	}
	return marshalPart(wb)
}

func workbookRelsPart(sheetCount int) []byte {
	rels := relationshipsXML{}
	for i := 0; i < sheetCount; i++ {
		rels.Relationship = append(rels.Relationship, relationshipXML{
			ID:     fmt.Sprintf("rId%d", i+1),
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet",
			Target: fmt.Sprintf("worksheets/sheet%d.xml", i+1),
		})
	}
	return marshalPart(rels)
}

func worksheetPart(t model.Table) []byte {
	ws := worksheetXML{}
	rowCount, colCount := t.RowCount(), t.ColCount()
	if rowCount > 0 && colCount > 0 {
		ws.Dimension.Ref = rangeRef(0, 0, colCount-1, rowCount-1)
	}

	var merges []mergeCellXML
	for ri, row := range t.Rows {
		xmlRow := rowXML{R: ri + 1}
		for ci, cell := range row {
			if cell.Covered {
				continue
			}
			xmlRow.Cells = append(xmlRow.Cells, cellXML{
				R:  cellRef(ci, ri),
				T:  "inlineStr",
				Is: &inlineStrXML{T: cell.Text},
			})
			if cell.RowSpan > 1 || cell.ColSpan > 1 {
				endCol := ci + max(cell.ColSpan, 1) - 1
				endRow := ri + max(cell.RowSpan, 1) - 1
				merges = append(merges, mergeCellXML{Ref: rangeRef(ci, ri, endCol, endRow)})
			}
		}
		ws.SheetData.Rows = append(ws.SheetData.Rows, xmlRow)
	}
	if len(merges) > 0 {
		ws.MergeCells = &mergeCellsXML{Count: len(merges), MergeCell: merges}
	}
	return marshalPart(ws)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
