// Package workbook renders []model.Table to a minimal .xlsx package:
// one worksheet per table, with row_span/col_span applied as
// <mergeCells> directives.
//
// It mirrors the XML shapes the teacher's xlsx package reads
// (xl/workbook.xml, xl/worksheets/sheetN.xml, the package-level and
// part-level .rels, [Content_Types].xml) but as a writer: encoding/xml
// builds each part and archive/zip packages them into the OOXML
// container. Cell text is written as inline strings; no
// xl/sharedStrings.xml part is produced.
package workbook
