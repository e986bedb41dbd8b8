package workbook

import "fmt"

// indexToColumn converts a 0-indexed column number to its spreadsheet
// letter(s): 0=A, 1=B, ..., 25=Z, 26=AA. Mirrors the teacher xlsx
// reader's IndexToColumn, run in reverse.
func indexToColumn(index int) string {
	if index < 0 {
		return ""
	}
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// cellRef builds a cell reference like "A1" from 0-indexed
// coordinates.
func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", indexToColumn(col), row+1)
}

// rangeRef builds a merge range reference like "A1:B2".
func rangeRef(col, row, endCol, endRow int) string {
	return cellRef(col, row) + ":" + cellRef(endCol, endRow)
}
