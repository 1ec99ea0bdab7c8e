package schema

import "fmt"

// SheetName is the tab every document spreadsheet keeps its rows on.
const SheetName = "Sheet1"

// ColumnIndex converts a single-letter column address to a zero-based index
// (A -> 0, B -> 1, ...). Only columns A-Z exist in this system; Registry
// validation rejects anything wider at startup.
func ColumnIndex(letter string) int {
	if letter == "" {
		return -1
	}
	c := letter[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return int(c - 'A')
}

// ColumnLetter is the inverse of ColumnIndex (0 -> "A").
func ColumnLetter(index int) string {
	return string(rune('A' + index))
}

// CellRange formats a single-cell range, e.g. "Sheet1!G7".
func CellRange(column string, row int) string {
	return fmt.Sprintf("%s!%s%d", SheetName, column, row)
}

// ColumnRange formats a whole-column range, e.g. "Sheet1!K:K".
func ColumnRange(column string) string {
	return fmt.Sprintf("%s!%s:%s", SheetName, column, column)
}

// RowRange formats a full-width single-row range, e.g. "Sheet1!A7:Z7".
func RowRange(row int) string {
	return fmt.Sprintf("%s!A%d:Z%d", SheetName, row, row)
}
