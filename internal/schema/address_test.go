package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnRoundTrip(t *testing.T) {
	for i := 0; i < 26; i++ {
		letter := ColumnLetter(i)
		assert.Equal(t, i, ColumnIndex(letter))
		assert.Equal(t, letter, ColumnLetter(ColumnIndex(letter)))
	}
}

func TestColumnIndexLowercase(t *testing.T) {
	assert.Equal(t, 0, ColumnIndex("a"))
	assert.Equal(t, 25, ColumnIndex("z"))
}

func TestColumnIndexEmpty(t *testing.T) {
	assert.Equal(t, -1, ColumnIndex(""))
}

func TestRangeFormats(t *testing.T) {
	assert.Equal(t, "Sheet1!G7", CellRange("G", 7))
	assert.Equal(t, "Sheet1!K:K", ColumnRange("K"))
	assert.Equal(t, "Sheet1!A3:Z3", RowRange(3))
}
