package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusunion/documentdesk/internal/models"
)

func TestProjectOrderingAndHiddenFields(t *testing.T) {
	rec := models.LogicalRecord{
		RowNumber: 2,
		Cells:     []string{"1", "2", "3", "http://link", "111"},
	}

	proj := Project(testSchema(), rec, false)
	assert.Equal(t, []string{"View Document", "X", "Z"}, proj.Headers)
	assert.Equal(t, []string{"http://link", "1", "3"}, proj.Values)
	assert.Nil(t, proj.DataTypes)
}

func TestProjectWithTypes(t *testing.T) {
	rec := models.LogicalRecord{RowNumber: 2, Cells: []string{"1", "2", "3", "http://link", "111"}}

	proj := Project(testSchema(), rec, true)
	assert.Equal(t, []string{"link", "string", "number"}, proj.DataTypes)
}

func TestProjectShortRowDefaultsToEmpty(t *testing.T) {
	rec := models.LogicalRecord{RowNumber: 2, Cells: []string{"1"}}

	proj := Project(testSchema(), rec, false)
	assert.Equal(t, []string{"", "1", ""}, proj.Values)
}
