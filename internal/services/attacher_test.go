package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/pdf"
	"github.com/campusunion/documentdesk/internal/pdf/pdftest"
	"github.com/campusunion/documentdesk/internal/store"
)

func TestParseFileID(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"d path segment", "https://drive.google.com/file/d/abc123/view", "abc123"},
		{"d path trailing", "https://drive.google.com/file/d/abc123", "abc123"},
		{"id query param", "https://drive.google.com/open?id=xyz789", "xyz789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileID(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileIDUnparsable(t *testing.T) {
	for _, link := range []string{"", "https://example.com/nothing", "https://example.com/?other=1"} {
		_, err := ParseFileID(link)
		require.Error(t, err, "link %q", link)
		assert.Equal(t, docerr.KindUnparsableLink, docerr.KindOf(err))
	}
}

func attachFixture() (*fakeTable, *fakeBlob, *Attacher) {
	table := newFakeTable()
	table.columns["E"] = []string{"Log ID", "111"}
	table.rows[2] = []string{"Acme", "", "5", "https://drive.google.com/file/d/file-1/view", "111"}

	blob := newFakeBlob()
	blob.files["file-1"] = pdftest.Document(2)

	return table, blob, NewAttacher(table, blob, NewLocator(table))
}

func TestAttachFollowOnMergesAndWritesStatus(t *testing.T) {
	table, blob, attacher := attachFixture()
	var ops []string
	table.ops = &ops
	blob.ops = &ops

	status := []StatusField{{Key: "y", Value: "staff@union.org"}, {Key: "z", Value: "done"}}
	resp, err := attacher.AttachFollowOn(context.Background(), testSchema(), "111", pdftest.Document(3), status)
	require.NoError(t, err)

	assert.Equal(t, "https://drive.google.com/file/d/file-1/view", resp.GoogleDrive)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-test/edit#gid=0&range=A2", resp.GoogleSheets)

	// Pages appended, never a new file id.
	n, err := pdf.PageCount(blob.updated["file-1"])
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.Len(t, table.writes, 1)
	assert.Equal(t, []store.CellWrite{
		{Column: "B", Row: 2, Value: "staff@union.org"},
		{Column: "C", Row: 2, Value: "done"},
	}, table.writes[0])

	// Status cells land only after the upload confirms.
	assert.Equal(t, []string{"getColumn", "getRows", "download", "update", "batchWrite"}, ops)
}

func TestAttachFollowOnUploadFailureLeavesStatusUnchanged(t *testing.T) {
	table, blob, attacher := attachFixture()
	blob.updateErr = errors.New("quota exceeded")

	_, err := attacher.AttachFollowOn(context.Background(), testSchema(), "111",
		pdftest.Document(1), []StatusField{{Key: "y", Value: "staff"}})
	require.Error(t, err)
	assert.Empty(t, table.writes)
	assert.Empty(t, blob.updated)
}

func TestAttachFollowOnMissingLink(t *testing.T) {
	table, _, attacher := attachFixture()
	table.rows[2] = []string{"Acme", "", "5", "", "111"}

	_, err := attacher.AttachFollowOn(context.Background(), testSchema(), "111", pdftest.Document(1), nil)
	require.Error(t, err)
	assert.Equal(t, docerr.KindMissingAttachment, docerr.KindOf(err))
}

func TestAttachFollowOnUnknownRecord(t *testing.T) {
	_, _, attacher := attachFixture()
	_, err := attacher.AttachFollowOn(context.Background(), testSchema(), "999", pdftest.Document(1), nil)
	require.Error(t, err)
	assert.Equal(t, docerr.KindNotFound, docerr.KindOf(err))
}

func TestAttachFollowOnUnknownStatusKey(t *testing.T) {
	table, blob, attacher := attachFixture()
	var ops []string
	blob.ops = &ops

	_, err := attacher.AttachFollowOn(context.Background(), testSchema(), "111",
		pdftest.Document(1), []StatusField{{Key: "nope", Value: "v"}})
	require.Error(t, err)
	assert.Equal(t, docerr.KindSchema, docerr.KindOf(err))
	// Keys resolve before any blob traffic: the stored file is untouched and
	// the table stays clean.
	assert.Empty(t, ops)
	assert.Empty(t, blob.updated)
	assert.Empty(t, table.writes)
}
