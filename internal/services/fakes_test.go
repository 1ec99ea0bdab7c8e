package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/campusunion/documentdesk/internal/store"
)

// fakeTable is an in-memory store.Table. Columns are keyed by letter; rows by
// 1-based row number. Every call is recorded in ops for ordering assertions.
// The mutex matters for the overview, which reads types concurrently.
type fakeTable struct {
	mu      sync.Mutex
	columns map[string][]string
	rows    map[int][]string

	writes   [][]store.CellWrite
	appended map[int][]string

	getRowsCalls int
	ops          *[]string

	batchWriteErr error
	appendErr     error
	getColumnErr  error
}

func newFakeTable() *fakeTable {
	return &fakeTable{
		columns:  map[string][]string{},
		rows:     map[int][]string{},
		appended: map[int][]string{},
	}
}

func (t *fakeTable) record(op string) {
	if t.ops != nil {
		*t.ops = append(*t.ops, op)
	}
}

func (t *fakeTable) GetColumn(_ context.Context, _, column string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("getColumn")
	if t.getColumnErr != nil {
		return nil, t.getColumnErr
	}
	return t.columns[column], nil
}

func (t *fakeTable) GetRows(_ context.Context, _ string, rows []int) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("getRows")
	t.getRowsCalls++
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = t.rows[r]
	}
	return out, nil
}

func (t *fakeTable) AppendRow(_ context.Context, _ string, row int, values []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("appendRow")
	if t.appendErr != nil {
		return t.appendErr
	}
	t.appended[row] = values
	return nil
}

func (t *fakeTable) BatchWrite(_ context.Context, _ string, writes []store.CellWrite) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("batchWrite")
	if t.batchWriteErr != nil {
		return t.batchWriteErr
	}
	t.writes = append(t.writes, writes)
	return nil
}

// fakeBlob is an in-memory store.Blob with deterministic generated ids.
type fakeBlob struct {
	folders map[string]string // "parent/name" -> id
	files   map[string][]byte
	updated map[string][]byte

	createdFiles   map[string]string // id -> name
	createdFolders []string

	nextID    int
	ops       *[]string
	updateErr error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{
		folders:      map[string]string{},
		files:        map[string][]byte{},
		updated:      map[string][]byte{},
		createdFiles: map[string]string{},
	}
}

func (b *fakeBlob) record(op string) {
	if b.ops != nil {
		*b.ops = append(*b.ops, op)
	}
}

func (b *fakeBlob) genID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *fakeBlob) FindFolder(_ context.Context, parentID, name string) (string, error) {
	b.record("findFolder")
	return b.folders[parentID+"/"+name], nil
}

func (b *fakeBlob) CreateFolder(_ context.Context, parentID, name string) (string, error) {
	b.record("createFolder")
	id := b.genID("folder")
	b.folders[parentID+"/"+name] = id
	b.createdFolders = append(b.createdFolders, parentID+"/"+name)
	return id, nil
}

func (b *fakeBlob) CreateFile(_ context.Context, _, name, _ string, body io.Reader) (string, error) {
	b.record("createFile")
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	id := b.genID("file")
	b.files[id] = data
	b.createdFiles[id] = name
	return id, nil
}

func (b *fakeBlob) Download(_ context.Context, fileID string) ([]byte, error) {
	b.record("download")
	data, ok := b.files[fileID]
	if !ok {
		return nil, fmt.Errorf("no such file %s", fileID)
	}
	return data, nil
}

func (b *fakeBlob) Update(_ context.Context, fileID, _ string, body io.Reader) error {
	b.record("update")
	if b.updateErr != nil {
		return b.updateErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.files[fileID] = data
	b.updated[fileID] = data
	return nil
}

// fakeCalendar records reminder insertions.
type fakeCalendar struct {
	dates []string
	link  string
}

func (c *fakeCalendar) InsertAllDayEvent(_ context.Context, date, _, _ string) (string, error) {
	c.dates = append(c.dates, date)
	return c.link, nil
}
