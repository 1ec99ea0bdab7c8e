package gsuite

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/campusunion/documentdesk/internal/docerr"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveStore adapts the Drive API to store.Blob.
type DriveStore struct {
	svc *drive.Service
}

// NewDriveStore wraps a Drive service.
func NewDriveStore(svc *drive.Service) *DriveStore {
	return &DriveStore{svc: svc}
}

func (s *DriveStore) FindFolder(ctx context.Context, parentID, name string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType = '%s' and name = '%s' and trashed = false",
		parentID, folderMimeType, escapeQueryValue(name))
	resp, err := s.svc.Files.List().Q(q).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", docerr.Wrap(docerr.KindRemoteBlob, err, "failed to list folders under %s", parentID)
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

func (s *DriveStore) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	f := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}
	created, err := s.svc.Files.Create(f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", docerr.Wrap(docerr.KindRemoteBlob, err, "failed to create folder %q", name)
	}
	return created.Id, nil
}

func (s *DriveStore) CreateFile(ctx context.Context, parentID, name, mimeType string, body io.Reader) (string, error) {
	f := &drive.File{
		Name:    name,
		Parents: []string{parentID},
	}
	created, err := s.svc.Files.Create(f).
		Media(body, googleapi.ContentType(mimeType)).
		Fields("id").Context(ctx).Do()
	if err != nil {
		return "", docerr.Wrap(docerr.KindRemoteBlob, err, "failed to upload file %q", name)
	}
	return created.Id, nil
}

func (s *DriveStore) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindRemoteBlob, err, "failed to download file %s", fileID)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindRemoteBlob, err, "failed to read file %s", fileID)
	}
	return data, nil
}

func (s *DriveStore) Update(ctx context.Context, fileID, mimeType string, body io.Reader) error {
	_, err := s.svc.Files.Update(fileID, &drive.File{}).
		Media(body, googleapi.ContentType(mimeType)).
		Context(ctx).Do()
	if err != nil {
		return docerr.Wrap(docerr.KindRemoteBlob, err, "failed to update file %s", fileID)
	}
	return nil
}

// escapeQueryValue escapes a name for use inside a Drive query literal.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
