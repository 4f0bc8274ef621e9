package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/blobstore"
	"github.com/codehive-ide/codehive-backend/internal/logging"
	"github.com/codehive-ide/codehive-backend/internal/projects/domain"
)

// Index is the slice of the project repository holding the file-name
// ledger. All its mutations are atomic single-document updates.
type Index interface {
	FindProject(ctx context.Context, projectID string) (*domain.Project, error)
	AddFileEntry(ctx context.Context, projectID string, entry domain.FileEntry) (bool, error)
	RemoveFileEntry(ctx context.Context, projectID, fileName string) error
}

// Blobs is the slice of the blob store holding file bytes.
type Blobs interface {
	Put(ctx context.Context, projectID, fileName string, content []byte) error
	Get(ctx context.Context, projectID, fileName string) ([]byte, error)
	Delete(ctx context.Context, projectID, fileName string) error
}

// FileService coordinates the blob store and the project file index. It
// owns neither store; the two updates are applied best-effort since there
// is no transaction spanning them.
type FileService struct {
	index Index
	blobs Blobs
}

func NewFileService(index Index, blobs Blobs) *FileService {
	return &FileService{index: index, blobs: blobs}
}

// CreateFile writes the blob first (authoritative content), then appends
// the index entry unless the name is already present. Re-creating an
// existing file overwrites the blob without duplicating the entry.
func (s *FileService) CreateFile(ctx context.Context, projectID, fileName, content string) error {
	projectID = strings.TrimSpace(projectID)
	fileName = strings.TrimSpace(fileName)
	if projectID == "" || fileName == "" {
		return apperr.Validationf("project ID and file name are required")
	}

	if _, err := s.index.FindProject(ctx, projectID); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return apperr.NotFoundf("project not found")
		}
		return apperr.Storagef(err, "failed to resolve project")
	}

	if err := s.blobs.Put(ctx, projectID, fileName, []byte(content)); err != nil {
		return apperr.Storagef(err, "failed to store file content")
	}

	if _, err := s.index.AddFileEntry(ctx, projectID, domain.FileEntry{FileName: fileName, Content: content}); err != nil {
		return apperr.Storagef(err, "failed to update file index")
	}

	return nil
}

// GetFile reads from the blob store only. The index's cached content is
// never consulted.
func (s *FileService) GetFile(ctx context.Context, projectID, fileName string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	fileName = strings.TrimSpace(fileName)
	if projectID == "" || fileName == "" {
		return "", apperr.Validationf("project ID and file name are required")
	}

	data, err := s.blobs.Get(ctx, projectID, fileName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return "", apperr.NotFoundf("file not found")
	}
	if err != nil {
		return "", apperr.Storagef(err, "failed to read file content")
	}
	return string(data), nil
}

// DeleteFile removes the blob and the index entry. Both steps are
// attempted even if one fails; an absent blob is not an error. Any real
// failure on either side is surfaced so the caller can retry the
// idempotent remainder.
func (s *FileService) DeleteFile(ctx context.Context, projectID, fileName string) error {
	projectID = strings.TrimSpace(projectID)
	fileName = strings.TrimSpace(fileName)
	if projectID == "" || fileName == "" {
		return apperr.Validationf("project ID and file name are required")
	}

	if _, err := s.index.FindProject(ctx, projectID); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return apperr.NotFoundf("project not found")
		}
		return apperr.Storagef(err, "failed to resolve project")
	}

	log := logging.NewLogger(ctx)

	blobErr := s.blobs.Delete(ctx, projectID, fileName)
	if errors.Is(blobErr, blobstore.ErrNotFound) {
		blobErr = nil
	}
	if blobErr != nil {
		log.Errorf("delete_file", "blob delete %s/%s failed: %v", projectID, fileName, blobErr)
	}

	idxErr := s.index.RemoveFileEntry(ctx, projectID, fileName)
	if errors.Is(idxErr, domain.ErrProjectNotFound) {
		// Project vanished between the existence check and the pull;
		// the entry is gone either way.
		idxErr = nil
	}
	if idxErr != nil {
		log.Errorf("delete_file", "index removal %s/%s failed: %v", projectID, fileName, idxErr)
	}

	if blobErr != nil || idxErr != nil {
		return apperr.Storagef(errors.Join(blobErr, idxErr), "failed to delete file")
	}
	return nil
}
