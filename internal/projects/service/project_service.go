package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/logging"
	"github.com/codehive-ide/codehive-backend/internal/projects/domain"
)

// Store is the slice of the project repository this service needs.
type Store interface {
	EnsureUser(ctx context.Context, identityToken, email string) (*domain.User, error)
	FindUserByToken(ctx context.Context, identityToken string) (*domain.User, error)
	AttachProject(ctx context.Context, userID, projectID string) error
	DetachProject(ctx context.Context, userID, projectID string) error
	InsertProject(ctx context.Context, p *domain.Project) error
	FindProject(ctx context.Context, projectID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) (bool, error)
	ListProjectsByIDs(ctx context.Context, projectIDs []string) ([]domain.Project, error)
}

// BlobCleaner is the slice of the blob store used for cascade cleanup.
type BlobCleaner interface {
	DeletePrefix(ctx context.Context, projectID string) error
}

// ProjectService orchestrates create/list/delete of projects, keeping the
// project record and the owning user's project set consistent.
type ProjectService struct {
	store Store
	blobs BlobCleaner
}

func NewProjectService(store Store, blobs BlobCleaner) *ProjectService {
	return &ProjectService{store: store, blobs: blobs}
}

// CreateProject finds or creates the user behind identityToken, then
// creates a project owned by it and appends the reference to the user's
// set. If project insertion fails after user creation, the user record
// stays behind; EnsureUser is idempotent so the next retry reuses it.
func (s *ProjectService) CreateProject(ctx context.Context, name, identityToken, email string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	identityToken = strings.TrimSpace(identityToken)
	email = strings.TrimSpace(email)
	if name == "" || identityToken == "" || email == "" {
		return nil, apperr.Validationf("project name, user ID, and email are required")
	}

	user, err := s.store.EnsureUser(ctx, identityToken, email)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to resolve user")
	}

	project := domain.NewProject(uuid.NewString(), name, user.UserID)
	if err := s.store.InsertProject(ctx, project); err != nil {
		return nil, apperr.Storagef(err, "failed to create project")
	}

	if err := s.store.AttachProject(ctx, user.UserID, project.ProjectID); err != nil {
		return nil, apperr.Storagef(err, "failed to attach project to user")
	}

	return project, nil
}

// ListProjects resolves the user and returns its owned projects with
// their file lists.
func (s *ProjectService) ListProjects(ctx context.Context, identityToken string) ([]domain.Project, error) {
	identityToken = strings.TrimSpace(identityToken)
	if identityToken == "" {
		return nil, apperr.Validationf("user ID is required")
	}

	user, err := s.store.FindUserByToken(ctx, identityToken)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperr.NotFoundf("user not found")
	}
	if err != nil {
		return nil, apperr.Storagef(err, "failed to resolve user")
	}

	projects, err := s.store.ListProjectsByIDs(ctx, user.ProjectIDs)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to fetch projects")
	}
	return projects, nil
}

// DeleteProject removes the metadata record first, then sweeps the blob
// namespace. Metadata deletion is authoritative: a cleanup failure is
// surfaced as a storage error but does not resurrect the record.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return apperr.Validationf("project ID is required")
	}

	log := logging.NewLogger(ctx)

	project, err := s.store.FindProject(ctx, projectID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return apperr.NotFoundf("project not found")
	}
	if err != nil {
		return apperr.Storagef(err, "failed to resolve project")
	}

	// Detach from owner first; a user that is already gone or already
	// detached does not block deletion.
	if err := s.store.DetachProject(ctx, project.UserID, projectID); err != nil {
		log.Warnf("delete_project", "detach from user %s failed: %v", project.UserID, err)
	}

	if _, err := s.store.DeleteProject(ctx, projectID); err != nil {
		return apperr.Storagef(err, "failed to delete project")
	}

	// Blob cleanup runs after the record is gone. A failure here leaves
	// orphaned objects, which the caller must hear about.
	if err := s.blobs.DeletePrefix(ctx, projectID); err != nil {
		log.Errorf("delete_project", "blob cleanup for %s failed: %v", projectID, err)
		return apperr.Storagef(err, "project deleted but file cleanup failed")
	}

	return nil
}
