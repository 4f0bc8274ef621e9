package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/projects/domain"
)

// fakeStore is an in-memory Store with the same atomicity guarantees as
// the real repository: every method takes the lock once.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User // keyed by identity token
	projects map[string]*domain.Project

	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*domain.User),
		projects: make(map[string]*domain.Project),
	}
}

func (f *fakeStore) EnsureUser(ctx context.Context, identityToken, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[identityToken]; ok {
		return u, nil
	}
	u := &domain.User{UserID: uuid.NewString(), IdentityToken: identityToken, Email: email, ProjectIDs: []string{}}
	f.users[identityToken] = u
	return u, nil
}

func (f *fakeStore) FindUserByToken(ctx context.Context, identityToken string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[identityToken]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) findUserByID(userID string) *domain.User {
	for _, u := range f.users {
		if u.UserID == userID {
			return u
		}
	}
	return nil
}

func (f *fakeStore) AttachProject(ctx context.Context, userID, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.findUserByID(userID)
	if u == nil {
		return domain.ErrUserNotFound
	}
	for _, id := range u.ProjectIDs {
		if id == projectID {
			return nil
		}
	}
	u.ProjectIDs = append(u.ProjectIDs, projectID)
	return nil
}

func (f *fakeStore) DetachProject(ctx context.Context, userID, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.findUserByID(userID)
	if u == nil {
		return nil
	}
	out := u.ProjectIDs[:0]
	for _, id := range u.ProjectIDs {
		if id != projectID {
			out = append(out, id)
		}
	}
	u.ProjectIDs = out
	return nil
}

func (f *fakeStore) InsertProject(ctx context.Context, p *domain.Project) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ProjectID] = p
	return nil
}

func (f *fakeStore) FindProject(ctx context.Context, projectID string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeStore) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.projects[projectID]
	delete(f.projects, projectID)
	return ok, nil
}

func (f *fakeStore) ListProjectsByIDs(ctx context.Context, projectIDs []string) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Project{}
	for _, id := range projectIDs {
		if p, ok := f.projects[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCleaner struct {
	swept []string
	err   error
}

func (f *fakeCleaner) DeletePrefix(ctx context.Context, projectID string) error {
	f.swept = append(f.swept, projectID)
	return f.err
}

func TestCreateProjectNewUser(t *testing.T) {
	store := newFakeStore()
	svc := NewProjectService(store, &fakeCleaner{})

	p, err := svc.CreateProject(context.Background(), "Demo", "token-1", "dev@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ProjectID)
	assert.Equal(t, "Demo", p.Name)
	assert.Empty(t, p.Files)

	u := store.users["token-1"]
	require.NotNil(t, u)
	assert.Equal(t, u.UserID, p.UserID)
	assert.Equal(t, []string{p.ProjectID}, u.ProjectIDs)
}

func TestCreateProjectReusesExistingUser(t *testing.T) {
	store := newFakeStore()
	svc := NewProjectService(store, &fakeCleaner{})

	p1, err := svc.CreateProject(context.Background(), "One", "token-1", "dev@example.com")
	require.NoError(t, err)
	p2, err := svc.CreateProject(context.Background(), "Two", "token-1", "dev@example.com")
	require.NoError(t, err)

	assert.Len(t, store.users, 1)
	assert.Equal(t, p1.UserID, p2.UserID)
	assert.Equal(t, []string{p1.ProjectID, p2.ProjectID}, store.users["token-1"].ProjectIDs)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := NewProjectService(newFakeStore(), &fakeCleaner{})

	for _, tc := range []struct{ name, token, email string }{
		{"", "t", "e@example.com"},
		{"Demo", "", "e@example.com"},
		{"Demo", "t", ""},
		{"  ", "t", "e@example.com"},
	} {
		_, err := svc.CreateProject(context.Background(), tc.name, tc.token, tc.email)
		require.Error(t, err)
		code, _ := apperr.CodeOf(err)
		assert.Equal(t, apperr.CodeValidation, code)
	}
}

func TestCreateProjectInsertFailureLeavesUser(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("write concern failed")
	svc := NewProjectService(store, &fakeCleaner{})

	_, err := svc.CreateProject(context.Background(), "Demo", "token-1", "dev@example.com")
	require.Error(t, err)
	code, _ := apperr.CodeOf(err)
	assert.Equal(t, apperr.CodeStorage, code)

	// The user record stays; retrying reuses it instead of duplicating.
	require.NotNil(t, store.users["token-1"])
	store.insertErr = nil
	_, err = svc.CreateProject(context.Background(), "Demo", "token-1", "dev@example.com")
	require.NoError(t, err)
	assert.Len(t, store.users, 1)
}

func TestListProjects(t *testing.T) {
	store := newFakeStore()
	svc := NewProjectService(store, &fakeCleaner{})

	p1, _ := svc.CreateProject(context.Background(), "One", "token-1", "dev@example.com")
	p2, _ := svc.CreateProject(context.Background(), "Two", "token-1", "dev@example.com")
	_, _ = svc.CreateProject(context.Background(), "Other", "token-2", "other@example.com")

	got, err := svc.ListProjects(context.Background(), "token-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, p1.ProjectID, got[0].ProjectID)
	assert.Equal(t, p2.ProjectID, got[1].ProjectID)
}

func TestListProjectsUnknownUser(t *testing.T) {
	svc := NewProjectService(newFakeStore(), &fakeCleaner{})

	_, err := svc.ListProjects(context.Background(), "no-such-token")
	require.Error(t, err)
	code, _ := apperr.CodeOf(err)
	assert.Equal(t, apperr.CodeNotFound, code)
}

func TestDeleteProject(t *testing.T) {
	store := newFakeStore()
	cleaner := &fakeCleaner{}
	svc := NewProjectService(store, cleaner)

	p, _ := svc.CreateProject(context.Background(), "Demo", "token-1", "dev@example.com")

	require.NoError(t, svc.DeleteProject(context.Background(), p.ProjectID))
	assert.Empty(t, store.projects)
	assert.Empty(t, store.users["token-1"].ProjectIDs)
	assert.Equal(t, []string{p.ProjectID}, cleaner.swept)
}

func TestDeleteProjectUnknown(t *testing.T) {
	svc := NewProjectService(newFakeStore(), &fakeCleaner{})

	err := svc.DeleteProject(context.Background(), "missing")
	require.Error(t, err)
	code, _ := apperr.CodeOf(err)
	assert.Equal(t, apperr.CodeNotFound, code)
}

func TestDeleteProjectCleanupFailure(t *testing.T) {
	store := newFakeStore()
	cleaner := &fakeCleaner{err: errors.New("bucket unavailable")}
	svc := NewProjectService(store, cleaner)

	p, _ := svc.CreateProject(context.Background(), "Demo", "token-1", "dev@example.com")

	err := svc.DeleteProject(context.Background(), p.ProjectID)
	require.Error(t, err)
	code, _ := apperr.CodeOf(err)
	assert.Equal(t, apperr.CodeStorage, code)
	assert.Equal(t, "project deleted but file cleanup failed", apperr.MessageOf(err))

	// Metadata deletion is authoritative even when the sweep fails.
	assert.Empty(t, store.projects)
}
