package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehive-ide/codehive-backend/internal/projects/domain"
	"github.com/codehive-ide/codehive-backend/internal/projects/service"
)

type memStore struct {
	users    map[string]*domain.User
	projects map[string]*domain.Project
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		projects: make(map[string]*domain.Project),
	}
}

func (m *memStore) EnsureUser(ctx context.Context, identityToken, email string) (*domain.User, error) {
	if u, ok := m.users[identityToken]; ok {
		return u, nil
	}
	u := &domain.User{UserID: uuid.NewString(), IdentityToken: identityToken, Email: email, ProjectIDs: []string{}}
	m.users[identityToken] = u
	return u, nil
}

func (m *memStore) FindUserByToken(ctx context.Context, identityToken string) (*domain.User, error) {
	u, ok := m.users[identityToken]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memStore) AttachProject(ctx context.Context, userID, projectID string) error {
	for _, u := range m.users {
		if u.UserID == userID {
			u.ProjectIDs = append(u.ProjectIDs, projectID)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memStore) DetachProject(ctx context.Context, userID, projectID string) error {
	for _, u := range m.users {
		if u.UserID == userID {
			out := u.ProjectIDs[:0]
			for _, id := range u.ProjectIDs {
				if id != projectID {
					out = append(out, id)
				}
			}
			u.ProjectIDs = out
		}
	}
	return nil
}

func (m *memStore) InsertProject(ctx context.Context, p *domain.Project) error {
	m.projects[p.ProjectID] = p
	return nil
}

func (m *memStore) FindProject(ctx context.Context, projectID string) (*domain.Project, error) {
	p, ok := m.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (m *memStore) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	_, ok := m.projects[projectID]
	delete(m.projects, projectID)
	return ok, nil
}

func (m *memStore) ListProjectsByIDs(ctx context.Context, projectIDs []string) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, id := range projectIDs {
		if p, ok := m.projects[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type noopCleaner struct{}

func (noopCleaner) DeletePrefix(ctx context.Context, projectID string) error { return nil }

func newTestRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(service.NewProjectService(store, noopCleaner{}))
	h.Register(r.Group("/api/projects"))
	return r
}

func TestCreateProjectEndpoint(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	body, _ := json.Marshal(gin.H{"name": "Demo", "identityToken": "token-1", "email": "dev@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ProjectID string `json:"projectId"`
		Name      string `json:"name"`
		UserID    string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ProjectID)
	assert.Equal(t, "Demo", resp.Name)
	assert.NotEmpty(t, resp.UserID)
}

func TestCreateProjectEndpointInvalidBody(t *testing.T) {
	r := newTestRouter(newMemStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestCreateProjectEndpointMissingFields(t *testing.T) {
	r := newTestRouter(newMemStore())

	body, _ := json.Marshal(gin.H{"name": "Demo"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestListProjectsEndpoint(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	for _, name := range []string{"One", "Two"} {
		body, _ := json.Marshal(gin.H{"name": name, "identityToken": "token-1", "email": "dev@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects?identityToken=token-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var items []domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "One", items[0].Name)
	assert.Equal(t, "Two", items[1].Name)
}

func TestListProjectsEndpointUnknownUser(t *testing.T) {
	r := newTestRouter(newMemStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects?identityToken=nobody", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestDeleteProjectEndpoint(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	body, _ := json.Marshal(gin.H{"name": "Demo", "identityToken": "token-1", "email": "dev@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var created struct {
		ProjectID string `json:"projectId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/"+created.ProjectID, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.projects)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/"+created.ProjectID, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
