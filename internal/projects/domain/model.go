package domain

import "time"

// User is created lazily the first time an identity token shows up on a
// project-creation request. There is no user deletion flow.
type User struct {
	UserID        string    `bson:"user_id" json:"userId"`
	IdentityToken string    `bson:"identity_token" json:"-"`
	Email         string    `bson:"email" json:"email"`
	ProjectIDs    []string  `bson:"project_ids" json:"projectIds"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// FileEntry is one row of a project's file index. Content may be cached
// here at create time but is never read back; the blob store is the
// source of truth for file bytes.
type FileEntry struct {
	FileName string `bson:"file_name" json:"fileName"`
	Content  string `bson:"content,omitempty" json:"content,omitempty"`
}

// Project is the canonical metadata record. ProjectID is generated by the
// service layer and is independent of any storage-internal id.
type Project struct {
	ProjectID string      `bson:"project_id" json:"projectId"`
	Name      string      `bson:"name" json:"name"`
	UserID    string      `bson:"user_id" json:"userId"`
	Files     []FileEntry `bson:"files" json:"files"`
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updatedAt"`
}

// NewProject builds a fresh metadata record with an empty file index.
func NewProject(projectID, name, userID string) *Project {
	now := time.Now().UTC()
	return &Project{
		ProjectID: projectID,
		Name:      name,
		UserID:    userID,
		Files:     []FileEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasFile reports whether the index already holds an entry for name.
func (p *Project) HasFile(name string) bool {
	for _, f := range p.Files {
		if f.FileName == name {
			return true
		}
	}
	return false
}
