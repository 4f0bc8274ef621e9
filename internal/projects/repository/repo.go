package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/codehive-ide/codehive-backend/internal/projects/domain"
)

// Repo provides persistence for User and Project records on top of the
// document store. File-index mutations are single-document atomic updates
// scoped by project_id, never read-modify-write in the application.
type Repo struct {
	users    *mongo.Collection
	projects *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		users:    db.Collection("users"),
		projects: db.Collection("projects"),
	}
}

// EnsureIndexes creates the unique indexes the data model relies on.
// Safe to call on every start.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identity_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = r.projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("projects indexes: %w", err)
	}
	return nil
}

// EnsureUser finds the user owning identityToken, creating the record on
// first sight. The upsert is atomic, so concurrent first requests for the
// same token resolve to a single record.
func (r *Repo) EnsureUser(ctx context.Context, identityToken, email string) (*domain.User, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":        uuid.NewString(),
			"identity_token": identityToken,
			"email":          email,
			"project_ids":    []string{},
			"created_at":     time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u domain.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"identity_token": identityToken}, update, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByToken(ctx context.Context, identityToken string) (*domain.User, error) {
	var u domain.User
	err := r.users.FindOne(ctx, bson.M{"identity_token": identityToken}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AttachProject adds projectID to the user's owned set. $addToSet keeps
// the operation idempotent under retry.
func (r *Repo) AttachProject(ctx context.Context, userID, projectID string) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$addToSet": bson.M{"project_ids": projectID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DetachProject removes projectID from the user's owned set. A missing or
// already-detached user is not an error.
func (r *Repo) DetachProject(ctx context.Context, userID, projectID string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"project_ids": projectID}},
	)
	return err
}

func (r *Repo) InsertProject(ctx context.Context, p *domain.Project) error {
	_, err := r.projects.InsertOne(ctx, p)
	return err
}

func (r *Repo) FindProject(ctx context.Context, projectID string) (*domain.Project, error) {
	var p domain.Project
	err := r.projects.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	res, err := r.projects.DeleteOne(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) ListProjectsByIDs(ctx context.Context, projectIDs []string) ([]domain.Project, error) {
	if len(projectIDs) == 0 {
		return []domain.Project{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.projects.Find(ctx, bson.M{"project_id": bson.M{"$in": projectIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Project, 0, len(projectIDs))
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFileEntry appends entry to the project's file index only when no
// entry with that file name exists yet. The guard lives in the update
// filter, so concurrent creates for the same name cannot duplicate the
// entry. Returns false when the name was already present.
//
// Callers must have resolved the project first: a zero match here only
// means "name already present".
func (r *Repo) AddFileEntry(ctx context.Context, projectID string, entry domain.FileEntry) (bool, error) {
	res, err := r.projects.UpdateOne(ctx,
		bson.M{
			"project_id":      projectID,
			"files.file_name": bson.M{"$ne": entry.FileName},
		},
		bson.M{
			"$push": bson.M{"files": entry},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveFileEntry drops the matching entry from the file index. Removing
// a name that is not present is not an error (idempotent delete).
func (r *Repo) RemoveFileEntry(ctx context.Context, projectID, fileName string) error {
	res, err := r.projects.UpdateOne(ctx,
		bson.M{"project_id": projectID},
		bson.M{
			"$pull": bson.M{"files": bson.M{"file_name": fileName}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
