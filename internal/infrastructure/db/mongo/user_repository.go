package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
//
// The unique index on (email, role, photographer_id) is what makes the
// role-scoped lookup contract safe: one email may exist once per role, and
// for clients once per studio.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	Name           string             `bson:"name,omitempty"`
	PasswordHash   string             `bson:"password_hash"`
	Role           string             `bson:"role"`
	PhotographerID string             `bson:"photographer_id,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		Name:           d.Name,
		PasswordHash:   d.PasswordHash,
		Role:           domain.Role(d.Role),
		PhotographerID: d.PhotographerID,
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
}

// FindByEmailAndRole retrieves a photographer or admin record.
func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "role": string(role)})
}

// FindByEmailRolePhotographer retrieves a client record scoped to one tenant.
func (r *UserRepository) FindByEmailRolePhotographer(ctx context.Context, email string, role domain.Role, photographerID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"email":           email,
		"role":            string(role),
		"photographer_id": photographerID,
	})
}

// FindByID retrieves a user by its document ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new user document and returns it with its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		Email:          user.Email,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		PhotographerID: user.PhotographerID,
		CreatedAt:      user.CreatedAt.Unix(),
		UpdatedAt:      user.UpdatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// EnsureIndexes creates the uniqueness index backing the lookup contract.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "role", Value: 1},
				{Key: "photographer_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
