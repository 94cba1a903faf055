package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

const collectionGalleries = "galleries"

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGalleries)}
}

type galleryChangeDoc struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Notes     string    `bson:"notes,omitempty"`
}

type galleryDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PhotographerID string             `bson:"photographer_id"`
	ClientID       string             `bson:"client_id"`
	Title          string             `bson:"title"`
	ShootDate      time.Time          `bson:"shoot_date,omitempty"`
	CoverPhotoURL  string             `bson:"cover_photo_url,omitempty"`
	PhotoCount     int                `bson:"photo_count"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	StatusHistory  []galleryChangeDoc `bson:"status_history"`
}

func (d *galleryDoc) toDomain() *domain.Gallery {
	history := make([]domain.GalleryStatusChange, 0, len(d.StatusHistory))
	for _, ch := range d.StatusHistory {
		history = append(history, domain.GalleryStatusChange{
			Status:    domain.GalleryStatus(ch.Status),
			Timestamp: ch.Timestamp,
			Notes:     ch.Notes,
		})
	}
	return &domain.Gallery{
		ID:             d.ID.Hex(),
		PhotographerID: d.PhotographerID,
		ClientID:       d.ClientID,
		Title:          d.Title,
		ShootDate:      d.ShootDate,
		CoverPhotoURL:  d.CoverPhotoURL,
		PhotoCount:     d.PhotoCount,
		Status:         domain.GalleryStatus(d.Status),
		CreatedAt:      d.CreatedAt,
		StatusHistory:  history,
	}
}

// Create inserts a new gallery document and fills in the generated ID.
func (r *GalleryRepository) Create(ctx context.Context, g *domain.Gallery) error {
	history := make([]galleryChangeDoc, 0, len(g.StatusHistory))
	for _, ch := range g.StatusHistory {
		history = append(history, galleryChangeDoc{
			Status:    string(ch.Status),
			Timestamp: ch.Timestamp.UTC(),
			Notes:     ch.Notes,
		})
	}
	doc := galleryDoc{
		PhotographerID: g.PhotographerID,
		ClientID:       g.ClientID,
		Title:          g.Title,
		ShootDate:      g.ShootDate.UTC(),
		CoverPhotoURL:  g.CoverPhotoURL,
		PhotoCount:     g.PhotoCount,
		Status:         string(g.Status),
		CreatedAt:      g.CreatedAt.UTC(),
		StatusHistory:  history,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid.Hex()
	}
	return nil
}

// FindByID retrieves a gallery scoped to one tenant. The photographer_id
// filter is part of the query itself, so a cross-tenant ID probe reads as
// not-found rather than leaking existence.
func (r *GalleryRepository) FindByID(ctx context.Context, id, photographerID string) (*domain.Gallery, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGalleryNotFound
	}

	var doc galleryDoc
	filter := bson.M{"_id": oid, "photographer_id": photographerID}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGalleryNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns a page of galleries matching filter and the total count.
func (r *GalleryRepository) List(ctx context.Context, filter ports.ListGalleriesFilter) ([]*domain.Gallery, int64, error) {
	query := bson.M{"photographer_id": filter.PhotographerID}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var galleries []*domain.Gallery
	for cursor.Next(ctx) {
		var doc galleryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		galleries = append(galleries, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return galleries, total, nil
}

// UpdateStatus atomically sets the gallery's status and appends a history entry.
func (r *GalleryRepository) UpdateStatus(ctx context.Context, id, photographerID string, status domain.GalleryStatus, change domain.GalleryStatusChange) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGalleryNotFound
	}

	filter := bson.M{"_id": oid, "photographer_id": photographerID}
	update := bson.M{
		"$set": bson.M{"status": string(status)},
		"$push": bson.M{"status_history": galleryChangeDoc{
			Status:    string(change.Status),
			Timestamp: change.Timestamp.UTC(),
			Notes:     change.Notes,
		}},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrGalleryNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing tenant-scoped queries.
func (r *GalleryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "photographer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "photographer_id", Value: 1}, {Key: "client_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
