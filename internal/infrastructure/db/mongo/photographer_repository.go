package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

const collectionPhotographers = "photographers"

// PhotographerRepository implements ports.PhotographerRepository using MongoDB.
type PhotographerRepository struct {
	col *mongo.Collection
}

func NewPhotographerRepository(db *mongo.Database) *PhotographerRepository {
	return &PhotographerRepository{col: db.Collection(collectionPhotographers)}
}

type photographerDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	StudioName         string             `bson:"studio_name"`
	SubscriptionStatus string             `bson:"subscription_status"`
	TrialEndsAt        int64              `bson:"trial_ends_at,omitempty"`
	GalleryPlanID      string             `bson:"gallery_plan_id,omitempty"`
	CreatedAt          int64              `bson:"created_at"`
}

// FindByID retrieves one tenant record with its billing state.
func (r *PhotographerRepository) FindByID(ctx context.Context, id string) (*domain.Photographer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPhotographerNotFound
	}

	var doc photographerDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhotographerNotFound
		}
		return nil, fmt.Errorf("find photographer: %w", err)
	}

	return &domain.Photographer{
		ID:                 doc.ID.Hex(),
		StudioName:         doc.StudioName,
		SubscriptionStatus: domain.SubscriptionStatus(doc.SubscriptionStatus),
		TrialEndsAt:        unixToTime(doc.TrialEndsAt),
		GalleryPlanID:      doc.GalleryPlanID,
		CreatedAt:          unixToTime(doc.CreatedAt),
	}, nil
}

// Create inserts a new tenant record and fills in the generated ID.
func (r *PhotographerRepository) Create(ctx context.Context, p *domain.Photographer) error {
	doc := photographerDoc{
		StudioName:         p.StudioName,
		SubscriptionStatus: string(p.SubscriptionStatus),
		CreatedAt:          p.CreatedAt.Unix(),
	}
	if !p.TrialEndsAt.IsZero() {
		doc.TrialEndsAt = p.TrialEndsAt.Unix()
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert photographer: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}
