package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

const collectionAuditEvents = "audit_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	ActorID        string    `bson:"actor_id"`
	Role           string    `bson:"role"`
	Action         string    `bson:"action"`
	PhotographerID string    `bson:"photographer_id,omitempty"`
	Detail         string    `bson:"detail,omitempty"`
	Timestamp      time.Time `bson:"timestamp"`
	RecordedAt     time.Time `bson:"recorded_at"`
}

// Insert persists one audit event.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := auditDoc{
		ActorID:        event.ActorID,
		Role:           string(event.Role),
		Action:         string(event.Action),
		PhotographerID: event.PhotographerID,
		Detail:         event.Detail,
		Timestamp:      event.Timestamp.UTC(),
		RecordedAt:     time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// List returns a page of audit events matching filter and the total count.
func (r *AuditRepository) List(ctx context.Context, filter ports.ListAuditFilter) ([]*domain.AuditEvent, int64, error) {
	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom.UTC()
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = filter.DateTo.UTC()
	}
	if len(dateRange) > 0 {
		query["timestamp"] = dateRange
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var events []*domain.AuditEvent
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		events = append(events, &domain.AuditEvent{
			ActorID:        doc.ActorID,
			Role:           domain.Role(doc.Role),
			Action:         domain.AuditAction(doc.Action),
			PhotographerID: doc.PhotographerID,
			Detail:         doc.Detail,
			Timestamp:      doc.Timestamp,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
