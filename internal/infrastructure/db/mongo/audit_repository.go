package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/ports"
)

const auditCollection = "audit_records"

// MongoAuditRepository persists the append-only audit trail. Only Insert and
// Find exist: records are never updated or removed.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

func (r *MongoAuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "actor", Value: 1}, {Key: "ts", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

type mongoAuditRecord struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Action string             `bson:"action"`
	Actor  string             `bson:"actor"`
	Target string             `bson:"target"`
	TS     time.Time          `bson:"ts"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	doc := mongoAuditRecord{
		Action: string(record.Action),
		Actor:  record.Actor,
		Target: record.Target,
		TS:     record.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// Find returns one page, newest first. ObjectIDs are monotonic within the
// insertion order, so the secondary _id sort breaks timestamp ties exactly
// as required.
func (r *MongoAuditRepository) Find(ctx context.Context, filter ports.AuditFilter, page, limit int) (*ports.AuditPage, error) {
	query := bson.M{}
	if filter.Actor != "" {
		query["actor"] = filter.Actor
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count audit records: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "ts", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]domain.AuditRecord, 0, limit)
	for cursor.Next(ctx) {
		var doc mongoAuditRecord
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, domain.AuditRecord{
			ID:        doc.ID.Hex(),
			Action:    domain.AuditAction(doc.Action),
			Actor:     doc.Actor,
			Target:    doc.Target,
			Timestamp: doc.TS.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	return &ports.AuditPage{
		Records: records,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}
