package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vistos/pkg/config"
	"vistos/pkg/model"
)

const CollectionName = "Document_types"

// DocumentTypeRepository reads the document registry. The registry is
// maintained elsewhere; this side only pulls it to build the field-link
// index.
type DocumentTypeRepository interface {
	FindAllLinked(ctx context.Context) ([]*model.DocumentType, error)
}

type mongoDocumentTypeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDocumentTypeRepository(cfg *config.Config) DocumentTypeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDocumentTypeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDocumentTypeRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// FindAllLinked returns every document type that links at least one field.
func (r *mongoDocumentTypeRepository) FindAllLinked(ctx context.Context) ([]*model.DocumentType, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"linked_fields.0": bson.M{"$exists": true}}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query document types: %w", err)
	}
	defer cursor.Close(ctx)

	var docTypes []*model.DocumentType
	if err := cursor.All(ctx, &docTypes); err != nil {
		return nil, fmt.Errorf("failed to decode document types: %w", err)
	}
	return docTypes, nil
}
