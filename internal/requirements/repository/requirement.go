package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	reqerrors "vistos/internal/requirements/errors"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	"vistos/pkg/model"
)

const CollectionName = "Legal_framework_requirements"

type RequirementRepository interface {
	Create(ctx context.Context, req *model.LegalFrameworkInfoRequirement) error
	FindByID(ctx context.Context, id string) (*model.LegalFrameworkInfoRequirement, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.LegalFrameworkInfoRequirement, error)
	Update(ctx context.Context, id string, req *model.LegalFrameworkInfoRequirement) error
	Delete(ctx context.Context, id string) error

	FindByLegalFramework(ctx context.Context, legalFrameworkID string, limit int) ([]*model.LegalFrameworkInfoRequirement, error)
	FindByFrameworkEntityField(ctx context.Context, legalFrameworkID, entityType, fieldPath string) (*model.LegalFrameworkInfoRequirement, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRequirementRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRequirementRepository(cfg *config.Config) RequirementRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRequirementRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoRequirementRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRequirementRepository) Create(ctx context.Context, req *model.LegalFrameworkInfoRequirement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	req.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create requirement: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRequirementRepository) FindByID(ctx context.Context, id string) (*model.LegalFrameworkInfoRequirement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reqerrors.ErrInvalidID, id)
	}

	var req model.LegalFrameworkInfoRequirement
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reqerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find requirement: %w", err)
	}
	return &req, nil
}

func (r *mongoRequirementRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.LegalFrameworkInfoRequirement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "legal_framework_id", Value: 1}, {Key: "entity_type", Value: 1}, {Key: "field_path", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []*model.LegalFrameworkInfoRequirement
	if err = cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	return reqs, nil
}

func (r *mongoRequirementRepository) Update(ctx context.Context, id string, req *model.LegalFrameworkInfoRequirement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reqerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"legal_framework_id": req.LegalFrameworkID,
			"entity_type":        req.EntityType,
			"field_path":         req.FieldPath,
			"responsible_party":  req.ResponsibleParty,
			"description":        req.Description,
			"required":           req.Required,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update requirement: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reqerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRequirementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reqerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete requirement: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reqerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRequirementRepository) FindByLegalFramework(ctx context.Context, legalFrameworkID string, limit int) ([]*model.LegalFrameworkInfoRequirement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "entity_type", Value: 1}, {Key: "field_path", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"legal_framework_id": legalFrameworkID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search requirements by legal framework: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []*model.LegalFrameworkInfoRequirement
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return reqs, nil
}

func (r *mongoRequirementRepository) FindByFrameworkEntityField(ctx context.Context, legalFrameworkID, entityType, fieldPath string) (*model.LegalFrameworkInfoRequirement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"legal_framework_id": legalFrameworkID,
		"entity_type":        entityType,
		"field_path":         fieldPath,
	}

	var req model.LegalFrameworkInfoRequirement
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s/%s/%s", reqerrors.ErrNotFound, legalFrameworkID, entityType, fieldPath)
		}
		return nil, fmt.Errorf("failed to find requirement: %w", err)
	}
	return &req, nil
}

func (r *mongoRequirementRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count requirements: %w", err)
	}
	return count, nil
}

func (r *mongoRequirementRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
