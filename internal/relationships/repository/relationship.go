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

	relerrors "vistos/internal/relationships/errors"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	"vistos/pkg/model"
)

const CollectionName = "Person_company_relationships"

type RelationshipRepository interface {
	Create(ctx context.Context, rel *model.PersonCompanyRelationship) error
	FindByID(ctx context.Context, id string) (*model.PersonCompanyRelationship, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.PersonCompanyRelationship, error)
	Update(ctx context.Context, id string, rel *model.PersonCompanyRelationship) error
	Delete(ctx context.Context, id string) error

	FindByPerson(ctx context.Context, personID string, limit int) ([]*model.PersonCompanyRelationship, error)
	FindByCompany(ctx context.Context, companyID string, limit int) ([]*model.PersonCompanyRelationship, error)
	FindCurrent(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRelationshipRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRelationshipRepository(cfg *config.Config) RelationshipRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRelationshipRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoRelationshipRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRelationshipRepository) Create(ctx context.Context, rel *model.PersonCompanyRelationship) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rel.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, rel)
	if err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rel.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRelationshipRepository) FindByID(ctx context.Context, id string) (*model.PersonCompanyRelationship, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", relerrors.ErrInvalidID, id)
	}

	var rel model.PersonCompanyRelationship
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", relerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find relationship: %w", err)
	}
	return &rel, nil
}

func (r *mongoRelationshipRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.PersonCompanyRelationship, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer cursor.Close(ctx)

	var rels []*model.PersonCompanyRelationship
	if err = cursor.All(ctx, &rels); err != nil {
		return nil, fmt.Errorf("failed to decode relationships: %w", err)
	}
	return rels, nil
}

func (r *mongoRelationshipRepository) Update(ctx context.Context, id string, rel *model.PersonCompanyRelationship) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", relerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"person_id":  rel.PersonID,
			"company_id": rel.CompanyID,
			"role":       rel.Role,
			"is_current": rel.IsCurrent,
			"start_date": rel.StartDate,
			"end_date":   rel.EndDate,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update relationship: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", relerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRelationshipRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", relerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", relerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoRelationshipRepository) FindByPerson(ctx context.Context, personID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	return r.findByField(ctx, "person_id", personID, limit)
}

func (r *mongoRelationshipRepository) FindByCompany(ctx context.Context, companyID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	return r.findByField(ctx, "company_id", companyID, limit)
}

func (r *mongoRelationshipRepository) findByField(ctx context.Context, field, value string, limit int) ([]*model.PersonCompanyRelationship, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "is_current", Value: -1}, {Key: "start_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{field: value}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search relationships by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rels []*model.PersonCompanyRelationship
	if err := cursor.All(ctx, &rels); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return rels, nil
}

func (r *mongoRelationshipRepository) FindCurrent(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"person_id":  personID,
		"company_id": companyID,
		"is_current": true,
	}

	var rel model.PersonCompanyRelationship
	err := r.collection.FindOne(ctx, filter).Decode(&rel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s/%s", relerrors.ErrNotFound, personID, companyID)
		}
		return nil, fmt.Errorf("failed to find current relationship: %w", err)
	}
	return &rel, nil
}

func (r *mongoRelationshipRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count relationships: %w", err)
	}
	return count, nil
}

func (r *mongoRelationshipRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
