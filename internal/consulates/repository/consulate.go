package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	consulateerrors "vistos/internal/consulates/errors"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	"vistos/pkg/model"
)

const CollectionName = "Consulates"

type ConsulateRepository interface {
	Create(ctx context.Context, consulate *model.Consulate) error
	FindByID(ctx context.Context, id string) (*model.Consulate, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Consulate, error)
	Update(ctx context.Context, id string, consulate *model.Consulate) error
	Delete(ctx context.Context, id string) error

	FindByCountry(ctx context.Context, country string, limit int) ([]*model.Consulate, error)
	FindByNameCountry(ctx context.Context, name, country string) (*model.Consulate, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoConsulateRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoConsulateRepository(cfg *config.Config) ConsulateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoConsulateRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoConsulateRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoConsulateRepository) Create(ctx context.Context, consulate *model.Consulate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	consulate.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, consulate)
	if err != nil {
		return fmt.Errorf("failed to create consulate: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		consulate.ID = oid.Hex()
	}
	return nil
}

func (r *mongoConsulateRepository) FindByID(ctx context.Context, id string) (*model.Consulate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", consulateerrors.ErrInvalidID, id)
	}

	var consulate model.Consulate
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&consulate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", consulateerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find consulate: %w", err)
	}
	return &consulate, nil
}

func (r *mongoConsulateRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Consulate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "country", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query consulates: %w", err)
	}
	defer cursor.Close(ctx)

	var consulates []*model.Consulate
	if err = cursor.All(ctx, &consulates); err != nil {
		return nil, fmt.Errorf("failed to decode consulates: %w", err)
	}
	return consulates, nil
}

func (r *mongoConsulateRepository) Update(ctx context.Context, id string, consulate *model.Consulate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", consulateerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":    consulate.Name,
			"country": consulate.Country,
			"city_id": consulate.CityID,
			"email":   consulate.Email,
			"phone":   consulate.Phone,
			"website": consulate.Website,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update consulate: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", consulateerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoConsulateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", consulateerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete consulate: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", consulateerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoConsulateRepository) FindByCountry(ctx context.Context, country string, limit int) ([]*model.Consulate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"country": country}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search consulates by country: %w", err)
	}
	defer cursor.Close(ctx)

	var consulates []*model.Consulate
	if err := cursor.All(ctx, &consulates); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return consulates, nil
}

func (r *mongoConsulateRepository) FindByNameCountry(ctx context.Context, name, country string) (*model.Consulate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"name":    bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"},
		"country": country,
	}

	var consulate model.Consulate
	err := r.collection.FindOne(ctx, filter).Decode(&consulate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", consulateerrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find consulate by name: %w", err)
	}
	return &consulate, nil
}

func (r *mongoConsulateRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count consulates: %w", err)
	}
	return count, nil
}

func (r *mongoConsulateRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
