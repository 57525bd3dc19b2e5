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

	citieserrors "vistos/internal/cities/errors"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	"vistos/pkg/model"
)

const CollectionName = "Cities"

type CityRepository interface {
	Create(ctx context.Context, city *model.City) error
	FindByID(ctx context.Context, id string) (*model.City, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.City, error)
	Update(ctx context.Context, id string, city *model.City) error
	Delete(ctx context.Context, id string) error

	FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]*model.City, error)
	FindByNameStateCountry(ctx context.Context, name, state, country string) (*model.City, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoCityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoCityRepository(cfg *config.Config) CityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout caps the context unless we are already inside a transaction;
// wrapping a SessionContext would break transaction semantics.
func (r *mongoCityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCityRepository) Create(ctx context.Context, city *model.City) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	city.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, city)
	if err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		city.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCityRepository) FindByID(ctx context.Context, id string) (*model.City, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", citieserrors.ErrInvalidID, id)
	}

	var city model.City
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", citieserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}
	return &city, nil
}

func (r *mongoCityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.City, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer cursor.Close(ctx)

	var cities []*model.City
	if err = cursor.All(ctx, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode cities: %w", err)
	}
	return cities, nil
}

func (r *mongoCityRepository) Update(ctx context.Context, id string, city *model.City) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", citieserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":    city.Name,
			"state":   city.State,
			"country": city.Country,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update city: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", citieserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", citieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", citieserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCityRepository) FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]*model.City, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(prefix),
		"$options": "i",
	}}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search cities by name: %w", err)
	}
	defer cursor.Close(ctx)

	var cities []*model.City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return cities, nil
}

func (r *mongoCityRepository) FindByNameStateCountry(ctx context.Context, name, state, country string) (*model.City, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"name":    bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"},
		"state":   state,
		"country": country,
	}

	var city model.City
	err := r.collection.FindOne(ctx, filter).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", citieserrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find city by name: %w", err)
	}
	return &city, nil
}

func (r *mongoCityRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return count, nil
}

func (r *mongoCityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
