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

	cboerrors "vistos/internal/cbocodes/errors"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	"vistos/pkg/model"
)

const CollectionName = "Cbo_codes"

type CboCodeRepository interface {
	Create(ctx context.Context, cbo *model.CboCode) error
	FindByID(ctx context.Context, id string) (*model.CboCode, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.CboCode, error)
	Update(ctx context.Context, id string, cbo *model.CboCode) error
	Delete(ctx context.Context, id string) error

	FindByCode(ctx context.Context, code string) (*model.CboCode, error)
	FindByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.CboCode, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoCboCodeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoCboCodeRepository(cfg *config.Config) CboCodeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCboCodeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoCboCodeRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCboCodeRepository) Create(ctx context.Context, cbo *model.CboCode) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	cbo.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, cbo)
	if err != nil {
		return fmt.Errorf("failed to create cbo code: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cbo.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCboCodeRepository) FindByID(ctx context.Context, id string) (*model.CboCode, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", cboerrors.ErrInvalidID, id)
	}

	var cbo model.CboCode
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cbo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", cboerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find cbo code: %w", err)
	}
	return &cbo, nil
}

func (r *mongoCboCodeRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CboCode, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "code", Value: 1}, {Key: "title", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cbo codes: %w", err)
	}
	defer cursor.Close(ctx)

	var cbos []*model.CboCode
	if err = cursor.All(ctx, &cbos); err != nil {
		return nil, fmt.Errorf("failed to decode cbo codes: %w", err)
	}
	return cbos, nil
}

func (r *mongoCboCodeRepository) Update(ctx context.Context, id string, cbo *model.CboCode) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", cboerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"code":        cbo.Code,
			"title":       cbo.Title,
			"description": cbo.Description,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update cbo code: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", cboerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCboCodeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", cboerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete cbo code: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", cboerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCboCodeRepository) FindByCode(ctx context.Context, code string) (*model.CboCode, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var cbo model.CboCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&cbo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", cboerrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find cbo code by code: %w", err)
	}
	return &cbo, nil
}

func (r *mongoCboCodeRepository) FindByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.CboCode, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"title": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(prefix),
		"$options": "i",
	}}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search cbo codes by title: %w", err)
	}
	defer cursor.Close(ctx)

	var cbos []*model.CboCode
	if err := cursor.All(ctx, &cbos); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return cbos, nil
}

func (r *mongoCboCodeRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cbo codes: %w", err)
	}
	return count, nil
}

func (r *mongoCboCodeRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
