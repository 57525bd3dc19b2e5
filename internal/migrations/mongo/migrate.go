package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vistos/internal/migrations/mongo/validators"
)

var (
	CitiesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
				{Key: "state", Value: 1},
				{Key: "country", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	ConsulatesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "city_id", Value: 1}}},
	}

	CboCodesIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"code": bson.M{"$type": "string", "$gt": ""}}),
		},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	RelationshipsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "person_id", Value: 1}, {Key: "is_current", Value: -1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "is_current", Value: -1}}},
	}

	RequirementsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "legal_framework_id", Value: 1},
				{Key: "entity_type", Value: 1},
				{Key: "field_path", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	DocumentTypesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "linked_fields.entity_type", Value: 1},
			{Key: "linked_fields.field_path", Value: 1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Vistos Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Cities": {
			Indexes:   CitiesIndexes,
			Validator: validators.CityValidator,
		},
		"Consulates": {
			Indexes:   ConsulatesIndexes,
			Validator: validators.ConsulateValidator,
		},
		"Cbo_codes": {
			Indexes:   CboCodesIndexes,
			Validator: validators.CboCodeValidator,
		},
		"Person_company_relationships": {
			Indexes:   RelationshipsIndexes,
			Validator: validators.RelationshipValidator,
		},
		"Legal_framework_requirements": {
			Indexes:   RequirementsIndexes,
			Validator: validators.RequirementValidator,
		},
		"Document_types": {
			Indexes:   DocumentTypesIndexes,
			Validator: validators.DocumentTypeValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
