package validators

import "go.mongodb.org/mongo-driver/bson"

var RelationshipValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"person_id",
			"company_id",
			"is_current",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"person_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"company_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"role": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"is_current": bson.M{
				"bsonType": "bool",
			},

			"start_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"end_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
