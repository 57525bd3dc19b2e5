package validators

import "go.mongodb.org/mongo-driver/bson"

var RequirementValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"legal_framework_id",
			"entity_type",
			"field_path",
			"responsible_party",
			"required",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"legal_framework_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"entity_type": bson.M{
				"enum": []string{"person", "individualProcess", "passport", "company"},
			},

			"field_path": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"responsible_party": bson.M{
				"enum": []string{"client", "admin", "company"},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"required": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
