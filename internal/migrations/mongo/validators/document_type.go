package validators

import "go.mongodb.org/mongo-driver/bson"

var DocumentTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},

			"linked_fields": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"entity_type", "field_path"},
					"properties": bson.M{
						"entity_type": bson.M{
							"enum": []string{"person", "individualProcess", "passport", "company"},
						},
						"field_path": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 200,
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
