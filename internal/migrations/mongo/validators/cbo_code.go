package validators

import "go.mongodb.org/mongo-driver/bson"

var CboCodeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"code": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}$`,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 150,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
