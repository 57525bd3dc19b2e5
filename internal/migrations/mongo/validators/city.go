package validators

import "go.mongodb.org/mongo-driver/bson"

var CityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"country",
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
				"maxLength": 100,
			},

			"state": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2,
			},

			"country": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
