package validators

import "go.mongodb.org/mongo-driver/bson"

var integer = []string{"int", "long"}

var RestaurantValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"opening_time",
			"closing_time",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"opening_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01][0-9]|2[0-3]):[0-5][0-9]$`,
			},

			"closing_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01][0-9]|2[0-3]):[0-5][0-9]$`,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var TableValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"restaurant_id",
			"table_number",
			"seats_number",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"restaurant_id": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},

			"table_number": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},

			"seats_number": bson.M{
				"bsonType": integer,
				"minimum":  1,
				"maximum":  100,
			},
		},
	},
}
