package calendar

import "go.mongodb.org/mongo-driver/bson/primitive"

func objectID(v interface{}) primitive.ObjectID {
	if id, ok := v.(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}
