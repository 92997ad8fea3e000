package docstore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SentinelID is substituted for identifiers that do not parse. No stored
// record carries it, so lookups with it match nothing.
var SentinelID = primitive.NilObjectID

// NormalizeID parses raw as a hex ObjectID and falls back to SentinelID.
func NormalizeID(raw string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return SentinelID
	}
	return id
}

func IsSentinel(id primitive.ObjectID) bool {
	return id == SentinelID
}

// ByID is the filter for a single record identifier.
func ByID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// IDOrSlug matches a record either by its identifier or by its slug.
func IDOrSlug(raw string) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "_id", Value: NormalizeID(raw)}},
		bson.D{{Key: "slug", Value: raw}},
	}}}
}
