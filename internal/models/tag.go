package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag represents a hashtag stored in MongoDB. Followers is the set of user
// IDs notified when a new post mentions the tag.
type Tag struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Tag       string             `json:"tag" bson:"tag"`
	TagBy     uint               `json:"tag_by" bson:"tag_by"`
	Followers []uint             `json:"followers" bson:"followers"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
