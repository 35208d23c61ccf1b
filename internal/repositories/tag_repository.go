package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/seedit-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	CreateTags(ctx context.Context, tags []string, userID uint) error
	GetTagsByNames(ctx context.Context, names []string) ([]models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	FollowTag(ctx context.Context, name string, userID uint) error
	UnfollowTag(ctx context.Context, name string, userID uint) error
}

// MongoTagRepository implements TagRepository for MongoDB
type MongoTagRepository struct {
	collection *mongo.Collection
}

// NewMongoTagRepository creates a new MongoTagRepository
func NewMongoTagRepository(db *mongo.Database) *MongoTagRepository {
	return &MongoTagRepository{collection: db.Collection("tags")}
}

// CreateTags upserts the given tag names. Existing tags are left untouched.
func (r *MongoTagRepository) CreateTags(ctx context.Context, tags []string, userID uint) error {
	for _, tag := range tags {
		_, err := r.collection.UpdateOne(ctx,
			bson.M{"tag": tag},
			bson.M{"$setOnInsert": bson.M{
				"tag":        tag,
				"tag_by":     userID,
				"followers":  []uint{},
				"created_at": time.Now(),
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

// GetTagsByNames retrieves tags matching the given names. Unknown names are
// simply absent from the result.
func (r *MongoTagRepository) GetTagsByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	cursor, err := r.collection.Find(ctx, bson.M{"tag": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetAllTags lists every tag sorted by name
func (r *MongoTagRepository) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "tag", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// FollowTag adds a user to the tag's follower set (idempotent)
func (r *MongoTagRepository) FollowTag(ctx context.Context, name string, userID uint) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"tag": name},
		bson.M{"$addToSet": bson.M{"followers": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tag not found")
	}
	return nil
}

// UnfollowTag removes a user from the tag's follower set
func (r *MongoTagRepository) UnfollowTag(ctx context.Context, name string, userID uint) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"tag": name},
		bson.M{"$pull": bson.M{"followers": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tag not found")
	}
	return nil
}
