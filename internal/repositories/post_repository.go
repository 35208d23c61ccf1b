package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/seedit-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []uint, skip, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddWater(ctx context.Context, postID string, userID uint) error
	RemoveWater(ctx context.Context, postID string, userID uint) error
	Subscribe(ctx context.Context, postID string, userID uint) error
	AddComment(ctx context.Context, postID string, comment *models.Comment) error
	AddReply(ctx context.Context, postID, commentID string, reply *models.Reply) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if post.Waters == nil {
		post.Waters = []uint{}
	}
	if post.Subscribers == nil {
		post.Subscribers = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "delete_flag": false}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserIDs retrieves posts authored by any of the given users,
// newest first. Used for the follow feed.
func (r *MongoPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []uint, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"posted_by": bson.M{"$in": userIDs}, "delete_flag": false}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves all posts from MongoDB with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"delete_flag": false}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost soft-deletes a post by ID
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"delete_flag": true, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// AddWater adds a user to the post's water set. $addToSet keeps concurrent
// waters from producing duplicates.
func (r *MongoPostRepository) AddWater(ctx context.Context, postID string, userID uint) error {
	return r.updateSet(ctx, postID, bson.M{"$addToSet": bson.M{"waters": userID}})
}

// RemoveWater removes a user from the post's water set
func (r *MongoPostRepository) RemoveWater(ctx context.Context, postID string, userID uint) error {
	return r.updateSet(ctx, postID, bson.M{"$pull": bson.M{"waters": userID}})
}

// Subscribe adds a user to the post's subscriber set. Subscribing twice, or
// subscribing the post owner, leaves the set unchanged.
func (r *MongoPostRepository) Subscribe(ctx context.Context, postID string, userID uint) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	// owners are never subscribed to their own posts
	filter := bson.M{"_id": objID, "posted_by": bson.M{"$ne": userID}}
	_, err = r.collection.UpdateOne(ctx, filter, bson.M{
		"$addToSet": bson.M{"subscribers": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	return err
}

// AddComment appends a comment to the post document
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	return r.updateSet(ctx, postID, bson.M{"$push": bson.M{"comments": comment}})
}

// AddReply appends a reply to a comment inside the post document
func (r *MongoPostRepository) AddReply(ctx context.Context, postID, commentID string, reply *models.Reply) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	commentObjID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return fmt.Errorf("invalid comment ID format: %w", err)
	}
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "comments._id": commentObjID},
		bson.M{
			"$push": bson.M{"comments.$.replies": reply},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

func (r *MongoPostRepository) updateSet(ctx context.Context, postID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	update["$set"] = bson.M{"updated_at": time.Now()}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}
